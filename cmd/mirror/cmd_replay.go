package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calebmrice/regulatory-mirror/internal/replay"
)

// #region replay-cmd
var replayVerbose bool

var replayCmd = &cobra.Command{
	Use:   "replay <fixture.json>",
	Short: "Replay a scripted diagnostic session",
	Long: `Run a fixture's scripted directives against its embedded measurement
snapshot and check every turn's expectations. Exits non-zero when any
turn mismatches or fails unexpectedly.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&replayVerbose, "show-turns", false, "Print every turn, not just failures")
}

func runReplay(cmd *cobra.Command, args []string) error {
	f, err := replay.LoadFixture(args[0])
	if err != nil {
		return err
	}

	results := replay.Run(f)
	for _, r := range results {
		switch {
		case r.Action == "match" && replayVerbose:
			fmt.Printf("  ok   %-6s %s\n", r.TurnID, r.Directive)
		case r.Action == "mismatch":
			fmt.Printf("  FAIL %-6s %s\n", r.TurnID, r.Directive)
			for _, m := range r.Mismatches {
				fmt.Printf("       %s\n", m)
			}
		case r.Action == "error":
			fmt.Printf("  ERR  %-6s %s: %v\n", r.TurnID, r.Directive, r.Err)
		}
	}

	summary := replay.Summarize(f, results)
	fmt.Printf("%s: %d turns, %d match, %d mismatch, %d error\n",
		summary.Description, summary.TotalTurns,
		summary.Matches, summary.Mismatches, summary.Errors)
	if !summary.Passed() {
		return fmt.Errorf("replay failed")
	}
	return nil
}
// #endregion replay-cmd
