package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/calebmrice/regulatory-mirror/internal/store"
)

// #region inspect-cmd
var (
	inspectLast  int
	inspectRunID string
	inspectJSON  bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect the diagnostic run log",
	Long: `List recent diagnostic runs, or show one run in full.

Examples:
  mirror inspect --last 10
  mirror inspect --run 4f7c... --json`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().IntVar(&inspectLast, "last", 5, "Number of recent runs to list")
	inspectCmd.Flags().StringVar(&inspectRunID, "run", "", "Show a single run by ID")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Emit raw JSON")
}

func runInspect(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if inspectRunID != "" {
		return inspectOne(st, inspectRunID)
	}
	return inspectList(st, inspectLast)
}

func inspectOne(st *store.Store, runID string) error {
	rec, err := st.GetRun(runID)
	if err != nil {
		return err
	}
	if inspectJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec.Results)
	}

	fmt.Printf("Run:       %s\n", rec.RunID)
	fmt.Printf("Directive: %s\n", rec.Directive)
	fmt.Printf("Kind:      %s\n", rec.Kind)
	fmt.Printf("Subject:   %s\n", rec.Subject)
	fmt.Printf("At:        %s\n", rec.CreatedAt.Format(time.RFC3339))
	if len(rec.Results) > 0 {
		var pretty json.RawMessage = rec.Results
		out, err := json.MarshalIndent(pretty, "", "  ")
		if err != nil {
			return fmt.Errorf("format results: %w", err)
		}
		fmt.Printf("Results:\n%s\n", out)
	}
	return nil
}

func inspectList(st *store.Store, limit int) error {
	runs, err := st.ListRuns(limit)
	if err != nil {
		return err
	}
	if inspectJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	if len(runs) == 0 {
		fmt.Println("No diagnostic runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tKIND\tSUBJECT\tAT")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.RunID, r.Kind, r.Subject, r.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}
// #endregion inspect-cmd
