package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/calebmrice/regulatory-mirror/internal/diagnostic"
	"github.com/calebmrice/regulatory-mirror/internal/render"
	"github.com/calebmrice/regulatory-mirror/internal/store"
)

// #region run-cmd
var runJSON bool

var runCmd = &cobra.Command{
	Use:   "run <directive>",
	Short: "Execute one diagnostic directive",
	Long: `Execute a single directive against the measurement store and print
the diagnostic result. The run is recorded in the run log.

Example:
  mirror run '.p/reflect.audit{target=regulatory_shell, depth=institutional}'`,
	Args: cobra.ExactArgs(1),
	RunE: runDirective,
}

func init() {
	runCmd.Flags().BoolVar(&runJSON, "json", false, "Emit the result as JSON")
}

func runDirective(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	res, err := executeAndLog(st, diagnostic.NewRunner(cfg, st), args[0])
	if err != nil {
		return err
	}

	var sink render.Sink = render.Text{}
	if runJSON {
		sink = render.JSON{}
	}
	return sink.Render(os.Stdout, res)
}
// #endregion run-cmd

// #region execute-and-log
// executeAndLog runs one directive and appends it to the run log. A
// failed log write does not fail the diagnostic.
func executeAndLog(st *store.Store, runner *diagnostic.Runner, directive string) (*diagnostic.Result, error) {
	res, err := runner.ExecuteDirective(directive)
	if err != nil {
		return nil, fmt.Errorf("execute %q: %w", directive, err)
	}

	results, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	rec, err := st.LogRun(store.RunRecord{
		Directive: directive,
		Kind:      string(res.Kind),
		Subject:   res.Subject,
		Results:   results,
	})
	if err != nil {
		logger.Warn("run log write failed", zap.Error(err))
	} else {
		logger.Info("diagnostic complete",
			zap.String("run_id", rec.RunID),
			zap.String("kind", string(res.Kind)),
			zap.String("subject", res.Subject))
	}
	return res, nil
}
// #endregion execute-and-log
