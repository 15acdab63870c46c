// Package main implements the mirror CLI: regulatory diagnostics driven
// by directive strings over a measurement store.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/calebmrice/regulatory-mirror/internal/config"
	"github.com/calebmrice/regulatory-mirror/internal/store"
)

// #region globals
var (
	configPath string
	dbPath     string
	verbose    bool

	logger *zap.Logger
)
// #endregion globals

// #region root
var rootCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Regulatory mirror diagnostics",
	Long: `mirror runs regulatory alignment diagnostics over a measurement store.

Diagnostics are invoked with directive strings:

  .p/constitutional.reflect{actor=example_org, depth=meta}
  .p/reflect.audit{target=regulatory_shell, depth=institutional}
  .p/trace.suppressed_alignment{targets=[topic_a, topic_b]}
  .p/collapse.governance{trigger=constitutional_drift}

Run without arguments to start the interactive shell.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config (default: built-in defaults)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "mirror.db", "Path to the measurement database")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(replayCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
// #endregion root

// #region helpers
func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func openStore() (*store.Store, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", dbPath, err)
	}
	return st, nil
}
// #endregion helpers
