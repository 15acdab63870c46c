package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/calebmrice/regulatory-mirror/internal/replay"
)

// #region seed-cmd
var seedCmd = &cobra.Command{
	Use:   "seed <fixture.json>",
	Short: "Load a fixture's measurements into the store",
	Long: `Import the measurement snapshot from a replay fixture into the
measurement database. Existing cells are overwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	f, err := replay.LoadFixture(args[0])
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	for _, m := range f.Measurements {
		if m.Layer == "" {
			err = st.PutMeasurement(m.Entity, m.Metric, m.Value)
		} else {
			err = st.PutLayerMeasurement(m.Entity, m.Metric, m.Layer, m.Value)
		}
		if err != nil {
			return fmt.Errorf("seed %s/%s: %w", m.Entity, m.Metric, err)
		}
	}

	logger.Info("store seeded",
		zap.String("fixture", args[0]),
		zap.Int("measurements", len(f.Measurements)))
	fmt.Printf("Seeded %d measurements from %s into %s\n", len(f.Measurements), args[0], dbPath)
	return nil
}
// #endregion seed-cmd
