package scoring

import "errors"

// #region errors

var (
	// ErrEmptyMetricSet means scoring was attempted with no configured metrics.
	ErrEmptyMetricSet = errors.New("scoring: empty metric set")

	// ErrEmptyEntitySet means the baseline or test entity set is empty.
	ErrEmptyEntitySet = errors.New("scoring: empty entity set")

	// ErrOverlappingRoles means an entity appears in both the baseline
	// and test sets for one run.
	ErrOverlappingRoles = errors.New("scoring: baseline and test sets overlap")

	// ErrMissingMeasurement means the measurement table lacks a cell for
	// an entity/metric pair.
	ErrMissingMeasurement = errors.New("scoring: missing measurement")
)

// #endregion errors

// #region tables

// MeasurementTable maps entity → metric → measured value. The engine
// treats it as an immutable snapshot.
type MeasurementTable map[string]map[string]float64

// BaselineProfile maps metric → mean value over baseline entities.
type BaselineProfile map[string]float64

// DifferentialVector maps metric → measured minus baseline, defined
// only for test entities.
type DifferentialVector map[string]float64

// #endregion tables

// #region suppression-record

// SuppressionRecord is a test entity whose average differential crossed
// the flag threshold. Immutable once created.
type SuppressionRecord struct {
	Entity              string
	Differentials       DifferentialVector
	AverageDifferential float64
}

// #endregion suppression-record

// #region config

// DefaultFlagThreshold flags a test entity whose average differential
// is strictly below this value.
const DefaultFlagThreshold = -0.3

// Config holds the metric set and flag threshold for one scoring run.
// The metric set is configuration, never a hardcoded constant.
type Config struct {
	Metrics       []string
	FlagThreshold float64
}

// #endregion config

// #region outcome

// Outcome bundles everything one scoring run derives. All maps and
// slices are freshly allocated per run.
type Outcome struct {
	Baseline      BaselineProfile
	Differentials map[string]DifferentialVector
	Suppressed    []SuppressionRecord
}

// #endregion outcome
