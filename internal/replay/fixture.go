package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/calebmrice/regulatory-mirror/internal/config"
	"github.com/calebmrice/regulatory-mirror/internal/source"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: a
// measurement snapshot, optional configuration overrides, and a scripted
// sequence of directives with expected result entries.
type Fixture struct {
	Description  string               `json:"description"`
	Measurements []FixtureMeasurement `json:"measurements"`
	Config       FixtureConfig        `json:"config"`
	Turns        []FixtureTurn        `json:"turns"`
}

// FixtureMeasurement is one measurement cell. Layer is empty for
// aggregate scores.
type FixtureMeasurement struct {
	Entity string  `json:"entity"`
	Metric string  `json:"metric"`
	Layer  string  `json:"layer,omitempty"`
	Value  float64 `json:"value"`
}

// FixtureConfig holds optional overrides over the default
// configuration. Pointer fields distinguish "absent" from zero.
type FixtureConfig struct {
	Organization     *string  `json:"organization,omitempty"`
	Metrics          []string `json:"metrics,omitempty"`
	Principles       []string `json:"principles,omitempty"`
	Layers           []string `json:"layers,omitempty"`
	AdherenceMetric  *string  `json:"adherence_metric,omitempty"`
	BaselineEntities []string `json:"baseline_entities,omitempty"`
	TestEntities     []string `json:"test_entities,omitempty"`
	FlagThreshold    *float64 `json:"flag_threshold,omitempty"`
	AuditThreshold   *float64 `json:"audit_threshold,omitempty"`
	PassThreshold    *float64 `json:"pass_threshold,omitempty"`
	DriftThreshold   *float64 `json:"drift_threshold,omitempty"`
}

// FixtureTurn is one scripted directive with its expectations. Expect
// entries are matched against the result mapping; float comparisons use
// Tolerance (zero means exact). ExpectError, when set, must be a
// substring of the returned error.
type FixtureTurn struct {
	TurnID      string         `json:"turn_id"`
	Directive   string         `json:"directive"`
	Expect      map[string]any `json:"expect,omitempty"`
	Tolerance   float64        `json:"tolerance,omitempty"`
	ExpectError string         `json:"expect_error,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// BuildSource materializes the fixture's measurement snapshot as an
// in-memory data source.
func (f *Fixture) BuildSource() *source.Table {
	tbl := source.NewTable()
	for _, m := range f.Measurements {
		if m.Layer == "" {
			tbl.Set(m.Entity, m.Metric, m.Value)
		} else {
			tbl.SetLayer(m.Entity, m.Metric, m.Layer, m.Value)
		}
	}
	return tbl
}

// BuildConfig applies the fixture's overrides over the defaults.
func (f *Fixture) BuildConfig() config.Config {
	cfg := config.Default()
	fc := f.Config
	if fc.Organization != nil {
		cfg.Organization = *fc.Organization
	}
	if len(fc.Metrics) > 0 {
		cfg.Metrics = fc.Metrics
	}
	if len(fc.Principles) > 0 {
		cfg.Principles = fc.Principles
	}
	if len(fc.Layers) > 0 {
		cfg.Layers = fc.Layers
	}
	if fc.AdherenceMetric != nil {
		cfg.AdherenceMetric = *fc.AdherenceMetric
	}
	if len(fc.BaselineEntities) > 0 {
		cfg.BaselineEntities = fc.BaselineEntities
	}
	if len(fc.TestEntities) > 0 {
		cfg.TestEntities = fc.TestEntities
	}
	if fc.FlagThreshold != nil {
		cfg.FlagThreshold = *fc.FlagThreshold
	}
	if fc.AuditThreshold != nil {
		cfg.AuditThreshold = *fc.AuditThreshold
	}
	if fc.PassThreshold != nil {
		cfg.PassThreshold = *fc.PassThreshold
	}
	if fc.DriftThreshold != nil {
		cfg.DriftThreshold = *fc.DriftThreshold
	}
	return cfg
}

// #endregion fixture-loader
