package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/calebmrice/regulatory-mirror/internal/pattern"
)

// #region config

// Config is the full read-only configuration threaded into the
// diagnostic engine: metric set, principle and layer tables, and every
// numeric threshold. Nothing in the engine reads module-level state.
type Config struct {
	// Organization is the default analysis subject.
	Organization string `yaml:"organization"`

	// Metrics are the engagement dimensions of the measurement table,
	// in tie-break order.
	Metrics []string `yaml:"metrics"`

	// Principles are the evaluated commitments, in tie-break order.
	Principles []string `yaml:"principles"`

	// Layers are the ordered review contexts, most public-facing first.
	Layers []string `yaml:"layers"`

	// AdherenceMetric names the metric read per layer for drift analysis.
	AdherenceMetric string `yaml:"adherence_metric"`

	// BaselineEntities and TestEntities are the default role partition
	// for differential scoring; directives may override both.
	BaselineEntities []string `yaml:"baseline_entities"`
	TestEntities     []string `yaml:"test_entities"`

	FlagThreshold  float64 `yaml:"flag_threshold"`
	AuditThreshold float64 `yaml:"audit_threshold"`
	PassThreshold  float64 `yaml:"pass_threshold"`
	DriftThreshold float64 `yaml:"drift_threshold"`

	// PatternTable maps a dominant metric to its suppression pattern.
	PatternTable map[string]pattern.SuppressionPattern `yaml:"pattern_table"`

	// RiskThresholds are per-principle critical thresholds for collapse
	// analysis; DefaultRiskThreshold covers unlisted principles.
	RiskThresholds       map[string]float64 `yaml:"risk_thresholds"`
	DefaultRiskThreshold float64            `yaml:"default_risk_threshold"`
}

// #endregion config

// #region defaults

// Default returns the standard configuration: five engagement metrics,
// four principles, five review layers, and the documented thresholds.
func Default() Config {
	return Config{
		Organization: "example_org",
		Metrics: []string{
			"response_rate", "response_time", "response_depth",
			"attribution", "integration",
		},
		Principles: []string{
			"transparency", "collaboration",
			"epistemic_humility", "safety_prioritization",
		},
		Layers: []string{
			"public_statements", "research_publications",
			"model_documentation", "access_policies", "external_engagement",
		},
		AdherenceMetric: "adherence",
		FlagThreshold:   -0.3,
		AuditThreshold:  0.6,
		PassThreshold:   0.5,
		DriftThreshold:  0.4,
		PatternTable:    pattern.DefaultPatternTable(),
		RiskThresholds: map[string]float64{
			"transparency":          0.80,
			"collaboration":         0.85,
			"epistemic_humility":    0.75,
			"safety_prioritization": 0.80,
		},
		DefaultRiskThreshold: 0.80,
	}
}

// #endregion defaults

// #region load

// Load reads a YAML file over the defaults, so partial files only need
// to name what they change.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// #endregion load

// #region validate

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	if len(c.Metrics) == 0 {
		return fmt.Errorf("no metrics configured")
	}
	if len(c.Principles) == 0 {
		return fmt.Errorf("no principles configured")
	}
	if len(c.Layers) < 2 {
		return fmt.Errorf("layered analysis needs at least two layers, have %d", len(c.Layers))
	}
	if c.AdherenceMetric == "" {
		return fmt.Errorf("adherence_metric is empty")
	}
	seen := make(map[string]bool, len(c.BaselineEntities))
	for _, e := range c.BaselineEntities {
		seen[e] = true
	}
	for _, e := range c.TestEntities {
		if seen[e] {
			return fmt.Errorf("entity %q is both baseline and test", e)
		}
	}
	return nil
}

// #endregion validate
