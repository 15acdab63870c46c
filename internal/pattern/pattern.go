package pattern

import (
	"fmt"

	"github.com/calebmrice/regulatory-mirror/internal/scoring"
	"github.com/calebmrice/regulatory-mirror/internal/stats"
)

// #region suppression-pattern

// SuppressionPattern labels the behavioral shape of detected suppression,
// derived from whichever engagement metric degrades the most.
type SuppressionPattern string

const (
	PatternSelectiveNonResponse  SuppressionPattern = "selective_non_response"
	PatternDelayedEngagement     SuppressionPattern = "delayed_engagement"
	PatternSuperficialEngagement SuppressionPattern = "superficial_engagement"
	PatternAttributionAvoidance  SuppressionPattern = "attribution_avoidance"
	PatternIntegrationResistance SuppressionPattern = "integration_resistance"
	PatternGeneralSuppression    SuppressionPattern = "general_suppression"
)

// #endregion suppression-pattern

// #region config

// Config names the metric ordering (used for deterministic tie-breaks)
// and the metric → pattern lookup table.
type Config struct {
	Metrics      []string
	PatternTable map[string]SuppressionPattern
}

// DefaultPatternTable maps the standard engagement metrics to their
// suppression patterns. Metrics outside the table fall back to
// general_suppression.
func DefaultPatternTable() map[string]SuppressionPattern {
	return map[string]SuppressionPattern{
		"response_rate":  PatternSelectiveNonResponse,
		"response_time":  PatternDelayedEngagement,
		"response_depth": PatternSuperficialEngagement,
		"attribution":    PatternAttributionAvoidance,
		"integration":    PatternIntegrationResistance,
	}
}

// #endregion config

// #region classification

// Classification is the classifier's full output for one flagged set.
type Classification struct {
	Detected       bool
	Pattern        SuppressionPattern
	DominantMetric string
	// Strength is the mean absolute differential over all flagged
	// entities and all metrics. Always >= 0; exactly 0 when nothing is
	// flagged.
	Strength    float64
	MetricMeans map[string]float64
}

// #endregion classification

// #region classify

// Classify derives the dominant suppression pattern and aggregate
// strength from a set of suppression records. A pure function of its
// inputs: identical records and config yield identical output. An empty
// record set is a valid input meaning no suppression was detected.
func Classify(records []scoring.SuppressionRecord, cfg Config) (Classification, error) {
	if len(records) == 0 {
		return Classification{Detected: false, Strength: 0}, nil
	}
	if len(cfg.Metrics) == 0 {
		return Classification{}, scoring.ErrEmptyMetricSet
	}

	means := make(map[string]float64, len(cfg.Metrics))
	var all []float64
	for _, metric := range cfg.Metrics {
		values := make([]float64, 0, len(records))
		for _, rec := range records {
			v, ok := rec.Differentials[metric]
			if !ok {
				return Classification{}, fmt.Errorf("%w: entity %q metric %q",
					scoring.ErrMissingMeasurement, rec.Entity, metric)
			}
			values = append(values, v)
			all = append(all, v)
		}
		mean, err := stats.Mean(values)
		if err != nil {
			return Classification{}, fmt.Errorf("metric %s: %w", metric, err)
		}
		means[metric] = mean
	}

	// Dominant metric: lowest mean; ties resolve to the first metric in
	// configured order.
	dominant := cfg.Metrics[0]
	for _, metric := range cfg.Metrics[1:] {
		if means[metric] < means[dominant] {
			dominant = metric
		}
	}

	label, ok := cfg.PatternTable[dominant]
	if !ok {
		label = PatternGeneralSuppression
	}

	strength, err := stats.MeanAbs(all)
	if err != nil {
		return Classification{}, fmt.Errorf("strength: %w", err)
	}

	return Classification{
		Detected:       true,
		Pattern:        label,
		DominantMetric: dominant,
		Strength:       strength,
		MetricMeans:    means,
	}, nil
}

// #endregion classify
