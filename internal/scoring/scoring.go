package scoring

import (
	"fmt"

	"github.com/calebmrice/regulatory-mirror/internal/stats"
)

// #region score

// Score computes the baseline profile, per-test-entity differential
// vectors, and threshold-flagged suppression records. Preconditions are
// checked before any computation: non-empty metric set, non-empty and
// disjoint baseline/test sets, a measurement for every entity/metric
// cell. The input table is never mutated.
func Score(table MeasurementTable, baseline, test []string, cfg Config) (Outcome, error) {
	if len(cfg.Metrics) == 0 {
		return Outcome{}, ErrEmptyMetricSet
	}
	if len(baseline) == 0 {
		return Outcome{}, fmt.Errorf("%w: baseline", ErrEmptyEntitySet)
	}
	if len(test) == 0 {
		return Outcome{}, fmt.Errorf("%w: test", ErrEmptyEntitySet)
	}
	if shared := overlap(baseline, test); shared != "" {
		return Outcome{}, fmt.Errorf("%w: %q", ErrOverlappingRoles, shared)
	}
	for _, entity := range append(append([]string{}, baseline...), test...) {
		for _, metric := range cfg.Metrics {
			if _, ok := lookup(table, entity, metric); !ok {
				return Outcome{}, fmt.Errorf("%w: entity %q metric %q", ErrMissingMeasurement, entity, metric)
			}
		}
	}

	profile := make(BaselineProfile, len(cfg.Metrics))
	for _, metric := range cfg.Metrics {
		values := make([]float64, 0, len(baseline))
		for _, entity := range baseline {
			v, _ := lookup(table, entity, metric)
			values = append(values, v)
		}
		mean, err := stats.Mean(values)
		if err != nil {
			return Outcome{}, fmt.Errorf("baseline %s: %w", metric, err)
		}
		profile[metric] = mean
	}

	differentials := make(map[string]DifferentialVector, len(test))
	var suppressed []SuppressionRecord
	for _, entity := range test {
		vec := make(DifferentialVector, len(cfg.Metrics))
		values := make([]float64, 0, len(cfg.Metrics))
		for _, metric := range cfg.Metrics {
			measured, _ := lookup(table, entity, metric)
			d := measured - profile[metric]
			vec[metric] = d
			values = append(values, d)
		}
		differentials[entity] = vec

		avg, err := stats.Mean(values)
		if err != nil {
			return Outcome{}, fmt.Errorf("differential %s: %w", entity, err)
		}
		// Strictly below threshold; a value exactly at the threshold is
		// not flagged.
		if avg < cfg.FlagThreshold {
			suppressed = append(suppressed, SuppressionRecord{
				Entity:              entity,
				Differentials:       vec,
				AverageDifferential: avg,
			})
		}
	}

	return Outcome{
		Baseline:      profile,
		Differentials: differentials,
		Suppressed:    suppressed,
	}, nil
}

// #endregion score

// #region helpers

func lookup(table MeasurementTable, entity, metric string) (float64, bool) {
	row, ok := table[entity]
	if !ok {
		return 0, false
	}
	v, ok := row[metric]
	return v, ok
}

func overlap(baseline, test []string) string {
	seen := make(map[string]bool, len(baseline))
	for _, e := range baseline {
		seen[e] = true
	}
	for _, e := range test {
		if seen[e] {
			return e
		}
	}
	return ""
}

// #endregion helpers
