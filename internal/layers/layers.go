package layers

import (
	"errors"
	"fmt"

	"github.com/calebmrice/regulatory-mirror/internal/stats"
)

// #region errors

var (
	// ErrEmptySeries means the layer list or principle set is empty.
	ErrEmptySeries = errors.New("layers: empty series")

	// ErrShortSeries means fewer than two layers were supplied, so
	// pairwise diffraction is undefined.
	ErrShortSeries = errors.New("layers: need at least two layers")

	// ErrRaggedSeries means a principle's score count does not match
	// the layer count.
	ErrRaggedSeries = errors.New("layers: score count does not match layer count")
)

// #endregion errors

// #region series

// Series holds one adherence score per layer per principle. Layer order
// is semantically meaningful: position 0 is the most public-facing
// context, the last position the most internal.
type Series struct {
	Layers     []string
	Principles []string
	Scores     map[string][]float64
}

// #endregion series

// #region config

// Config holds the thresholds for layered drift analysis.
type Config struct {
	// PassThreshold: a layer counts toward recursive depth while its
	// score is strictly above this value.
	PassThreshold float64
	// DriftThreshold: drift is detected when any principle's
	// first-to-last drop exceeds this value.
	DriftThreshold float64
}

// DefaultConfig returns the standard layered-analysis thresholds.
func DefaultConfig() Config {
	return Config{
		PassThreshold:  0.5,
		DriftThreshold: 0.4,
	}
}

// #endregion config

// #region report

// Report is the full output of one layered drift analysis.
type Report struct {
	// CoherenceScore is the mean of per-principle layer means.
	CoherenceScore float64
	// ConsistencyScore is one minus the mean pairwise diffraction
	// across principles; 1.0 means perfectly consistent across layers.
	ConsistencyScore float64

	// DriftByPrinciple maps principle → first-layer minus last-layer
	// value. Positive drift means the principle weakens toward the
	// internal layers.
	DriftByPrinciple      map[string]float64
	HighestDriftPrinciple string
	HighestDriftValue     float64
	DriftDetected         bool

	// RecursiveDepths counts, per principle, the leading layers whose
	// score stays above the pass threshold. RecursiveDepthLimit is the
	// minimum across principles: the weakest link bounds the whole.
	RecursiveDepths     map[string]int
	RecursiveDepthLimit int
}

// #endregion report

// #region analyze

// Analyze computes drift, diffraction, and recursive depth over an
// ordered layer series. Validation happens before any aggregation.
func Analyze(s Series, cfg Config) (Report, error) {
	if len(s.Layers) == 0 || len(s.Principles) == 0 {
		return Report{}, ErrEmptySeries
	}
	if len(s.Layers) < 2 {
		return Report{}, ErrShortSeries
	}
	for _, p := range s.Principles {
		scores, ok := s.Scores[p]
		if !ok || len(scores) != len(s.Layers) {
			return Report{}, fmt.Errorf("%w: principle %q has %d scores for %d layers",
				ErrRaggedSeries, p, len(s.Scores[p]), len(s.Layers))
		}
	}

	drifts := make(map[string]float64, len(s.Principles))
	depths := make(map[string]int, len(s.Principles))
	perPrincipleMeans := make([]float64, 0, len(s.Principles))
	diffractions := make([]float64, 0, len(s.Principles))

	for _, p := range s.Principles {
		scores := s.Scores[p]
		drifts[p] = scores[0] - scores[len(scores)-1]

		depth := 0
		for _, v := range scores {
			if v <= cfg.PassThreshold {
				break
			}
			depth++
		}
		depths[p] = depth

		mean, err := stats.Mean(scores)
		if err != nil {
			return Report{}, fmt.Errorf("principle %s: %w", p, err)
		}
		perPrincipleMeans = append(perPrincipleMeans, mean)

		diff, err := stats.PairwiseMeanAbsDiff(scores)
		if err != nil {
			return Report{}, fmt.Errorf("diffraction %s: %w", p, err)
		}
		diffractions = append(diffractions, diff)
	}

	coherence, err := stats.Mean(perPrincipleMeans)
	if err != nil {
		return Report{}, fmt.Errorf("coherence: %w", err)
	}
	meanDiffraction, err := stats.Mean(diffractions)
	if err != nil {
		return Report{}, fmt.Errorf("consistency: %w", err)
	}

	// Highest drift: ties resolve to the first principle in series order.
	highest := s.Principles[0]
	for _, p := range s.Principles[1:] {
		if drifts[p] > drifts[highest] {
			highest = p
		}
	}

	depthLimit := depths[s.Principles[0]]
	for _, p := range s.Principles[1:] {
		if depths[p] < depthLimit {
			depthLimit = depths[p]
		}
	}

	detected := false
	for _, p := range s.Principles {
		if drifts[p] > cfg.DriftThreshold {
			detected = true
			break
		}
	}

	return Report{
		CoherenceScore:        coherence,
		ConsistencyScore:      1.0 - meanDiffraction,
		DriftByPrinciple:      drifts,
		HighestDriftPrinciple: highest,
		HighestDriftValue:     drifts[highest],
		DriftDetected:         detected,
		RecursiveDepths:       depths,
		RecursiveDepthLimit:   depthLimit,
	}, nil
}

// #endregion analyze
