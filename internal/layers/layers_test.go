package layers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// adherenceSeries mirrors a five-layer organizational review: scores
// generally decay from public-facing toward internal layers.
func adherenceSeries() Series {
	return Series{
		Layers: []string{
			"public_statements", "research_publications",
			"model_documentation", "access_policies", "external_engagement",
		},
		Principles: []string{
			"transparency", "collaboration",
			"epistemic_humility", "safety_prioritization",
		},
		Scores: map[string][]float64{
			"transparency":          {0.92, 0.78, 0.65, 0.48, 0.31},
			"collaboration":         {0.88, 0.72, 0.53, 0.45, 0.35},
			"epistemic_humility":    {0.85, 0.70, 0.60, 0.55, 0.50},
			"safety_prioritization": {0.95, 0.85, 0.78, 0.70, 0.65},
		},
	}
}

func TestAnalyzeDriftAndDepth(t *testing.T) {
	r, err := Analyze(adherenceSeries(), DefaultConfig())
	require.NoError(t, err)

	assert.InDelta(t, 0.61, r.DriftByPrinciple["transparency"], 1e-9)
	assert.InDelta(t, 0.30, r.DriftByPrinciple["safety_prioritization"], 1e-9)
	assert.Equal(t, "transparency", r.HighestDriftPrinciple)
	assert.InDelta(t, 0.61, r.HighestDriftValue, 1e-9)
	assert.True(t, r.DriftDetected)

	// Leading layers strictly above 0.5, per principle.
	assert.Equal(t, 3, r.RecursiveDepths["transparency"])
	assert.Equal(t, 3, r.RecursiveDepths["collaboration"])
	assert.Equal(t, 4, r.RecursiveDepths["epistemic_humility"])
	assert.Equal(t, 5, r.RecursiveDepths["safety_prioritization"])
	assert.Equal(t, 3, r.RecursiveDepthLimit)

	assert.InDelta(t, 0.66, r.CoherenceScore, 1e-9)
}

func TestAnalyzeConsistency(t *testing.T) {
	s := Series{
		Layers:     []string{"public", "internal", "meta"},
		Principles: []string{"p1", "p2"},
		Scores: map[string][]float64{
			"p1": {0.9, 0.6, 0.3}, // pairwise mean |diff| = 0.4
			"p2": {0.8, 0.8, 0.8}, // perfectly consistent
		},
	}
	r, err := Analyze(s, DefaultConfig())
	require.NoError(t, err)
	assert.InDelta(t, 0.8, r.ConsistencyScore, 1e-9)
}

func TestDepthZeroWhenFirstLayerFails(t *testing.T) {
	s := Series{
		Layers:     []string{"a", "b"},
		Principles: []string{"p"},
		Scores:     map[string][]float64{"p": {0.5, 0.9}},
	}
	// First layer exactly at the pass threshold does not count.
	r, err := Analyze(s, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 0, r.RecursiveDepthLimit)
}

func TestDepthBoundedBySeriesLength(t *testing.T) {
	s := Series{
		Layers:     []string{"a", "b", "c"},
		Principles: []string{"p"},
		Scores:     map[string][]float64{"p": {0.9, 0.9, 0.9}},
	}
	r, err := Analyze(s, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, len(s.Layers), r.RecursiveDepthLimit)
}

func TestNoDriftDetectedBelowThreshold(t *testing.T) {
	s := Series{
		Layers:     []string{"a", "b"},
		Principles: []string{"p"},
		Scores:     map[string][]float64{"p": {0.9, 0.6}},
	}
	r, err := Analyze(s, DefaultConfig())
	require.NoError(t, err)
	assert.False(t, r.DriftDetected)
	assert.InDelta(t, 0.3, r.DriftByPrinciple["p"], 1e-9)
}

func TestAnalyzeValidation(t *testing.T) {
	cfg := DefaultConfig()

	_, err := Analyze(Series{}, cfg)
	if !errors.Is(err, ErrEmptySeries) {
		t.Fatalf("expected ErrEmptySeries, got %v", err)
	}

	_, err = Analyze(Series{
		Layers:     []string{"only"},
		Principles: []string{"p"},
		Scores:     map[string][]float64{"p": {0.9}},
	}, cfg)
	if !errors.Is(err, ErrShortSeries) {
		t.Fatalf("expected ErrShortSeries, got %v", err)
	}

	_, err = Analyze(Series{
		Layers:     []string{"a", "b"},
		Principles: []string{"p"},
		Scores:     map[string][]float64{"p": {0.9}},
	}, cfg)
	if !errors.Is(err, ErrRaggedSeries) {
		t.Fatalf("expected ErrRaggedSeries, got %v", err)
	}

	_, err = Analyze(Series{
		Layers:     []string{"a", "b"},
		Principles: []string{"p", "q"},
		Scores:     map[string][]float64{"p": {0.9, 0.8}},
	}, cfg)
	if !errors.Is(err, ErrRaggedSeries) {
		t.Fatalf("expected ErrRaggedSeries for missing principle, got %v", err)
	}
}
