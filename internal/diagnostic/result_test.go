package diagnostic

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// #region accessors

func TestResultAccessors(t *testing.T) {
	res := NewResult(KindConstitutionalReflect, "example_org")
	res.Set("coherence_score", 0.66)
	res.Set("drift_detected", true)
	res.Set("highest_drift_principle", "transparency")
	res.Set("recursive_depth_limit", 3)

	score, ok := res.CoherenceScore()
	require.True(t, ok)
	assert.Equal(t, 0.66, score)

	drift, ok := res.DriftDetected()
	require.True(t, ok)
	assert.True(t, drift)

	principle, ok := res.HighestDriftPrinciple()
	require.True(t, ok)
	assert.Equal(t, "transparency", principle)

	depth, ok := res.RecursiveDepthLimit()
	require.True(t, ok)
	assert.Equal(t, 3, depth)
}

func TestResultAbsentKeys(t *testing.T) {
	res := NewResult(KindReflectAudit, "regulatory_shell")

	_, ok := res.CoherenceScore()
	assert.False(t, ok)
	_, ok = res.DriftDetected()
	assert.False(t, ok)
	_, ok = res.HighestDriftPrinciple()
	assert.False(t, ok)
	_, ok = res.RecursiveDepthLimit()
	assert.False(t, ok)
	_, ok = res.Get("anything")
	assert.False(t, ok)
}

// #endregion accessors

// #region ordering

func TestResultKeepsInsertionOrder(t *testing.T) {
	res := NewResult(KindReflectAudit, "shell")
	res.Set("zeta", 1.0)
	res.Set("alpha", 2.0)
	res.Set("mid", 3.0)
	// Overwrite keeps the original position.
	res.Set("zeta", 9.0)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, res.Keys())

	v, ok := res.Get("zeta")
	require.True(t, ok)
	assert.Equal(t, 9.0, v)
}

func TestSummaryListsScalarsInOrder(t *testing.T) {
	res := NewResult(KindReflectAudit, "regulatory_shell")
	res.Set("coherence_score", 0.612)
	res.Set("alignment_scores", map[string]float64{"transparency": 0.5})
	res.Set("drift_detected", true)
	res.Set("highest_misalignment_principle", "transparency")

	s := res.Summary()
	assert.True(t, strings.HasPrefix(s, "Regulatory Audit — regulatory_shell\n"))
	// Non-scalar entries are skipped.
	assert.NotContains(t, s, "Alignment Scores")

	iScore := strings.Index(s, "Coherence Score: 0.61")
	iDrift := strings.Index(s, "Drift Detected: true")
	iPrinciple := strings.Index(s, "Highest Misalignment Principle: transparency")
	require.GreaterOrEqual(t, iScore, 0)
	require.GreaterOrEqual(t, iDrift, 0)
	require.GreaterOrEqual(t, iPrinciple, 0)
	assert.Less(t, iScore, iDrift)
	assert.Less(t, iDrift, iPrinciple)
}

// #endregion ordering

// #region json

func TestMarshalJSONPreservesOrder(t *testing.T) {
	res := NewResult(KindCollapseGovernance, "constitutional_drift")
	res.Set("average_risk_score", 0.5)
	res.Set("collapse_imminent", false)
	res.Set("critical_principles", []string{})

	data, err := json.Marshal(res)
	require.NoError(t, err)

	body := string(data)
	assert.Less(t, strings.Index(body, "average_risk_score"), strings.Index(body, "collapse_imminent"))
	assert.Less(t, strings.Index(body, "collapse_imminent"), strings.Index(body, "critical_principles"))

	var decoded struct {
		Kind    string         `json:"kind"`
		Subject string         `json:"subject"`
		Results map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "collapse.governance", decoded.Kind)
	assert.Equal(t, "constitutional_drift", decoded.Subject)
	assert.Equal(t, 0.5, decoded.Results["average_risk_score"])
}

// #endregion json
