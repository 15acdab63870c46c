package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebmrice/regulatory-mirror/internal/diagnostic"
)

func sampleResult() *diagnostic.Result {
	res := diagnostic.NewResult(diagnostic.KindConstitutionalReflect, "example_org")
	res.Set("coherence_score", 0.66)
	res.Set("drift_detected", true)
	res.Set("drift_by_principle", map[string]float64{
		"transparency":  0.61,
		"collaboration": 0.53,
	})
	res.Set("recursive_depths", map[string]int{
		"transparency":  3,
		"collaboration": 3,
	})
	res.Set("critical_principles", []string{"transparency"})
	return res
}

// #region text

func TestTextRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text{}.Render(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "Constitutional Reflection — example_org")
	assert.Contains(t, out, "Coherence Score: 0.66")
	assert.Contains(t, out, "drift_by_principle:")
	assert.Contains(t, out, "transparency")
	assert.Contains(t, out, "0.610")
	assert.Contains(t, out, "recursive_depths:")
	assert.Contains(t, out, "- transparency")
}

func TestTextRenderDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, Text{}.Render(&a, sampleResult()))
	require.NoError(t, Text{}.Render(&b, sampleResult()))
	assert.Equal(t, a.String(), b.String())
}

func TestTextSkipsEmptyLists(t *testing.T) {
	res := diagnostic.NewResult(diagnostic.KindCollapseGovernance, "x")
	res.Set("critical_principles", []string{})

	var buf bytes.Buffer
	require.NoError(t, Text{}.Render(&buf, res))
	assert.NotContains(t, buf.String(), "critical_principles")
}

// #endregion text

// #region json

func TestJSONRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON{}.Render(&buf, sampleResult()))

	var decoded struct {
		Kind    string         `json:"kind"`
		Subject string         `json:"subject"`
		Results map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "constitutional.reflect", decoded.Kind)
	assert.Equal(t, "example_org", decoded.Subject)
	assert.Equal(t, true, decoded.Results["drift_detected"])

	// Insertion order survives serialization.
	body := buf.String()
	assert.Less(t, strings.Index(body, "coherence_score"), strings.Index(body, "drift_detected"))
}

// #endregion json
