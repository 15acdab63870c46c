package diagnostic

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// #region result
// Result is a procedure's immutable output: the kind tag, the subject
// under analysis, and an ordered results mapping. Keys keep their
// insertion order so summaries and serialized output stay deterministic.
type Result struct {
	Kind    Kind
	Subject string

	keys   []string
	values map[string]any
}

// NewResult returns an empty result for a procedure run.
func NewResult(kind Kind, subject string) *Result {
	return &Result{
		Kind:    kind,
		Subject: subject,
		values:  make(map[string]any),
	}
}

// Set records a key. Re-setting an existing key overwrites the value
// but keeps the original position.
func (r *Result) Set(key string, value any) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get reads a key; ok is false when the procedure did not produce it.
func (r *Result) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the result keys in insertion order.
func (r *Result) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}
// #endregion result

// #region accessors
// CoherenceScore returns the coherence_score entry, if present.
func (r *Result) CoherenceScore() (float64, bool) {
	return r.floatKey("coherence_score")
}

// DriftDetected returns the drift_detected entry, if present.
func (r *Result) DriftDetected() (bool, bool) {
	v, ok := r.values["drift_detected"]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// HighestDriftPrinciple returns the highest_drift_principle entry, if present.
func (r *Result) HighestDriftPrinciple() (string, bool) {
	v, ok := r.values["highest_drift_principle"]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// RecursiveDepthLimit returns the recursive_depth_limit entry, if present.
func (r *Result) RecursiveDepthLimit() (int, bool) {
	v, ok := r.values["recursive_depth_limit"]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}

func (r *Result) floatKey(key string) (float64, bool) {
	v, ok := r.values[key]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}
// #endregion accessors

// #region summary
// Summary renders a deterministic one-line-per-entry digest: title and
// subject first, then every scalar entry in insertion order.
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s — %s\n", r.Kind.Title(), r.Subject)
	for _, key := range r.keys {
		v := r.values[key]
		switch val := v.(type) {
		case float64:
			fmt.Fprintf(&b, "  %s: %.2f\n", keyLabel(key), val)
		case int:
			fmt.Fprintf(&b, "  %s: %d\n", keyLabel(key), val)
		case bool:
			fmt.Fprintf(&b, "  %s: %t\n", keyLabel(key), val)
		case string:
			fmt.Fprintf(&b, "  %s: %s\n", keyLabel(key), val)
		}
	}
	return b.String()
}

func keyLabel(key string) string {
	parts := strings.Split(key, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
// #endregion summary

// #region json
type resultEnvelope struct {
	Kind    Kind   `json:"kind"`
	Subject string `json:"subject"`
}

// MarshalJSON serializes the result with keys in insertion order.
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	head, err := json.Marshal(resultEnvelope{Kind: r.Kind, Subject: r.Subject})
	if err != nil {
		return nil, err
	}
	// Splice envelope fields into the same object.
	buf.Write(head[1 : len(head)-1])

	buf.WriteString(`,"results":{`)
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, fmt.Errorf("marshal result key %s: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}
// #endregion json
