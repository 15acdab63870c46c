package directive

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAuditDirective(t *testing.T) {
	cmd, err := Parse(".p/reflect.audit{target=shell, depth=institutional}")
	require.NoError(t, err)

	assert.Equal(t, "reflect", cmd.Namespace)
	assert.Equal(t, "audit", cmd.Verb)
	want := map[string]string{"target": "shell", "depth": "institutional"}
	if diff := cmp.Diff(want, cmd.Params); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmptyParamList(t *testing.T) {
	cmd, err := Parse(".p/collapse.governance{}")
	require.NoError(t, err)
	assert.Empty(t, cmd.Params)
}

func TestParseBracketedListValue(t *testing.T) {
	cmd, err := Parse(".p/trace.suppressed_alignment{source=governance, targets=[external_audit, meta_alignment], threshold=0.5}")
	require.NoError(t, err)

	// Commas inside brackets must not split parameters.
	assert.Equal(t, "[external_audit, meta_alignment]", cmd.Params["targets"])
	assert.Equal(t, "0.5", cmd.Params["threshold"])
}

func TestParseDuplicateKeyLastWins(t *testing.T) {
	cmd, err := Parse(".p/reflect.audit{depth=surface, depth=institutional}")
	require.NoError(t, err)
	assert.Equal(t, "institutional", cmd.Params["depth"])
}

func TestParseErrorKinds(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"no prefix", "reflect.audit{target=shell}", ErrBadPrefix},
		{"wrong prefix", ".q/reflect.audit{target=shell}", ErrBadPrefix},
		{"missing open brace", ".p/reflect.audit target=shell}", ErrUnbalancedBraces},
		{"missing close brace", ".p/reflect.audit{target=shell", ErrUnbalancedBraces},
		{"nested braces", ".p/reflect.audit{target={shell}}", ErrUnbalancedBraces},
		{"unclosed bracket", ".p/trace.suppressed_alignment{targets=[a,b}", ErrUnbalancedBraces},
		{"stray bracket", ".p/trace.suppressed_alignment{targets=a]}", ErrUnbalancedBraces},
		{"param without equals", ".p/reflect.audit{target}", ErrBadParameter},
		{"no verb", ".p/reflect{target=shell}", ErrBadName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Parse(%q) = %v, want %v", tc.in, err, tc.want)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	params := map[string]string{"actor": "example_org", "depth": "meta"}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, params[k]))
	}
	raw := ".p/constitutional.reflect{" + strings.Join(pairs, ", ") + "}"

	cmd, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "constitutional", cmd.Namespace)
	assert.Equal(t, "reflect", cmd.Verb)
	if diff := cmp.Diff(params, cmd.Params); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTrimsWhitespace(t *testing.T) {
	cmd, err := Parse("  .p/reflect.audit{  target = shell ,depth= institutional }")
	require.NoError(t, err)
	assert.Equal(t, "shell", cmd.Params["target"])
	assert.Equal(t, "institutional", cmd.Params["depth"])
}
