package replay

import (
	"fmt"
	"math"
	"strings"

	"github.com/calebmrice/regulatory-mirror/internal/diagnostic"
)

// #region types
// TurnResult captures the outcome of replaying one scripted directive.
type TurnResult struct {
	TurnID    string
	Directive string
	Action    string // "match" | "mismatch" | "error"

	Result     *diagnostic.Result
	Err        error
	Mismatches []string
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	Description string
	TotalTurns  int
	Matches     int
	Mismatches  int
	Errors      int
}

// Passed reports whether every turn behaved as scripted.
func (s Summary) Passed() bool {
	return s.Mismatches == 0 && s.Errors == 0
}

// #endregion types

// #region replay
// Run executes a fixture's scripted directives against its measurement
// snapshot and checks each turn's expectations. Operates entirely
// in-memory.
func Run(f *Fixture) []TurnResult {
	runner := diagnostic.NewRunner(f.BuildConfig(), f.BuildSource())
	results := make([]TurnResult, 0, len(f.Turns))

	for _, turn := range f.Turns {
		tr := TurnResult{TurnID: turn.TurnID, Directive: turn.Directive}

		res, err := runner.ExecuteDirective(turn.Directive)
		switch {
		case err != nil && turn.ExpectError != "":
			if strings.Contains(err.Error(), turn.ExpectError) {
				tr.Action = "match"
			} else {
				tr.Action = "mismatch"
				tr.Mismatches = []string{fmt.Sprintf(
					"error %q does not contain %q", err, turn.ExpectError)}
			}
			tr.Err = err
		case err != nil:
			tr.Action = "error"
			tr.Err = err
		case turn.ExpectError != "":
			tr.Action = "mismatch"
			tr.Result = res
			tr.Mismatches = []string{fmt.Sprintf(
				"expected error containing %q, got success", turn.ExpectError)}
		default:
			tr.Result = res
			tr.Mismatches = checkExpectations(res, turn)
			if len(tr.Mismatches) == 0 {
				tr.Action = "match"
			} else {
				tr.Action = "mismatch"
			}
		}
		results = append(results, tr)
	}
	return results
}

// checkExpectations compares each expected entry against the result
// mapping. JSON numbers decode as float64, so numeric comparisons go
// through the turn's tolerance.
func checkExpectations(res *diagnostic.Result, turn FixtureTurn) []string {
	var mismatches []string
	for key, want := range turn.Expect {
		got, ok := res.Get(key)
		if !ok {
			mismatches = append(mismatches, fmt.Sprintf("missing key %q", key))
			continue
		}
		if !valueMatches(got, want, turn.Tolerance) {
			mismatches = append(mismatches, fmt.Sprintf(
				"key %q: got %v, want %v", key, got, want))
		}
	}
	return mismatches
}

func valueMatches(got, want any, tolerance float64) bool {
	if w, ok := want.(float64); ok {
		switch g := got.(type) {
		case float64:
			return math.Abs(g-w) <= tolerance
		case int:
			return math.Abs(float64(g)-w) <= tolerance
		}
		return false
	}
	if w, ok := want.([]any); ok {
		return listMatches(got, w)
	}
	return fmt.Sprintf("%v", got) == fmt.Sprintf("%v", want)
}

func listMatches(got any, want []any) bool {
	g, ok := got.([]string)
	if !ok {
		return false
	}
	if len(g) != len(want) {
		return false
	}
	for i, w := range want {
		if s, ok := w.(string); !ok || s != g[i] {
			return false
		}
	}
	return true
}

// Summarize computes aggregate stats from replay results.
func Summarize(f *Fixture, results []TurnResult) Summary {
	s := Summary{
		Description: f.Description,
		TotalTurns:  len(results),
	}
	for _, r := range results {
		switch r.Action {
		case "match":
			s.Matches++
		case "mismatch":
			s.Mismatches++
		case "error":
			s.Errors++
		}
	}
	return s
}

// #endregion replay
