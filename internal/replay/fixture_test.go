package replay

import (
	"os"
	"path/filepath"
	"testing"
)

// #region fixture-tests

// TestFixture_DiagnosticSession loads the diagnostic_session fixture,
// runs the scripted directives, and checks every turn's expectations.
// This is the primary regression test — if thresholds or aggregation
// rules change, this catches drift.
func TestFixture_DiagnosticSession(t *testing.T) {
	fixturePath := filepath.Join("testdata", "diagnostic_session.json")
	f, err := LoadFixture(fixturePath)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}

	results := Run(f)

	if len(results) != len(f.Turns) {
		t.Fatalf("expected %d results, got %d", len(f.Turns), len(results))
	}
	for i, turn := range f.Turns {
		actual := results[i]
		if actual.TurnID != turn.TurnID {
			t.Errorf("turn %d: expected turn_id=%s, got %s", i, turn.TurnID, actual.TurnID)
		}
		if actual.Action != "match" {
			t.Errorf("turn %s: action=%s err=%v mismatches=%v",
				actual.TurnID, actual.Action, actual.Err, actual.Mismatches)
		}
	}

	summary := Summarize(f, results)
	if !summary.Passed() {
		t.Errorf("summary did not pass: %+v", summary)
	}
	if summary.Matches != len(f.Turns) {
		t.Errorf("expected %d matches, got %d", len(f.Turns), summary.Matches)
	}
}

func TestLoadFixture_MissingFile(t *testing.T) {
	if _, err := LoadFixture(filepath.Join("testdata", "absent.json")); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func TestLoadFixture_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFixture(path); err == nil {
		t.Fatal("expected error for malformed fixture")
	}
}

func TestBuildConfig_Overrides(t *testing.T) {
	threshold := -0.5
	org := "acme_labs"
	f := &Fixture{Config: FixtureConfig{
		Organization:     &org,
		FlagThreshold:    &threshold,
		BaselineEntities: []string{"a", "b"},
	}}

	cfg := f.BuildConfig()
	if cfg.Organization != "acme_labs" {
		t.Errorf("organization not overridden: %s", cfg.Organization)
	}
	if cfg.FlagThreshold != -0.5 {
		t.Errorf("flag threshold not overridden: %v", cfg.FlagThreshold)
	}
	if len(cfg.BaselineEntities) != 2 {
		t.Errorf("baseline entities not overridden: %v", cfg.BaselineEntities)
	}
	// Untouched fields keep defaults.
	if cfg.AuditThreshold != 0.6 {
		t.Errorf("audit threshold changed unexpectedly: %v", cfg.AuditThreshold)
	}
}

func TestBuildSource(t *testing.T) {
	f := &Fixture{Measurements: []FixtureMeasurement{
		{Entity: "org_a", Metric: "response_rate", Value: 0.9},
		{Entity: "transparency", Metric: "adherence", Layer: "access_policies", Value: 0.4},
	}}

	tbl := f.BuildSource()
	if v, err := tbl.Measure("org_a", "response_rate"); err != nil || v != 0.9 {
		t.Errorf("aggregate measurement: v=%v err=%v", v, err)
	}
	if v, err := tbl.MeasureLayer("transparency", "adherence", "access_policies"); err != nil || v != 0.4 {
		t.Errorf("layer measurement: v=%v err=%v", v, err)
	}
}

// #endregion fixture-tests
