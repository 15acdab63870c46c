package diagnostic

import (
	"fmt"

	"github.com/calebmrice/regulatory-mirror/internal/config"
	"github.com/calebmrice/regulatory-mirror/internal/directive"
	"github.com/calebmrice/regulatory-mirror/internal/layers"
	"github.com/calebmrice/regulatory-mirror/internal/pattern"
	"github.com/calebmrice/regulatory-mirror/internal/scoring"
	"github.com/calebmrice/regulatory-mirror/internal/source"
	"github.com/calebmrice/regulatory-mirror/internal/stats"
)

// #region runner
// Runner executes diagnostic procedures against a data source. It holds
// only read-only configuration, so one Runner may serve concurrent
// invocations.
type Runner struct {
	cfg config.Config
	src source.Source
}

// NewRunner returns a runner over the given configuration and source.
func NewRunner(cfg config.Config, src source.Source) *Runner {
	return &Runner{cfg: cfg, src: src}
}

// ExecuteDirective parses a directive string and runs the procedure it
// names.
func (r *Runner) ExecuteDirective(raw string) (*Result, error) {
	cmd, err := directive.Parse(raw)
	if err != nil {
		return nil, err
	}
	return r.Execute(cmd)
}

// Execute routes a parsed command, resolves its parameters, and runs
// the procedure.
func (r *Runner) Execute(cmd directive.Command) (*Result, error) {
	kind, err := Route(cmd.Namespace, cmd.Verb)
	if err != nil {
		return nil, err
	}
	params, err := directive.Resolve(cmd, schemaFor(kind, r.cfg))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}

	switch kind {
	case KindConstitutionalReflect:
		return r.constitutionalReflect(params)
	case KindReflectAudit:
		return r.reflectAudit(params)
	case KindTraceSuppressedAlignment:
		return r.traceSuppressedAlignment(params)
	case KindCollapseGovernance:
		return r.collapseGovernance(params)
	}
	return nil, fmt.Errorf("%s: %w", kind, ErrUnknownDiagnostic)
}
// #endregion runner

// #region schemas
// schemaFor builds the parameter schema for a procedure, with defaults
// drawn from configuration.
func schemaFor(kind Kind, cfg config.Config) directive.Schema {
	switch kind {
	case KindConstitutionalReflect:
		return directive.Schema{Fields: []directive.Field{
			{Name: "actor", Type: directive.TypeString, Default: cfg.Organization},
			{Name: "depth", Type: directive.TypeString, Default: "meta"},
		}}
	case KindReflectAudit:
		return directive.Schema{Fields: []directive.Field{
			{Name: "target", Type: directive.TypeString, Default: "regulatory_shell"},
			{Name: "depth", Type: directive.TypeString, Default: "institutional"},
		}}
	case KindTraceSuppressedAlignment:
		return directive.Schema{Fields: []directive.Field{
			{Name: "source", Type: directive.TypeString, Default: "governance"},
			{Name: "targets", Type: directive.TypeList, Required: true},
			{Name: "baseline", Type: directive.TypeList, Default: cfg.BaselineEntities},
			{Name: "threshold", Type: directive.TypeFloat, Default: cfg.FlagThreshold},
		}}
	case KindCollapseGovernance:
		return directive.Schema{Fields: []directive.Field{
			{Name: "trigger", Type: directive.TypeString, Default: "constitutional_drift"},
			{Name: "principles", Type: directive.TypeList, Default: cfg.Principles},
		}}
	}
	return directive.Schema{}
}
// #endregion schemas

// #region constitutional-reflect
// constitutionalReflect analyzes principle adherence across the
// configured review layers: coherence, first-to-last drift, pairwise
// consistency, and recursive depth.
func (r *Runner) constitutionalReflect(params directive.Params) (*Result, error) {
	ls, err := r.layerSource()
	if err != nil {
		return nil, err
	}

	series, err := source.CollectSeries(ls, r.cfg.Principles, r.cfg.AdherenceMetric, r.cfg.Layers)
	if err != nil {
		return nil, fmt.Errorf("collect layer series: %w", err)
	}
	report, err := layers.Analyze(series, layers.Config{
		PassThreshold:  r.cfg.PassThreshold,
		DriftThreshold: r.cfg.DriftThreshold,
	})
	if err != nil {
		return nil, err
	}

	res := NewResult(KindConstitutionalReflect, params.String("actor"))
	res.Set("depth", params.String("depth"))
	res.Set("layers", r.cfg.Layers)
	res.Set("adherence_data", series.Scores)
	res.Set("coherence_score", report.CoherenceScore)
	res.Set("consistency_score", report.ConsistencyScore)
	res.Set("drift_by_principle", report.DriftByPrinciple)
	res.Set("highest_drift_principle", report.HighestDriftPrinciple)
	res.Set("highest_drift_value", report.HighestDriftValue)
	res.Set("recursive_depths", report.RecursiveDepths)
	res.Set("recursive_depth_limit", report.RecursiveDepthLimit)
	res.Set("drift_detected", report.DriftDetected)
	return res, nil
}
// #endregion constitutional-reflect

// #region reflect-audit
// reflectAudit scores each principle by its mean adherence across
// layers. Drift is flagged when any principle falls below the audit
// threshold.
func (r *Runner) reflectAudit(params directive.Params) (*Result, error) {
	ls, err := r.layerSource()
	if err != nil {
		return nil, err
	}
	if len(r.cfg.Principles) == 0 {
		return nil, fmt.Errorf("reflect.audit: empty principle list")
	}

	series, err := source.CollectSeries(ls, r.cfg.Principles, r.cfg.AdherenceMetric, r.cfg.Layers)
	if err != nil {
		return nil, fmt.Errorf("collect layer series: %w", err)
	}

	alignment := make(map[string]float64, len(r.cfg.Principles))
	var weakest string
	var weakestScore float64
	var total float64
	drift := false
	for i, p := range r.cfg.Principles {
		score, err := stats.Mean(series.Scores[p])
		if err != nil {
			return nil, fmt.Errorf("principle %s: %w", p, err)
		}
		alignment[p] = score
		total += score
		if score < r.cfg.AuditThreshold {
			drift = true
		}
		if i == 0 || score < weakestScore {
			weakest, weakestScore = p, score
		}
	}

	res := NewResult(KindReflectAudit, params.String("target"))
	res.Set("depth", params.String("depth"))
	res.Set("alignment_scores", alignment)
	res.Set("coherence_score", total/float64(len(r.cfg.Principles)))
	res.Set("drift_detected", drift)
	res.Set("highest_misalignment_principle", weakest)
	res.Set("highest_misalignment_score", weakestScore)
	return res, nil
}
// #endregion reflect-audit

// #region trace-suppressed
// traceSuppressedAlignment runs differential scoring of the target
// entities against a baseline set, then classifies the suppression
// pattern of whatever was flagged.
func (r *Runner) traceSuppressedAlignment(params directive.Params) (*Result, error) {
	targets := params.List("targets")
	baseline := params.List("baseline")
	threshold := params.Float("threshold")

	table, err := source.Collect(r.src, append(append([]string{}, baseline...), targets...), r.cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("collect measurements: %w", err)
	}
	outcome, err := scoring.Score(table, baseline, targets, scoring.Config{
		Metrics:       r.cfg.Metrics,
		FlagThreshold: threshold,
	})
	if err != nil {
		return nil, err
	}
	cls, err := pattern.Classify(outcome.Suppressed, pattern.Config{
		Metrics:      r.cfg.Metrics,
		PatternTable: r.cfg.PatternTable,
	})
	if err != nil {
		return nil, err
	}

	suppressed := make([]string, 0, len(outcome.Suppressed))
	for _, rec := range outcome.Suppressed {
		suppressed = append(suppressed, rec.Entity)
	}

	res := NewResult(KindTraceSuppressedAlignment, params.String("source"))
	res.Set("baseline_profile", outcome.Baseline)
	res.Set("differential_scores", outcome.Differentials)
	res.Set("suppressed_entities", suppressed)
	res.Set("suppression_records", outcome.Suppressed)
	res.Set("classifier_detected", cls.Detected)
	res.Set("suppression_pattern", string(cls.Pattern))
	res.Set("classifier_strength", cls.Strength)
	return res, nil
}
// #endregion trace-suppressed

// #region collapse-governance
// collapseGovernance inverts per-principle adherence into a risk score
// and flags principles at or beyond their critical threshold.
func (r *Runner) collapseGovernance(params directive.Params) (*Result, error) {
	ls, err := r.layerSource()
	if err != nil {
		return nil, err
	}
	principles := params.List("principles")
	if len(principles) == 0 {
		return nil, fmt.Errorf("collapse.governance: empty principle list")
	}

	series, err := source.CollectSeries(ls, principles, r.cfg.AdherenceMetric, r.cfg.Layers)
	if err != nil {
		return nil, fmt.Errorf("collect layer series: %w", err)
	}

	risks := make(map[string]float64, len(principles))
	var critical []string
	var highest string
	var highestRisk float64
	var total float64
	for i, p := range principles {
		adherence, err := stats.Mean(series.Scores[p])
		if err != nil {
			return nil, fmt.Errorf("principle %s: %w", p, err)
		}
		risk := 1 - adherence
		risks[p] = risk
		total += risk
		if risk >= r.riskThreshold(p) {
			critical = append(critical, p)
		}
		if i == 0 || risk > highestRisk {
			highest, highestRisk = p, risk
		}
	}

	res := NewResult(KindCollapseGovernance, params.String("trigger"))
	res.Set("risk_scores", risks)
	res.Set("average_risk_score", total/float64(len(principles)))
	res.Set("critical_principles", critical)
	res.Set("collapse_imminent", len(critical) > 0)
	res.Set("highest_risk_principle", highest)
	res.Set("highest_risk_score", highestRisk)
	return res, nil
}

func (r *Runner) riskThreshold(principle string) float64 {
	if t, ok := r.cfg.RiskThresholds[principle]; ok {
		return t
	}
	return r.cfg.DefaultRiskThreshold
}
// #endregion collapse-governance

// #region layer-source
func (r *Runner) layerSource() (source.LayerSource, error) {
	ls, ok := r.src.(source.LayerSource)
	if !ok {
		return nil, ErrLayeredSourceRequired
	}
	return ls, nil
}
// #endregion layer-source
