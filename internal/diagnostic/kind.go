package diagnostic

import (
	"errors"
	"fmt"
)

// #region kinds
// Kind identifies one of the closed set of diagnostic procedures.
type Kind string

const (
	KindConstitutionalReflect    Kind = "constitutional.reflect"
	KindReflectAudit             Kind = "reflect.audit"
	KindTraceSuppressedAlignment Kind = "trace.suppressed_alignment"
	KindCollapseGovernance       Kind = "collapse.governance"
)

// Title returns the human-readable name of the procedure.
func (k Kind) Title() string {
	switch k {
	case KindConstitutionalReflect:
		return "Constitutional Reflection"
	case KindReflectAudit:
		return "Regulatory Audit"
	case KindTraceSuppressedAlignment:
		return "Suppressed Alignment Trace"
	case KindCollapseGovernance:
		return "Governance Collapse Analysis"
	}
	return string(k)
}
// #endregion kinds

// #region route
// ErrUnknownDiagnostic reports a (namespace, verb) pair outside the
// procedure set. Commands never no-op silently.
var ErrUnknownDiagnostic = errors.New("unrecognized diagnostic")

// ErrLayeredSourceRequired reports a procedure that reads per-layer
// measurements from a source that only provides aggregates.
var ErrLayeredSourceRequired = errors.New("data source does not provide layered measurements")

// Route maps a parsed namespace and verb to a diagnostic kind.
func Route(namespace, verb string) (Kind, error) {
	switch Kind(namespace + "." + verb) {
	case KindConstitutionalReflect:
		return KindConstitutionalReflect, nil
	case KindReflectAudit:
		return KindReflectAudit, nil
	case KindTraceSuppressedAlignment:
		return KindTraceSuppressedAlignment, nil
	case KindCollapseGovernance:
		return KindCollapseGovernance, nil
	}
	return "", fmt.Errorf("%s.%s: %w", namespace, verb, ErrUnknownDiagnostic)
}
// #endregion route
