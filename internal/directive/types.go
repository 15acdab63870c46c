package directive

import "errors"

// #region errors

var (
	// ErrBadPrefix means the directive does not start with the ".p/" marker.
	ErrBadPrefix = errors.New("directive: missing .p/ prefix")

	// ErrBadName means the namespace.verb header is absent or malformed.
	ErrBadName = errors.New("directive: expected namespace.verb header")

	// ErrUnbalancedBraces covers missing or unbalanced {} / [] delimiters.
	ErrUnbalancedBraces = errors.New("directive: unbalanced delimiters")

	// ErrBadParameter means a parameter segment has no '=' separator.
	ErrBadParameter = errors.New("directive: parameter without '='")

	// ErrMissingParameter means a required parameter was not supplied.
	ErrMissingParameter = errors.New("directive: missing required parameter")

	// ErrBadValue means a parameter value could not be coerced to its
	// declared type.
	ErrBadValue = errors.New("directive: uncoercible parameter value")
)

// #endregion errors

// #region command

// Command is a parsed directive: namespace, verb, and raw string
// parameters. Values keep their surface form, including bracketed
// lists, for the resolver to interpret.
type Command struct {
	Namespace string
	Verb      string
	Params    map[string]string
}

// Name returns the namespace.verb identifier.
func (c Command) Name() string {
	return c.Namespace + "." + c.Verb
}

// #endregion command

// #region field-type

// FieldType declares how a raw parameter value is coerced.
type FieldType string

const (
	TypeString FieldType = "string"
	TypeFloat  FieldType = "float"
	TypeList   FieldType = "list"
)

// #endregion field-type

// #region schema

// Field declares one parameter a procedure accepts.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
	// Default is used when the parameter is absent and not required.
	// Must match the field type: string, float64, or []string.
	Default any
}

// Schema is the full parameter contract for one procedure. Parameters
// not named in the schema are ignored, mirroring the loose parameter
// bag of the directive surface.
type Schema struct {
	Fields []Field
}

// #endregion schema
