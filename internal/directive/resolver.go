package directive

import (
	"fmt"
	"strconv"
	"strings"
)

// #region params-value

// Params holds resolved, typed parameter values.
type Params struct {
	values map[string]any
}

// String returns the named string parameter, or "" if absent.
func (p Params) String(name string) string {
	v, _ := p.values[name].(string)
	return v
}

// Float returns the named float parameter, or 0 if absent.
func (p Params) Float(name string) float64 {
	v, _ := p.values[name].(float64)
	return v
}

// List returns the named list parameter, or nil if absent.
func (p Params) List(name string) []string {
	v, _ := p.values[name].([]string)
	return v
}

// Has reports whether the parameter was supplied or defaulted.
func (p Params) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// #endregion params-value

// #region resolve

// Resolve coerces a command's raw parameters against a schema. A
// required field with no supplied value is an error; optional fields
// fall back to their declared defaults. Keys outside the schema are
// ignored.
func Resolve(cmd Command, schema Schema) (Params, error) {
	resolved := Params{values: make(map[string]any, len(schema.Fields))}
	for _, f := range schema.Fields {
		raw, supplied := cmd.Params[f.Name]
		if !supplied {
			if f.Required {
				return Params{}, fmt.Errorf("%w: %q for %s", ErrMissingParameter, f.Name, cmd.Name())
			}
			if f.Default != nil {
				resolved.values[f.Name] = f.Default
			}
			continue
		}
		v, err := coerce(raw, f.Type)
		if err != nil {
			return Params{}, fmt.Errorf("%w: %s=%q: %v", ErrBadValue, f.Name, raw, err)
		}
		resolved.values[f.Name] = v
	}
	return resolved, nil
}

func coerce(raw string, t FieldType) (any, error) {
	switch t {
	case TypeString:
		return raw, nil
	case TypeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("not a float")
		}
		return f, nil
	case TypeList:
		return parseList(raw), nil
	default:
		return nil, fmt.Errorf("unknown field type %q", t)
	}
}

// parseList interprets a bracketed [a,b,c] sub-list; a bare value is a
// single-element list.
func parseList(raw string) []string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = s[1 : len(s)-1]
	}
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// #endregion resolve
