package directive

import (
	"fmt"
	"strings"
)

// Prefix is the fixed wire-level marker every directive starts with.
const Prefix = ".p/"

// #region parse

// Parse turns a directive string of the form
// .p/namespace.verb{key=value, ...} into a Command. It is a pure
// string transform: no external state is read or written. Duplicate
// keys resolve last-wins.
func Parse(raw string) (Command, error) {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, Prefix) {
		return Command{}, fmt.Errorf("%w: %q", ErrBadPrefix, truncate(raw))
	}
	s = s[len(Prefix):]

	head, body, found := strings.Cut(s, "{")
	if !found {
		return Command{}, fmt.Errorf("%w: missing '{'", ErrUnbalancedBraces)
	}
	if !strings.HasSuffix(body, "}") {
		return Command{}, fmt.Errorf("%w: missing trailing '}'", ErrUnbalancedBraces)
	}
	body = body[:len(body)-1]
	if strings.ContainsAny(body, "{}") {
		return Command{}, fmt.Errorf("%w: nested braces in parameter list", ErrUnbalancedBraces)
	}

	ns, verb, err := splitName(strings.TrimSpace(head))
	if err != nil {
		return Command{}, err
	}

	params, err := parseParams(body)
	if err != nil {
		return Command{}, err
	}

	return Command{Namespace: ns, Verb: verb, Params: params}, nil
}

// #endregion parse

// #region name

func splitName(head string) (string, string, error) {
	ns, verb, found := strings.Cut(head, ".")
	if !found || ns == "" || verb == "" {
		return "", "", fmt.Errorf("%w: %q", ErrBadName, head)
	}
	return ns, verb, nil
}

// #endregion name

// #region params

// parseParams splits the parameter body on commas, ignoring commas
// inside bracketed sub-lists, and builds the raw key/value map.
func parseParams(body string) (map[string]string, error) {
	params := make(map[string]string)
	segments, err := splitTopLevel(body)
	if err != nil {
		return nil, err
	}
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		key, value, found := strings.Cut(seg, "=")
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrBadParameter, seg)
		}
		// Last occurrence wins on duplicate keys.
		params[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return params, nil
}

// splitTopLevel splits on commas at bracket depth zero. Bracketed
// sub-lists pass through as raw text.
func splitTopLevel(body string) ([]string, error) {
	var segments []string
	depth := 0
	start := 0
	for i, r := range body {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unexpected ']'", ErrUnbalancedBraces)
			}
		case ',':
			if depth == 0 {
				segments = append(segments, body[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: unclosed '['", ErrUnbalancedBraces)
	}
	segments = append(segments, body[start:])
	return segments, nil
}

// #endregion params

// #region helpers

func truncate(s string) string {
	if len(s) > 40 {
		return s[:40] + "..."
	}
	return s
}

// #endregion helpers
