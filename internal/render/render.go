package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/calebmrice/regulatory-mirror/internal/diagnostic"
)

// #region sink
// Sink writes a diagnostic result to an output stream. The engine has
// no opinion on presentation; sinks own it entirely.
type Sink interface {
	Render(w io.Writer, res *diagnostic.Result) error
}
// #endregion sink

// #region text
// Text renders the result summary followed by a table per map-valued
// entry. Map rows are sorted by key so output is stable.
type Text struct{}

func (Text) Render(w io.Writer, res *diagnostic.Result) error {
	if _, err := io.WriteString(w, res.Summary()); err != nil {
		return err
	}
	for _, key := range res.Keys() {
		v, _ := res.Get(key)
		switch m := v.(type) {
		case map[string]float64:
			if err := renderFloatTable(w, key, m); err != nil {
				return err
			}
		case map[string]int:
			if err := renderIntTable(w, key, m); err != nil {
				return err
			}
		case []string:
			if len(m) == 0 {
				continue
			}
			if _, err := fmt.Fprintf(w, "\n%s:\n", key); err != nil {
				return err
			}
			for _, item := range m {
				if _, err := fmt.Fprintf(w, "  - %s\n", item); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func renderFloatTable(w io.Writer, title string, m map[string]float64) error {
	if len(m) == 0 {
		return nil
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	for _, k := range sortedKeys(m) {
		fmt.Fprintf(tw, "  %s\t%.3f\n", k, m[k])
	}
	return tw.Flush()
}

func renderIntTable(w io.Writer, title string, m map[string]int) error {
	if len(m) == 0 {
		return nil
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(tw, "  %s\t%d\n", k, m[k])
	}
	return tw.Flush()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
// #endregion text

// #region json
// JSON renders the full result as indented JSON, keys in the
// procedure's insertion order.
type JSON struct{}

func (JSON) Render(w io.Writer, res *diagnostic.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
// #endregion json
