package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/dshills/nestargs/internal/registry"
)

const unset = "<unset>"

// TextWriter outputs a human-readable listing.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, tree map[string]any) error {
	ew := &errWriter{w: w}

	fields, groups := split(tree)
	writeFields(ew, tree, fields)

	for i, name := range groups {
		group := tree[name].(map[string]any)
		keys := make([]string, 0, len(group))
		for k := range group {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		if len(fields) > 0 || i > 0 {
			ew.println("")
		}
		ew.printf("[%s]\n", name)
		if len(keys) == 0 {
			ew.println("  (no flags)")
			continue
		}
		writeFields(ew, group, keys)
	}
	return ew.err
}

func writeFields(ew *errWriter, m map[string]any, keys []string) {
	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}
	for _, k := range keys {
		ew.printf("  %-*s  %s\n", width, k, display(m[k]))
	}
}

func display(v any) string {
	switch x := v.(type) {
	case nil:
		return unset
	case string:
		if x == "" {
			return `""`
		}
		return x
	case registry.Path:
		if x == "" {
			return `""`
		}
		return string(x)
	default:
		return registry.Format(x)
	}
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
