package output

import (
	"fmt"
	"io"
	"os"
	"sort"
)

// Writer writes a configuration tree in a specific format. Nested
// map[string]any values are groups; everything else is a field.
type Writer interface {
	Write(w io.Writer, tree map[string]any) error
}

// Formats lists the supported format names.
var Formats = []string{"yaml", "json", "text"}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "yaml", "":
		return &YAMLWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "text":
		return &TextWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteTree writes the tree to the specified output (file path or stdout).
func WriteTree(tree map[string]any, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	return writer.Write(w, tree)
}

// split separates top-level fields from groups, each sorted by name.
func split(tree map[string]any) (fields, groups []string) {
	for k, v := range tree {
		if _, ok := v.(map[string]any); ok {
			groups = append(groups, k)
		} else {
			fields = append(fields, k)
		}
	}
	sort.Strings(fields)
	sort.Strings(groups)
	return fields, groups
}
