package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/nestargs/internal/config"
)

// JSONWriter outputs the full tree as JSON.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, tree map[string]any) error {
	data, err := json.MarshalIndent(config.Prune(tree, true), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
