package output

import (
	"io"

	"github.com/dshills/nestargs/internal/config"
)

// YAMLWriter outputs the tree in config file format, unset values as null.
type YAMLWriter struct{}

func (y *YAMLWriter) Write(w io.Writer, tree map[string]any) error {
	return config.Encode(w, config.File(tree), true)
}
