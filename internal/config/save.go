package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dshills/nestargs/internal/registry"
	"gopkg.in/yaml.v3"
)

// Tree is a nested configuration that can be written as a config file.
type Tree interface {
	ToMap() map[string]any
}

// Save writes tree to path as YAML, creating the parent directory. Unset and
// empty-string values are omitted unless includeEmpty is true. The tree is
// not modified.
func Save(path string, tree Tree, includeEmpty bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	var buf bytes.Buffer
	if err := Encode(&buf, tree, includeEmpty); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Encode writes tree to w as a YAML document with the same filtering as Save.
func Encode(w io.Writer, tree Tree, includeEmpty bool) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Prune(tree.ToMap(), includeEmpty)); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return enc.Close()
}

// Prune returns a copy of m ready for serialization: path values become
// plain strings, nested mappings are pruned recursively, and unless
// includeEmpty is set nil and "" values are dropped.
func Prune(m map[string]any, includeEmpty bool) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch x := v.(type) {
		case nil:
			if includeEmpty {
				out[k] = nil
			}
		case string:
			if x != "" || includeEmpty {
				out[k] = x
			}
		case registry.Path:
			if x != "" || includeEmpty {
				out[k] = string(x)
			}
		case map[string]any:
			out[k] = Prune(x, includeEmpty)
		case File:
			out[k] = Prune(x, includeEmpty)
		default:
			out[k] = x
		}
	}
	return out
}
