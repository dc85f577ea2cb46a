package resolve

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/dshills/nestargs/internal/config"
	"gopkg.in/yaml.v3"
)

// Config is a resolved configuration: the flattened main and preliminary
// flags at the top level and one mapping per other group. Every declared
// flag is present; a flag no source set and without a default is nil.
// Source reports the file that was actually read.
type Config struct {
	fields map[string]any
	groups map[string]map[string]any
	names  []string
	source config.Result
}

// Get returns a top-level field.
func (c *Config) Get(name string) (any, bool) {
	v, ok := c.fields[name]
	return v, ok
}

// Group returns a copy of a nested group's values.
func (c *Config) Group(name string) (map[string]any, bool) {
	g, ok := c.groups[name]
	if !ok {
		return nil, false
	}
	return maps.Clone(g), true
}

// Lookup returns a value by dotted path: "path_out" for a top-level field,
// "network.lr" for a group field.
func (c *Config) Lookup(path string) (any, bool) {
	group, name, nested := strings.Cut(path, ".")
	if !nested {
		return c.Get(path)
	}
	g, ok := c.groups[group]
	if !ok {
		return nil, false
	}
	v, ok := g[name]
	return v, ok
}

// GroupNames returns the nested group names in resolution order.
func (c *Config) GroupNames() []string {
	return slices.Clone(c.names)
}

// Fields returns the sorted top-level field names.
func (c *Config) Fields() []string {
	names := make([]string, 0, len(c.fields))
	for k := range c.fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Source returns the outcome of loading the config file.
func (c *Config) Source() config.Result {
	return c.source
}

// ToMap returns a deep copy as nested maps, suitable for config.Save.
func (c *Config) ToMap() map[string]any {
	out := maps.Clone(c.fields)
	if out == nil {
		out = make(map[string]any)
	}
	for name, g := range c.groups {
		out[name] = maps.Clone(g)
	}
	return out
}

// Decode copies the configuration into out, typically a pointer to a struct
// with yaml tags. Group mappings decode into nested structs.
func (c *Config) Decode(out any) error {
	data, err := yaml.Marshal(config.Prune(c.ToMap(), true))
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return nil
}
