package resolve

import (
	"fmt"
	"strings"

	"github.com/dshills/nestargs/internal/registry"
)

// usage lists the flags of every group: the flattened groups first under
// "Flags", then one section per nested group.
func usage(name string, groups []registry.Group) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Usage of %s:\n", name)

	flat := newFlagSet(name)
	for _, g := range groups {
		if g.Flattened() {
			bindGroup(flat, g)
		}
	}
	if flat.HasFlags() {
		fmt.Fprintf(&b, "\nFlags:\n%s", flat.FlagUsages())
	}
	for _, g := range groups {
		if g.Flattened() || len(g.Specs) == 0 {
			continue
		}
		fs := newFlagSet(g.Name)
		bindGroup(fs, g)
		fmt.Fprintf(&b, "\n%s flags:\n%s", g.Name, fs.FlagUsages())
	}
	return b.String()
}
