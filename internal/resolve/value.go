package resolve

import (
	"fmt"
	"strings"

	"github.com/dshills/nestargs/internal/registry"
	"github.com/spf13/pflag"
)

// flagValue adapts a FlagSpec to pflag.Value. value is nil while unset.
type flagValue struct {
	spec  registry.FlagSpec
	value any
}

func (v *flagValue) String() string { return registry.Format(v.value) }

func (v *flagValue) Type() string { return v.spec.Kind().String() }

func (v *flagValue) Set(raw string) error {
	x, err := registry.Parse(v.spec.Kind(), raw)
	if err != nil {
		return err
	}
	if !v.spec.Allows(registry.Format(x)) {
		return fmt.Errorf("must be one of %s", strings.Join(v.spec.Choices(), ", "))
	}
	v.value = x
	return nil
}

// seed replaces the current default with a config file value. Strings go
// through the same parser as the command line, as do numbers and bools
// given to string and path flags; other YAML scalars must already match the
// flag kind.
func (v *flagValue) seed(f *pflag.Flag, raw any) error {
	s, ok := raw.(string)
	if !ok && textual(v.spec.Kind()) {
		s, ok = scalarText(raw)
	}
	if ok {
		if err := v.Set(s); err != nil {
			return err
		}
	} else {
		x, err := registry.Normalize(v.spec.Kind(), raw)
		if err != nil {
			return err
		}
		if !v.spec.Allows(registry.Format(x)) {
			return fmt.Errorf("must be one of %s", strings.Join(v.spec.Choices(), ", "))
		}
		v.value = x
	}
	f.DefValue = v.String()
	return nil
}

func textual(k registry.Kind) bool {
	return k == registry.KindString || k == registry.KindPath
}

// scalarText returns the text form of a YAML number or bool.
func scalarText(raw any) (string, bool) {
	switch raw.(type) {
	case int, int64, uint64, float64, bool:
		return registry.Format(raw), true
	}
	return "", false
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	return fs
}

// bindGroup defines every spec of g on fs and returns the values by flag name.
func bindGroup(fs *pflag.FlagSet, g registry.Group) map[string]*flagValue {
	vals := make(map[string]*flagValue, len(g.Specs))
	for _, spec := range g.Specs {
		v := &flagValue{spec: spec}
		if def, ok := spec.Default(); ok {
			v.value = def
		}
		usage := spec.Usage()
		if choices := spec.Choices(); len(choices) > 0 {
			usage = strings.TrimSpace(fmt.Sprintf("%s {%s}", usage, strings.Join(choices, ",")))
		}
		f := fs.VarPF(v, spec.Name(), "", usage)
		f.DefValue = v.String()
		if spec.Kind() == registry.KindBool {
			f.NoOptDefVal = "true"
		}
		vals[spec.Name()] = v
	}
	return vals
}
