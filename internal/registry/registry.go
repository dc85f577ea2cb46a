package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Reserved group names. Flags in these groups are flattened into the top
// level of a resolved configuration.
const (
	Main        = "main"
	Preliminary = "preliminary"
)

// IsFlattened reports whether a group's flags live at the top level.
func IsFlattened(group string) bool {
	return group == Main || group == Preliminary
}

// DeclareFunc adds a group's flags to d and returns it.
type DeclareFunc func(d *Declarer) *Declarer

// Declarer collects the flag declarations of one group.
type Declarer struct {
	group string
	specs []FlagSpec
	errs  []error
}

// String declares a string flag.
func (d *Declarer) String(name, usage string, opts ...Option) *Declarer {
	return d.Flag(name, KindString, usage, opts...)
}

// Float declares a float64 flag.
func (d *Declarer) Float(name, usage string, opts ...Option) *Declarer {
	return d.Flag(name, KindFloat, usage, opts...)
}

// Int declares an int flag.
func (d *Declarer) Int(name, usage string, opts ...Option) *Declarer {
	return d.Flag(name, KindInt, usage, opts...)
}

// Bool declares a bool flag. A bool flag without a declared default is unset
// until a source sets it.
func (d *Declarer) Bool(name, usage string, opts ...Option) *Declarer {
	return d.Flag(name, KindBool, usage, opts...)
}

// Path declares a path flag.
func (d *Declarer) Path(name, usage string, opts ...Option) *Declarer {
	return d.Flag(name, KindPath, usage, opts...)
}

// Flag declares a flag of the given kind. Invalid declarations are recorded
// and reported by [Registry.Groups].
func (d *Declarer) Flag(name string, kind Kind, usage string, opts ...Option) *Declarer {
	spec := FlagSpec{name: name, kind: kind, usage: usage, group: d.group}
	for _, opt := range opts {
		opt(&spec)
	}
	if err := validateName(name); err != nil {
		d.errs = append(d.errs, &DeclarationError{Group: d.group, Flag: name, Err: err})
		return d
	}
	if spec.hasDefault {
		def, err := Normalize(kind, spec.def)
		if err != nil {
			d.errs = append(d.errs, &DeclarationError{Group: d.group, Flag: name, Err: fmt.Errorf("default: %w", err)})
			return d
		}
		if !spec.Allows(Format(def)) {
			d.errs = append(d.errs, &DeclarationError{Group: d.group, Flag: name,
				Err: fmt.Errorf("default %q is not one of %s", Format(def), strings.Join(spec.choices, ", "))})
			return d
		}
		spec.def = def
	}
	for _, c := range spec.choices {
		if _, err := Parse(kind, c); err != nil {
			d.errs = append(d.errs, &DeclarationError{Group: d.group, Flag: name, Err: fmt.Errorf("choice: %w", err)})
			return d
		}
	}
	d.specs = append(d.specs, spec)
	return d
}

func validateName(name string) error {
	switch {
	case name == "":
		return errors.New("empty flag name")
	case name == "help":
		return errors.New("flag name help is reserved")
	case strings.HasPrefix(name, "-"):
		return errors.New("flag name must not start with '-'")
	case strings.ContainsAny(name, "= \t\n"):
		return errors.New("flag name must not contain '=' or whitespace")
	}
	return nil
}

// Group is a named, ordered set of flag declarations.
type Group struct {
	Name  string
	Specs []FlagSpec
}

// Flattened reports whether the group's flags live at the top level.
func (g Group) Flattened() bool { return IsFlattened(g.Name) }

// Lookup returns the spec with the given flag name.
func (g Group) Lookup(name string) (FlagSpec, bool) {
	for _, s := range g.Specs {
		if s.name == name {
			return s, true
		}
	}
	return FlagSpec{}, false
}

// Registry maps group names to declaration functions in registration order.
type Registry struct {
	names []string
	fns   map[string]DeclareFunc
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{fns: make(map[string]DeclareFunc)}
}

// Register associates a group name with its declaration function.
func (r *Registry) Register(name string, fn DeclareFunc) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("registry: empty group name")
	}
	if fn == nil {
		return fmt.Errorf("registry: nil declaration function for group %q", name)
	}
	if _, ok := r.fns[name]; ok {
		return fmt.Errorf("registry: group %q already registered", name)
	}
	r.names = append(r.names, name)
	r.fns[name] = fn
	return nil
}

// Names returns the registered group names in resolution order: main,
// preliminary, then the nested groups in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.names))
	for _, n := range []string{Main, Preliminary} {
		if _, ok := r.fns[n]; ok {
			names = append(names, n)
		}
	}
	for _, n := range r.names {
		if !IsFlattened(n) {
			names = append(names, n)
		}
	}
	return names
}

// Groups declares every group on a fresh [Declarer] and validates the
// combined flag surface. Each call returns new specs.
func (r *Registry) Groups() ([]Group, error) {
	var (
		groups []Group
		errs   []error
	)
	owner := make(map[string]string)
	for _, name := range r.Names() {
		d := &Declarer{group: name}
		if out := r.fns[name](d); out != nil {
			d = out
		}
		errs = append(errs, d.errs...)
		for _, s := range d.specs {
			if prev, ok := owner[s.name]; ok {
				errs = append(errs, &DuplicateFlagError{Flag: s.name, Groups: []string{prev, name}})
				continue
			}
			owner[s.name] = name
		}
		groups = append(groups, Group{Name: name, Specs: slices.Clone(d.specs)})
	}
	for _, g := range groups {
		if g.Flattened() {
			continue
		}
		if prev, ok := owner[g.Name]; ok && IsFlattened(prev) {
			errs = append(errs, &DuplicateFlagError{Flag: g.Name, Groups: []string{prev, g.Name}, GroupName: true})
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return groups, nil
}

// DuplicateFlagError reports a flag name declared more than once on the
// command-line surface.
type DuplicateFlagError struct {
	Flag   string
	Groups []string
	// GroupName is set when a flattened flag has the same name as a group.
	GroupName bool
}

func (e *DuplicateFlagError) Error() string {
	if e.GroupName {
		return fmt.Sprintf("flag %q in group %q collides with group %q", e.Flag, e.Groups[0], e.Groups[1])
	}
	if len(e.Groups) == 2 && e.Groups[0] == e.Groups[1] {
		return fmt.Sprintf("flag %q declared twice in group %q", e.Flag, e.Groups[0])
	}
	return fmt.Sprintf("flag %q declared in groups %s", e.Flag, strings.Join(e.Groups, " and "))
}

// DeclarationError reports an invalid flag declaration.
type DeclarationError struct {
	Group string
	Flag  string
	Err   error
}

func (e *DeclarationError) Error() string {
	return fmt.Sprintf("group %q flag %q: %v", e.Group, e.Flag, e.Err)
}

func (e *DeclarationError) Unwrap() error { return e.Err }
