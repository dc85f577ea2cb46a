package resolve

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dshills/nestargs/internal/config"
	"github.com/dshills/nestargs/internal/registry"
	"github.com/spf13/pflag"
)

// DefaultConfigFlag is the preliminary flag that names the config file.
const DefaultConfigFlag = "config_file"

// ErrHelp is returned when --help or -h was given. Usage has already been
// written to Options.Output.
var ErrHelp = pflag.ErrHelp

// Options configures a Resolver.
type Options struct {
	// Name is the program name shown in usage text.
	Name string
	// ConfigFlag names the preliminary flag holding the config file path.
	ConfigFlag string
	// Output receives usage text on --help. Defaults to os.Stderr.
	Output io.Writer
	// Logger defaults to a logger that discards everything.
	Logger *slog.Logger
}

// Resolver produces a Config from a registry and a command line.
type Resolver struct {
	reg  *registry.Registry
	opts Options
}

// New returns a Resolver for reg.
func New(reg *registry.Registry, opts Options) *Resolver {
	if opts.Name == "" {
		opts.Name = "experiment"
	}
	if opts.ConfigFlag == "" {
		opts.ConfigFlag = DefaultConfigFlag
	}
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{reg: reg, opts: opts}
}

// assignment is one explicit flag on the command line, kept as raw text.
type assignment struct {
	name  string
	value string
}

// Resolve validates args, loads the config file named by the config flag
// and returns the merged configuration. A missing or unreadable config file
// does not fail resolution; the outcome is available from Config.Source.
func (r *Resolver) Resolve(args []string) (*Config, error) {
	groups, err := r.reg.Groups()
	if err != nil {
		return nil, err
	}
	cmdline, err := r.parseFlat(groups, args)
	if err != nil {
		return nil, err
	}
	res := config.Load(r.configPath(groups, cmdline))
	r.logSource(res)
	return r.build(groups, res, cmdline)
}

// ResolveFile is Resolve with an already decoded config file in place of
// the config flag. A nil file resolves as if no file were given.
func (r *Resolver) ResolveFile(file config.File, args []string) (*Config, error) {
	groups, err := r.reg.Groups()
	if err != nil {
		return nil, err
	}
	cmdline, err := r.parseFlat(groups, args)
	if err != nil {
		return nil, err
	}
	res := config.Result{Status: config.StatusLoaded, Values: file}
	if file == nil {
		res = config.Result{Status: config.StatusNone, Values: config.File{}}
	}
	return r.build(groups, res, cmdline)
}

// parseFlat binds every group to one flag set and parses args against it.
// The parsed values are discarded; only the explicit assignments are kept.
func (r *Resolver) parseFlat(groups []registry.Group, args []string) ([]assignment, error) {
	fs := newFlagSet(r.opts.Name)
	for _, g := range groups {
		bindGroup(fs, g)
	}
	fs.SetOutput(r.opts.Output)
	fs.Usage = func() {
		fmt.Fprint(r.opts.Output, usage(r.opts.Name, groups))
	}

	var cmdline []assignment
	err := fs.ParseAll(args, func(f *pflag.Flag, value string) error {
		if err := fs.Set(f.Name, value); err != nil {
			return err
		}
		cmdline = append(cmdline, assignment{name: f.Name, value: value})
		return nil
	})
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, &UsageError{Err: err, Usage: usage(r.opts.Name, groups)}
	}
	if rest := fs.Args(); len(rest) > 0 {
		return nil, &UsageError{
			Err:   fmt.Errorf("unexpected argument %q", rest[0]),
			Usage: usage(r.opts.Name, groups),
		}
	}
	return cmdline, nil
}

// configPath resolves the config flag from the preliminary group using its
// default and the command line only.
func (r *Resolver) configPath(groups []registry.Group, cmdline []assignment) string {
	for _, g := range groups {
		if g.Name != registry.Preliminary {
			continue
		}
		if _, ok := g.Lookup(r.opts.ConfigFlag); !ok {
			break
		}
		fs := newFlagSet(registry.Preliminary)
		vals := bindGroup(fs, g)
		apply(fs, cmdline)
		return vals[r.opts.ConfigFlag].String()
	}
	r.opts.Logger.Debug("no config flag declared", "flag", r.opts.ConfigFlag)
	return ""
}

func (r *Resolver) logSource(res config.Result) {
	log := r.opts.Logger
	switch res.Status {
	case config.StatusMissing:
		log.Debug("config file not found, using defaults", "path", res.Path)
	case config.StatusInvalid:
		log.Warn("ignoring config file", "path", res.Path, "error", res.Err)
	case config.StatusLoaded:
		log.Debug("config file loaded", "path", res.Path, "keys", len(res.Values))
	}
}

// build runs the per-group passes and assembles the result.
func (r *Resolver) build(groups []registry.Group, res config.Result, cmdline []assignment) (*Config, error) {
	cfg := &Config{
		fields: make(map[string]any),
		groups: make(map[string]map[string]any),
		source: res,
	}
	known := make(map[string]bool)

	flat := newFlagSet(registry.Main)
	flatVals := make(map[string]*flagValue)
	for _, g := range groups {
		if !g.Flattened() {
			continue
		}
		vals := bindGroup(flat, g)
		// Preliminary values from the file are kept in the result but were
		// not used to choose the file.
		if err := seedGroup(flat, g, vals, res.Values); err != nil {
			return nil, err
		}
		for name, v := range vals {
			flatVals[name] = v
			known[name] = true
		}
	}
	apply(flat, cmdline)
	for name, v := range flatVals {
		cfg.fields[name] = v.value
	}
	if named, ok := res.Values[r.opts.ConfigFlag]; ok && named != nil && res.Path != "" && registry.Format(named) != res.Path {
		r.opts.Logger.Debug("config file names another config file, not following it",
			"path", res.Path, "names", named)
	}

	for _, g := range groups {
		if g.Flattened() {
			continue
		}
		known[g.Name] = true
		fs := newFlagSet(g.Name)
		vals := bindGroup(fs, g)

		seeded := 0
		switch values, ok, isMap := res.Values.Group(g.Name); {
		case !ok:
		case !isMap:
			r.opts.Logger.Warn("config entry for group is not a mapping, ignoring it", "group", g.Name)
		default:
			if err := seedGroup(fs, g, vals, values); err != nil {
				return nil, err
			}
			seeded = len(values)
			r.logUnknown(g, values)
		}
		explicit := apply(fs, cmdline)

		out := make(map[string]any, len(vals))
		for name, v := range vals {
			out[name] = v.value
		}
		cfg.groups[g.Name] = out
		cfg.names = append(cfg.names, g.Name)
		r.opts.Logger.Debug("group resolved", "group", g.Name, "flags", len(vals), "file", seeded, "cli", explicit)
	}

	for key := range res.Values {
		if !known[key] {
			r.opts.Logger.Debug("ignoring unknown config key", "key", key)
		}
	}
	return cfg, nil
}

// seedGroup installs the file values for g's flags as new defaults.
func seedGroup(fs *pflag.FlagSet, g registry.Group, vals map[string]*flagValue, values map[string]any) error {
	for _, spec := range g.Specs {
		raw, ok := values[spec.Name()]
		if !ok || raw == nil {
			continue
		}
		if err := vals[spec.Name()].seed(fs.Lookup(spec.Name()), raw); err != nil {
			return &ValueError{Group: g.Name, Flag: spec.Name(), Value: raw, Err: err}
		}
	}
	return nil
}

func (r *Resolver) logUnknown(g registry.Group, values map[string]any) {
	for key := range values {
		if _, ok := g.Lookup(key); !ok {
			r.opts.Logger.Debug("ignoring unknown config key", "group", g.Name, "key", key)
		}
	}
}

// apply sets the command-line assignments that belong to fs, in order, and
// returns how many it applied. The values were validated by the flat pass.
func apply(fs *pflag.FlagSet, cmdline []assignment) int {
	n := 0
	for _, a := range cmdline {
		if fs.Lookup(a.name) == nil {
			continue
		}
		if err := fs.Set(a.name, a.value); err == nil {
			n++
		}
	}
	return n
}

// Usage returns the flag listing for every group in the registry.
func (r *Resolver) Usage() (string, error) {
	groups, err := r.reg.Groups()
	if err != nil {
		return "", err
	}
	return usage(r.opts.Name, groups), nil
}
