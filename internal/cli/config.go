package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dshills/nestargs/internal/config"
	"github.com/dshills/nestargs/internal/experiment"
	"github.com/dshills/nestargs/internal/redact"
	"github.com/dshills/nestargs/internal/registry"
	"github.com/dshills/nestargs/internal/resolve"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.yaml"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage experiment config files",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a config file holding every flag default",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultConfigPath
		if len(args) == 1 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Config file already exists at %s\n", path)
			return nil
		}

		r := resolve.New(experiment.Registry(), resolve.Options{})
		cfg, err := r.ResolveFile(nil, nil)
		if err != nil {
			exitCode = reportError(cmd.ErrOrStderr(), err)
			return nil
		}

		if err := config.Save(path, cfg, true); err != nil {
			exitCode = reportError(cmd.ErrOrStderr(), err)
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Config file created at %s\n", path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <path> <flag> <value>",
	Short: "Set one flag in a config file",
	Long: "Set validates value against the declared flag and writes it into the config file. " +
		"Nested flags are addressed as group.flag, for example network.lr.",
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, key, raw := args[0], args[1], args[2]

		res := config.Load(path)
		file := res.Values
		switch res.Status {
		case config.StatusMissing:
			file = config.File{}
		case config.StatusInvalid:
			exitCode = reportError(cmd.ErrOrStderr(), res.Err)
			return nil
		}

		if err := setField(file, key, raw); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			exitCode = ExitUsageError
			return nil
		}

		if err := config.Save(path, file, true); err != nil {
			exitCode = reportError(cmd.ErrOrStderr(), err)
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, raw)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Show how a config file loads",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultConfigPath
		if len(args) == 1 {
			path = args[0]
		}

		res := config.Load(path)
		fmt.Fprintf(cmd.OutOrStdout(), "# %s: %s\n", res.Path, res.Status)
		switch res.Status {
		case config.StatusMissing:
			exitCode = ExitRuntimeError
			return nil
		case config.StatusInvalid:
			exitCode = reportError(cmd.ErrOrStderr(), res.Err)
			return nil
		}

		tree := res.Values.ToMap()
		if !flagNoRedact {
			tree = redact.Tree(tree, redact.DefaultKeyPatterns)
		}
		if err := writeTree(cmd.OutOrStdout(), tree, "yaml", ""); err != nil {
			exitCode = reportError(cmd.ErrOrStderr(), err)
		}
		return nil
	},
}

// setField parses raw for the flag named by key and stores it in file.
// Main and preliminary flags live at the top level, other groups under
// their name.
func setField(file config.File, key, raw string) error {
	groups, err := experiment.Registry().Groups()
	if err != nil {
		return err
	}

	group, name, nested := strings.Cut(key, ".")
	for _, g := range groups {
		if nested == g.Flattened() || (nested && g.Name != group) {
			continue
		}
		if !nested {
			name = key
		}
		spec, ok := g.Lookup(name)
		if !ok {
			continue
		}
		v, err := registry.Parse(spec.Kind(), raw)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		if !spec.Allows(registry.Format(v)) {
			return fmt.Errorf("invalid value %q for %s: must be one of %s", raw, key, strings.Join(spec.Choices(), ", "))
		}
		if !nested {
			file[name] = v
			return nil
		}
		sub, _, isMap := file.Group(group)
		if !isMap {
			sub = make(map[string]any)
		}
		sub[name] = v
		file[group] = sub
		return nil
	}

	return fmt.Errorf("unknown flag %q", key)
}

func init() {
	configShowCmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Print secret-looking values unmasked")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)
}
