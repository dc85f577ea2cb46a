package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dshills/nestargs/internal/config"
	"github.com/dshills/nestargs/internal/experiment"
	"github.com/dshills/nestargs/internal/output"
	"github.com/dshills/nestargs/internal/redact"
	"github.com/dshills/nestargs/internal/resolve"
	"github.com/spf13/cobra"
)

var (
	flagFormat   string
	flagOut      string
	flagSave     string
	flagAll      bool
	flagNoRedact bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [flags] -- [experiment flags]",
	Short: "Resolve the experiment configuration",
	Long: "Resolve merges flag defaults, the config file named by --config_file and the experiment " +
		"flags given after \"--\", then prints the result.\n\n" +
		"Examples:\n" +
		"  nestargs resolve -- --config_file run.yaml --lr 0.1\n" +
		"  nestargs resolve --format json -- --network_type lstm\n" +
		"  nestargs resolve --save run.yaml -- --path_train data/train",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !slices.Contains(output.Formats, flagFormat) {
			return fmt.Errorf("invalid format %q, must be one of: %s", flagFormat, strings.Join(output.Formats, ", "))
		}

		log := newLogger(flagLogLevel, flagLogFormat, cmd.ErrOrStderr())
		r := resolve.New(experiment.Registry(), resolve.Options{
			Name:   "nestargs resolve --",
			Output: cmd.OutOrStdout(),
			Logger: log,
		})

		cfg, err := r.Resolve(args)
		if err != nil {
			exitCode = reportError(cmd.ErrOrStderr(), err)
			return nil
		}

		if flagSave != "" {
			if err := config.Save(flagSave, cfg, flagAll); err != nil {
				exitCode = reportError(cmd.ErrOrStderr(), err)
				return nil
			}
			log.Info("configuration saved", "path", flagSave, "include_empty", flagAll)
		}

		tree := cfg.ToMap()
		if !flagNoRedact {
			tree = redact.Tree(tree, redact.DefaultKeyPatterns)
		}
		if err := writeTree(cmd.OutOrStdout(), tree, flagFormat, flagOut); err != nil {
			exitCode = reportError(cmd.ErrOrStderr(), err)
		}
		return nil
	},
}

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "List every experiment flag by group",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := resolve.New(experiment.Registry(), resolve.Options{Name: "nestargs resolve --"})
		text, err := r.Usage()
		if err != nil {
			exitCode = reportError(cmd.ErrOrStderr(), err)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

// writeTree writes tree to outPath, or to w when outPath is empty.
func writeTree(w io.Writer, tree map[string]any, format, outPath string) error {
	if outPath != "" {
		return output.WriteTree(tree, format, outPath)
	}
	writer, err := output.GetWriter(format)
	if err != nil {
		return err
	}
	return writer.Write(w, tree)
}

func init() {
	resolveCmd.Flags().StringVar(&flagFormat, "format", "yaml", "Output format: yaml, json, text")
	resolveCmd.Flags().StringVar(&flagOut, "out", "", "Write output to file instead of stdout")
	resolveCmd.Flags().StringVar(&flagSave, "save", "", "Save the resolved configuration as a config file")
	resolveCmd.Flags().BoolVar(&flagAll, "all", false, "Keep unset and empty values when saving")
	resolveCmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Print secret-looking values unmasked")
}
