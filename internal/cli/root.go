package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dshills/nestargs/internal/registry"
	"github.com/dshills/nestargs/internal/resolve"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitUsageError   = 2
	ExitConfigError  = 3
	ExitRuntimeError = 4
)

var (
	flagLogLevel  string
	flagLogFormat string
)

var rootCmd = &cobra.Command{
	Use:   "nestargs",
	Short: "Layered experiment argument resolution",
	Long: "Nestargs merges flag defaults, a YAML config file and command-line overrides into one " +
		"grouped configuration, and can save the result as a new config file.",
}

// Run executes the root command and returns an exit code.
func Run() int {
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

func execute(args []string, stdout, stderr io.Writer) int {
	exitCode = ExitSuccess
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print nestargs version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "nestargs version %s\n", version)
	},
}

// reportError prints err and returns the exit code for it.
func reportError(w io.Writer, err error) int {
	var (
		usageErr *resolve.UsageError
		valueErr *resolve.ValueError
		dupErr   *registry.DuplicateFlagError
		declErr  *registry.DeclarationError
	)
	switch {
	case errors.Is(err, resolve.ErrHelp):
		return ExitSuccess
	case errors.As(err, &usageErr):
		fmt.Fprintf(w, "Error: %v\n%s", usageErr, usageErr.Usage)
		return ExitUsageError
	case errors.As(err, &valueErr), errors.As(err, &dupErr), errors.As(err, &declErr):
		fmt.Fprintf(w, "Error: %v\n", err)
		return ExitConfigError
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
		return ExitRuntimeError
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(flagsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
