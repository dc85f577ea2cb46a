// Package cli wires together the Cobra command tree for the nestargs binary.
//
// It defines the root command and all subcommands (resolve, flags, config,
// version), builds the logger from the persistent flags, runs the resolver
// over the reference experiment groups, and maps errors to deterministic
// exit codes.
package cli
