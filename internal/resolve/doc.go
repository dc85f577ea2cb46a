// Package resolve merges flag defaults, a YAML configuration file and the
// command line into one nested configuration.
//
// Precedence, lowest to highest:
//  1. Defaults declared in each [registry.FlagSpec]
//  2. Config file values (top-level keys for main flags, group mappings for
//     the other groups)
//  3. Flags given explicitly on the command line
//
// Resolution runs in passes. A flat pass binds every flag of every group to
// one flag set and validates the command line against that full surface, so
// --help lists everything and unknown flags are reported once. A preliminary
// pass reads the config file flag from its default and the command line
// only; a config file never redirects to another file, though the value it
// stores for a preliminary flag is kept in the result so a saved
// configuration reloads unchanged. Then each group gets a fresh flag set,
// seeded with its config file values as defaults, and receives the explicit
// command-line assignments. The main and preliminary groups share one flat
// namespace; every other group becomes a nested mapping in the [Config].
//
// Nothing is shared between calls: each resolution builds new flag sets from
// new specs.
package resolve
