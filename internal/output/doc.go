// Package output formats a resolved configuration for display or machine
// consumption.
//
// Three formats are supported:
//   - yaml: the config file format; the output can be fed back as a config file (default)
//   - json: the same tree as JSON, unset values as null
//   - text: aligned listing, top-level fields first, then one section per group
//
// Use [GetWriter] to obtain a [Writer] for a format string, then call
// [Writer.Write] with an [io.Writer] and the tree. [WriteTree] is a
// convenience helper that handles destination selection.
package output
