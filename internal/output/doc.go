// Package output renders a resolved configuration namespace for display or
// machine consumption.
//
// Three formats are supported:
//   - yaml: block YAML, keys sorted (default)
//   - json: indented JSON, keys sorted
//   - text: one "dotted.path = value" line per leaf
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then call
// [Writer.Write] with an [io.Writer] and the namespace. [WriteDocument]
// handles destination selection.
package output
