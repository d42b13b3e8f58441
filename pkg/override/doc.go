// Package override parses command-line assignments of the form
// path.to.key=value and applies them to a configuration tree.
//
// The path is split on unescaped dots; a backslash escapes '.', '=' or '\'
// inside a segment. The value is everything after the first unescaped '='
// and is typed with the YAML scalar grammar, so
//
//	learning_rate=1e-5   -> float64(1e-5)
//	layers=2             -> int(2)
//	type=LSTM            -> "LSTM"
//	flag=TRUE            -> true
//	sizes=[64, 128]      -> []any{64, 128}
//
// Applying an override creates missing intermediate mappings but refuses to
// walk through an existing scalar or sequence.
package override
