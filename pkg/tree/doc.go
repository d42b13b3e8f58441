// Package tree operates on configuration trees: nested map[string]any values
// holding scalars, []any sequences, and further mappings.
//
// [Merge] overlays one tree on another, recursing only where both sides hold
// a mapping. Everything else, sequences included, is replaced wholesale by
// the overlay. Merge never mutates its inputs, so a chain of documents is
// resolved as a left fold: Merge(Merge(root, middle), leaf).
package tree
