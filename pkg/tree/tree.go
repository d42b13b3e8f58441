package tree

import (
	"fmt"
	"sort"
	"strings"
)

// Merge returns a new tree with overlay laid over base. For each key of
// overlay, mappings present on both sides are merged recursively; any other
// combination takes the overlay value. Keys only in base are kept. Neither
// input is modified and the result shares no mappings or sequences with them.
func Merge(base, overlay map[string]any) map[string]any {
	merged := Clone(base)
	if merged == nil {
		merged = make(map[string]any, len(overlay))
	}
	for key, value := range overlay {
		if sub, ok := value.(map[string]any); ok {
			if existing, ok := merged[key].(map[string]any); ok {
				merged[key] = Merge(existing, sub)
				continue
			}
		}
		merged[key] = cloneValue(value)
	}
	return merged
}

// Clone deep-copies a tree. Mappings and sequences are copied, scalars are
// shared. Clone(nil) returns nil.
func Clone(t map[string]any) map[string]any {
	if t == nil {
		return nil
	}
	out := make(map[string]any, len(t))
	for k, v := range t {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return Clone(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// Normalize converts a value decoded by a YAML reader into tree form:
// map[any]any becomes map[string]any (keys rendered with fmt.Sprint) and
// nested values are normalized recursively.
func Normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = Normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Normalize(item)
		}
		return out
	default:
		return v
	}
}

// Lookup returns the value at the given key path. The boolean is false when
// a segment is missing or crosses a non-mapping value.
func Lookup(t map[string]any, path []string) (any, bool) {
	if len(path) == 0 {
		return t, t != nil
	}
	var cur any = t
	for _, seg := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// SplitPath splits a dotted key path into its segments.
func SplitPath(dotted string) []string {
	if dotted == "" {
		return nil
	}
	return strings.Split(dotted, ".")
}

// Leaf is a non-mapping value together with its dotted key path.
type Leaf struct {
	Path  string
	Value any
}

// Flatten returns every non-mapping value of t with its dotted path, sorted
// by path. Empty mappings are reported as leaves so they stay visible.
func Flatten(t map[string]any) []Leaf {
	var leaves []Leaf
	flatten(t, "", &leaves)
	sort.Slice(leaves, func(i, j int) bool { return leaves[i].Path < leaves[j].Path })
	return leaves
}

func flatten(t map[string]any, prefix string, leaves *[]Leaf) {
	for k, v := range t {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok && len(sub) > 0 {
			flatten(sub, path, leaves)
			continue
		}
		*leaves = append(*leaves, Leaf{Path: path, Value: v})
	}
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
