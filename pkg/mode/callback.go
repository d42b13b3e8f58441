package mode

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/specparse/pkg/specerr"
	"github.com/dshills/specparse/pkg/tree"
)

// Callback receives the final namespace of a parse.
type Callback interface {
	Invoke(ctx context.Context, ns map[string]any) error
}

// CallbackFunc adapts a plain function to Callback. It receives the whole
// namespace without binding.
type CallbackFunc func(ctx context.Context, ns map[string]any) error

// Invoke calls f.
func (f CallbackFunc) Invoke(ctx context.Context, ns map[string]any) error {
	return f(ctx, ns)
}

// Param is one named parameter of a Signature.
type Param struct {
	Name     string
	Default  any
	Optional bool
}

// Signature lists the namespace keys a Direct callback binds.
type Signature struct {
	Params []Param

	// Rest collects the namespace keys that match no parameter into
	// Inputs.Rest. Without it those keys are dropped.
	Rest bool
}

// Func is the function behind a Direct callback.
type Func func(ctx context.Context, in Inputs) error

// Direct returns a Callback that binds the namespace to sig and calls fn.
func Direct(sig Signature, fn Func) Callback {
	params := make([]Param, len(sig.Params))
	copy(params, sig.Params)
	return &direct{sig: Signature{Params: params, Rest: sig.Rest}, fn: fn}
}

type direct struct {
	sig Signature
	fn  Func
}

func (d *direct) Invoke(ctx context.Context, ns map[string]any) error {
	in, err := Bind(d.sig, ns)
	if err != nil {
		return err
	}
	if dropped := in.dropped; len(dropped) > 0 {
		loggerFrom(ctx).Debug("namespace keys not bound to callback", "keys", dropped)
	}
	return d.fn(ctx, in)
}

// Bind matches ns against sig. Every required parameter missing from ns is
// listed in a single specerr.ErrCallbackArity error.
func Bind(sig Signature, ns map[string]any) (Inputs, error) {
	in := Inputs{Args: make(map[string]any, len(sig.Params))}
	declared := make(map[string]bool, len(sig.Params))

	var missing []string
	for _, p := range sig.Params {
		declared[p.Name] = true
		if v, ok := ns[p.Name]; ok {
			in.Args[p.Name] = v
			continue
		}
		if p.Optional {
			in.Args[p.Name] = p.Default
			continue
		}
		missing = append(missing, p.Name)
	}
	if len(missing) > 0 {
		return Inputs{}, &specerr.Error{
			Kind:   specerr.ErrCallbackArity,
			Detail: "missing parameters: " + strings.Join(missing, ", "),
		}
	}

	for _, k := range tree.SortedKeys(ns) {
		if declared[k] {
			continue
		}
		if sig.Rest {
			if in.Rest == nil {
				in.Rest = make(map[string]any)
			}
			in.Rest[k] = ns[k]
		} else {
			in.dropped = append(in.dropped, k)
		}
	}
	return in, nil
}

// Inputs are the values bound for one invocation.
type Inputs struct {
	// Args holds one entry per declared parameter.
	Args map[string]any

	// Rest holds unmatched namespace keys when the signature asks for them.
	Rest map[string]any

	dropped []string
}

// Get returns the bound value of a parameter or rest key.
func (in Inputs) Get(name string) (any, bool) {
	if v, ok := in.Args[name]; ok {
		return v, true
	}
	v, ok := in.Rest[name]
	return v, ok
}

// String returns the value of name formatted as a string, "" when absent.
func (in Inputs) String(name string) string {
	v, ok := in.Get(name)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns the value of name when it holds an integer.
func (in Inputs) Int(name string) (int, bool) {
	v, _ := in.Get(name)
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	}
	return 0, false
}

// Map returns the value of name when it holds a mapping.
func (in Inputs) Map(name string) (map[string]any, bool) {
	v, _ := in.Get(name)
	m, ok := v.(map[string]any)
	return m, ok
}

// Names returns the bound parameter names, sorted.
func (in Inputs) Names() []string {
	names := make([]string, 0, len(in.Args))
	for k := range in.Args {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Decode copies Args and Rest into out, a pointer to a struct or map, using
// its yaml struct tags.
func (in Inputs) Decode(out any) error {
	all := make(map[string]any, len(in.Args)+len(in.Rest))
	for k, v := range in.Rest {
		all[k] = v
	}
	for k, v := range in.Args {
		all[k] = v
	}
	data, err := yaml.Marshal(all)
	if err != nil {
		return fmt.Errorf("encoding inputs: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding inputs: %w", err)
	}
	return nil
}
