package flagspec

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dshills/specparse/pkg/specerr"
)

// Kind is the value type of a flag.
type Kind string

// Supported flag kinds.
const (
	KindString  Kind = "string"
	KindBool    Kind = "bool"
	KindInt     Kind = "int"
	KindFloat   Kind = "float"
	KindStrings Kind = "strings"
)

// Flag declares one command-line option.
type Flag struct {
	Name      string
	Shorthand string
	Usage     string
	Kind      Kind

	// Default must match Kind: string, bool, int, float64 or []string.
	// A nil Default means the zero value of the kind.
	Default any
}

// Spec is an ordered set of flag declarations.
type Spec struct {
	flags []Flag
	index map[string]int
}

// New returns an empty Spec.
func New() *Spec {
	return &Spec{index: make(map[string]int)}
}

// Add declares a flag. Like pflag, it panics when the name or shorthand is
// already taken or the default does not match the kind; both are programming
// errors in the declaring code.
func (s *Spec) Add(f Flag) *Spec {
	if f.Name == "" {
		panic("flagspec: flag with empty name")
	}
	if _, dup := s.index[f.Name]; dup {
		panic(fmt.Sprintf("flagspec: flag redefined: %s", f.Name))
	}
	if f.Shorthand != "" {
		if len(f.Shorthand) != 1 {
			panic(fmt.Sprintf("flagspec: shorthand %q for %s is more than one character", f.Shorthand, f.Name))
		}
		for _, existing := range s.flags {
			if existing.Shorthand == f.Shorthand {
				panic(fmt.Sprintf("flagspec: shorthand -%s redefined by %s", f.Shorthand, f.Name))
			}
		}
	}
	def, err := checkDefault(f.Kind, f.Default)
	if err != nil {
		panic(fmt.Sprintf("flagspec: %s: %v", f.Name, err))
	}
	f.Default = def

	if s.index == nil {
		s.index = make(map[string]int)
	}
	s.index[f.Name] = len(s.flags)
	s.flags = append(s.flags, f)
	return s
}

// String declares a string flag.
func (s *Spec) String(name, def, usage string) *Spec {
	return s.Add(Flag{Name: name, Kind: KindString, Default: def, Usage: usage})
}

// Bool declares a boolean flag.
func (s *Spec) Bool(name string, def bool, usage string) *Spec {
	return s.Add(Flag{Name: name, Kind: KindBool, Default: def, Usage: usage})
}

// Int declares an integer flag.
func (s *Spec) Int(name string, def int, usage string) *Spec {
	return s.Add(Flag{Name: name, Kind: KindInt, Default: def, Usage: usage})
}

// Float64 declares a floating-point flag.
func (s *Spec) Float64(name string, def float64, usage string) *Spec {
	return s.Add(Flag{Name: name, Kind: KindFloat, Default: def, Usage: usage})
}

// StringSlice declares a repeatable, comma-separated string list flag.
func (s *Spec) StringSlice(name string, def []string, usage string) *Spec {
	return s.Add(Flag{Name: name, Kind: KindStrings, Default: def, Usage: usage})
}

// Flags returns the declarations in order.
func (s *Spec) Flags() []Flag {
	out := make([]Flag, len(s.flags))
	copy(out, s.flags)
	return out
}

// Lookup returns the declaration for name.
func (s *Spec) Lookup(name string) (Flag, bool) {
	i, ok := s.index[name]
	if !ok {
		return Flag{}, false
	}
	return s.flags[i], true
}

// Len returns the number of declared flags.
func (s *Spec) Len() int {
	return len(s.flags)
}

// Key maps a flag name to its configuration key.
func Key(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// FlagSet builds a fresh pflag.FlagSet holding the declarations.
func (s *Spec) FlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	for _, f := range s.flags {
		switch f.Kind {
		case KindString:
			fs.StringP(f.Name, f.Shorthand, f.Default.(string), f.Usage)
		case KindBool:
			fs.BoolP(f.Name, f.Shorthand, f.Default.(bool), f.Usage)
		case KindInt:
			fs.IntP(f.Name, f.Shorthand, f.Default.(int), f.Usage)
		case KindFloat:
			fs.Float64P(f.Name, f.Shorthand, f.Default.(float64), f.Usage)
		case KindStrings:
			fs.StringSliceP(f.Name, f.Shorthand, f.Default.([]string), f.Usage)
		}
	}
	return fs
}

// Usage renders the flag help block.
func (s *Spec) Usage() string {
	return s.FlagSet("usage").FlagUsages()
}

func checkDefault(kind Kind, def any) (any, error) {
	switch kind {
	case KindString:
		if def == nil {
			return "", nil
		}
		if v, ok := def.(string); ok {
			return v, nil
		}
	case KindBool:
		if def == nil {
			return false, nil
		}
		if v, ok := def.(bool); ok {
			return v, nil
		}
	case KindInt:
		if def == nil {
			return 0, nil
		}
		if v, ok := def.(int); ok {
			return v, nil
		}
	case KindFloat:
		if def == nil {
			return 0.0, nil
		}
		switch v := def.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		}
	case KindStrings:
		if def == nil {
			return []string{}, nil
		}
		if v, ok := def.([]string); ok {
			return append([]string(nil), v...), nil
		}
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	return nil, fmt.Errorf("default %v (%T) does not match kind %s", def, def, kind)
}

// Result is the outcome of one parse.
type Result struct {
	// Values holds every declared flag, set or defaulted, keyed by Key.
	Values map[string]any

	// Changed records which keys were set explicitly on the command line.
	Changed map[string]bool

	// Args holds the positional arguments left over.
	Args []string
}

// Explicit returns only the values set on the command line.
func (r *Result) Explicit() map[string]any {
	out := make(map[string]any)
	for k, v := range r.Values {
		if r.Changed[k] {
			out[k] = v
		}
	}
	return out
}

// Defaults returns only the values that were not set on the command line.
func (r *Result) Defaults() map[string]any {
	out := make(map[string]any)
	for k, v := range r.Values {
		if !r.Changed[k] {
			out[k] = v
		}
	}
	return out
}

// Parse parses args against a fresh FlagSet. With interspersed false,
// parsing stops at the first positional argument and everything from there on
// is returned in Result.Args. Errors, including a help request
// (pflag.ErrHelp), are reported as specerr.ErrUsage.
func (s *Spec) Parse(name string, args []string, interspersed bool) (*Result, error) {
	fs := s.FlagSet(name)
	fs.SetInterspersed(interspersed)
	if err := fs.Parse(args); err != nil {
		return nil, &specerr.Error{Kind: specerr.ErrUsage, Key: name, Err: err}
	}

	res := &Result{
		Values:  make(map[string]any, len(s.flags)),
		Changed: make(map[string]bool),
		Args:    fs.Args(),
	}
	for _, f := range s.flags {
		v, err := value(fs, f)
		if err != nil {
			return nil, &specerr.Error{Kind: specerr.ErrUsage, Key: name, Token: "--" + f.Name, Err: err}
		}
		key := Key(f.Name)
		res.Values[key] = v
		if fs.Changed(f.Name) {
			res.Changed[key] = true
		}
	}
	return res, nil
}

func value(fs *pflag.FlagSet, f Flag) (any, error) {
	switch f.Kind {
	case KindString:
		return fs.GetString(f.Name)
	case KindBool:
		return fs.GetBool(f.Name)
	case KindInt:
		return fs.GetInt(f.Name)
	case KindFloat:
		return fs.GetFloat64(f.Name)
	case KindStrings:
		items, err := fs.GetStringSlice(f.Name)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = item
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown kind %q", f.Kind)
	}
}
