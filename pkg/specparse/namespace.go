package specparse

import (
	"github.com/dshills/specparse/pkg/tree"
)

// Reserved keys of the namespace.
const (
	CmdArgsKey    = "cmd_args"
	ConfigPathKey = "config_path"
	ModeKey       = "mode"
	OverridesKey  = "overrides"
)

// Namespace is the merged configuration of one invocation.
type Namespace map[string]any

// CmdArgs returns the reserved invocation record.
func (ns Namespace) CmdArgs() map[string]any {
	m, _ := ns[CmdArgsKey].(map[string]any)
	return m
}

// ConfigPath returns the config path given on the command line.
func (ns Namespace) ConfigPath() string {
	s, _ := ns.CmdArgs()[ConfigPathKey].(string)
	return s
}

// Mode returns the selected mode, if any.
func (ns Namespace) Mode() (string, bool) {
	s, ok := ns.CmdArgs()[ModeKey].(string)
	return s, ok
}

// Overrides returns the raw override tokens in command-line order.
func (ns Namespace) Overrides() []string {
	raw, _ := ns.CmdArgs()[OverridesKey].([]any)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Lookup reads the value at a dotted path such as "model.lr".
func (ns Namespace) Lookup(dotted string) (any, bool) {
	return tree.Lookup(ns, tree.SplitPath(dotted))
}

// Config returns a copy of the namespace without cmd_args.
func (ns Namespace) Config() map[string]any {
	out := tree.Clone(ns)
	delete(out, CmdArgsKey)
	return out
}

func newCmdArgs(configPath string, modeName string, overrides []string) map[string]any {
	raw := make([]any, len(overrides))
	for i, o := range overrides {
		raw[i] = o
	}
	var m any
	if modeName != "" {
		m = modeName
	}
	return map[string]any{
		ConfigPathKey: configPath,
		ModeKey:       m,
		OverridesKey:  raw,
	}
}
