package specparse

import (
	"strings"

	"github.com/dshills/specparse/pkg/flagspec"
	"github.com/dshills/specparse/pkg/mode"
	"github.com/dshills/specparse/pkg/override"
	"github.com/dshills/specparse/pkg/specerr"
)

// invocation is a command line split into its parts. Building one reads no
// files.
type invocation struct {
	globals    *flagspec.Result
	configPath string
	overrides  []string
	mode       *mode.Mode
	modeArgs   []string
}

func (p *Parser) split(args []string) (*invocation, error) {
	lead, err := p.globals.Parse(p.name, args, false)
	if err != nil {
		return nil, err
	}
	rest := lead.Args
	if len(rest) == 0 {
		return nil, &specerr.Error{Kind: specerr.ErrUsage, Detail: "missing config path"}
	}

	inv := &invocation{globals: lead, configPath: rest[0]}
	rest = rest[1:]

	for len(rest) > 0 {
		tok := rest[0]
		if m, ok := p.modes.Lookup(tok); ok {
			inv.mode = m
			inv.modeArgs = rest[1:]
			return inv, nil
		}
		if !override.Match(tok) {
			break
		}
		inv.overrides = append(inv.overrides, tok)
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return inv, nil
	}

	// Global flags may also trail the overrides, ahead of any mode name.
	if strings.HasPrefix(rest[0], "-") && rest[0] != "-" {
		trail, err := p.globals.Parse(p.name, rest, false)
		if err != nil {
			return nil, err
		}
		inv.globals = overlay(inv.globals, trail)
		rest = trail.Args
		if len(rest) == 0 {
			return inv, nil
		}
		if m, ok := p.modes.Lookup(rest[0]); ok {
			inv.mode = m
			inv.modeArgs = rest[1:]
			return inv, nil
		}
	}

	return nil, p.unexpected(rest[0])
}

func (p *Parser) unexpected(tok string) error {
	if p.modes.Len() > 0 {
		return p.modes.UnknownMode(tok)
	}
	if _, err := override.Parse(tok); err != nil {
		return err
	}
	return &specerr.Error{Kind: specerr.ErrMalformedOverride, Token: tok, Detail: "override after flags"}
}

// overlay combines two parses of the same flags; values set in top win.
func overlay(base, top *flagspec.Result) *flagspec.Result {
	out := &flagspec.Result{
		Values:  make(map[string]any, len(base.Values)),
		Changed: make(map[string]bool),
		Args:    top.Args,
	}
	for k, v := range base.Values {
		out.Values[k] = v
		if base.Changed[k] {
			out.Changed[k] = true
		}
	}
	for k, v := range top.Values {
		if top.Changed[k] {
			out.Values[k] = v
			out.Changed[k] = true
		}
	}
	return out
}
