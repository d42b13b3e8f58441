package specparse

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dshills/specparse/internal/logging"
	"github.com/dshills/specparse/pkg/chain"
	"github.com/dshills/specparse/pkg/flagspec"
	"github.com/dshills/specparse/pkg/mode"
	"github.com/dshills/specparse/pkg/override"
	"github.com/dshills/specparse/pkg/specerr"
)

// Parser resolves command lines into namespaces. Declarations (flags, modes)
// are made once at setup; ParseArgs and ParseAndRun keep all per-call state
// local and may be called repeatedly.
type Parser struct {
	name     string
	resolver *chain.Resolver
	maxDepth int
	logger   *slog.Logger
	globals  *flagspec.Spec
	modes    *mode.Registry
	callback mode.Callback
}

// Option customises a Parser.
type Option func(*Parser)

// WithResolver sets the chain resolver. WithMaxDepth has no effect when a
// resolver is supplied.
func WithResolver(r *chain.Resolver) Option {
	return func(p *Parser) {
		p.resolver = r
	}
}

// WithMaxDepth bounds the parent chain length of the default resolver.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		p.maxDepth = n
	}
}

// WithLogger sets the logger shared by the parser, its resolver and its
// modes.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logging.OrNop(l)
	}
}

// WithName sets the program name shown in usage output.
func WithName(name string) Option {
	return func(p *Parser) {
		p.name = name
	}
}

// WithCallback sets the callback ParseAndRun invokes when no mode is selected.
func WithCallback(cb mode.Callback) Option {
	return func(p *Parser) {
		p.callback = cb
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{
		name:    filepath.Base(os.Args[0]),
		logger:  logging.Nop(),
		globals: flagspec.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.resolver == nil {
		p.resolver = chain.New(chain.WithMaxDepth(p.maxDepth), chain.WithLogger(p.logger))
	}
	p.modes = mode.NewRegistry(mode.WithLogger(p.logger))
	return p
}

// Name returns the program name.
func (p *Parser) Name() string {
	return p.name
}

// Flags returns the global flag declarations.
func (p *Parser) Flags() *flagspec.Spec {
	return p.globals
}

// AddMode registers a mode. Declare its flags on the returned Mode.
func (p *Parser) AddMode(name string, cb mode.Callback, opts ...mode.Option) (*mode.Mode, error) {
	return p.modes.Add(name, cb, opts...)
}

// Modes returns the mode registry.
func (p *Parser) Modes() *mode.Registry {
	return p.modes
}

// ParseArgs resolves args into a namespace without dispatching.
func (p *Parser) ParseArgs(args []string) (Namespace, error) {
	inv, err := p.split(args)
	if err != nil {
		return nil, err
	}
	return p.build(inv)
}

// ParseAndRun resolves args and invokes the selected mode's callback, or the
// parser callback when no mode was given. The namespace is returned even
// when the callback fails.
func (p *Parser) ParseAndRun(ctx context.Context, args []string) (Namespace, error) {
	inv, err := p.split(args)
	if err != nil {
		return nil, err
	}
	ns, err := p.build(inv)
	if err != nil {
		return nil, err
	}

	if inv.mode != nil {
		return ns, p.modes.Dispatch(ctx, inv.mode.Name(), ns)
	}
	return ns, p.modes.Invoke(ctx, p.callback, ns)
}

func (p *Parser) build(inv *invocation) (Namespace, error) {
	resolved, err := p.resolver.Resolve(inv.configPath)
	if err != nil {
		return nil, err
	}

	toks, err := override.ParseAll(inv.overrides)
	if err != nil {
		return nil, err
	}
	for _, tok := range toks {
		if err := override.Apply(resolved, tok); err != nil {
			return nil, err
		}
		p.logger.Debug("applied override", "key", tok.Key(), "value", tok.Value)
	}
	if _, taken := resolved[CmdArgsKey]; taken {
		return nil, &specerr.Error{
			Kind:   specerr.ErrReservedKey,
			Path:   inv.configPath,
			Key:    CmdArgsKey,
			Detail: "set by the configuration or an override",
		}
	}

	if err := p.mergeFlags(resolved, inv.globals); err != nil {
		return nil, err
	}

	modeName := ""
	if inv.mode != nil {
		modeName = inv.mode.Name()
		res, err := inv.mode.Flags().Parse(modeName, inv.modeArgs, true)
		if err != nil {
			return nil, err
		}
		if len(res.Args) > 0 {
			return nil, &specerr.Error{
				Kind:   specerr.ErrUsage,
				Token:  res.Args[0],
				Key:    modeName,
				Detail: "unexpected argument after mode",
			}
		}
		if err := p.mergeFlags(resolved, res); err != nil {
			return nil, err
		}
		p.logger.Debug("selected mode", "mode", modeName)
	}

	ns := Namespace(resolved)
	ns[CmdArgsKey] = newCmdArgs(inv.configPath, modeName, inv.overrides)
	return ns, nil
}

// mergeFlags lays parsed flags over t: explicit values replace, defaults
// only fill absent keys.
func (p *Parser) mergeFlags(t map[string]any, res *flagspec.Result) error {
	for key, v := range res.Values {
		if key == CmdArgsKey {
			return &specerr.Error{Kind: specerr.ErrReservedKey, Key: key, Detail: "declared as a flag"}
		}
		if res.Changed[key] {
			t[key] = v
			p.logger.Debug("flag set", "key", key, "value", v)
			continue
		}
		if _, exists := t[key]; !exists {
			t[key] = v
		}
	}
	return nil
}
