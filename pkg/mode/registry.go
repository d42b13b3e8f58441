package mode

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dshills/specparse/internal/logging"
	"github.com/dshills/specparse/pkg/flagspec"
	"github.com/dshills/specparse/pkg/specerr"
)

// Mode is a named sub-command with its own flags and an optional callback.
type Mode struct {
	name     string
	summary  string
	flags    *flagspec.Spec
	callback Callback
}

// Name returns the mode name.
func (m *Mode) Name() string { return m.name }

// Summary returns the one-line help text.
func (m *Mode) Summary() string { return m.summary }

// Flags returns the mode's flag declarations. Declare flags on it right
// after Add; the parser reads it on every parse.
func (m *Mode) Flags() *flagspec.Spec { return m.flags }

// Callback returns the callback, nil when the mode has none.
func (m *Mode) Callback() Callback { return m.callback }

// Option customises a Mode at registration.
type Option func(*Mode)

// WithSummary sets the help text shown in usage output.
func WithSummary(s string) Option {
	return func(m *Mode) {
		m.summary = s
	}
}

// Registry holds modes in registration order.
type Registry struct {
	modes  []*Mode
	index  map[string]*Mode
	logger *slog.Logger
}

// RegistryOption customises a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for dispatch.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logging.OrNop(l)
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		index:  make(map[string]*Mode),
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add registers a mode. cb may be nil.
func (r *Registry) Add(name string, cb Callback, opts ...Option) (*Mode, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	if _, dup := r.index[name]; dup {
		return nil, &specerr.Error{Kind: specerr.ErrDuplicateMode, Key: name}
	}

	m := &Mode{name: name, flags: flagspec.New(), callback: cb}
	for _, opt := range opts {
		opt(m)
	}
	r.modes = append(r.modes, m)
	r.index[name] = m
	return m, nil
}

func validName(name string) error {
	switch {
	case name == "":
		return &specerr.Error{Kind: specerr.ErrUsage, Detail: "mode name is empty"}
	case strings.HasPrefix(name, "-"):
		return &specerr.Error{Kind: specerr.ErrUsage, Key: name, Detail: "mode name must not start with '-'"}
	case strings.ContainsAny(name, "= \t\n"):
		return &specerr.Error{Kind: specerr.ErrUsage, Key: name, Detail: "mode name must not contain '=' or whitespace"}
	}
	return nil
}

// Lookup returns the mode registered under name.
func (r *Registry) Lookup(name string) (*Mode, bool) {
	m, ok := r.index[name]
	return m, ok
}

// Names returns mode names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.modes))
	for i, m := range r.modes {
		names[i] = m.name
	}
	return names
}

// Modes returns the registered modes in order.
func (r *Registry) Modes() []*Mode {
	out := make([]*Mode, len(r.modes))
	copy(out, r.modes)
	return out
}

// Len returns the number of registered modes.
func (r *Registry) Len() int {
	return len(r.modes)
}

// Dispatch invokes the callback of the named mode with ns. A mode without a
// callback is a no-op.
func (r *Registry) Dispatch(ctx context.Context, name string, ns map[string]any) error {
	m, ok := r.index[name]
	if !ok {
		return r.UnknownMode(name)
	}
	if m.callback == nil {
		r.logger.Debug("mode has no callback", "mode", name)
		return nil
	}
	r.logger.Info("dispatching mode", "mode", name)
	return m.callback.Invoke(contextWithLogger(ctx, r.logger), ns)
}

// Invoke runs cb with the registry's logger attached, for callbacks that
// belong to no mode.
func (r *Registry) Invoke(ctx context.Context, cb Callback, ns map[string]any) error {
	if cb == nil {
		return nil
	}
	r.logger.Info("dispatching default callback")
	return cb.Invoke(contextWithLogger(ctx, r.logger), ns)
}

// UnknownMode builds the error reported for an unregistered mode name.
func (r *Registry) UnknownMode(name string) error {
	detail := "no modes registered"
	if len(r.modes) > 0 {
		detail = "choose from " + strings.Join(r.Names(), ", ")
	}
	return &specerr.Error{Kind: specerr.ErrUnknownMode, Key: name, Detail: detail}
}

type loggerKey struct{}

func contextWithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func loggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.Nop()
}
