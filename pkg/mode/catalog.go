package mode

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dshills/specparse/pkg/specerr"
)

// Loader builds a callback on first use.
type Loader func() (Callback, error)

// Catalog maps locators to loaders.
type Catalog struct {
	mu      sync.RWMutex
	loaders map[string]Loader
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{loaders: make(map[string]Loader)}
}

// DefaultCatalog is the catalog used by Register and Deferred.
var DefaultCatalog = NewCatalog()

// Register adds a loader to DefaultCatalog. It panics on a malformed or
// duplicate locator and is meant to be called from init.
func Register(locator string, l Loader) {
	if err := DefaultCatalog.Register(locator, l); err != nil {
		panic(err)
	}
}

// Register adds a loader under locator.
func (c *Catalog) Register(locator string, l Loader) error {
	if l == nil {
		return &specerr.Error{Kind: specerr.ErrCallbackResolution, Key: locator, Detail: "nil loader"}
	}
	key, err := Canonical(locator)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaders == nil {
		c.loaders = make(map[string]Loader)
	}
	if _, dup := c.loaders[key]; dup {
		return &specerr.Error{Kind: specerr.ErrCallbackResolution, Key: locator, Detail: "locator already registered"}
	}
	c.loaders[key] = l
	return nil
}

// Resolve runs the loader registered under locator.
func (c *Catalog) Resolve(locator string) (Callback, error) {
	key, err := Canonical(locator)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	l, ok := c.loaders[key]
	c.mu.RUnlock()
	if !ok {
		return nil, &specerr.Error{Kind: specerr.ErrCallbackResolution, Key: locator, Detail: "no loader registered"}
	}

	cb, err := l()
	if err != nil {
		return nil, &specerr.Error{Kind: specerr.ErrCallbackResolution, Key: locator, Err: err}
	}
	if cb == nil {
		return nil, &specerr.Error{Kind: specerr.ErrCallbackResolution, Key: locator, Detail: "loader returned no callback"}
	}
	return cb, nil
}

// Locators returns the registered canonical locators, sorted.
func (c *Catalog) Locators() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.loaders))
	for k := range c.loaders {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Canonical normalizes a locator to "module/sub:Symbol". It accepts that
// form, "module.sub:Symbol", and the dotted "module.sub.Symbol", where the
// last dot separates the symbol.
func Canonical(locator string) (string, error) {
	loc := strings.TrimSpace(locator)

	var module, symbol string
	if i := strings.LastIndex(loc, ":"); i >= 0 {
		module, symbol = loc[:i], loc[i+1:]
	} else if i := strings.LastIndex(loc, "."); i >= 0 {
		module, symbol = loc[:i], loc[i+1:]
	} else {
		return "", badLocator(locator, "expected module:symbol or module.symbol")
	}

	module = strings.ReplaceAll(module, ".", "/")
	if module == "" {
		return "", badLocator(locator, "empty module")
	}
	for _, part := range strings.Split(module, "/") {
		if part == "" {
			return "", badLocator(locator, "empty module segment")
		}
	}
	if symbol == "" {
		return "", badLocator(locator, "empty symbol")
	}
	if strings.ContainsAny(symbol, "/:") {
		return "", badLocator(locator, fmt.Sprintf("invalid symbol %q", symbol))
	}
	return module + ":" + symbol, nil
}

func badLocator(locator, detail string) error {
	return &specerr.Error{Kind: specerr.ErrCallbackResolution, Key: locator, Detail: "bad locator: " + detail}
}

// Deferred returns a Callback resolved through DefaultCatalog on first use.
func Deferred(locator string) Callback {
	return DeferredIn(DefaultCatalog, locator)
}

// DeferredIn returns a Callback resolved through c on first use. A
// successful resolution is kept; a failed one is retried on the next Invoke.
func DeferredIn(c *Catalog, locator string) Callback {
	if c == nil {
		c = DefaultCatalog
	}
	return &deferred{catalog: c, locator: locator}
}

type deferred struct {
	catalog *Catalog
	locator string

	mu       sync.Mutex
	resolved Callback
}

func (d *deferred) Invoke(ctx context.Context, ns map[string]any) error {
	cb, err := d.resolve(ctx)
	if err != nil {
		return err
	}
	return cb.Invoke(ctx, ns)
}

func (d *deferred) resolve(ctx context.Context) (Callback, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.resolved != nil {
		return d.resolved, nil
	}
	cb, err := d.catalog.Resolve(d.locator)
	if err != nil {
		return nil, err
	}
	loggerFrom(ctx).Debug("resolved deferred callback", "locator", d.locator)
	d.resolved = cb
	return cb, nil
}

// String returns the locator.
func (d *deferred) String() string {
	return d.locator
}
