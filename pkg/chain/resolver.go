package chain

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/specparse/internal/logging"
	"github.com/dshills/specparse/pkg/specerr"
	"github.com/dshills/specparse/pkg/tree"
)

// ParentKey is the reserved top-level key naming a document's parent.
const ParentKey = "parent"

// Link is one resolved document of a parent chain.
type Link struct {
	// Path is the absolute path of the document.
	Path string

	// Parent is the absolute path of the parent document, empty for the root.
	Parent string

	// Values is the document content with the parent key removed.
	Values map[string]any
}

// Resolver reads configuration files and resolves their parent chains.
// A Resolver holds no per-resolution state and may be reused.
type Resolver struct {
	readFile  func(string) ([]byte, error)
	maxDepth  int
	expandEnv bool
	logger    *slog.Logger
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithReadFile replaces os.ReadFile, mainly for tests.
func WithReadFile(fn func(string) ([]byte, error)) Option {
	return func(r *Resolver) {
		if fn != nil {
			r.readFile = fn
		}
	}
}

// WithMaxDepth limits the number of documents in a chain. Zero, the default,
// means unbounded; only cycles stop resolution then.
func WithMaxDepth(n int) Option {
	return func(r *Resolver) {
		if n >= 0 {
			r.maxDepth = n
		}
	}
}

// WithEnvExpansion toggles $VAR expansion in parent references. Enabled by default.
func WithEnvExpansion(enabled bool) Option {
	return func(r *Resolver) {
		r.expandEnv = enabled
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logging.OrNop(l)
	}
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		readFile:  os.ReadFile,
		expandEnv: true,
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MaxDepth returns the configured chain limit, zero meaning unbounded.
func (r *Resolver) MaxDepth() int {
	return r.maxDepth
}

// Resolve reads the document at path and merges its parent chain, root
// first, into a fresh tree.
func (r *Resolver) Resolve(path string) (map[string]any, error) {
	links, err := r.Chain(path)
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]any)
	for _, link := range links {
		resolved = tree.Merge(resolved, link.Values)
	}
	return resolved, nil
}

// Chain reads the document at path and every ancestor, returning the links
// ordered from the root to the requested document.
func (r *Resolver) Chain(path string) ([]Link, error) {
	visited := make(map[string]int)
	var (
		links   []Link
		current = path
		referer string
	)

	for {
		abs, err := filepath.Abs(current)
		if err != nil {
			return nil, &specerr.Error{Kind: specerr.ErrConfigRead, Path: current, Err: err}
		}

		if idx, seen := visited[abs]; seen {
			return nil, cycleError(links[idx:], abs)
		}
		if r.maxDepth > 0 && len(links) >= r.maxDepth {
			return nil, &specerr.Error{
				Kind:   specerr.ErrChainTooDeep,
				Path:   abs,
				Detail: fmt.Sprintf("limit is %d documents", r.maxDepth),
			}
		}
		visited[abs] = len(links)

		values, parentRef, err := r.load(abs, referer)
		if err != nil {
			return nil, err
		}

		link := Link{Path: abs, Values: values}
		if parentRef != "" {
			link.Parent = r.parentPath(abs, parentRef)
		}
		links = append(links, link)
		r.logger.Debug("loaded config document", "path", abs, "parent", link.Parent)

		if link.Parent == "" {
			break
		}
		referer = abs
		current = link.Parent
	}

	// Collected leaf first; callers merge root first.
	for i, j := 0, len(links)-1; i < j; i, j = i+1, j-1 {
		links[i], links[j] = links[j], links[i]
	}
	return links, nil
}

// load reads and decodes one document. The file is fully read and released
// before returning.
func (r *Resolver) load(abs, referer string) (map[string]any, string, error) {
	data, err := r.readFile(abs)
	if err != nil {
		kind := specerr.ErrConfigRead
		if errors.Is(err, fs.ErrNotExist) {
			kind = specerr.ErrConfigFileNotFound
		}
		e := &specerr.Error{Kind: kind, Path: abs, Err: err}
		if referer != "" {
			e.Detail = "referenced as parent of " + referer
		}
		return nil, "", e
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, "", &specerr.Error{Kind: specerr.ErrConfigParse, Path: abs, Err: err}
	}
	if doc == nil {
		return map[string]any{}, "", nil
	}

	values, ok := tree.Normalize(doc).(map[string]any)
	if !ok {
		return nil, "", &specerr.Error{
			Kind:   specerr.ErrConfigParse,
			Path:   abs,
			Detail: fmt.Sprintf("top level must be a mapping, got %T", doc),
		}
	}

	raw, has := values[ParentKey]
	delete(values, ParentKey)
	if !has || raw == nil {
		return values, "", nil
	}
	parent, ok := raw.(string)
	if !ok || strings.TrimSpace(parent) == "" {
		return nil, "", &specerr.Error{
			Kind:   specerr.ErrConfigParse,
			Path:   abs,
			Key:    ParentKey,
			Detail: fmt.Sprintf("must be a non-empty path, got %v", raw),
		}
	}
	return values, parent, nil
}

func (r *Resolver) parentPath(referer, ref string) string {
	if r.expandEnv {
		ref = os.ExpandEnv(ref)
	}
	if !filepath.IsAbs(ref) {
		ref = filepath.Join(filepath.Dir(referer), ref)
	}
	return filepath.Clean(ref)
}

func cycleError(loop []Link, back string) error {
	names := make([]string, 0, len(loop)+1)
	for _, l := range loop {
		names = append(names, l.Path)
	}
	names = append(names, back)
	return &specerr.Error{
		Kind:   specerr.ErrCyclicInheritance,
		Path:   back,
		Detail: strings.Join(names, " -> "),
	}
}
