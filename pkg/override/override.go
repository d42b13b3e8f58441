package override

import (
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/dshills/specparse/pkg/specerr"
	"github.com/dshills/specparse/pkg/tree"
)

// Token is a parsed path=value assignment.
type Token struct {
	// Path holds the key segments, outermost first.
	Path []string

	// Value is the literal text after the first unescaped '='.
	Value string

	// Raw is the token as given on the command line.
	Raw string
}

// Key returns the dotted form of the path.
func (t Token) Key() string {
	return strings.Join(t.Path, ".")
}

// Coerced returns the typed value of the token.
func (t Token) Coerced() any {
	return Coerce(t.Value)
}

// Parse parses a single path=value token.
func Parse(token string) (Token, error) {
	var (
		path    []string
		seg     strings.Builder
		valid   = true
		escaped bool
		started bool
		eq      = -1
	)

	endSegment := func() {
		if !started {
			valid = false
		}
		path = append(path, seg.String())
		seg.Reset()
		started = false
	}

scan:
	for i, r := range token {
		if escaped {
			seg.WriteRune(r)
			started = true
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '=':
			eq = i
			break scan
		case '.':
			endSegment()
		default:
			if !identRune(r, started) {
				valid = false
			}
			seg.WriteRune(r)
			started = true
		}
	}

	if eq < 0 {
		return Token{}, malformed(token, "missing '='")
	}
	if escaped {
		valid = false
	}
	if eq == 0 {
		return Token{}, malformed(token, "empty path")
	}
	endSegment()
	if !valid {
		return Token{}, malformed(token, "path segments must be non-empty identifiers")
	}

	return Token{Path: path, Value: token[eq+1:], Raw: token}, nil
}

// ParseAll parses tokens in order, stopping at the first malformed one.
func ParseAll(tokens []string) ([]Token, error) {
	out := make([]Token, 0, len(tokens))
	for _, raw := range tokens {
		tok, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
	return out, nil
}

// Match reports whether token has the shape of an override.
func Match(token string) bool {
	_, err := Parse(token)
	return err == nil
}

func identRune(r rune, started bool) bool {
	if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	return r == '-' && started
}

func malformed(token, detail string) error {
	return &specerr.Error{Kind: specerr.ErrMalformedOverride, Token: token, Detail: detail}
}

// Coerce types a literal the way a YAML reader would type the same scalar.
// Boolean literals are matched case-insensitively. Flow sequences and flow
// mappings are honoured only when the literal starts with '[' or '{';
// anything else that does not decode to a scalar stays a string.
func Coerce(literal string) any {
	switch {
	case strings.EqualFold(literal, "true"):
		return true
	case strings.EqualFold(literal, "false"):
		return false
	}

	var v any
	if err := yaml.Unmarshal([]byte(literal), &v); err != nil {
		return literal
	}

	trimmed := strings.TrimSpace(literal)
	switch v.(type) {
	case map[string]any, map[any]any:
		if !strings.HasPrefix(trimmed, "{") {
			return literal
		}
	case []any:
		if !strings.HasPrefix(trimmed, "[") {
			return literal
		}
	}
	return tree.Normalize(v)
}

// Apply assigns the token's value inside t, creating intermediate mappings
// for missing or null segments. It fails with specerr.ErrOverridePathConflict
// when an intermediate segment holds any other non-mapping value.
func Apply(t map[string]any, tok Token) error {
	if t == nil {
		return fmt.Errorf("applying override %q: nil tree", tok.Raw)
	}
	if len(tok.Path) == 0 {
		return malformed(tok.Raw, "empty path")
	}

	cur := t
	for i, seg := range tok.Path[:len(tok.Path)-1] {
		next, exists := cur[seg]
		if !exists || next == nil {
			created := make(map[string]any)
			cur[seg] = created
			cur = created
			continue
		}
		m, ok := next.(map[string]any)
		if !ok {
			return &specerr.Error{
				Kind:   specerr.ErrOverridePathConflict,
				Token:  tok.Raw,
				Key:    strings.Join(tok.Path[:i+1], "."),
				Detail: fmt.Sprintf("holds %s, not a mapping", describe(next)),
			}
		}
		cur = m
	}

	cur[tok.Path[len(tok.Path)-1]] = tok.Coerced()
	return nil
}

// ApplyAll applies tokens strictly in order; each assignment is complete
// before the next starts, so later tokens may address paths created by
// earlier ones.
func ApplyAll(t map[string]any, toks []Token) error {
	for _, tok := range toks {
		if err := Apply(t, tok); err != nil {
			return err
		}
	}
	return nil
}

func describe(v any) string {
	switch val := v.(type) {
	case []any:
		return "a sequence"
	case string:
		return fmt.Sprintf("the string %q", val)
	default:
		return fmt.Sprintf("the %T value %v", v, v)
	}
}
