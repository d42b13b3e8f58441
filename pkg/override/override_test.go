package override

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/specparse/pkg/specerr"
	"github.com/dshills/specparse/pkg/tree"
)

func TestParse(t *testing.T) {
	tests := []struct {
		token     string
		wantPath  []string
		wantValue string
	}{
		{"parameter_a=43", []string{"parameter_a"}, "43"},
		{"network.layers=2", []string{"network", "layers"}, "2"},
		{"a.b.c=x=y", []string{"a", "b", "c"}, "x=y"},
		{"empty=", []string{"empty"}, ""},
		{"dash-ed.key_1=v", []string{"dash-ed", "key_1"}, "v"},
		{"0.1=v", []string{"0", "1"}, "v"},
		{`a\.b=1`, []string{"a.b"}, "1"},
		{`a\=b=1`, []string{"a=b"}, "1"},
		{`a\\b=1`, []string{`a\b`}, "1"},
		{"réseau.couches=3", []string{"réseau", "couches"}, "3"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			tok, err := Parse(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, tok.Path)
			assert.Equal(t, tt.wantValue, tok.Value)
			assert.Equal(t, tt.token, tok.Raw)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tokens := []string{
		"",
		"no_equals",
		"=5",
		".a=1",
		"a.=1",
		"a..b=1",
		"-x=1",
		"--lr=0.1",
		"./conf.yaml",
		"a b=1",
		"path/to=1",
		`trailing\`,
	}

	for _, token := range tokens {
		t.Run(token, func(t *testing.T) {
			_, err := Parse(token)
			require.Error(t, err)
			assert.ErrorIs(t, err, specerr.ErrMalformedOverride)

			var serr *specerr.Error
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, token, serr.Token)
			assert.False(t, Match(token))
		})
	}
}

func TestToken_Key(t *testing.T) {
	tok, err := Parse("a.b.c=1")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", tok.Key())
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		literal string
		want    any
	}{
		{"1e-5", 1e-5},
		{"1e-4", 1e-4},
		{"0.5", 0.5},
		{".5", 0.5},
		{"2", 2},
		{"-7", -7},
		{"LSTM", "LSTM"},
		{"true", true},
		{"True", true},
		{"tRuE", true},
		{"false", false},
		{"FALSE", false},
		{"yes", "yes"},
		{"null", nil},
		{"", nil},
		{"'quoted'", "quoted"},
		{"[64, 128]", []any{64, 128}},
		{"{a: 1, b: [x]}", map[string]any{"a": 1, "b": []any{"x"}}},
		{"key: value", "key: value"},
		{"- item", "- item"},
		{"[1, 2", "[1, 2"},
		{"./models/", "./models/"},
	}

	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Coerce(tt.literal)); diff != "" {
				t.Errorf("Coerce(%q) mismatch (-want +got):\n%s", tt.literal, diff)
			}
		})
	}
}

func TestCoerce_Timestamp(t *testing.T) {
	got := Coerce("2024-03-01")
	ts, ok := got.(time.Time)
	require.True(t, ok, "got %T", got)
	assert.Equal(t, 2024, ts.Year())
}

func TestApply_TypeCoercion(t *testing.T) {
	tr := map[string]any{"learning_rate": 1e-4, "layers": 1, "type": "GRU", "flag": false}

	for _, raw := range []string{"learning_rate=1e-5", "layers=2", "type=LSTM", "flag=true"} {
		tok, err := Parse(raw)
		require.NoError(t, err)
		require.NoError(t, Apply(tr, tok))
	}

	assert.Equal(t, map[string]any{
		"learning_rate": 1e-5,
		"layers":        2,
		"type":          "LSTM",
		"flag":          true,
	}, tr)
}

func TestApply_CreatesPath(t *testing.T) {
	tr := map[string]any{}
	tok, err := Parse("new.nested.key=5")
	require.NoError(t, err)
	require.NoError(t, Apply(tr, tok))

	want := map[string]any{"new": map[string]any{"nested": map[string]any{"key": 5}}}
	assert.Empty(t, cmp.Diff(want, tr))
}

func TestApply_ReplacesNullIntermediate(t *testing.T) {
	tr := map[string]any{"optimizer": nil}
	tok, err := Parse("optimizer.lr=0.1")
	require.NoError(t, err)
	require.NoError(t, Apply(tr, tok))
	assert.Equal(t, map[string]any{"optimizer": map[string]any{"lr": 0.1}}, tr)
}

func TestApply_ReplacesFinalSegmentUnconditionally(t *testing.T) {
	tr := map[string]any{"a": map[string]any{"b": map[string]any{"deep": 1}}}
	tok, err := Parse("a.b=flat")
	require.NoError(t, err)
	require.NoError(t, Apply(tr, tok))
	assert.Equal(t, map[string]any{"a": map[string]any{"b": "flat"}}, tr)
}

func TestApply_Conflict(t *testing.T) {
	tests := []struct {
		name    string
		tree    map[string]any
		token   string
		wantKey string
	}{
		{"scalar intermediate", map[string]any{"a": 5}, "a.b=1", "a"},
		{"deep scalar", map[string]any{"a": map[string]any{"b": "s"}}, "a.b.c=1", "a.b"},
		{"sequence intermediate", map[string]any{"a": []any{1}}, "a.b=1", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tree.Clone(tt.tree)
			tok, err := Parse(tt.token)
			require.NoError(t, err)

			err = Apply(tt.tree, tok)
			require.Error(t, err)
			assert.ErrorIs(t, err, specerr.ErrOverridePathConflict)

			var serr *specerr.Error
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, tt.wantKey, serr.Key)
			assert.Equal(t, tt.token, serr.Token)
			assert.Empty(t, cmp.Diff(before, tt.tree), "tree must be left untouched")
		})
	}
}

func TestApply_NilTree(t *testing.T) {
	tok, err := Parse("a=1")
	require.NoError(t, err)
	assert.Error(t, Apply(nil, tok))
}

func TestApplyAll_InOrder(t *testing.T) {
	toks, err := ParseAll([]string{"model.type=LSTM", "model.size=3", "model.type=GRU", "model.extra.depth=2"})
	require.NoError(t, err)

	tr := map[string]any{}
	require.NoError(t, ApplyAll(tr, toks))

	want := map[string]any{
		"model": map[string]any{
			"type":  "GRU",
			"size":  3,
			"extra": map[string]any{"depth": 2},
		},
	}
	assert.Empty(t, cmp.Diff(want, tr))
}

func TestApplyAll_LaterTokenSeesEarlierPath(t *testing.T) {
	toks, err := ParseAll([]string{"a=5", "a.b=1"})
	require.NoError(t, err)

	err = ApplyAll(map[string]any{}, toks)
	assert.ErrorIs(t, err, specerr.ErrOverridePathConflict)
}

func TestParseAll_StopsAtMalformed(t *testing.T) {
	_, err := ParseAll([]string{"a=1", "oops", "b=2"})
	require.Error(t, err)
	assert.ErrorIs(t, err, specerr.ErrMalformedOverride)
	assert.Contains(t, err.Error(), `"oops"`)
}
