package specerr

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "kind only",
			err:  &Error{Kind: ErrUnknownMode},
			want: "unknown mode",
		},
		{
			name: "file and cause",
			err:  &Error{Kind: ErrConfigFileNotFound, Path: "/tmp/base.yaml", Err: fs.ErrNotExist},
			want: "config file not found (file /tmp/base.yaml): file does not exist",
		},
		{
			name: "token and detail",
			err:  &Error{Kind: ErrMalformedOverride, Token: "a.b", Detail: "missing '='"},
			want: `malformed override (token "a.b"): missing '='`,
		},
		{
			name: "token and key",
			err:  &Error{Kind: ErrOverridePathConflict, Token: "a.b=1", Key: "a"},
			want: `override path conflict (token "a.b=1", key "a")`,
		},
		{
			name: "no kind",
			err:  &Error{Detail: "boom"},
			want: "specparse error: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	err := &Error{Kind: ErrConfigFileNotFound, Path: "x.yaml", Err: fs.ErrNotExist}
	wrapped := fmt.Errorf("loading: %w", err)

	assert.True(t, errors.Is(wrapped, ErrConfigFileNotFound))
	assert.True(t, errors.Is(wrapped, fs.ErrNotExist))
	assert.False(t, errors.Is(wrapped, ErrConfigParse))

	var target *Error
	if assert.True(t, errors.As(wrapped, &target)) {
		assert.Equal(t, "x.yaml", target.Path)
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, ErrCyclicInheritance, KindOf(&Error{Kind: ErrCyclicInheritance}))
	assert.Equal(t, ErrUsage, KindOf(fmt.Errorf("wrap: %w", ErrUsage)))
	assert.Nil(t, KindOf(errors.New("plain")))
	assert.Nil(t, KindOf(nil))
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		config   bool
		usage    bool
		dispatch bool
	}{
		{"nil", nil, false, false, false},
		{"plain", errors.New("x"), false, false, false},
		{"missing file", &Error{Kind: ErrConfigFileNotFound}, true, false, false},
		{"cycle", &Error{Kind: ErrCyclicInheritance}, true, false, false},
		{"malformed override", &Error{Kind: ErrMalformedOverride}, true, false, false},
		{"reserved key", &Error{Kind: ErrReservedKey}, true, false, false},
		{"unknown mode", &Error{Kind: ErrUnknownMode}, false, true, false},
		{"usage", ErrUsage, false, true, false},
		{"arity", &Error{Kind: ErrCallbackArity}, false, false, true},
		{"resolution", &Error{Kind: ErrCallbackResolution}, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.config, IsConfigError(tt.err), "IsConfigError")
			assert.Equal(t, tt.usage, IsUsageError(tt.err), "IsUsageError")
			assert.Equal(t, tt.dispatch, IsDispatchError(tt.err), "IsDispatchError")
		})
	}
}
