package specerr

import (
	"errors"
	"strings"
)

// Error kinds.
var (
	// ErrConfigFileNotFound indicates a configuration file (or a parent it
	// references) does not exist.
	ErrConfigFileNotFound = errors.New("config file not found")

	// ErrConfigRead indicates a configuration file exists but could not be read.
	ErrConfigRead = errors.New("config file unreadable")

	// ErrConfigParse indicates malformed YAML or a document that is not a mapping.
	ErrConfigParse = errors.New("config parse error")

	// ErrCyclicInheritance indicates a parent chain that revisits a file.
	ErrCyclicInheritance = errors.New("cyclic inheritance")

	// ErrChainTooDeep indicates a parent chain longer than the configured limit.
	ErrChainTooDeep = errors.New("parent chain too deep")

	// ErrMalformedOverride indicates an override token that is not path=value.
	ErrMalformedOverride = errors.New("malformed override")

	// ErrOverridePathConflict indicates an override path crossing a non-mapping value.
	ErrOverridePathConflict = errors.New("override path conflict")

	// ErrReservedKey indicates a configuration key colliding with cmd_args.
	ErrReservedKey = errors.New("reserved key")

	// ErrDuplicateMode indicates a mode name registered twice.
	ErrDuplicateMode = errors.New("duplicate mode")

	// ErrUnknownMode indicates a mode name that was never registered.
	ErrUnknownMode = errors.New("unknown mode")

	// ErrCallbackArity indicates a callback parameter with no namespace value
	// and no default.
	ErrCallbackArity = errors.New("callback arity mismatch")

	// ErrCallbackResolution indicates a deferred callback that could not be
	// resolved at dispatch time.
	ErrCallbackResolution = errors.New("callback resolution failed")

	// ErrUsage indicates a command line that does not fit the expected shape.
	ErrUsage = errors.New("usage error")
)

// Error describes a failure of a given Kind along with whatever context
// identifies the offender.
type Error struct {
	// Kind is one of the sentinel errors of this package.
	Kind error

	// Path is the configuration file involved, if any.
	Path string

	// Token is the raw command-line token involved, if any.
	Token string

	// Key is the configuration key, mode name, or locator involved, if any.
	Key string

	// Detail is a human-readable explanation.
	Detail string

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Kind != nil {
		sb.WriteString(e.Kind.Error())
	} else {
		sb.WriteString("specparse error")
	}

	var where []string
	if e.Path != "" {
		where = append(where, "file "+e.Path)
	}
	if e.Token != "" {
		where = append(where, "token "+quote(e.Token))
	}
	if e.Key != "" {
		where = append(where, "key "+quote(e.Key))
	}
	if len(where) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(where, ", "))
		sb.WriteString(")")
	}

	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the sentinel kind of err, or nil if err carries none.
func KindOf(err error) error {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

var kinds = []error{
	ErrConfigFileNotFound,
	ErrConfigRead,
	ErrConfigParse,
	ErrCyclicInheritance,
	ErrChainTooDeep,
	ErrMalformedOverride,
	ErrOverridePathConflict,
	ErrReservedKey,
	ErrDuplicateMode,
	ErrUnknownMode,
	ErrCallbackArity,
	ErrCallbackResolution,
	ErrUsage,
}

func quote(s string) string {
	return "\"" + s + "\""
}
