package specerr

import "errors"

// IsConfigError reports whether err stems from resolving the configuration
// files or applying overrides to them.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrConfigFileNotFound) ||
		errors.Is(err, ErrConfigRead) ||
		errors.Is(err, ErrConfigParse) ||
		errors.Is(err, ErrCyclicInheritance) ||
		errors.Is(err, ErrChainTooDeep) ||
		errors.Is(err, ErrMalformedOverride) ||
		errors.Is(err, ErrOverridePathConflict) ||
		errors.Is(err, ErrReservedKey)
}

// IsUsageError reports whether err means the command line itself was wrong.
func IsUsageError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrUsage) || errors.Is(err, ErrUnknownMode)
}

// IsDispatchError reports whether err was raised while binding or resolving
// a mode callback.
func IsDispatchError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrCallbackArity) || errors.Is(err, ErrCallbackResolution)
}
