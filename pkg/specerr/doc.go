// Package specerr defines the error kinds shared by every stage of
// configuration resolution, override application, and mode dispatch.
//
// Each kind is a sentinel ([ErrConfigFileNotFound], [ErrCyclicInheritance],
// ...) that callers test with [errors.Is]. Errors carrying context about the
// offending file, token, or key are returned as [*Error], which unwraps to
// both its kind and its underlying cause.
package specerr
