// Package redact masks secrets in a resolved configuration before it is
// printed.
//
// Two mechanisms apply. Key-based redaction replaces any value whose key
// path matches one of the configured doublestar globs; the path segments are
// joined with '/' so "**/password" matches db.primary.password. Content
// redaction scans the remaining string values with regex heuristics for
// common secret shapes: API keys, JWTs, private keys, AWS access keys, bearer
// tokens, credentials embedded in URLs, and provider-specific tokens.
package redact
