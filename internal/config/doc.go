// Package config loads and merges the settings of the specparse tool itself
// from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (SPECPARSE_FORMAT, SPECPARSE_MAX_DEPTH,
//     SPECPARSE_LOG_LEVEL, SPECPARSE_LOG_FORMAT, SPECPARSE_REDACT)
//  3. Config file ($XDG_CONFIG_HOME/specparse/config.yaml)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config], [Save] to write one back, and
// [SetField] to update a single key.
package config
