// Package logging provides structured logging configuration for specparse.
//
// It wraps log/slog so every component logs the same way. Components accept
// a *slog.Logger through their options; when none is given they fall back to
// [Nop], which discards everything.
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatText,
//	})
//	logger.Debug("resolved link", "path", path)
package logging
