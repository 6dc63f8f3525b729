// Package log provides logging for qualscan, built on top of the
// standard slog package.
//
// This package extends slog to provide:
//   - Automatic truncation of long article-text attribute values
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Truncation
//
// Analyzers log with article fragments attached: sentences flagged for
// redundancy, section bodies, raw wikitext. Untruncated, a single debug
// line can carry kilobytes of Arabic prose and make logs unreadable.
// The TruncateHandler caps every string attribute at a fixed rune
// length and notes how much was cut.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("redundant sentence pair",
//	    "sentence", longSentence, // truncated to the rune limit
//	    "similarity", 0.91,
//	)
//
//	slog.SetDefault(logger)
package log
