// Package logger provides the structured logging used across this library.
//
// It wraps Uber's Zap logger behind a small level-method API
// (Info/Debug/Warn/Error/Fatal) that takes an optional error and optional
// field maps, so the datastore packages can declare a matching local Logger
// interface without importing zap themselves. The fx module registers a
// lifecycle hook that flushes buffered entries on shutdown.
//
// Basic Usage:
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Info})
//
//	log.Info("queryset executed", nil, map[string]interface{}{
//	    "collection": "users",
//	    "operation":  "find",
//	})
package logger
