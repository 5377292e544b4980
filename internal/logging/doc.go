// Package logging provides structured logging for lazyfeed.
//
// This package wraps Go's log/slog to provide JSON-formatted logs with
// context propagation. The terminal UI owns stdout and stderr while it runs,
// so logs normally go to a file inside the configured log directory.
//
// # Thread Safety
//
// All types in this package are safe for concurrent use. Child loggers
// created via With* methods share the underlying writer safely.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("page loaded", "items", 20, "cursor", 40)
//
// # Context Propagation
//
//	ctrlLogger := logger.WithComponent("scroll").WithController(id)
//	ctrlLogger.Debug("boundary evaluated", "offset", 1500, "threshold", 1500)
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"boundary evaluated","component":"scroll","controller_id":"...","offset":1500,"threshold":1500}
//
// # Testing
//
// Use [NopLogger] to discard all output.
package logging
