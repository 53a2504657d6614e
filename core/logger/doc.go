// Package logger builds the application's Zap logger.
//
// Debug level selects Zap's development preset, every other level the production preset.
// The encoding is either console (colored levels, no stack traces) for interactive use of
// the CLI, or json for the HTTP service.
//
// # Request correlation
//
// The rayid middleware stores a request ID in the Fiber locals. WithRayID copies it onto
// a child logger so every line written while serving a merge request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Merge finished", zap.Int("output_rows", n))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Merge request failed", zap.Error(err))
package logger
