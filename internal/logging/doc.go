// Package logging provides structured logging for smucheck.
//
// This package wraps zap logger with convenience functions for the logging
// patterns used by the scanner. Logging is silent unless SMUCHECK_LOG_LEVEL
// is set, so the console report stays clean by default.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (match offsets, candidate decisions, byte dumps)
//   - Info: Normal operations (image loaded, scan finished)
//   - Warn: Non-fatal issues (skipped files)
//   - Error: Failures that end a scan
//
// # Structured Logging
//
// All log functions use structured fields:
//
//	logging.Info("Image loaded",
//	    zap.String("name", "B650E-TAICHI-3.10.CAP"),
//	    zap.Int("size", 33554432),
//	)
//
// # Specialized Logging
//
//	logging.LogMatches("Raphael", offsets)
//	logging.LogCandidate(offset, err)
//	logging.LogRawBytes("SMU header", data[off:off+0x70])
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// Logs are written to stderr in console format so they never interleave with
// the report on stdout.
package logging
