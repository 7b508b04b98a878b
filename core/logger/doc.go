// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and integrates with the Fiber status server.
//
// # Context Awareness
//
// The logger is designed to be context-aware in two directions:
//   - WithRayID extracts the RayID from a Fiber context and attaches it to the
//     log entry, so logs belonging to one status-API request can be correlated.
//   - WithRun attaches the reconciliation run ID, so all log lines of a single
//     scheduled run can be correlated with its history row and notification.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Run started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
