// Package logger provides a structured logging facility based on Zap.
//
// The logger is built once by the command from the resolved configuration and then
// passed explicitly to every component. There is no package-level logger state.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error (LOG_LEVEL)
//   - Format: json or console; when empty it follows Env (NODE_ENV=production selects json)
//   - Debug: set by the --debug flag, forces the development configuration
//
// # Run Correlation
//
// Each invocation gets a run identifier. WithRunID attaches it to the logger so that every
// entry written during one run can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log = logger.WithRunID(log, uuid.NewString())
//	log.Info("Inventory fetched", zap.Int("count", n))
package logger
