// Package config provides 12-factor configuration management for the
// execution service.
//
// Configuration is loaded from environment variables with sensible
// defaults. The executor budgets are validated at load time: the
// single-file budget must exceed the workspace bootstrap budget, which
// must exceed the per-module budget.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Executor: sandbox budgets and request limits
//   - Logging: log level and output format
//   - RateLimit: per-instance rate limiting
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST
//   - EXEC_TIMEOUT, BOOTSTRAP_TIMEOUT, MODULE_TIMEOUT, WRAPPER_GRACE
//   - MAX_CALL_STACK, MAX_CONCURRENT, MAX_WORKSPACE_FILES, MAX_SOURCE_BYTES
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
