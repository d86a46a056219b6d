// Package main is the entry point for the runbox execution service.
//
// The service accepts coding-exercise submissions (a single file or a
// small multi-file workspace), runs them inside a constrained
// JavaScript sandbox, and returns a normalized execution record with
// captured output, timing, and error information.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8080
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: graceful shutdown
package main
