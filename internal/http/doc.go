// Package http provides the HTTP handlers for the execution service.
//
// The REST surface is deliberately thin: the sandbox does the real
// work, and this package only maps requests onto it.
//
// Endpoints:
//   - Health: / and /health
//   - Execution: POST /execute
//   - Metrics: GET /metrics (Prometheus exposition)
//
// A request-level validation failure maps to 400 with an error body.
// Every sandbox outcome, including faults and timeouts, maps to 200
// with the normalized ExecutionResult.
package http
