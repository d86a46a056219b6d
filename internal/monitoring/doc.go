// Package monitoring provides Prometheus metrics for the execution
// service.
//
// Instruments cover the two surfaces that matter operationally: the
// HTTP layer (request counts, durations) and the sandbox (executions
// by mode and terminal status, duration histogram, in-flight gauge,
// validation rejections). Exposition happens on /metrics via the
// standard promhttp handler.
package monitoring
