// Package server provides HTTP server setup for the execution service.
//
// This package wires the components together:
//   - HTTP routing with the Gin framework
//   - Middleware stack (recovery, request IDs, metrics, CORS, rate limiting)
//   - Executor construction from loaded configuration
//   - Prometheus exposition on /metrics
//
// Server Lifecycle:
//  1. Load configuration from environment/flags
//  2. Initialize logger (production or development)
//  3. Build executor with validated budgets
//  4. Setup HTTP routes and middleware
//  5. Start HTTP server
//  6. Graceful shutdown on signal
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.New(cfg, logger)
//	if err := srv.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
package server
