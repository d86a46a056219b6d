package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/codequest/runbox/internal/executor"
	"github.com/codequest/runbox/internal/sandbox"
)

// Config holds all service configuration.
type Config struct {
	Server    ServerConfig
	Executor  ExecutorConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// ExecutorConfig holds sandbox and orchestration limits. The three
// budgets must satisfy exec > bootstrap > module so that loading many
// small modules cannot starve the program's own allotment.
type ExecutorConfig struct {
	ExecTimeout       time.Duration `envconfig:"EXEC_TIMEOUT" default:"5s"`
	BootstrapTimeout  time.Duration `envconfig:"BOOTSTRAP_TIMEOUT" default:"4s"`
	ModuleTimeout     time.Duration `envconfig:"MODULE_TIMEOUT" default:"2s"`
	WrapperGrace      time.Duration `envconfig:"WRAPPER_GRACE" default:"2s"`
	MaxCallStack      int           `envconfig:"MAX_CALL_STACK" default:"1024"`
	MaxConcurrent     int           `envconfig:"MAX_CONCURRENT" default:"8"`
	MaxWorkspaceFiles int           `envconfig:"MAX_WORKSPACE_FILES" default:"64"`
	MaxSourceBytes    int           `envconfig:"MAX_SOURCE_BYTES" default:"524288"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds HTTP rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"20"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"40"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Executor.toSandbox().Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns the
// defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080", Host: "0.0.0.0"},
		Executor: ExecutorConfig{
			ExecTimeout:       5 * time.Second,
			BootstrapTimeout:  4 * time.Second,
			ModuleTimeout:     2 * time.Second,
			WrapperGrace:      2 * time.Second,
			MaxCallStack:      1024,
			MaxConcurrent:     8,
			MaxWorkspaceFiles: 64,
			MaxSourceBytes:    512 * 1024,
		},
		Logging:   LogConfig{Level: "info"},
		RateLimit: RateLimitConfig{RequestsPerSecond: 20, Burst: 40, Enabled: true},
	}
}

// ToExecutor converts to the executor package's config.
func (c ExecutorConfig) ToExecutor() executor.Config {
	return executor.Config{
		Sandbox:           c.toSandbox(),
		MaxConcurrent:     c.MaxConcurrent,
		WrapperGrace:      c.WrapperGrace,
		MaxWorkspaceFiles: c.MaxWorkspaceFiles,
		MaxSourceBytes:    c.MaxSourceBytes,
	}
}

func (c ExecutorConfig) toSandbox() sandbox.Config {
	return sandbox.Config{
		ExecTimeout:      c.ExecTimeout,
		BootstrapTimeout: c.BootstrapTimeout,
		ModuleTimeout:    c.ModuleTimeout,
		MaxCallStack:     c.MaxCallStack,
	}
}
