package sandbox

import "time"

// Config defines the per-execution resource limits.
//
// The three budgets are strictly ordered: ExecTimeout covers a whole
// single-file program, BootstrapTimeout covers a workspace's top-level
// unit, and ModuleTimeout covers one module load nested inside either.
type Config struct {
	ExecTimeout      time.Duration // single-file top-level budget
	BootstrapTimeout time.Duration // workspace bootstrap budget
	ModuleTimeout    time.Duration // one module load
	MaxCallStack     int           // JS call stack depth limit
}

// DefaultConfig returns the stock budget configuration.
func DefaultConfig() Config {
	return Config{
		ExecTimeout:      5 * time.Second,
		BootstrapTimeout: 4 * time.Second,
		ModuleTimeout:    2 * time.Second,
		MaxCallStack:     1024,
	}
}

// Validate checks the budget ordering invariant.
func (c Config) Validate() error {
	if c.ExecTimeout <= 0 || c.BootstrapTimeout <= 0 || c.ModuleTimeout <= 0 {
		return errNonPositiveBudget
	}
	if c.ExecTimeout <= c.BootstrapTimeout || c.BootstrapTimeout <= c.ModuleTimeout {
		return errBudgetOrdering
	}
	return nil
}
