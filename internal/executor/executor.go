package executor

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/codequest/runbox/internal/monitoring"
	"github.com/codequest/runbox/internal/sandbox"
	"github.com/codequest/runbox/internal/shared/id"
	"github.com/codequest/runbox/internal/types"
	"github.com/codequest/runbox/internal/workspace"
)

// Config bounds the executor as a whole; the nested sandbox config
// bounds each single execution.
type Config struct {
	Sandbox           sandbox.Config
	MaxConcurrent     int           // in-flight execution slots
	WrapperGrace      time.Duration // slack past the budget before the caller is released
	MaxWorkspaceFiles int
	MaxSourceBytes    int
}

// DefaultConfig returns the stock executor configuration.
func DefaultConfig() Config {
	return Config{
		Sandbox:           sandbox.DefaultConfig(),
		MaxConcurrent:     8,
		WrapperGrace:      2 * time.Second,
		MaxWorkspaceFiles: 64,
		MaxSourceBytes:    512 * 1024,
	}
}

// Executor drives sandbox executions end to end.
type Executor struct {
	cfg     Config
	limiter *limiter
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// New creates an executor. metrics may be nil in tests.
func New(cfg Config, logger *zap.Logger, metrics *monitoring.Metrics) (*Executor, error) {
	if err := cfg.Sandbox.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		cfg:     cfg,
		limiter: newLimiter(cfg.MaxConcurrent),
		logger:  logger,
		metrics: metrics,
	}, nil
}

// AvailableSlots reports free execution slots, for health reporting.
func (e *Executor) AvailableSlots() int {
	return e.limiter.available()
}

// Execute runs one submission. The returned error is non-nil only for
// request-level rejections (validation, cancelled wait); every sandbox
// outcome, including faults and timeouts, arrives as a normal result.
func (e *Executor) Execute(ctx context.Context, req *types.ExecuteRequest) (*types.ExecutionResult, error) {
	table, err := e.validate(req)
	if err != nil {
		if e.metrics != nil {
			e.metrics.RecordRejection()
		}
		return nil, err
	}

	if err := e.limiter.acquire(ctx); err != nil {
		return nil, err
	}
	defer e.limiter.release()

	if e.metrics != nil {
		e.metrics.ExecutionsActive.Inc()
		defer e.metrics.ExecutionsActive.Dec()
	}

	execID := id.NewExecutionID().String()
	mode := "single"
	budget := e.cfg.Sandbox.ExecTimeout
	if req.IsWorkspace() {
		mode = "workspace"
		budget = e.cfg.Sandbox.BootstrapTimeout
	}

	start := time.Now()
	out := e.runIsolated(req, table, budget)
	elapsed := time.Since(start)

	result := e.normalize(execID, out, elapsed)

	if e.metrics != nil {
		e.metrics.RecordExecution(mode, string(result.Status), elapsed)
	}
	e.logExecution(result, mode)

	return result, nil
}

// outcome is what one sandboxed run produces before normalization.
type outcome struct {
	value string
	lines []string
	err   error
}

// runIsolated executes on a dedicated goroutine and waits at most the
// budget plus a grace window, so a wedged VM cannot hang the caller.
// The watchdog interrupt makes overruns rare; the wrapper deadline is
// the backstop.
func (e *Executor) runIsolated(req *types.ExecuteRequest, table *workspace.Table, budget time.Duration) outcome {
	done := make(chan outcome, 1)

	go func() {
		done <- e.run(req, table)
	}()

	select {
	case out := <-done:
		return out
	case <-time.After(budget + e.cfg.WrapperGrace):
		// The worker and its VM are abandoned here, and the caller's
		// deferred release frees the slot, so a truly non-interruptible
		// run leaks a goroutine rather than blocking the caller. That can
		// briefly put live VMs above the slot count.
		return outcome{err: errWedged}
	}
}

// run builds the fresh per-request realm and drives the top-level unit.
// table is nil in single-file mode.
func (e *Executor) run(req *types.ExecuteRequest, table *workspace.Table) outcome {
	sc, err := sandbox.NewContext(e.cfg.Sandbox, req.Input)
	if err != nil {
		return outcome{err: err}
	}
	defer sc.Close()

	var value string
	if table != nil {
		value, err = sc.RunWorkspace(table)
	} else {
		value, err = sc.RunCode(req.Code)
	}

	return outcome{value: value, lines: sc.ConsoleLines(), err: err}
}

// normalize folds an outcome into the immutable result record.
// Captured console lines take precedence over the unit's return value.
func (e *Executor) normalize(execID string, out outcome, elapsed time.Duration) *types.ExecutionResult {
	result := &types.ExecutionResult{
		ID:            execID,
		ExecutionTime: elapsed.Milliseconds(),
		MemoryUsage:   heapSample(),
	}

	output := joinLines(out.lines)

	switch {
	case out.err == nil:
		result.Success = true
		result.Status = types.StatusCompleted
		if output == "" {
			output = out.value
		}
		result.Output = output

	case sandbox.IsTimeout(out.err) || out.err == errWedged:
		result.Status = types.StatusTimeout
		result.Output = output
		msg := "execution timed out"
		result.ErrorMessage = &msg

	default:
		result.Status = types.StatusError
		result.Output = output
		msg := sandbox.ErrorMessage(out.err)
		result.ErrorMessage = &msg
	}

	return result
}

func (e *Executor) logExecution(result *types.ExecutionResult, mode string) {
	fields := []zap.Field{
		zap.String("id", result.ID),
		zap.String("mode", mode),
		zap.String("status", string(result.Status)),
		zap.Int64("execution_time_ms", result.ExecutionTime),
	}
	switch result.Status {
	case types.StatusTimeout:
		e.logger.Warn("execution timed out", fields...)
	case types.StatusError:
		e.logger.Info("execution errored", append(fields, zap.Stringp("error", result.ErrorMessage))...)
	default:
		e.logger.Info("execution completed", fields...)
	}
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// heapSample reads the host heap at the terminal instant. Best-effort:
// the figure is process-wide, not attributable to the sandboxed code
// alone.
func heapSample() uint64 {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return stats.HeapAlloc
}

var errWedged = errors.New("execution did not yield within grace window")
