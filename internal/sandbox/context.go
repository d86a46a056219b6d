package sandbox

import (
	"fmt"
	"sync"
	"time"

	"github.com/dop251/goja"

	"github.com/codequest/runbox/internal/workspace"
)

// consoleLevels are the console methods exposed to sandboxed code. All
// of them feed the same ordered output stream.
var consoleLevels = []string{"log", "info", "warn", "error", "debug"}

// Context is the isolated execution realm for one request. It is
// single-use: construct, run once, Close.
type Context struct {
	vm       *goja.Runtime
	cfg      Config
	watchdog *watchdog

	lines   []string
	linesMu sync.Mutex
}

// NewContext builds a fresh realm exposing only the capturing console
// and the caller-supplied input value.
func NewContext(cfg Config, input string) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	vm := goja.New()
	if cfg.MaxCallStack > 0 {
		vm.SetMaxCallStackSize(cfg.MaxCallStack)
	}

	c := &Context{
		vm:       vm,
		cfg:      cfg,
		watchdog: newWatchdog(vm),
	}
	if err := c.setupGlobals(input); err != nil {
		return nil, err
	}
	return c, nil
}

// RunCode executes a single-file submission as an asynchronous
// top-level unit under the full execution budget. The returned string
// is the unit's settled value rendered for display; console output is
// collected separately via ConsoleLines.
func (c *Context) RunCode(code string) (string, error) {
	prog, err := goja.Compile("main.js", "(async function() {\n"+code+"\n})()", false)
	if err != nil {
		return "", &CompileError{Err: err}
	}

	val, err := c.run(prog, c.cfg.ExecTimeout)
	if err != nil {
		return "", err
	}
	return c.settle(val)
}

// RunWorkspace executes a multi-file submission: a bootstrap unit
// requires the entry module under the bootstrap budget and, if its
// export (or its default property) is invocable, invokes and awaits it.
func (c *Context) RunWorkspace(table *workspace.Table) (string, error) {
	prog, err := goja.Compile("bootstrap.js", bootstrapSource, false)
	if err != nil {
		return "", &CompileError{Err: err}
	}

	release := c.watchdog.push(c.cfg.BootstrapTimeout)
	defer release()

	val, err := c.vm.RunProgram(prog)
	if err != nil {
		return "", err
	}

	boot, ok := goja.AssertFunction(val)
	if !ok {
		return "", fmt.Errorf("sandbox: bootstrap did not evaluate to a function")
	}

	ld := newLoader(c, table)
	result, err := boot(goja.Undefined(),
		c.vm.ToValue(ld.requireFor("")),
		c.vm.ToValue("./"+table.Entry()),
	)
	if err != nil {
		return "", err
	}
	return c.settle(result)
}

// bootstrapSource is the workspace top-level unit. It receives a
// require bound to the workspace root and the entry specifier.
const bootstrapSource = `(function(require, entry) {
	return (async function() {
		var mod = require(entry);
		var fn = null;
		if (typeof mod === "function") {
			fn = mod;
		} else if (mod && typeof mod.default === "function") {
			fn = mod.default;
		}
		if (fn) {
			return await fn();
		}
	})();
})`

// ConsoleLines returns a copy of the captured output stream, in call
// order across all modules of the request.
func (c *Context) ConsoleLines() []string {
	c.linesMu.Lock()
	defer c.linesMu.Unlock()
	return append([]string(nil), c.lines...)
}

// Close tears the realm down. Nothing created inside it survives.
func (c *Context) Close() {
	c.watchdog.stop()
	c.vm.ClearInterrupt()
	c.vm = nil
	c.lines = nil
}

// run executes a compiled unit under its own budget.
func (c *Context) run(prog *goja.Program, budget time.Duration) (goja.Value, error) {
	release := c.watchdog.push(budget)
	defer release()
	return c.vm.RunProgram(prog)
}

// settle resolves a possibly-promise value to its display string. With
// no event loop a promise still pending after the run can make no
// further progress; it settles as an empty result rather than an error.
func (c *Context) settle(val goja.Value) (string, error) {
	if promise, ok := val.Export().(*goja.Promise); ok {
		switch promise.State() {
		case goja.PromiseStateFulfilled:
			return render(promise.Result()), nil
		case goja.PromiseStateRejected:
			return "", &RejectedError{Value: promise.Result()}
		default:
			return "", nil
		}
	}
	return render(val), nil
}

// render stringifies a settled value for the output field.
func render(val goja.Value) string {
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return ""
	}
	return val.String()
}

func (c *Context) setupGlobals(input string) error {
	console := c.vm.NewObject()
	for _, level := range consoleLevels {
		if err := console.Set(level, c.captureFunc()); err != nil {
			return err
		}
	}
	if err := c.vm.Set("console", console); err != nil {
		return err
	}

	// input is a non-writable global so the program observes the same
	// value for its whole run.
	err := c.vm.GlobalObject().DefineDataProperty("input",
		c.vm.ToValue(input), goja.FLAG_FALSE, goja.FLAG_FALSE, goja.FLAG_TRUE)
	if err != nil {
		return err
	}

	// Nothing from the host leaks in: no process, no ambient require,
	// and timers are inert so nothing can outlive the request.
	for _, name := range []string{"require", "process", "module", "exports"} {
		if err := c.vm.Set(name, goja.Undefined()); err != nil {
			return err
		}
	}
	noop := func(goja.FunctionCall) goja.Value { return goja.Undefined() }
	if err := c.vm.Set("setTimeout", noop); err != nil {
		return err
	}
	return c.vm.Set("setInterval", noop)
}

// captureFunc appends one line per console call, arguments joined by a
// single space.
func (c *Context) captureFunc() func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		var line string
		for i, arg := range call.Arguments {
			if i > 0 {
				line += " "
			}
			line += arg.String()
		}

		c.linesMu.Lock()
		c.lines = append(c.lines, line)
		c.linesMu.Unlock()

		return goja.Undefined()
	}
}

// CompileError marks a submission that failed to parse before any code
// ran.
type CompileError struct {
	Err error
}

func (e *CompileError) Error() string { return e.Err.Error() }
func (e *CompileError) Unwrap() error { return e.Err }

// RejectedError carries the settled rejection value of the top-level
// unit's promise.
type RejectedError struct {
	Value goja.Value
}

func (e *RejectedError) Error() string {
	if e.Value == nil {
		return "promise rejected"
	}
	if obj, ok := e.Value.(*goja.Object); ok {
		if msg := obj.Get("message"); msg != nil && !goja.IsUndefined(msg) {
			return msg.String()
		}
	}
	return e.Value.String()
}
