package sandbox

import (
	"sync"
	"time"

	"github.com/dop251/goja"
)

// watchdog enforces nested wall-clock budgets on one VM. Budgets form a
// stack: pushing a module budget while the top-level budget is active
// arms the timer for whichever deadline comes first, and popping
// restores the enclosing deadline.
type watchdog struct {
	vm *goja.Runtime

	mu        sync.Mutex
	deadlines []time.Time
	timer     *time.Timer
}

func newWatchdog(vm *goja.Runtime) *watchdog {
	return &watchdog{vm: vm}
}

// push arms the watchdog for a new budget, clamped so a nested unit can
// never outlast its parent. The returned func pops the deadline.
func (w *watchdog) push(budget time.Duration) func() {
	w.mu.Lock()
	defer w.mu.Unlock()

	deadline := time.Now().Add(budget)
	if n := len(w.deadlines); n > 0 && w.deadlines[n-1].Before(deadline) {
		deadline = w.deadlines[n-1]
	}
	w.deadlines = append(w.deadlines, deadline)
	w.rearm()

	return w.pop
}

func (w *watchdog) pop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if n := len(w.deadlines); n > 0 {
		w.deadlines = w.deadlines[:n-1]
	}
	w.rearm()
}

// rearm points the timer at the innermost deadline. Caller holds mu.
func (w *watchdog) rearm() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	if len(w.deadlines) == 0 {
		return
	}
	deadline := w.deadlines[len(w.deadlines)-1]
	w.timer = time.AfterFunc(time.Until(deadline), func() {
		w.vm.Interrupt(errBudgetExceeded)
	})
}

func (w *watchdog) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.deadlines = nil
}
