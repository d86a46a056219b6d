package sandbox

import (
	"errors"

	"github.com/dop251/goja"
)

var (
	errNonPositiveBudget = errors.New("sandbox: budgets must be positive")
	errBudgetOrdering    = errors.New("sandbox: budgets must satisfy exec > bootstrap > module")

	// errBudgetExceeded is the interrupt value the watchdog injects.
	errBudgetExceeded = errors.New("execution budget exceeded")

	errBadModuleWrap = errors.New("sandbox: module wrapper did not evaluate to a function")
)

// IsTimeout reports whether err is a watchdog interrupt, i.e. the
// execution ran past its wall-clock budget.
func IsTimeout(err error) bool {
	var interrupted *goja.InterruptedError
	if !errors.As(err, &interrupted) {
		return false
	}
	v, ok := interrupted.Value().(error)
	return ok && errors.Is(v, errBudgetExceeded)
}

// ErrorMessage extracts the message a sandboxed program threw, verbatim
// where possible.
func ErrorMessage(err error) string {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Error()
	}
	var ex *goja.Exception
	if errors.As(err, &ex) {
		val := ex.Value()
		if val == nil {
			return ex.Error()
		}
		if obj, ok := val.(*goja.Object); ok {
			if msg := obj.Get("message"); msg != nil && !goja.IsUndefined(msg) {
				return msg.String()
			}
		}
		return val.String()
	}
	return err.Error()
}
