/*
Package executor orchestrates sandbox executions.

One Execute call covers the whole lifecycle: request validation,
single-file vs workspace mode selection, a fresh sandbox realm, budget
enforcement, and normalization of every outcome into an
ExecutionResult.

Terminal states map onto result status 1:1:

	completed: the top-level unit finished inside its budget
	error:     the unit threw, or module resolution failed
	timeout:   the wall-clock budget was exceeded

Validation failures are the one exception: they reject the request
before any sandbox work and produce no ExecutionResult.

The executor never lets a sandbox fault escape as a host failure, and it
never hangs the caller: the run happens on its own goroutine with a
grace window past the budget, so even a wedged VM yields a timeout
result within bounded time. Concurrent executions are bounded by a slot
limiter; sandboxes themselves are never shared or reused across
requests.
*/
package executor
