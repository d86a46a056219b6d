package executor

import "context"

// limiter bounds the number of in-flight sandbox executions. Slots are
// plain tokens; the sandboxes themselves are single-use and never
// pooled.
type limiter struct {
	slots chan struct{}
}

func newLimiter(size int) *limiter {
	if size <= 0 {
		size = 4
	}
	l := &limiter{slots: make(chan struct{}, size)}
	for i := 0; i < size; i++ {
		l.slots <- struct{}{}
	}
	return l
}

// acquire takes a slot, honoring context cancellation while waiting.
func (l *limiter) acquire(ctx context.Context) error {
	select {
	case <-l.slots:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *limiter) release() {
	select {
	case l.slots <- struct{}{}:
	default:
	}
}

// available reports free slots, for health reporting.
func (l *limiter) available() int {
	return len(l.slots)
}
