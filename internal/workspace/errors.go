package workspace

import (
	"errors"
	"fmt"
)

var (
	// ErrAccessDenied marks a specifier the containment rules reject:
	// non-relative, or resolving above the workspace root.
	ErrAccessDenied = errors.New("module access denied")

	// ErrNotFound marks a well-formed specifier with no matching file.
	ErrNotFound = errors.New("module not found")
)

// ResolveError wraps a resolution failure with the specifier and the
// requesting file, so the message the sandboxed program sees names both.
type ResolveError struct {
	Specifier string
	From      string
	Err       error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("cannot resolve %q from %q: %v", e.Specifier, e.From, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

func denied(specifier, from string) error {
	return &ResolveError{Specifier: specifier, From: from, Err: ErrAccessDenied}
}

func notFound(specifier, from string) error {
	return &ResolveError{Specifier: specifier, From: from, Err: ErrNotFound}
}
