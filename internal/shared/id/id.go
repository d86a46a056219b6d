// Package id provides ULID-based identifier generation for the
// execution service.
//
// IDs carry a type prefix ("exec_", "req_") so log lines and result
// records are self-describing, and ULIDs keep them lexicographically
// sortable by creation time.
package id

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ExecutionID identifies one sandbox execution.
type ExecutionID string

// RequestID identifies one API request.
type RequestID string

func (id ExecutionID) String() string { return string(id) }
func (id RequestID) String() string   { return string(id) }

const (
	ExecutionPrefix = "exec"
	RequestPrefix   = "req"
)

// Generator generates prefixed ULIDs from a guarded entropy source.
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator.
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator(rand.Reader)
	})
	return defaultGenerator
}

// NewGenerator creates a generator with a custom entropy source.
// Deterministic sources are useful in tests.
func NewGenerator(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID.
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string.
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return prefix + "_" + g.Generate().String()
}

// NewExecutionID generates an execution ID.
func NewExecutionID() ExecutionID {
	return ExecutionID(Default().GenerateWithPrefix(ExecutionPrefix))
}

// NewRequestID generates a request ID.
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

// IsValid checks whether id is a bare 26-character ULID.
func IsValid(id string) bool {
	_, err := ulid.Parse(id)
	return err == nil
}
