package executor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codequest/runbox/internal/types"
	"github.com/codequest/runbox/internal/workspace"
)

// ValidationError rejects a request before any sandbox work begins. No
// ExecutionResult is produced for it.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + e.Reason
}

// IsValidationError reports whether err is a request-level rejection.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// validate checks request shape and limits and, in workspace mode,
// builds the virtual file table. A nil table means single-file mode.
func (e *Executor) validate(req *types.ExecuteRequest) (*workspace.Table, error) {
	if req == nil {
		return nil, invalid("empty request")
	}

	if _, ok := types.NormalizeLanguage(req.Language); !ok {
		return nil, invalid("unsupported language %q", req.Language)
	}

	if req.Workspace == nil {
		if strings.TrimSpace(req.Code) == "" {
			return nil, invalid("code is required")
		}
		if e.cfg.MaxSourceBytes > 0 && len(req.Code) > e.cfg.MaxSourceBytes {
			return nil, invalid("code exceeds %d bytes", e.cfg.MaxSourceBytes)
		}
		return nil, nil
	}

	ws := req.Workspace
	if len(ws.Files) == 0 {
		return nil, invalid("workspace has no files")
	}
	if e.cfg.MaxWorkspaceFiles > 0 && len(ws.Files) > e.cfg.MaxWorkspaceFiles {
		return nil, invalid("workspace exceeds %d files", e.cfg.MaxWorkspaceFiles)
	}
	if ws.EntryPath == "" {
		return nil, invalid("workspace entry path is required")
	}

	total := 0
	for _, f := range ws.Files {
		total += len(f.Content)
	}
	if e.cfg.MaxSourceBytes > 0 && total > e.cfg.MaxSourceBytes {
		return nil, invalid("workspace source exceeds %d bytes", e.cfg.MaxSourceBytes)
	}

	table, err := workspace.NewTable(ws.Files, ws.EntryPath)
	if err != nil {
		return nil, invalid("%v", err)
	}
	return table, nil
}
