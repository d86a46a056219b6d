package types

// Status is the terminal state of one execution.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
	StatusTimeout   Status = "timeout"
)

// WorkspaceFile is one source file submitted by the caller.
type WorkspaceFile struct {
	Path    string `json:"path" binding:"required"`
	Content string `json:"content"`
}

// Workspace is a set of virtual files plus a designated entry file.
type Workspace struct {
	Files     []WorkspaceFile `json:"files" binding:"required"`
	EntryPath string          `json:"entryPath" binding:"required"`
}

// ExecuteRequest is the execution request. Workspace is nil in
// single-file mode.
type ExecuteRequest struct {
	Code      string     `json:"code"`
	Language  string     `json:"language" binding:"required"`
	Input     string     `json:"input,omitempty"`
	Workspace *Workspace `json:"workspace,omitempty"`
}

// IsWorkspace reports whether the request targets a multi-file workspace.
func (r *ExecuteRequest) IsWorkspace() bool {
	return r.Workspace != nil
}

// ExecutionResult is the normalized outcome of one execution. It is
// produced exactly once per request and never mutated after return.
type ExecutionResult struct {
	ID            string  `json:"id"`
	Success       bool    `json:"success"`
	Output        string  `json:"output"`
	ExecutionTime int64   `json:"executionTime"` // milliseconds
	MemoryUsage   uint64  `json:"memoryUsage"`   // bytes, best-effort heap sample
	Status        Status  `json:"status"`
	ErrorMessage  *string `json:"errorMessage"`
}
