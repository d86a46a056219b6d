package workspace

import (
	"fmt"
	"strings"

	"github.com/codequest/runbox/internal/types"
)

// Table is the immutable virtual file table for one execution request:
// slash-normalized workspace-relative paths mapped to source text.
type Table struct {
	files map[string]string
	entry string
}

// NewTable builds a table from the submitted files. Paths are
// normalized before insertion; duplicate paths resolve last-write-wins
// in source order. The entry path must name a file in the table.
func NewTable(files []types.WorkspaceFile, entryPath string) (*Table, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("workspace has no files")
	}

	t := &Table{files: make(map[string]string, len(files))}
	for _, f := range files {
		path, ok := collapse(NormalizePath(f.Path))
		if !ok {
			return nil, fmt.Errorf("workspace file path %q escapes the workspace root", f.Path)
		}
		if path == "" {
			return nil, fmt.Errorf("workspace file has empty path")
		}
		t.files[path] = f.Content
	}

	entry, ok := t.lookup(NormalizePath(entryPath))
	if !ok {
		return nil, fmt.Errorf("entry path %q not present in workspace", entryPath)
	}
	t.entry = entry

	return t, nil
}

// Entry returns the canonical path of the workspace entry module.
func (t *Table) Entry() string { return t.entry }

// Source returns the source text at a canonical path.
func (t *Table) Source(path string) (string, bool) {
	src, ok := t.files[path]
	return src, ok
}

// Len returns the number of files in the table.
func (t *Table) Len() int { return len(t.files) }

// lookup tries a canonical path as given, then with a ".js" suffix.
func (t *Table) lookup(path string) (string, bool) {
	if _, ok := t.files[path]; ok {
		return path, true
	}
	withExt := path + ".js"
	if _, ok := t.files[withExt]; ok {
		return withExt, true
	}
	return "", false
}

// NormalizePath converts a submitted path to table form: forward
// slashes, no leading "./" or "/", no empty segments.
func NormalizePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	segments := strings.Split(path, "/")
	out := segments[:0]
	for _, seg := range segments {
		if seg == "" || seg == "." {
			continue
		}
		out = append(out, seg)
	}
	return strings.Join(out, "/")
}
