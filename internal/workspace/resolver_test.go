package workspace

import (
	"errors"
	"testing"

	"github.com/codequest/runbox/internal/types"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable([]types.WorkspaceFile{
		{Path: "main.js", Content: ""},
		{Path: "lib.js", Content: ""},
		{Path: "src/app.js", Content: ""},
		{Path: "src/util/strings.js", Content: ""},
	}, "main.js")
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return table
}

func TestResolve(t *testing.T) {
	table := testTable(t)

	tests := []struct {
		name      string
		specifier string
		from      string
		want      string
		wantErr   error
	}{
		{
			name:      "sibling",
			specifier: "./lib",
			from:      "main.js",
			want:      "lib.js",
		},
		{
			name:      "sibling with extension",
			specifier: "./lib.js",
			from:      "main.js",
			want:      "lib.js",
		},
		{
			name:      "into subdirectory",
			specifier: "./src/app",
			from:      "main.js",
			want:      "src/app.js",
		},
		{
			name:      "up one level",
			specifier: "../lib",
			from:      "src/app.js",
			want:      "lib.js",
		},
		{
			name:      "deep relative",
			specifier: "./util/strings",
			from:      "src/app.js",
			want:      "src/util/strings.js",
		},
		{
			name:      "redundant segments collapse",
			specifier: "./util/../app",
			from:      "src/app.js",
			want:      "src/app.js",
		},
		{
			name:      "bare specifier denied",
			specifier: "fs",
			from:      "main.js",
			wantErr:   ErrAccessDenied,
		},
		{
			name:      "absolute specifier denied",
			specifier: "/etc/passwd",
			from:      "main.js",
			wantErr:   ErrAccessDenied,
		},
		{
			name:      "escape above root denied",
			specifier: "../../escape",
			from:      "src/app.js",
			wantErr:   ErrAccessDenied,
		},
		{
			name:      "escape from root denied",
			specifier: "../escape",
			from:      "main.js",
			wantErr:   ErrAccessDenied,
		},
		{
			name:      "missing file",
			specifier: "./nope",
			from:      "main.js",
			wantErr:   ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Resolve(tt.specifier, tt.from)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveErrorMessageNamesBothPaths(t *testing.T) {
	table := testTable(t)

	_, err := table.Resolve("./nope", "src/app.js")
	if err == nil {
		t.Fatal("Resolve() expected error")
	}

	var re *ResolveError
	if !errors.As(err, &re) {
		t.Fatalf("Resolve() error type = %T, want *ResolveError", err)
	}
	if re.Specifier != "./nope" || re.From != "src/app.js" {
		t.Errorf("ResolveError = %+v, want specifier and from preserved", re)
	}
}
