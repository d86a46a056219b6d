package sandbox

import (
	"strings"
	"testing"
	"time"

	"github.com/codequest/runbox/internal/types"
	"github.com/codequest/runbox/internal/workspace"
)

func testConfig() Config {
	return Config{
		ExecTimeout:      2 * time.Second,
		BootstrapTimeout: 1500 * time.Millisecond,
		ModuleTimeout:    time.Second,
		MaxCallStack:     1024,
	}
}

func newTestContext(t *testing.T, input string) *Context {
	t.Helper()
	ctx, err := NewContext(testConfig(), input)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	t.Cleanup(ctx.Close)
	return ctx
}

func TestRunCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name: "return value",
			code: "return 42;",
			want: "42",
		},
		{
			name: "undefined return is empty",
			code: "var x = 1;",
			want: "",
		},
		{
			name: "await resolves",
			code: "return await Promise.resolve('done');",
			want: "done",
		},
		{
			name:  "input binding",
			code:  "return input;",
			input: "stdin text",
			want:  "stdin text",
		},
		{
			name:  "input cannot be reassigned",
			code:  "input = 'clobbered'; return input;",
			input: "original",
			want:  "original",
		},
		{
			name:    "throw surfaces as error",
			code:    "throw new Error('boom');",
			wantErr: true,
		},
		{
			name:    "syntax error fails to compile",
			code:    "function {",
			wantErr: true,
		},
		{
			name:    "require is not ambient",
			code:    "require('fs');",
			wantErr: true,
		},
		{
			name:    "process is not ambient",
			code:    "return process.exit(1);",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext(t, tt.input)
			got, err := ctx.RunCode(tt.code)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RunCode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("RunCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConsoleCaptureOrder(t *testing.T) {
	ctx := newTestContext(t, "")

	_, err := ctx.RunCode("console.log('a', 1); console.warn('b'); console.error('c');")
	if err != nil {
		t.Fatalf("RunCode() error = %v", err)
	}

	want := []string{"a 1", "b", "c"}
	got := ctx.ConsoleLines()
	if len(got) != len(want) {
		t.Fatalf("ConsoleLines() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestConsolePreservedOnFault(t *testing.T) {
	ctx := newTestContext(t, "")

	_, err := ctx.RunCode("console.log('before'); throw new Error('boom');")
	if err == nil {
		t.Fatal("RunCode() expected error")
	}
	if msg := ErrorMessage(err); msg != "boom" {
		t.Errorf("ErrorMessage() = %q, want %q", msg, "boom")
	}

	lines := ctx.ConsoleLines()
	if len(lines) != 1 || lines[0] != "before" {
		t.Errorf("ConsoleLines() = %v, want [before]", lines)
	}
}

func TestRunCodePendingPromiseSettlesEmpty(t *testing.T) {
	// A promise that never settles can make no further progress once the
	// unit returns; it completes with empty output, keeping whatever the
	// program logged first.
	ctx := newTestContext(t, "")

	got, err := ctx.RunCode("console.log('started'); return await new Promise(function() {});")
	if err != nil {
		t.Fatalf("RunCode() error = %v", err)
	}
	if got != "" {
		t.Errorf("RunCode() = %q, want empty output", got)
	}

	lines := ctx.ConsoleLines()
	if len(lines) != 1 || lines[0] != "started" {
		t.Errorf("ConsoleLines() = %v, want [started]", lines)
	}
}

func TestRunCodeRejectedPromiseSurfacesMessage(t *testing.T) {
	ctx := newTestContext(t, "")

	_, err := ctx.RunCode("return await Promise.reject(new Error('sunk'));")
	if err == nil {
		t.Fatal("RunCode() expected rejection")
	}
	if msg := ErrorMessage(err); msg != "sunk" {
		t.Errorf("ErrorMessage() = %q, want %q", msg, "sunk")
	}
}

func TestBudgetInterruptsBusyLoop(t *testing.T) {
	cfg := Config{
		ExecTimeout:      300 * time.Millisecond,
		BootstrapTimeout: 200 * time.Millisecond,
		ModuleTimeout:    100 * time.Millisecond,
		MaxCallStack:     1024,
	}
	ctx, err := NewContext(cfg, "")
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	defer ctx.Close()

	start := time.Now()
	_, err = ctx.RunCode("while (true) {}")
	elapsed := time.Since(start)

	if !IsTimeout(err) {
		t.Fatalf("RunCode() error = %v, want budget interrupt", err)
	}
	if elapsed > 2*time.Second {
		t.Errorf("RunCode() took %v, interrupt did not fire promptly", elapsed)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "default ok", cfg: DefaultConfig()},
		{
			name: "zero budget",
			cfg: Config{
				ExecTimeout: 0, BootstrapTimeout: time.Second, ModuleTimeout: time.Second,
			},
			wantErr: true,
		},
		{
			name: "inverted ordering",
			cfg: Config{
				ExecTimeout:      time.Second,
				BootstrapTimeout: 2 * time.Second,
				ModuleTimeout:    time.Second / 2,
			},
			wantErr: true,
		},
		{
			name: "module budget not smallest",
			cfg: Config{
				ExecTimeout:      3 * time.Second,
				BootstrapTimeout: time.Second,
				ModuleTimeout:    time.Second,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func workspaceTable(t *testing.T, entry string, files map[string]string) *workspace.Table {
	t.Helper()
	var list []types.WorkspaceFile
	for path, content := range files {
		list = append(list, types.WorkspaceFile{Path: path, Content: content})
	}
	table, err := workspace.NewTable(list, entry)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return table
}

func TestRunWorkspaceEntryInvoked(t *testing.T) {
	ctx := newTestContext(t, "")
	table := workspaceTable(t, "main.js", map[string]string{
		"main.js": "module.exports = function() { return 'ran'; };",
	})

	got, err := ctx.RunWorkspace(table)
	if err != nil {
		t.Fatalf("RunWorkspace() error = %v", err)
	}
	if got != "ran" {
		t.Errorf("RunWorkspace() = %q, want %q", got, "ran")
	}
}

func TestRunWorkspaceDefaultExport(t *testing.T) {
	ctx := newTestContext(t, "")
	table := workspaceTable(t, "main.js", map[string]string{
		"main.js": "module.exports = { default: function() { return 'via default'; } };",
	})

	got, err := ctx.RunWorkspace(table)
	if err != nil {
		t.Fatalf("RunWorkspace() error = %v", err)
	}
	if got != "via default" {
		t.Errorf("RunWorkspace() = %q, want %q", got, "via default")
	}
}

func TestRunWorkspaceNonInvocableExport(t *testing.T) {
	ctx := newTestContext(t, "")
	table := workspaceTable(t, "main.js", map[string]string{
		"main.js": "module.exports = { answer: 42 };",
	})

	got, err := ctx.RunWorkspace(table)
	if err != nil {
		t.Fatalf("RunWorkspace() error = %v", err)
	}
	if got != "" {
		t.Errorf("RunWorkspace() = %q, want empty output", got)
	}
}

func TestRunWorkspaceRequireChain(t *testing.T) {
	ctx := newTestContext(t, "")
	table := workspaceTable(t, "main.js", map[string]string{
		"main.js": "const {add} = require('./lib'); console.log(add(2,3));",
		"lib.js":  "module.exports = { add: (a,b) => a+b };",
	})

	if _, err := ctx.RunWorkspace(table); err != nil {
		t.Fatalf("RunWorkspace() error = %v", err)
	}

	lines := ctx.ConsoleLines()
	if len(lines) != 1 || lines[0] != "5" {
		t.Errorf("ConsoleLines() = %v, want [5]", lines)
	}
}

func TestRunWorkspaceNestedRelativeResolution(t *testing.T) {
	// util is required from inside src/, so its specifier resolves
	// against the requesting file, not the entry file.
	ctx := newTestContext(t, "")
	table := workspaceTable(t, "main.js", map[string]string{
		"main.js":             "const app = require('./src/app'); console.log(app());",
		"src/app.js":          "const s = require('./util/strings'); module.exports = () => s.shout('hi');",
		"src/util/strings.js": "module.exports = { shout: (x) => x.toUpperCase() };",
	})

	if _, err := ctx.RunWorkspace(table); err != nil {
		t.Fatalf("RunWorkspace() error = %v", err)
	}

	lines := ctx.ConsoleLines()
	if len(lines) != 1 || lines[0] != "HI" {
		t.Errorf("ConsoleLines() = %v, want [HI]", lines)
	}
}

func TestRunWorkspaceEscapeDenied(t *testing.T) {
	ctx := newTestContext(t, "")
	table := workspaceTable(t, "src/main.js", map[string]string{
		"src/main.js": "require('../../escape');",
	})

	_, err := ctx.RunWorkspace(table)
	if err == nil {
		t.Fatal("RunWorkspace() expected access denied")
	}
	if !strings.Contains(err.Error(), "denied") {
		t.Errorf("RunWorkspace() error = %v, want access denied", err)
	}
}

func TestRunWorkspaceModuleLoadedOnce(t *testing.T) {
	// Two sibling modules require the same dependency; the shared
	// counter increments once and both see the same exports object.
	ctx := newTestContext(t, "")
	table := workspaceTable(t, "main.js", map[string]string{
		"main.js":   "const a = require('./a'); const b = require('./b'); console.log(a.dep === b.dep); console.log(a.dep.loads);",
		"a.js":      "module.exports = { dep: require('./shared') };",
		"b.js":      "module.exports = { dep: require('./shared') };",
		"shared.js": "exports.loads = (exports.loads || 0) + 1;",
	})

	if _, err := ctx.RunWorkspace(table); err != nil {
		t.Fatalf("RunWorkspace() error = %v", err)
	}

	lines := ctx.ConsoleLines()
	if len(lines) != 2 || lines[0] != "true" || lines[1] != "1" {
		t.Errorf("ConsoleLines() = %v, want [true 1]", lines)
	}
}

func TestRunWorkspaceCycleTolerated(t *testing.T) {
	// a requires b which requires a back; b observes a's partial
	// exports instead of recursing.
	ctx := newTestContext(t, "")
	table := workspaceTable(t, "a.js", map[string]string{
		"a.js": "exports.early = 'from a'; const b = require('./b'); console.log(b.seen);",
		"b.js": "const a = require('./a'); module.exports = { seen: a.early };",
	})

	if _, err := ctx.RunWorkspace(table); err != nil {
		t.Fatalf("RunWorkspace() error = %v", err)
	}

	lines := ctx.ConsoleLines()
	if len(lines) != 1 || lines[0] != "from a" {
		t.Errorf("ConsoleLines() = %v, want [from a]", lines)
	}
}

func TestRunWorkspaceInterleavedConsole(t *testing.T) {
	ctx := newTestContext(t, "")
	table := workspaceTable(t, "main.js", map[string]string{
		"main.js": "console.log('entry:1'); const lib = require('./lib'); console.log('entry:2'); lib.speak();",
		"lib.js":  "console.log('lib:load'); module.exports = { speak: () => console.log('lib:speak') };",
	})

	if _, err := ctx.RunWorkspace(table); err != nil {
		t.Fatalf("RunWorkspace() error = %v", err)
	}

	want := []string{"entry:1", "lib:load", "entry:2", "lib:speak"}
	got := ctx.ConsoleLines()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("ConsoleLines() = %v, want %v", got, want)
	}
}
