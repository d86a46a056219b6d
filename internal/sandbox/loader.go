package sandbox

import (
	"errors"

	"github.com/dop251/goja"

	"github.com/codequest/runbox/internal/workspace"
)

// moduleRecord is one loaded (or loading) module. The record is
// inserted into the cache before its body runs, so a require cycle
// observes the partially populated exports instead of reloading.
type moduleRecord struct {
	module *goja.Object
}

func (r *moduleRecord) exports() goja.Value {
	return r.module.Get("exports")
}

// loader resolves and caches modules for one execution request. It
// lives exactly as long as the request's Context.
type loader struct {
	ctx   *Context
	table *workspace.Table
	cache map[string]*moduleRecord
}

func newLoader(ctx *Context, table *workspace.Table) *loader {
	return &loader{
		ctx:   ctx,
		table: table,
		cache: make(map[string]*moduleRecord),
	}
}

// requireFor builds the require function handed to the module at
// canonical path from. Binding require to the requesting file keeps
// relative resolution anchored there, not at the entry file.
func (l *loader) requireFor(from string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(l.ctx.vm.NewTypeError("require expects a specifier"))
		}
		specifier := call.Arguments[0].String()

		path, err := l.table.Resolve(specifier, from)
		if err != nil {
			panic(l.ctx.vm.NewGoError(err))
		}

		exports, err := l.load(path)
		if err != nil {
			// A thrown JS value propagates as itself so the message the
			// program observes stays verbatim. Interrupts re-raise on
			// the next check since the flag stays set.
			var ex *goja.Exception
			if errors.As(err, &ex) {
				panic(ex)
			}
			panic(l.ctx.vm.NewGoError(err))
		}
		return exports
	}
}

// load returns the exports of the module at a canonical path, executing
// its body at most once per request.
func (l *loader) load(path string) (goja.Value, error) {
	if record, ok := l.cache[path]; ok {
		return record.exports(), nil
	}

	source, ok := l.table.Source(path)
	if !ok {
		// Resolve already checked membership; a miss here is a bug.
		return nil, &workspace.ResolveError{Specifier: path, From: path, Err: workspace.ErrNotFound}
	}

	vm := l.ctx.vm

	module := vm.NewObject()
	if err := module.Set("exports", vm.NewObject()); err != nil {
		return nil, err
	}

	// Register before executing: cycle tolerance.
	record := &moduleRecord{module: module}
	l.cache[path] = record

	prog, err := goja.Compile(path, "(function(module, exports, require) {\n"+source+"\n})", false)
	if err != nil {
		delete(l.cache, path)
		return nil, &CompileError{Err: err}
	}

	release := l.ctx.watchdog.push(l.ctx.cfg.ModuleTimeout)
	defer release()

	val, err := vm.RunProgram(prog)
	if err != nil {
		delete(l.cache, path)
		return nil, err
	}
	body, ok := goja.AssertFunction(val)
	if !ok {
		delete(l.cache, path)
		return nil, &CompileError{Err: errBadModuleWrap}
	}

	if _, err := body(goja.Undefined(),
		module,
		record.exports(),
		vm.ToValue(l.requireFor(path)),
	); err != nil {
		delete(l.cache, path)
		return nil, err
	}

	return record.exports(), nil
}
