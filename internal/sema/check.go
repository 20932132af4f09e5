// Package sema type-checks one module against its own declarations and the
// declarations of the modules it imports, and lowers every checked function
// into the middle IR.
//
// Checking never stops at the first problem: diagnostics are accumulated and
// the failing sub-expression degrades to an empty stream, so a single run
// reports as many independent errors as possible. A module with diagnostics
// still gets a mir.Module, but it must not be handed to the code generator.
package sema

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"ghostc/internal/ast"
	"ghostc/internal/diag"
	"ghostc/internal/mir"
	"ghostc/internal/source"
	"ghostc/internal/trace"
	"ghostc/internal/types"
)

// ErrUnresolvedCall means a call target was found neither locally, nor among
// the externs, nor through an import. It is a compiler defect, not a user
// error, and fails the module that hit it.
var ErrUnresolvedCall = errors.New("unresolved call target")

// ModuleSet gives read access to every resolved module of the program.
type ModuleSet interface {
	Module(path string) (*ast.Module, bool)
	// ModuleName qualifies the symbols of the module at path.
	ModuleName(path string) string
	IsEntry(path string) bool
}

// Modules is a plain map implementation of ModuleSet. Names are the paths
// without the extension; the module named "main" is the entry.
type Modules map[string]*ast.Module

func (m Modules) Module(path string) (*ast.Module, bool) {
	mod, ok := m[path]
	return mod, ok
}

func (m Modules) ModuleName(path string) string {
	return filepath.ToSlash(strings.TrimSuffix(path, filepath.Ext(path)))
}

func (m Modules) IsEntry(path string) bool {
	return m.ModuleName(path) == mir.EntryPoint
}

// Check checks mod and lowers it. The returned error is only set for
// internal failures (ErrUnresolvedCall, cancellation); user errors are in
// the diagnostics.
func Check(ctx context.Context, mod *ast.Module, prog ModuleSet) (*mir.Module, []diag.Diagnostic, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeModule, "check "+mod.Path, trace.CurrentSpan(ctx).SpanID)
	defer span.End("")

	if prog == nil {
		prog = Modules{mod.Path: mod}
	}
	tc := &typeChecker{
		ctx:  trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()}),
		mod:  mod,
		prog: prog,
		out:  mir.NewModule(mod.Path),
	}
	tc.out.Name = prog.ModuleName(mod.Path)
	err := tc.run()
	span.WithExtra("diagnostics", fmt.Sprint(len(tc.diags)))
	return tc.out, tc.diags, err
}

type typeChecker struct {
	ctx    context.Context
	mod    *ast.Module
	prog   ModuleSet
	out    *mir.Module
	scopes scopeStack
	diags  []diag.Diagnostic
	// fatal is the first internal error; checking of the module stops there.
	fatal error

	fnName string
}

func (tc *typeChecker) run() error {
	tc.collectExterns()

	for _, name := range sortedKeys(tc.mod.FnDecls) {
		decl := tc.mod.FnDecls[name]
		if _, ok := tc.mod.FnDefns[name]; !ok {
			tc.errorf(diag.SemaMissingDefn, decl.Loc, "Function `%s` is declared but never defined.", name)
		}
	}

	for _, name := range sortedKeys(tc.mod.FnDefns) {
		if err := tc.ctx.Err(); err != nil {
			return err
		}
		defn := tc.mod.FnDefns[name]
		decl, ok := tc.mod.FnDecls[name]
		if !ok {
			tc.errorf(diag.SemaMissingDecl, defn.Loc, "No function declaration found for definition: `%s`", name)
			tc.out.Functions[name] = &mir.Function{Name: name, Symbol: tc.symbol(tc.mod.Path, name), Ret: types.Void, Loc: defn.Loc}
			continue
		}
		fsp := trace.Begin(trace.FromContext(tc.ctx), trace.ScopeNode, "fn "+name, trace.CurrentSpan(tc.ctx).SpanID)
		tc.out.Functions[name] = tc.checkFunction(name, decl, defn)
		fsp.End("")
		if tc.fatal != nil {
			return tc.fatal
		}
	}
	return nil
}

// symbol is the link name of fn defined in the module at path.
func (tc *typeChecker) symbol(path, fn string) string {
	return mir.Symbol(tc.prog.ModuleName(path), fn, tc.prog.IsEntry(path))
}

func (tc *typeChecker) collectExterns() {
	for _, name := range sortedKeys(tc.mod.Externs) {
		ext := tc.mod.Externs[name]
		for _, p := range ext.Params {
			tc.validateType(p.Type, ext.Loc)
		}
		tc.validateType(ext.Ret, ext.Loc)
		tc.out.Externs = append(tc.out.Externs, mir.ExternFunction{
			Name:   name,
			Params: ext.Params,
			Ret:    ext.Ret,
		})
	}
}

// validateType reports types the code generator cannot represent.
func (tc *typeChecker) validateType(t types.Type, loc source.Location) bool {
	switch t.Kind {
	case types.KindCustom, types.KindGeneric, types.KindEnumVariant, types.KindFunc, types.KindExFunc, types.KindUndefined:
		tc.errorf(diag.SemaUnsupportedType, loc, "Type `%s` is not supported here.", t)
		return false
	case types.KindPtr, types.KindArray:
		return t.Elem == nil || tc.validateElem(*t.Elem, loc)
	}
	return true
}

func (tc *typeChecker) validateElem(t types.Type, loc source.Location) bool {
	if t.IsVoid() {
		return true
	}
	return tc.validateType(t, loc)
}

func (tc *typeChecker) errorf(code diag.Code, loc source.Location, format string, args ...any) {
	tc.diags = append(tc.diags, diag.NewError(code, loc, fmt.Sprintf(format, args...)))
}

// internal records the first internal failure.
func (tc *typeChecker) internal(err error) {
	if tc.fatal == nil {
		tc.fatal = err
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
