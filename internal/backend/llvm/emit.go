// Package llvm lowers middle IR modules to LLVM textual IR.
//
// Every variable lives on the GC heap: a variable is an alloca'd cell that
// holds a pointer returned by GC_malloc. String literals are private
// module constants. Expression streams are evaluated
// with an operand stack, one instruction per operator.
package llvm

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"

	"ghostc/internal/mir"
	"ghostc/internal/types"
)

// ErrUndefinedType is returned when a placeholder type left by a failed
// check reaches code generation.
var ErrUndefinedType = errors.New("undefined type reached code generation")

const gcMalloc = "GC_malloc"

type Emitter struct {
	mod  *mir.Module
	buf  strings.Builder
	body strings.Builder
	// intrinsics maps an intrinsic name to its declaration.
	intrinsics map[string]string
	// strs holds string constants in order of first use; byValue dedups them.
	strs    []*ir.Global
	byValue map[string]*ir.Global
}

type funcEmitter struct {
	emitter *Emitter
	f       *mir.Function
	tmpID   int
	cellID  int
	params  map[string]string
	cells   map[string]string
}

// Generate renders mod as LLVM textual IR. The output is a pure function
// of the module: declarations and definitions are emitted in name order.
func Generate(mod *mir.Module) (string, error) {
	if mod == nil {
		return "", nil
	}
	e := &Emitter{
		mod:        mod,
		intrinsics: make(map[string]string),
		byValue:    make(map[string]*ir.Global),
	}
	if err := e.emitFunctions(); err != nil {
		return "", err
	}
	e.emitPreamble()
	if err := e.emitDecls(); err != nil {
		return "", err
	}
	e.emitStrings()
	e.buf.WriteString(e.body.String())
	return e.buf.String(), nil
}

func (e *Emitter) emitPreamble() {
	fmt.Fprintf(&e.buf, "; ModuleID = '%s'\n\n", e.mod.Path)
}

// emitDecls writes the allocator, the intrinsics the bodies used, the
// externs and the imported functions.
func (e *Emitter) emitDecls() error {
	fmt.Fprintf(&e.buf, "declare ptr %s(i64)\n", globalIdent(gcMalloc))

	names := make([]string, 0, len(e.intrinsics))
	for name := range e.intrinsics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		e.buf.WriteString(e.intrinsics[name])
		e.buf.WriteString("\n")
	}

	externs := append([]mir.ExternFunction(nil), e.mod.Externs...)
	sort.Slice(externs, func(i, j int) bool { return externs[i].Name < externs[j].Name })
	for _, ext := range externs {
		params := make([]types.Type, len(ext.Params))
		for i, p := range ext.Params {
			params[i] = p.Type
		}
		if err := e.emitDeclare(ext.Name, params, ext.Ret); err != nil {
			return fmt.Errorf("extern %s: %w", ext.Name, err)
		}
	}

	for _, name := range e.mod.ImportedNames() {
		sig := e.mod.Imported[name]
		if err := e.emitDeclare(name, sig.ParamTypes(), sig.Result()); err != nil {
			return fmt.Errorf("import %s: %w", name, err)
		}
	}
	e.buf.WriteString("\n")
	return nil
}

func (e *Emitter) emitDeclare(name string, params []types.Type, ret types.Type) error {
	retTy, err := llvmType(ret)
	if err != nil {
		return err
	}
	paramTys := make([]string, len(params))
	for i, p := range params {
		if paramTys[i], err = llvmValueType(p); err != nil {
			return err
		}
	}
	fmt.Fprintf(&e.buf, "declare %s %s(%s)\n", retTy, globalIdent(name), strings.Join(paramTys, ", "))
	return nil
}

func (e *Emitter) emitFunctions() error {
	for i, name := range e.mod.FunctionNames() {
		if i > 0 {
			e.body.WriteString("\n")
		}
		if err := e.emitFunction(e.mod.Functions[name]); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// stringGlobal returns the private constant holding s, creating it on first
// use. Constants outlive every frame, so a string may be returned or stored.
func (e *Emitter) stringGlobal(s string) *ir.Global {
	if g, ok := e.byValue[s]; ok {
		return g
	}
	g := ir.NewGlobalDef(fmt.Sprintf(".str.%d", len(e.strs)), constant.NewCharArrayFromString(s+"\x00"))
	g.Linkage = enum.LinkagePrivate
	g.UnnamedAddr = enum.UnnamedAddrUnnamedAddr
	g.Immutable = true
	e.strs = append(e.strs, g)
	e.byValue[s] = g
	return g
}

func (e *Emitter) emitStrings() {
	if len(e.strs) == 0 {
		return
	}
	for _, g := range e.strs {
		e.buf.WriteString(g.LLString())
		e.buf.WriteString("\n")
	}
	e.buf.WriteString("\n")
}

func (e *Emitter) useIntrinsic(name, decl string) {
	e.intrinsics[name] = decl
}
