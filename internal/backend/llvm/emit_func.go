package llvm

import (
	"fmt"
	"strings"

	"ghostc/internal/mir"
	"ghostc/internal/types"
)

func (e *Emitter) emitFunction(f *mir.Function) error {
	if f == nil {
		return nil
	}
	retTy, err := llvmType(f.Ret)
	if err != nil {
		return err
	}
	fe := &funcEmitter{
		emitter: e,
		f:       f,
		params:  make(map[string]string, len(f.Params)),
		cells:   make(map[string]string),
	}
	params := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		ty, err := llvmValueType(p.Type)
		if err != nil {
			return fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		reg := localIdent("p." + p.Name)
		fe.params[p.Name] = reg
		params = append(params, ty+" "+reg)
	}
	fmt.Fprintf(&e.body, "define %s %s(%s) {\nentry:\n", retTy, globalIdent(f.LinkName()), strings.Join(params, ", "))

	var (
		last      value
		hasResult bool
	)
	for i := range f.Block {
		st := &f.Block[i]
		v, err := fe.emitStatement(st)
		if err != nil {
			return fmt.Errorf("statement %d (%s): %w", i, st.Kind, err)
		}
		last, hasResult = v, st.Kind == mir.StmtExpr
	}
	if err := fe.emitReturn(last, hasResult); err != nil {
		return err
	}
	e.body.WriteString("}\n")
	return nil
}

func (fe *funcEmitter) emitReturn(last value, hasResult bool) error {
	if fe.f.Ret.IsVoid() {
		fe.line("ret void")
		return nil
	}
	if !hasResult || !types.Equal(last.typ, fe.f.Ret) {
		return fmt.Errorf("function %s does not end with a value of type %s", fe.f.Name, fe.f.Ret)
	}
	ty, err := llvmValueType(fe.f.Ret)
	if err != nil {
		return err
	}
	fe.line("ret %s %s", ty, last.ref)
	return nil
}

func (fe *funcEmitter) emitStatement(st *mir.Statement) (value, error) {
	switch st.Kind {
	case mir.StmtExpr:
		return fe.emitStream(st.Value)
	case mir.StmtVar:
		v, err := fe.emitStream(st.Value)
		if err != nil {
			return value{}, err
		}
		return value{}, fe.emitCell(st.Name, st.Type, &v)
	case mir.StmtDecl:
		return value{}, fe.emitCell(st.Name, st.Type, nil)
	case mir.StmtAssign:
		v, err := fe.emitStream(st.Value)
		if err != nil {
			return value{}, err
		}
		return value{}, fe.emitStore(st.Name, st.Type, v)
	default:
		return value{}, fmt.Errorf("unknown statement kind %d", st.Kind)
	}
}

// emitCell materializes a variable: a stack cell pointing at fresh GC
// storage. A later statement for the same name gets a new cell.
func (fe *funcEmitter) emitCell(name string, t types.Type, init *value) error {
	ty, err := llvmValueType(t)
	if err != nil {
		return fmt.Errorf("variable %s: %w", name, err)
	}
	cell := localIdent(fmt.Sprintf("%s.%d", name, fe.cellID))
	fe.cellID++
	fe.line("%s = alloca ptr", cell)
	mem := fe.nextTemp()
	fe.line("%s = call ptr %s(i64 %d)", mem, globalIdent(gcMalloc), sizeOf(t))
	if init != nil {
		fe.line("store %s %s, ptr %s", ty, init.ref, mem)
	}
	fe.line("store ptr %s, ptr %s", mem, cell)
	fe.cells[name] = cell
	return nil
}

func (fe *funcEmitter) emitStore(name string, t types.Type, v value) error {
	ty, err := llvmValueType(t)
	if err != nil {
		return fmt.Errorf("variable %s: %w", name, err)
	}
	slot, err := fe.loadSlot(name)
	if err != nil {
		return err
	}
	fe.line("store %s %s, ptr %s", ty, v.ref, slot)
	return nil
}

// loadSlot returns the heap address currently bound to a local variable.
func (fe *funcEmitter) loadSlot(name string) (string, error) {
	cell, ok := fe.cells[name]
	if !ok {
		return "", fmt.Errorf("variable %s has no storage", name)
	}
	slot := fe.nextTemp()
	fe.line("%s = load ptr, ptr %s", slot, cell)
	return slot, nil
}

func (fe *funcEmitter) nextTemp() string {
	name := fmt.Sprintf("%%t%d", fe.tmpID)
	fe.tmpID++
	return name
}

func (fe *funcEmitter) line(format string, args ...any) {
	fe.emitter.body.WriteString("  ")
	fmt.Fprintf(&fe.emitter.body, format, args...)
	fe.emitter.body.WriteString("\n")
}
