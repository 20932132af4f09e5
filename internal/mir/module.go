// Package mir is the middle IR: functions whose bodies are flat, typed
// postfix expression streams, ready for a stack-machine code generator.
//
// A Module is built once by the checker and only read afterwards.
package mir

import (
	"sort"

	"ghostc/internal/source"
	"ghostc/internal/types"
)

// EntryPoint is the function the entry module exports unqualified.
const EntryPoint = "main"

// Symbol is the link name of function fn defined in the module named
// module. Every symbol carries its module name, except the entry point of
// the entry module.
func Symbol(module, fn string, entry bool) string {
	if entry && fn == EntryPoint {
		return fn
	}
	return module + "." + fn
}

// Module is the middle IR of one source file.
type Module struct {
	Path string
	// Name qualifies the symbols of the module, e.g. "std/io".
	Name      string
	Functions map[string]*Function
	// Externs are sorted by name.
	Externs []ExternFunction
	// Imported holds signatures of functions defined in other modules and
	// called from this one, keyed by symbol.
	Imported map[string]types.Type
}

func NewModule(path string) *Module {
	return &Module{
		Path:      path,
		Functions: make(map[string]*Function),
		Imported:  make(map[string]types.Type),
	}
}

// FunctionNames returns the local function names in sorted order.
func (m *Module) FunctionNames() []string {
	names := make([]string, 0, len(m.Functions))
	for name := range m.Functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ImportedNames returns the imported symbols in sorted order.
func (m *Module) ImportedNames() []string {
	names := make([]string, 0, len(m.Imported))
	for name := range m.Imported {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type Param struct {
	Name string
	Type types.Type
}

type Function struct {
	Name string
	// Symbol is the link name; empty means Name.
	Symbol string
	Params []Param
	Ret    types.Type
	Block  []Statement
	Loc    source.Location
}

func (f *Function) LinkName() string {
	if f.Symbol != "" {
		return f.Symbol
	}
	return f.Name
}

// Signature returns the function type.
func (f *Function) Signature() types.Type {
	ps := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		ps[i] = p.Type
	}
	return types.Func(ps, f.Ret, false)
}

// ExternFunction is a foreign function resolved at link time.
type ExternFunction struct {
	Name   string
	Params []types.Param
	Ret    types.Type
}

// StmtKind enumerates statement kinds.
type StmtKind uint8

const (
	// StmtExpr evaluates Value; the last one of a function is its result.
	StmtExpr StmtKind = iota
	// StmtVar declares Name and initializes it with Value.
	StmtVar
	// StmtDecl declares Name without a value.
	StmtDecl
	// StmtAssign stores Value into an already declared Name.
	StmtAssign
)

func (k StmtKind) String() string {
	switch k {
	case StmtExpr:
		return "expr"
	case StmtVar:
		return "var"
	case StmtDecl:
		return "decl"
	case StmtAssign:
		return "assign"
	}
	return "stmt?"
}

// Statement is one statement of a function block.
type Statement struct {
	Kind StmtKind
	Name string // Var, Decl, Assign
	Type types.Type
	// Value is a postfix stream.
	Value Stream
	Loc   source.Location
}
