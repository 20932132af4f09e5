package ast

import (
	"ghostc/internal/source"
	"ghostc/internal/types"
)

// ImportKind distinguishes whole-module imports from single symbols.
type ImportKind uint8

const (
	ImportModule ImportKind = iota + 1
	ImportSymbol
)

func (k ImportKind) String() string {
	switch k {
	case ImportModule:
		return "module"
	case ImportSymbol:
		return "symbol"
	}
	return "unknown"
}

// ImportKey routes cross-module call resolution.
type ImportKey struct {
	Kind ImportKind
	Name string
}

// ModuleKey builds a key for a whole-module import.
func ModuleKey(dotted string) ImportKey { return ImportKey{Kind: ImportModule, Name: dotted} }

// SymbolKey builds a key for a single imported function.
func SymbolKey(name string) ImportKey { return ImportKey{Kind: ImportSymbol, Name: name} }

// FnDecl is `name : fn(T, ...) R`.
type FnDecl struct {
	Name Name
	Type types.Type
	Loc  source.Location
	Docs []string
}

// FnDefn is `name = fn(a, ...) { ... }`.
type FnDefn struct {
	Name Name
	Fn   *FuncNode
	Loc  source.Location
	Docs []string
}

// Extern is `name : extern fn(p: T, ...) R`.
type Extern struct {
	Name   Name
	Params []types.Param
	Ret    types.Type
	Loc    source.Location
	Docs   []string
}

// Signature returns the extern as an ExFunc type.
func (e Extern) Signature() types.Type {
	return types.ExFunc(e.Params, e.Ret)
}

// Module is one parsed source file.
type Module struct {
	// Path is the resolved file path; it keys the program's module map.
	Path string
	File source.FileID
	// Imports maps each import key to the resolved file path ("" if unresolved).
	Imports    map[ImportKey]string
	ImportLocs map[ImportKey]source.Location
	FnDecls    map[string]FnDecl
	FnDefns    map[string]FnDefn
	Externs    map[string]Extern
}

// NewModule returns a module with all maps allocated.
func NewModule(path string, file source.FileID) *Module {
	return &Module{
		Path:       path,
		File:       file,
		Imports:    make(map[ImportKey]string),
		ImportLocs: make(map[ImportKey]source.Location),
		FnDecls:    make(map[string]FnDecl),
		FnDefns:    make(map[string]FnDefn),
		Externs:    make(map[string]Extern),
	}
}
