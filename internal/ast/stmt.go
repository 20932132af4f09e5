package ast

import (
	"ghostc/internal/diag"
	"ghostc/internal/source"
	"ghostc/internal/types"
)

// Stmt is any statement node.
type Stmt interface {
	Loc() source.Location
	stmtNode()
}

type (
	ExprStmt struct {
		X Expr
	}

	// Var covers `x := e`, `x : T`, `x : T = e` and `x = e`.
	// Value == nil marks a pure declaration.
	Var struct {
		Name     Name
		IsDecl   bool
		Type     *types.Type
		TypeLoc  source.Location
		Value    Expr
		Location source.Location
	}

	// DocComment is a `;text;` comment; Text has the delimiters stripped.
	DocComment struct {
		Text     string
		Location source.Location
	}
)

func (s *ExprStmt) Loc() source.Location   { return s.X.Loc() }
func (s *Var) Loc() source.Location        { return s.Location }
func (s *DocComment) Loc() source.Location { return s.Location }

func (*ExprStmt) stmtNode()   {}
func (*Var) stmtNode()        {}
func (*DocComment) stmtNode() {}

// FuncNode is a function literal: parameter names plus a body.
type FuncNode struct {
	Params   []Name
	Body     []Stmt
	Location source.Location
	// Errors are parse errors raised inside this function; a function with
	// errors is never type-checked.
	Errors []diag.Diagnostic
}
