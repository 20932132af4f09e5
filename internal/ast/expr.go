package ast

import (
	"ghostc/internal/source"
)

// Expr is any expression node.
type Expr interface {
	Loc() source.Location
	exprNode()
}

// BinaryOp is an arithmetic operator.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota + 1
	OpSub
	OpMul
	OpDiv
	OpPow
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	}
	return "?"
}

// Precedence of op; Pow binds tightest.
func (op BinaryOp) Precedence() int {
	switch op {
	case OpAdd, OpSub:
		return 1
	case OpMul, OpDiv:
		return 2
	case OpPow:
		return 3
	}
	return 0
}

type (
	// IntLit keeps the literal text as written.
	IntLit struct {
		Text     string
		Location source.Location
	}

	FloatLit struct {
		Text     string
		Location source.Location
	}

	// StringLit keeps the raw body between the quotes, escapes undecoded.
	StringLit struct {
		Raw      string
		Location source.Location
	}

	Ident struct {
		Name Name
	}

	Binary struct {
		Op       BinaryOp
		X, Y     Expr
		OpLoc    source.Location
		Location source.Location
	}

	// Neg is unary minus.
	Neg struct {
		X        Expr
		Location source.Location
	}

	Paren struct {
		X        Expr
		Location source.Location
	}

	// FuncLit is `fn(a, b) { ... }`.
	FuncLit struct {
		Fn *FuncNode
	}

	Call struct {
		Callee   Name
		Args     []Expr
		Location source.Location
	}
)

func (e *IntLit) Loc() source.Location    { return e.Location }
func (e *FloatLit) Loc() source.Location  { return e.Location }
func (e *StringLit) Loc() source.Location { return e.Location }
func (e *Ident) Loc() source.Location     { return e.Name.Loc }
func (e *Binary) Loc() source.Location    { return e.Location }
func (e *Neg) Loc() source.Location       { return e.Location }
func (e *Paren) Loc() source.Location     { return e.Location }
func (e *FuncLit) Loc() source.Location   { return e.Fn.Location }
func (e *Call) Loc() source.Location      { return e.Location }

func (*IntLit) exprNode()    {}
func (*FloatLit) exprNode()  {}
func (*StringLit) exprNode() {}
func (*Ident) exprNode()     {}
func (*Binary) exprNode()    {}
func (*Neg) exprNode()       {}
func (*Paren) exprNode()     {}
func (*FuncLit) exprNode()   {}
func (*Call) exprNode()      {}
