package mir

import "ghostc/internal/types"

// ExprKind enumerates the expression alphabet.
type ExprKind uint8

const (
	ExprLiteral ExprKind = iota
	ExprAdd
	ExprMin
	ExprMul
	ExprDiv
	ExprPow
	// ExprLParen and ExprRParen only appear in infix streams.
	ExprLParen
	ExprRParen
)

func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "lit"
	case ExprAdd:
		return "+"
	case ExprMin:
		return "-"
	case ExprMul:
		return "*"
	case ExprDiv:
		return "/"
	case ExprPow:
		return "^"
	case ExprLParen:
		return "("
	case ExprRParen:
		return ")"
	}
	return "?"
}

// Expression is one operator or operand of a stream.
type Expression struct {
	Kind ExprKind
	Lit  Literal // ExprLiteral
}

// Stream is a sequence of expressions: infix while the checker builds it,
// postfix once ShuntingYard ran.
type Stream []Expression

// Op returns an operator token.
func Op(k ExprKind) Expression { return Expression{Kind: k} }

// Lit wraps an operand.
func Lit(l Literal) Expression { return Expression{Kind: ExprLiteral, Lit: l} }

func (e Expression) IsOperator() bool {
	switch e.Kind {
	case ExprAdd, ExprMin, ExprMul, ExprDiv, ExprPow:
		return true
	}
	return false
}

// Precedence: Add/Min < Mul/Div < Pow; 0 for anything else.
func (e Expression) Precedence() int {
	switch e.Kind {
	case ExprAdd, ExprMin:
		return 1
	case ExprMul, ExprDiv:
		return 2
	case ExprPow:
		return 3
	}
	return 0
}

// LitKind enumerates operand kinds.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitIdent
	LitString
	LitCall
)

// Literal is an operand. Value holds the literal text for numbers, the
// name for identifiers and the decoded bytes for strings.
type Literal struct {
	Kind    LitKind
	Type    types.Type
	Value   string
	IsParam bool  // LitIdent
	Call    *Call // LitCall
}

func IntLit(t types.Type, text string) Literal {
	return Literal{Kind: LitInt, Type: t, Value: text}
}

func FloatLit(t types.Type, text string) Literal {
	return Literal{Kind: LitFloat, Type: t, Value: text}
}

func IdentLit(name string, t types.Type, isParam bool) Literal {
	return Literal{Kind: LitIdent, Type: t, Value: name, IsParam: isParam}
}

func StringLit(value string) Literal {
	return Literal{Kind: LitString, Type: types.String, Value: value}
}

func CallLit(c *Call) Literal {
	return Literal{Kind: LitCall, Type: c.Ret, Value: c.Name, Call: c}
}

// CallTarget says where the callee was found.
type CallTarget uint8

const (
	CallLocal CallTarget = iota
	CallExtern
	CallImported
)

func (t CallTarget) String() string {
	switch t {
	case CallLocal:
		return "local"
	case CallExtern:
		return "extern"
	case CallImported:
		return "imported"
	}
	return "?"
}

type Call struct {
	Name string
	// Symbol is the link name of the callee; empty means Name.
	Symbol string
	Target CallTarget
	Args   []Arg
	Ret    types.Type
}

func (c *Call) LinkName() string {
	if c.Symbol != "" {
		return c.Symbol
	}
	return c.Name
}

// Arg is a call argument: a postfix stream and the parameter type it is
// passed as.
type Arg struct {
	Value Stream
	Type  types.Type
}
