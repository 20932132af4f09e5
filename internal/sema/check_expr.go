package sema

import (
	"ghostc/internal/ast"
	"ghostc/internal/diag"
	"ghostc/internal/mir"
	"ghostc/internal/types"
)

// exprTy types e and lowers it into an infix stream. want is the type the
// context expects, used only to adapt numeric literals. A nil stream means an
// error was reported; the returned type is then the best guess for the
// enclosing expression (Undefined when there is none).
func (tc *typeChecker) exprTy(e ast.Expr, want *types.Type) (mir.Stream, types.Type) {
	switch e := e.(type) {
	case *ast.IntLit:
		lit, ok := tc.intLit(e.Text, false, e, want)
		if !ok {
			return nil, types.Undefined
		}
		return mir.Stream{mir.Lit(lit)}, lit.Type

	case *ast.FloatLit:
		t := types.F64
		if want != nil && want.IsFloat() {
			t = *want
		}
		return mir.Stream{mir.Lit(mir.FloatLit(t, digitsOf(e.Text)))}, t

	case *ast.StringLit:
		s, err := decodeString(e.Raw)
		if err != nil {
			tc.errorf(diag.SemaInvalidLiteral, e.Loc(), "Invalid string literal: %v.", err)
			return nil, types.String
		}
		return mir.Stream{mir.Lit(mir.StringLit(s))}, types.String

	case *ast.Ident:
		return tc.ident(e)

	case *ast.Binary:
		return tc.binary(e, want)

	case *ast.Neg:
		return tc.neg(e, want)

	case *ast.Paren:
		inner, t := tc.exprTy(e.X, want)
		if inner == nil {
			return nil, t
		}
		out := make(mir.Stream, 0, len(inner)+2)
		out = append(out, mir.Op(mir.ExprLParen))
		out = append(out, inner...)
		return append(out, mir.Op(mir.ExprRParen)), t

	case *ast.Call:
		return tc.call(e)

	case *ast.FuncLit:
		tc.errorf(diag.SemaUnsupportedExpr, e.Loc(), "Nested function literals are not supported.")
		return nil, types.Undefined
	}
	tc.errorf(diag.SemaUnsupportedExpr, e.Loc(), "Unsupported expression.")
	return nil, types.Undefined
}

func (tc *typeChecker) ident(e *ast.Ident) (mir.Stream, types.Type) {
	if !e.Name.IsSimple() {
		tc.errorf(diag.SemaUndefinedIdent, e.Loc(), "Identifier `%s` is undefined at this point.", e.Name)
		return nil, types.Undefined
	}
	name := e.Name.Last()
	b, ok := tc.scopes.lookup(name)
	if !ok {
		tc.errorf(diag.SemaUndefinedIdent, e.Loc(), "Identifier `%s` is undefined at this point.", name)
		return nil, types.Undefined
	}
	if b.typ.IsUndefined() {
		// its initializer already failed
		return nil, types.Undefined
	}
	return mir.Stream{mir.Lit(mir.IdentLit(name, b.typ, b.isParam))}, b.typ
}

func (tc *typeChecker) binary(e *ast.Binary, want *types.Type) (mir.Stream, types.Type) {
	var (
		ls, rs mir.Stream
		lt, rt types.Type
	)
	// нетипизированный литерал подстраивается под другую сторону
	if isIntLiteral(e.X) && !isIntLiteral(e.Y) {
		rs, rt = tc.exprTy(e.Y, want)
		ls, lt = tc.exprTy(e.X, nonUndefined(rt, want))
	} else {
		ls, lt = tc.exprTy(e.X, want)
		rs, rt = tc.exprTy(e.Y, nonUndefined(lt, want))
	}

	if ls == nil || rs == nil {
		if !lt.IsUndefined() {
			return nil, lt
		}
		return nil, rt
	}
	if !types.Equal(lt, rt) {
		tc.errorf(diag.SemaTypeMismatch, e.OpLoc, "Cannot `%s %s %s` as these types do not match.", lt, e.Op, rt)
		return nil, types.Undefined
	}
	if !lt.IsNumeric() {
		tc.errorf(diag.SemaTypeMismatch, e.OpLoc, "Operator `%s` is not defined for `%s`.", e.Op, lt)
		return nil, types.Undefined
	}

	out := make(mir.Stream, 0, len(ls)+len(rs)+3)
	out = append(out, ls...)
	out = append(out, mir.Op(opKind(e.Op)))
	// the postfix pass folds equal levels to the left, so a right operand of
	// the same or lower level keeps its grouping through parens
	if y, ok := e.Y.(*ast.Binary); ok && y.Op.Precedence() <= e.Op.Precedence() {
		out = append(out, mir.Op(mir.ExprLParen))
		out = append(out, rs...)
		out = append(out, mir.Op(mir.ExprRParen))
	} else {
		out = append(out, rs...)
	}
	return out, lt
}

func (tc *typeChecker) neg(e *ast.Neg, want *types.Type) (mir.Stream, types.Type) {
	if lit, ok := e.X.(*ast.IntLit); ok {
		l, ok := tc.intLit(lit.Text, true, e, want)
		if !ok {
			return nil, types.Undefined
		}
		return mir.Stream{mir.Lit(l)}, l.Type
	}
	if lit, ok := e.X.(*ast.FloatLit); ok {
		t := types.F64
		if want != nil && want.IsFloat() {
			t = *want
		}
		return mir.Stream{mir.Lit(mir.FloatLit(t, "-"+digitsOf(lit.Text)))}, t
	}

	inner, t := tc.exprTy(e.X, want)
	if inner == nil {
		return nil, t
	}
	var zero mir.Literal
	switch {
	case t.IsInteger():
		zero = mir.IntLit(t, "0")
	case t.IsFloat():
		zero = mir.FloatLit(t, "0.0")
	default:
		tc.errorf(diag.SemaTypeMismatch, e.Loc(), "Cannot negate a value of type `%s`.", t)
		return nil, types.Undefined
	}
	// -x  =>  (0 - x)
	out := make(mir.Stream, 0, len(inner)+4)
	out = append(out, mir.Op(mir.ExprLParen), mir.Lit(zero), mir.Op(mir.ExprMin))
	out = append(out, inner...)
	return append(out, mir.Op(mir.ExprRParen)), t
}

// intLit types an integer literal: i32 unless the context wants another
// integer type; a float context turns it into a float literal.
func (tc *typeChecker) intLit(text string, negative bool, at ast.Expr, want *types.Type) (mir.Literal, bool) {
	text = digitsOf(text)
	if negative {
		text = "-" + text
	}
	t := types.I32
	if want != nil {
		switch {
		case want.IsInteger():
			t = *want
		case want.IsFloat():
			return mir.FloatLit(*want, text+".0"), true
		}
	}
	if !intFits(text, t) {
		tc.errorf(diag.SemaInvalidLiteral, at.Loc(), "Integer literal `%s` does not fit in `%s`.", text, t)
		return mir.Literal{}, false
	}
	return mir.IntLit(t, text), true
}

func isIntLiteral(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.IntLit:
		return true
	case *ast.Neg:
		return isIntLiteral(e.X)
	case *ast.Paren:
		return isIntLiteral(e.X)
	}
	return false
}

func nonUndefined(t types.Type, fallback *types.Type) *types.Type {
	if t.IsUndefined() {
		return fallback
	}
	return &t
}

func opKind(op ast.BinaryOp) mir.ExprKind {
	switch op {
	case ast.OpAdd:
		return mir.ExprAdd
	case ast.OpSub:
		return mir.ExprMin
	case ast.OpMul:
		return mir.ExprMul
	case ast.OpDiv:
		return mir.ExprDiv
	case ast.OpPow:
		return mir.ExprPow
	}
	return mir.ExprAdd
}
