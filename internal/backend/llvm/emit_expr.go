package llvm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/llir/llvm/ir/constant"

	"ghostc/internal/mir"
	"ghostc/internal/types"
)

// value is an SSA register or an immediate constant. ref is empty for void.
type value struct {
	ref string
	typ types.Type
}

// emitStream evaluates a postfix stream. Operands are materialized as they
// are pushed, so calls run left to right regardless of grouping.
func (fe *funcEmitter) emitStream(s mir.Stream) (value, error) {
	if len(s) == 0 {
		return value{}, fmt.Errorf("empty expression stream")
	}
	stack := make([]value, 0, len(s))
	for i := range s {
		ex := &s[i]
		if !ex.IsOperator() {
			if ex.Kind != mir.ExprLiteral {
				return value{}, fmt.Errorf("unexpected %s in postfix stream", ex.Kind)
			}
			v, err := fe.emitLiteral(&ex.Lit)
			if err != nil {
				return value{}, err
			}
			stack = append(stack, v)
			continue
		}
		if len(stack) < 2 {
			return value{}, fmt.Errorf("operator %s is missing an operand", ex.Kind)
		}
		lhs, rhs := stack[len(stack)-2], stack[len(stack)-1]
		stack = stack[:len(stack)-2]
		v, err := fe.emitBinary(ex.Kind, lhs, rhs)
		if err != nil {
			return value{}, err
		}
		stack = append(stack, v)
	}
	if len(stack) != 1 {
		return value{}, fmt.Errorf("stream leaves %d values", len(stack))
	}
	return stack[0], nil
}

func (fe *funcEmitter) emitLiteral(lit *mir.Literal) (value, error) {
	if lit.Type.IsUndefined() {
		return value{}, fmt.Errorf("%s: %w", lit.Value, ErrUndefinedType)
	}
	switch lit.Kind {
	case mir.LitInt:
		return value{ref: lit.Value, typ: lit.Type}, nil
	case mir.LitFloat:
		return fe.emitFloatConst(lit)
	case mir.LitString:
		return fe.emitStringConst(lit.Value), nil
	case mir.LitIdent:
		return fe.emitIdent(lit)
	case mir.LitCall:
		return fe.emitCall(lit.Call)
	default:
		return value{}, fmt.Errorf("unknown literal kind %d", lit.Kind)
	}
}

func (fe *funcEmitter) emitFloatConst(lit *mir.Literal) (value, error) {
	ft, err := floatType(lit.Type)
	if err != nil {
		return value{}, err
	}
	x, err := strconv.ParseFloat(lit.Value, 64)
	if err != nil {
		return value{}, fmt.Errorf("float literal %q: %w", lit.Value, err)
	}
	return value{ref: constant.NewFloat(ft, x).Ident(), typ: lit.Type}, nil
}

// emitStringConst yields the address of the module-level constant holding
// the NUL-terminated bytes of s.
func (fe *funcEmitter) emitStringConst(s string) value {
	return value{ref: fe.emitter.stringGlobal(s).Ident(), typ: types.String}
}

func (fe *funcEmitter) emitIdent(lit *mir.Literal) (value, error) {
	if lit.IsParam {
		reg, ok := fe.params[lit.Value]
		if !ok {
			return value{}, fmt.Errorf("unknown parameter %s", lit.Value)
		}
		return value{ref: reg, typ: lit.Type}, nil
	}
	ty, err := llvmValueType(lit.Type)
	if err != nil {
		return value{}, fmt.Errorf("variable %s: %w", lit.Value, err)
	}
	slot, err := fe.loadSlot(lit.Value)
	if err != nil {
		return value{}, err
	}
	tmp := fe.nextTemp()
	fe.line("%s = load %s, ptr %s", tmp, ty, slot)
	if lit.Type.Kind != types.KindString {
		return value{ref: tmp, typ: lit.Type}, nil
	}
	ptr := fe.nextTemp()
	fe.line("%s = getelementptr inbounds i8, ptr %s, i64 0", ptr, tmp)
	return value{ref: ptr, typ: lit.Type}, nil
}

func (fe *funcEmitter) emitCall(c *mir.Call) (value, error) {
	if c == nil {
		return value{}, fmt.Errorf("nil call")
	}
	retTy, err := llvmType(c.Ret)
	if err != nil {
		return value{}, fmt.Errorf("call %s: %w", c.Name, err)
	}
	args := make([]string, 0, len(c.Args))
	for i := range c.Args {
		arg := &c.Args[i]
		ty, err := llvmValueType(arg.Type)
		if err != nil {
			return value{}, fmt.Errorf("call %s: argument %d: %w", c.Name, i, err)
		}
		v, err := fe.emitArg(arg, ty)
		if err != nil {
			return value{}, fmt.Errorf("call %s: argument %d: %w", c.Name, i, err)
		}
		args = append(args, ty+" "+v.ref)
	}
	callee := globalIdent(c.LinkName())
	if c.Ret.IsVoid() {
		fe.line("call void %s(%s)", callee, strings.Join(args, ", "))
		return value{typ: types.Void}, nil
	}
	tmp := fe.nextTemp()
	fe.line("%s = call %s %s(%s)", tmp, retTy, callee, strings.Join(args, ", "))
	return value{ref: tmp, typ: c.Ret}, nil
}

// emitArg passes a local variable of a value type as a fresh copy; every
// other argument is evaluated in place.
func (fe *funcEmitter) emitArg(arg *mir.Arg, ty string) (value, error) {
	if len(arg.Value) != 1 || arg.Type.IsPointerLike() {
		return fe.emitStream(arg.Value)
	}
	lit := &arg.Value[0].Lit
	if arg.Value[0].Kind != mir.ExprLiteral || lit.Kind != mir.LitIdent || lit.IsParam {
		return fe.emitStream(arg.Value)
	}
	src, err := fe.loadSlot(lit.Value)
	if err != nil {
		return value{}, err
	}
	cp := fe.nextTemp()
	fe.line("%s = alloca %s", cp, ty)
	fe.line("call void %s(ptr %s, ptr %s, i64 %d, i1 false)", globalIdent(memcpyIntrinsic), cp, src, sizeOf(arg.Type))
	fe.emitter.useIntrinsic(memcpyIntrinsic, memcpyDecl)
	tmp := fe.nextTemp()
	fe.line("%s = load %s, ptr %s", tmp, ty, cp)
	return value{ref: tmp, typ: arg.Type}, nil
}

func (fe *funcEmitter) emitBinary(op mir.ExprKind, lhs, rhs value) (value, error) {
	if !types.Equal(lhs.typ, rhs.typ) {
		return value{}, fmt.Errorf("operands of %s differ: %s and %s", op, lhs.typ, rhs.typ)
	}
	t := lhs.typ
	if !t.IsNumeric() {
		return value{}, fmt.Errorf("operator %s on %s", op, t)
	}
	if op == mir.ExprPow {
		return fe.emitPow(lhs, rhs)
	}
	ty, err := llvmValueType(t)
	if err != nil {
		return value{}, err
	}
	inst, err := binaryInst(op, t)
	if err != nil {
		return value{}, err
	}
	tmp := fe.nextTemp()
	fe.line("%s = %s %s %s, %s", tmp, inst, ty, lhs.ref, rhs.ref)
	return value{ref: tmp, typ: t}, nil
}

func binaryInst(op mir.ExprKind, t types.Type) (string, error) {
	float := t.IsFloat()
	switch op {
	case mir.ExprAdd:
		if float {
			return "fadd", nil
		}
		return "add", nil
	case mir.ExprMin:
		if float {
			return "fsub", nil
		}
		return "sub", nil
	case mir.ExprMul:
		if float {
			return "fmul", nil
		}
		return "mul", nil
	case mir.ExprDiv:
		switch {
		case float:
			return "fdiv", nil
		case t.Kind == types.KindUint:
			return "udiv", nil
		default:
			return "sdiv", nil
		}
	}
	return "", fmt.Errorf("unsupported operator %s", op)
}

// emitPow calls llvm.pow; integer operands round-trip through double.
func (fe *funcEmitter) emitPow(lhs, rhs value) (value, error) {
	t := lhs.typ
	ty, err := llvmValueType(t)
	if err != nil {
		return value{}, err
	}
	if t.IsFloat() {
		name := fe.emitter.powIntrinsic(ty)
		tmp := fe.nextTemp()
		fe.line("%s = call %s %s(%s %s, %s %s)", tmp, ty, globalIdent(name), ty, lhs.ref, ty, rhs.ref)
		return value{ref: tmp, typ: t}, nil
	}

	toFP, fromFP := "sitofp", "fptosi"
	if t.Kind == types.KindUint {
		toFP, fromFP = "uitofp", "fptoui"
	}
	a := fe.nextTemp()
	fe.line("%s = %s %s %s to double", a, toFP, ty, lhs.ref)
	b := fe.nextTemp()
	fe.line("%s = %s %s %s to double", b, toFP, ty, rhs.ref)
	name := fe.emitter.powIntrinsic("double")
	r := fe.nextTemp()
	fe.line("%s = call double %s(double %s, double %s)", r, globalIdent(name), a, b)
	out := fe.nextTemp()
	fe.line("%s = %s double %s to %s", out, fromFP, r, ty)
	return value{ref: out, typ: t}, nil
}
