package llvm

import (
	"fmt"

	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"

	"ghostc/internal/types"
)

const (
	memcpyIntrinsic = "llvm.memcpy.p0.p0.i64"
	memcpyDecl      = "declare void @llvm.memcpy.p0.p0.i64(ptr, ptr, i64, i1)"
	pointerSize     = 8
)

// llvmType spells t as an LLVM type; void is allowed.
func llvmType(t types.Type) (string, error) {
	if t.IsVoid() {
		return lltypes.Void.String(), nil
	}
	return llvmValueType(t)
}

// llvmValueType spells the type of a first-class value. Strings, pointers
// and arrays are opaque pointers.
func llvmValueType(t types.Type) (string, error) {
	switch t.Kind {
	case types.KindUndefined:
		return "", ErrUndefinedType
	case types.KindBool:
		return lltypes.I1.String(), nil
	case types.KindInt, types.KindUint:
		return lltypes.NewInt(uint64(t.Width)).String(), nil
	case types.KindFloat:
		ft, err := floatType(t)
		if err != nil {
			return "", err
		}
		return ft.String(), nil
	case types.KindString, types.KindPtr, types.KindArray:
		return "ptr", nil
	default:
		return "", fmt.Errorf("type %s has no value representation", t)
	}
}

func floatType(t types.Type) (*lltypes.FloatType, error) {
	switch t.Width {
	case types.Width32:
		return lltypes.Float, nil
	case types.Width64:
		return lltypes.Double, nil
	}
	return nil, fmt.Errorf("float width %d is not supported", t.Width)
}

// sizeOf returns the allocation size of a value of type t in bytes.
func sizeOf(t types.Type) int {
	switch t.Kind {
	case types.KindBool:
		return 1
	case types.KindInt, types.KindUint, types.KindFloat:
		return int(t.Width) / 8
	default:
		return pointerSize
	}
}

// powIntrinsic registers llvm.pow for the given float spelling.
func (e *Emitter) powIntrinsic(ty string) string {
	suffix := "f64"
	if ty == lltypes.Float.String() {
		suffix = "f32"
	}
	name := "llvm.pow." + suffix
	e.useIntrinsic(name, fmt.Sprintf("declare %s %s(%s, %s)", ty, globalIdent(name), ty, ty))
	return name
}

// localIdent quotes name as a local identifier when it is not a plain one.
func localIdent(name string) string {
	return ir.NewParam(name, lltypes.I8).Ident()
}

func globalIdent(name string) string {
	return ir.NewFunc(name, lltypes.Void).Ident()
}
