// Package types defines TypeValue, the closed set of types the checker
// reasons about. Equality is structural.
package types

import (
	"fmt"
	"strings"
)

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	// KindUndefined is the checker's placeholder for "not determinable after an
	// earlier error". It must never reach code generation.
	KindUndefined Kind = iota
	KindVoid
	KindBool
	KindString
	KindInt
	KindUint
	KindFloat
	KindPtr
	KindArray
	KindGeneric
	KindFunc
	KindExFunc
	KindCustom
	KindEnumVariant
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindPtr:
		return "ptr"
	case KindArray:
		return "array"
	case KindGeneric:
		return "generic"
	case KindFunc:
		return "fn"
	case KindExFunc:
		return "extern fn"
	case KindCustom:
		return "custom"
	case KindEnumVariant:
		return "enum variant"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width captures the precision of integers/floats.
type Width uint8

const (
	WidthAny Width = 0
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
	Width128 Width = 128
)

// Param is a named parameter of an extern signature.
type Param struct {
	Name string
	Type Type
}

// Type is a TypeValue.
type Type struct {
	Kind   Kind
	Width  Width   // Int, Uint, Float
	Elem   *Type   // Ptr, Array, Generic
	Params []Type  // Func
	Named  []Param // ExFunc
	Ret    *Type   // Func, ExFunc
	Extern bool    // Func declared with `extern fn`
	Name   string  // Custom, EnumVariant
}

var (
	Undefined = Type{Kind: KindUndefined}
	Void      = Type{Kind: KindVoid}
	Bool      = Type{Kind: KindBool}
	String    = Type{Kind: KindString}
	I8        = Type{Kind: KindInt, Width: Width8}
	I16       = Type{Kind: KindInt, Width: Width16}
	I32       = Type{Kind: KindInt, Width: Width32}
	I64       = Type{Kind: KindInt, Width: Width64}
	I128      = Type{Kind: KindInt, Width: Width128}
	U8        = Type{Kind: KindUint, Width: Width8}
	U16       = Type{Kind: KindUint, Width: Width16}
	U32       = Type{Kind: KindUint, Width: Width32}
	U64       = Type{Kind: KindUint, Width: Width64}
	U128      = Type{Kind: KindUint, Width: Width128}
	F32       = Type{Kind: KindFloat, Width: Width32}
	F64       = Type{Kind: KindFloat, Width: Width64}
)

var builtins = map[string]Type{
	"void":   Void,
	"bool":   Bool,
	"string": String,
	"i8":     I8,
	"i16":    I16,
	"i32":    I32,
	"i64":    I64,
	"i128":   I128,
	"u8":     U8,
	"u16":    U16,
	"u32":    U32,
	"u64":    U64,
	"u128":   U128,
	"f32":    F32,
	"f64":    F64,
}

// Builtin looks up a builtin type by its source spelling.
func Builtin(name string) (Type, bool) {
	t, ok := builtins[name]
	return t, ok
}

func PtrTo(elem Type) Type     { return Type{Kind: KindPtr, Elem: &elem} }
func ArrayOf(elem Type) Type   { return Type{Kind: KindArray, Elem: &elem} }
func GenericOf(elem Type) Type { return Type{Kind: KindGeneric, Elem: &elem} }
func Custom(name string) Type  { return Type{Kind: KindCustom, Name: name} }

// Func builds a plain function type.
func Func(params []Type, ret Type, extern bool) Type {
	return Type{Kind: KindFunc, Params: params, Ret: &ret, Extern: extern}
}

// ExFunc builds an extern signature with named parameters.
func ExFunc(params []Param, ret Type) Type {
	return Type{Kind: KindExFunc, Named: params, Ret: &ret}
}

func (t Type) IsUndefined() bool { return t.Kind == KindUndefined }
func (t Type) IsVoid() bool      { return t.Kind == KindVoid }
func (t Type) IsInteger() bool   { return t.Kind == KindInt || t.Kind == KindUint }
func (t Type) IsFloat() bool     { return t.Kind == KindFloat }
func (t Type) IsNumeric() bool   { return t.IsInteger() || t.IsFloat() }

// IsPointerLike reports whether values of t are passed as addresses.
func (t Type) IsPointerLike() bool {
	return t.Kind == KindPtr || t.Kind == KindString || t.Kind == KindArray
}

// Result returns the return type of a function type, Undefined otherwise.
func (t Type) Result() Type {
	if (t.Kind == KindFunc || t.Kind == KindExFunc) && t.Ret != nil {
		return *t.Ret
	}
	return Undefined
}

// ParamTypes returns the parameter types of Func and ExFunc.
func (t Type) ParamTypes() []Type {
	switch t.Kind {
	case KindFunc:
		return t.Params
	case KindExFunc:
		out := make([]Type, len(t.Named))
		for i, p := range t.Named {
			out[i] = p.Type
		}
		return out
	}
	return nil
}

// Equal compares two types structurally.
func Equal(a, b Type) bool {
	if a.Kind != b.Kind || a.Width != b.Width || a.Extern != b.Extern || a.Name != b.Name {
		return false
	}
	if !equalPtr(a.Elem, b.Elem) || !equalPtr(a.Ret, b.Ret) {
		return false
	}
	if len(a.Params) != len(b.Params) || len(a.Named) != len(b.Named) {
		return false
	}
	for i := range a.Params {
		if !Equal(a.Params[i], b.Params[i]) {
			return false
		}
	}
	for i := range a.Named {
		if a.Named[i].Name != b.Named[i].Name || !Equal(a.Named[i].Type, b.Named[i].Type) {
			return false
		}
	}
	return true
}

// Equal reports whether t and o are structurally equal.
func (t Type) Equal(o Type) bool { return Equal(t, o) }

func equalPtr(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return Equal(*a, *b)
}

func (t Type) String() string {
	switch t.Kind {
	case KindInt:
		return fmt.Sprintf("i%d", t.Width)
	case KindUint:
		return fmt.Sprintf("u%d", t.Width)
	case KindFloat:
		return fmt.Sprintf("f%d", t.Width)
	case KindPtr:
		return "*" + elemString(t.Elem)
	case KindArray:
		return "[" + elemString(t.Elem) + "]"
	case KindGeneric:
		return "<" + elemString(t.Elem) + ">"
	case KindCustom, KindEnumVariant:
		return t.Name
	case KindFunc:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		prefix := "fn"
		if t.Extern {
			prefix = "extern fn"
		}
		return fmt.Sprintf("%s(%s) %s", prefix, strings.Join(parts, ", "), t.Result())
	case KindExFunc:
		parts := make([]string, len(t.Named))
		for i, p := range t.Named {
			parts[i] = p.Name + ": " + p.Type.String()
		}
		return fmt.Sprintf("extern fn(%s) %s", strings.Join(parts, ", "), t.Result())
	default:
		return t.Kind.String()
	}
}

func elemString(t *Type) string {
	if t == nil {
		return "?"
	}
	return t.String()
}
