package ir

import (
	"fmt"
	"strings"
)

// Type is an immutable, context-interned descriptor attached to values.
// Two types obtained from the same context are equal iff they are the same
// pointer.
type Type interface {
	Context() *Context
	String() string
	isType()
}

type typeBase struct{ ctx *Context }

func (t typeBase) Context() *Context { return t.ctx }
func (typeBase) isType()             {}

// IntegerType is a signless integer type of a fixed bit width.
type IntegerType struct {
	typeBase
	width int
}

// IntegerTypeGet returns the interned signless integer type of the given
// width.
func IntegerTypeGet(ctx *Context, width int) *IntegerType {
	key := fmt.Sprintf("i%d", width)
	return ctx.internType(key, func() Type {
		return &IntegerType{typeBase: typeBase{ctx: ctx}, width: width}
	}).(*IntegerType)
}

// I64Type returns the default 64-bit signless integer type.
func I64Type(ctx *Context) *IntegerType { return IntegerTypeGet(ctx, 64) }

// I32Type returns the 32-bit signless integer type.
func I32Type(ctx *Context) *IntegerType { return IntegerTypeGet(ctx, 32) }

// Width returns the bit width.
func (t *IntegerType) Width() int { return t.width }

func (t *IntegerType) String() string { return fmt.Sprintf("i%d", t.width) }

// FunctionType describes a mapping from input types to result types.
type FunctionType struct {
	typeBase
	inputs  []Type
	results []Type
}

// FunctionTypeGet returns the interned function type with the given inputs
// and results. The slices are copied.
func FunctionTypeGet(ctx *Context, inputs, results []Type) *FunctionType {
	key := functionTypeKey(inputs, results)
	return ctx.internType(key, func() Type {
		return &FunctionType{
			typeBase: typeBase{ctx: ctx},
			inputs:   append([]Type(nil), inputs...),
			results:  append([]Type(nil), results...),
		}
	}).(*FunctionType)
}

// Inputs returns the input types in order.
func (t *FunctionType) Inputs() []Type { return append([]Type(nil), t.inputs...) }

// Results returns the result types in order.
func (t *FunctionType) Results() []Type { return append([]Type(nil), t.results...) }

func (t *FunctionType) String() string { return functionTypeKey(t.inputs, t.results) }

func functionTypeKey(inputs, results []Type) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, in := range inputs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(in.String())
	}
	b.WriteString(") -> (")
	for i, out := range results {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(out.String())
	}
	b.WriteByte(')')
	return b.String()
}

// DialectType is a type defined by a dialect outside the core: a namespace
// plus a mnemonic body, printed as "!dialect.body". Dialect packages expose
// typed constructors and parse helpers over it instead of defining new Type
// implementations.
type DialectType struct {
	typeBase
	dialect string
	body    string
}

// DialectTypeGet returns the interned dialect type for the given namespace
// and body.
func DialectTypeGet(ctx *Context, dialect, body string) *DialectType {
	key := "!" + dialect + "." + body
	return ctx.internType(key, func() Type {
		return &DialectType{typeBase: typeBase{ctx: ctx}, dialect: dialect, body: body}
	}).(*DialectType)
}

// Dialect returns the owning dialect namespace.
func (t *DialectType) Dialect() string { return t.dialect }

// Body returns the mnemonic body, e.g. `op<"func.func">`.
func (t *DialectType) Body() string { return t.body }

func (t *DialectType) String() string { return "!" + t.dialect + "." + t.body }
