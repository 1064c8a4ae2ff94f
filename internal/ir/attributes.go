package ir

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Attribute is an immutable, context-interned constant attached to IR
// entities. As with types, attributes from the same context are pointer-equal
// iff structurally equal.
type Attribute interface {
	Context() *Context
	String() string
	isAttribute()
}

type attrBase struct{ ctx *Context }

func (a attrBase) Context() *Context { return a.ctx }
func (attrBase) isAttribute()        {}

// NamedAttribute pairs an attribute with its dictionary name.
type NamedAttribute struct {
	Name string
	Attr Attribute
}

// BoolAttr holds a boolean constant.
type BoolAttr struct {
	attrBase
	value bool
}

// BoolAttrGet returns the interned boolean attribute.
func BoolAttrGet(ctx *Context, value bool) *BoolAttr {
	key := strconv.FormatBool(value)
	return ctx.internAttr(key, func() Attribute {
		return &BoolAttr{attrBase: attrBase{ctx: ctx}, value: value}
	}).(*BoolAttr)
}

// Value returns the boolean constant.
func (a *BoolAttr) Value() bool { return a.value }

func (a *BoolAttr) String() string { return strconv.FormatBool(a.value) }

// IntegerAttr holds an integer constant of a signless integer type.
type IntegerAttr struct {
	attrBase
	ty    *IntegerType
	value int64
}

// IntegerAttrGet returns the interned integer attribute of the given type.
func IntegerAttrGet(ty *IntegerType, value int64) *IntegerAttr {
	ctx := ty.Context()
	key := fmt.Sprintf("%d : %s", value, ty)
	return ctx.internAttr(key, func() Attribute {
		return &IntegerAttr{attrBase: attrBase{ctx: ctx}, ty: ty, value: value}
	}).(*IntegerAttr)
}

// Value returns the integer constant.
func (a *IntegerAttr) Value() int64 { return a.value }

// Type returns the attribute's integer type.
func (a *IntegerAttr) Type() *IntegerType { return a.ty }

func (a *IntegerAttr) String() string { return fmt.Sprintf("%d : %s", a.value, a.ty) }

// StringAttr holds a string constant.
type StringAttr struct {
	attrBase
	value string
}

// StringAttrGet returns the interned string attribute.
func StringAttrGet(ctx *Context, value string) *StringAttr {
	key := strconv.Quote(value)
	return ctx.internAttr(key, func() Attribute {
		return &StringAttr{attrBase: attrBase{ctx: ctx}, value: value}
	}).(*StringAttr)
}

// Value returns the string constant.
func (a *StringAttr) Value() string { return a.value }

func (a *StringAttr) String() string { return strconv.Quote(a.value) }

// ArrayAttr holds an ordered list of attributes.
type ArrayAttr struct {
	attrBase
	elems []Attribute
}

// ArrayAttrGet returns the interned array attribute over the given elements.
// The slice is copied.
func ArrayAttrGet(ctx *Context, elems []Attribute) *ArrayAttr {
	key := arrayAttrKey(elems)
	return ctx.internAttr(key, func() Attribute {
		return &ArrayAttr{attrBase: attrBase{ctx: ctx}, elems: append([]Attribute(nil), elems...)}
	}).(*ArrayAttr)
}

// Elements returns the elements in order.
func (a *ArrayAttr) Elements() []Attribute { return append([]Attribute(nil), a.elems...) }

// Len returns the element count.
func (a *ArrayAttr) Len() int { return len(a.elems) }

func (a *ArrayAttr) String() string { return arrayAttrKey(a.elems) }

func arrayAttrKey(elems []Attribute) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteByte(']')
	return b.String()
}

// DictAttr holds a name-keyed set of attributes. Entries are sorted by name
// at construction; a duplicated name keeps the last value.
type DictAttr struct {
	attrBase
	entries []NamedAttribute
}

// DictAttrGet returns the interned dictionary attribute over the given
// entries.
func DictAttrGet(ctx *Context, entries []NamedAttribute) *DictAttr {
	normalized := normalizeDictEntries(entries)
	key := dictAttrKey(normalized)
	return ctx.internAttr(key, func() Attribute {
		return &DictAttr{attrBase: attrBase{ctx: ctx}, entries: normalized}
	}).(*DictAttr)
}

// Entries returns the entries sorted by name.
func (a *DictAttr) Entries() []NamedAttribute { return append([]NamedAttribute(nil), a.entries...) }

// Get looks up an entry by name.
func (a *DictAttr) Get(name string) (Attribute, bool) {
	for _, e := range a.entries {
		if e.Name == name {
			return e.Attr, true
		}
	}
	return nil, false
}

// Len returns the entry count.
func (a *DictAttr) Len() int { return len(a.entries) }

func (a *DictAttr) String() string { return dictAttrKey(a.entries) }

func normalizeDictEntries(entries []NamedAttribute) []NamedAttribute {
	byName := make(map[string]Attribute, len(entries))
	for _, e := range entries {
		byName[e.Name] = e.Attr
	}
	out := make([]NamedAttribute, 0, len(byName))
	for name, attr := range byName {
		out = append(out, NamedAttribute{Name: name, Attr: attr})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func dictAttrKey(entries []NamedAttribute) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.Name)
		b.WriteString(" = ")
		b.WriteString(e.Attr.String())
	}
	b.WriteByte('}')
	return b.String()
}

// TypeAttr wraps a type as an attribute.
type TypeAttr struct {
	attrBase
	ty Type
}

// TypeAttrGet returns the interned type attribute.
func TypeAttrGet(ty Type) *TypeAttr {
	ctx := ty.Context()
	key := "type:" + ty.String()
	return ctx.internAttr(key, func() Attribute {
		return &TypeAttr{attrBase: attrBase{ctx: ctx}, ty: ty}
	}).(*TypeAttr)
}

// Value returns the wrapped type.
func (a *TypeAttr) Value() Type { return a.ty }

func (a *TypeAttr) String() string { return a.ty.String() }

// UnitAttr marks presence without carrying a value.
type UnitAttr struct {
	attrBase
}

// UnitAttrGet returns the interned unit attribute.
func UnitAttrGet(ctx *Context) *UnitAttr {
	return ctx.internAttr("unit", func() Attribute {
		return &UnitAttr{attrBase: attrBase{ctx: ctx}}
	}).(*UnitAttr)
}

func (a *UnitAttr) String() string { return "unit" }

// DialectAttr is an attribute defined by a dialect outside the core: a
// namespace plus a mnemonic body, printed as "#dialect.body". Dialect
// packages expose typed constructors and parse helpers over it.
type DialectAttr struct {
	attrBase
	dialect string
	body    string
}

// DialectAttrGet returns the interned dialect attribute for the given
// namespace and body.
func DialectAttrGet(ctx *Context, dialect, body string) *DialectAttr {
	key := "#" + dialect + "." + body
	return ctx.internAttr(key, func() Attribute {
		return &DialectAttr{attrBase: attrBase{ctx: ctx}, dialect: dialect, body: body}
	}).(*DialectAttr)
}

// Dialect returns the owning dialect namespace.
func (a *DialectAttr) Dialect() string { return a.dialect }

// Body returns the mnemonic body, e.g. `param_operand<index=0>`.
func (a *DialectAttr) Body() string { return a.body }

func (a *DialectAttr) String() string { return "#" + a.dialect + "." + a.body }
