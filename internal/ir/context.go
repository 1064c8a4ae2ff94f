package ir

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// Context owns every IR entity: it interns types and attributes so that
// structurally equal descriptors are pointer-equal, and it holds the schema
// registry consulted when operations are constructed. Entities created
// through a context stay valid as long as the context does.
//
// A Context is not safe for concurrent use.
type Context struct {
	types    map[string]Type
	attrs    map[string]Attribute
	schemas  map[string]OpSchema
	dialects map[string]bool
}

// NewContext creates an empty context with no dialects registered.
func NewContext() *Context {
	return &Context{
		types:    make(map[string]Type),
		attrs:    make(map[string]Attribute),
		schemas:  make(map[string]OpSchema),
		dialects: make(map[string]bool),
	}
}

// internType returns the canonical instance for the given key, creating it
// with mk on first use.
func (c *Context) internType(key string, mk func() Type) Type {
	if t, ok := c.types[key]; ok {
		return t
	}
	t := mk()
	c.types[key] = t
	return t
}

// internAttr returns the canonical instance for the given key, creating it
// with mk on first use.
func (c *Context) internAttr(key string, mk func() Attribute) Attribute {
	if a, ok := c.attrs[key]; ok {
		return a
	}
	a := mk()
	c.attrs[key] = a
	return a
}

// RegisterDialect marks a dialect namespace as loaded. Registering the same
// dialect twice is a no-op, so dialect packages can register defensively.
func (c *Context) RegisterDialect(name string) {
	c.dialects[name] = true
}

// HasDialect reports whether the named dialect has been registered.
func (c *Context) HasDialect(name string) bool { return c.dialects[name] }

// RegisterOp records the construction schema for an operation name.
// Re-registering an identical schema is a no-op; a conflicting schema is an
// error so that dialects cannot silently shadow each other.
func (c *Context) RegisterOp(schema OpSchema) error {
	if schema.Name == "" {
		return errors.New("op schema requires a name")
	}
	if existing, ok := c.schemas[schema.Name]; ok {
		if existing != schema {
			return errors.Newf("conflicting schema registration for %q", schema.Name)
		}
		return nil
	}
	c.schemas[schema.Name] = schema
	return nil
}

// Schema looks up the registered schema for an operation name.
func (c *Context) Schema(name string) (OpSchema, bool) {
	s, ok := c.schemas[name]
	return s, ok
}

// RegisteredOps returns the registered operation names in sorted order.
func (c *Context) RegisteredOps() []string {
	names := make([]string, 0, len(c.schemas))
	for name := range c.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
