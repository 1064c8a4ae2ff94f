package ir

import (
	"github.com/cockroachdb/errors"
)

// Unbounded marks a variadic operand or result count in a schema.
const Unbounded = -1

// OpSchema describes the construction-time shape of an operation: how many
// operands, results and regions it accepts. Construction against a context
// fails when the schema is violated or the operation name is unregistered.
type OpSchema struct {
	Name        string
	MinOperands int
	MaxOperands int // Unbounded for variadic
	MinResults  int
	MaxResults  int // Unbounded for variadic
	NumRegions  int
	Summary     string
}

// Operation is a node of the IR graph: a name, operand values, typed
// results, an attribute dictionary and owned regions.
type Operation struct {
	ctx      *Context
	name     string
	loc      Location
	operands []Value
	results  []*OpResult
	attrs    *DictAttr
	regions  []*Region
	parent   *Block
}

// OperationState collects everything needed to construct an operation.
// Block, when set, is the insertion point: the new operation is appended to
// it.
type OperationState struct {
	Name        string
	Location    Location
	Operands    []Value
	ResultTypes []Type
	Attributes  []NamedAttribute
	NumRegions  int
	Block       *Block
}

// CreateOperation constructs an operation after validating the state against
// the registered schema for its name.
func (c *Context) CreateOperation(state OperationState) (*Operation, error) {
	schema, ok := c.Schema(state.Name)
	if !ok {
		return nil, errors.Newf("unregistered operation %q", state.Name)
	}
	if err := checkArity(schema, len(state.Operands), len(state.ResultTypes), state.NumRegions); err != nil {
		return nil, err
	}

	op := &Operation{
		ctx:      c,
		name:     state.Name,
		loc:      state.Location,
		operands: append([]Value(nil), state.Operands...),
		attrs:    DictAttrGet(c, state.Attributes),
	}
	for i, ty := range state.ResultTypes {
		op.results = append(op.results, &OpResult{owner: op, index: i, ty: ty})
	}
	for i := 0; i < state.NumRegions; i++ {
		op.regions = append(op.regions, &Region{owner: op})
	}
	if state.Block != nil {
		state.Block.append(op)
	}
	return op, nil
}

func checkArity(schema OpSchema, operands, results, regions int) error {
	if operands < schema.MinOperands {
		return errors.Newf("%s expects at least %d operands, got %d",
			schema.Name, schema.MinOperands, operands)
	}
	if schema.MaxOperands != Unbounded && operands > schema.MaxOperands {
		return errors.Newf("%s expects at most %d operands, got %d",
			schema.Name, schema.MaxOperands, operands)
	}
	if results < schema.MinResults {
		return errors.Newf("%s expects at least %d results, got %d",
			schema.Name, schema.MinResults, results)
	}
	if schema.MaxResults != Unbounded && results > schema.MaxResults {
		return errors.Newf("%s expects at most %d results, got %d",
			schema.Name, schema.MaxResults, results)
	}
	if regions != schema.NumRegions {
		return errors.Newf("%s expects %d regions, got %d",
			schema.Name, schema.NumRegions, regions)
	}
	return nil
}

// Context returns the owning context.
func (op *Operation) Context() *Context { return op.ctx }

// Name returns the fully qualified operation name, e.g. "transform.cast".
func (op *Operation) Name() string { return op.name }

// Location returns the source location attached at construction.
func (op *Operation) Location() Location { return op.loc }

// Parent returns the block containing this operation, or nil when detached.
func (op *Operation) Parent() *Block { return op.parent }

// NumOperands returns the operand count.
func (op *Operation) NumOperands() int { return len(op.operands) }

// Operand returns the i-th operand.
func (op *Operation) Operand(i int) Value { return op.operands[i] }

// Operands returns the operands in order.
func (op *Operation) Operands() []Value { return append([]Value(nil), op.operands...) }

// NumResults returns the result count.
func (op *Operation) NumResults() int { return len(op.results) }

// Result returns the i-th result.
func (op *Operation) Result(i int) *OpResult { return op.results[i] }

// Results returns the results as values, in order.
func (op *Operation) Results() []Value {
	out := make([]Value, len(op.results))
	for i, r := range op.results {
		out[i] = r
	}
	return out
}

// Attributes returns the attribute dictionary.
func (op *Operation) Attributes() *DictAttr { return op.attrs }

// Attr looks up a single attribute by name.
func (op *Operation) Attr(name string) (Attribute, bool) { return op.attrs.Get(name) }

// NumRegions returns the region count.
func (op *Operation) NumRegions() int { return len(op.regions) }

// Region returns the i-th region.
func (op *Operation) Region(i int) *Region { return op.regions[i] }

// String returns the operation in generic form.
func (op *Operation) String() string { return Print(op) }
