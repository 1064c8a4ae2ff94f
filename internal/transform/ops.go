package transform

import (
	"github.com/cockroachdb/errors"

	"github.com/halcyon-ir/halcyon/internal/ir"
)

// CastOp converts a handle to an equivalent handle of another type.
type CastOp struct{ op *ir.Operation }

// NewCastOp builds transform.cast from a target handle.
func NewCastOp(b *ir.Builder, resultType ir.Type, target any) (*CastOp, error) {
	in, err := ir.ResultOf(target)
	if err != nil {
		return nil, errors.Wrap(err, "cast target")
	}
	op, err := b.Create(ir.OperationState{
		Name:        OpCast,
		Operands:    []ir.Value{in},
		ResultTypes: []ir.Type{resultType},
	})
	if err != nil {
		return nil, err
	}
	return &CastOp{op: op}, nil
}

// Operation returns the underlying operation.
func (o *CastOp) Operation() *ir.Operation { return o.op }

// Result returns the cast handle.
func (o *CastOp) Result() ir.Value { return o.op.Result(0) }

// ApplyPatternsOp greedily applies the patterns in its body region to the
// payload anchored at its operand. The body block is created empty.
type ApplyPatternsOp struct{ op *ir.Operation }

// NewApplyPatternsOp builds transform.apply_patterns with an empty patterns
// block.
func NewApplyPatternsOp(b *ir.Builder, target any) (*ApplyPatternsOp, error) {
	in, err := ir.ResultOf(target)
	if err != nil {
		return nil, errors.Wrap(err, "apply_patterns target")
	}
	op, err := b.Create(ir.OperationState{
		Name:       OpApplyPatterns,
		Operands:   []ir.Value{in},
		NumRegions: 1,
	})
	if err != nil {
		return nil, err
	}
	op.Region(0).AppendBlock()
	return &ApplyPatternsOp{op: op}, nil
}

// Operation returns the underlying operation.
func (o *ApplyPatternsOp) Operation() *ir.Operation { return o.op }

// Patterns returns the block that pattern-descriptor operations are
// inserted into.
func (o *ApplyPatternsOp) Patterns() *ir.Block { return o.op.Region(0).Block(0) }

// GetParentOp produces a handle to ancestors of the payload operations.
type GetParentOp struct{ op *ir.Operation }

type getParentConfig struct {
	isolatedFromAbove bool
	opName            string
	deduplicate       bool
	nthParent         int64
}

// GetParentOption configures NewGetParentOp.
type GetParentOption func(*getParentConfig)

// WithIsolatedFromAbove restricts matches to isolated-from-above ancestors.
func WithIsolatedFromAbove() GetParentOption {
	return func(c *getParentConfig) { c.isolatedFromAbove = true }
}

// WithOpName restricts matches to ancestors with the given operation name.
func WithOpName(name string) GetParentOption {
	return func(c *getParentConfig) { c.opName = name }
}

// WithDeduplicate collapses duplicate parents into a single handle entry.
func WithDeduplicate() GetParentOption {
	return func(c *getParentConfig) { c.deduplicate = true }
}

// WithNthParent selects the n-th ancestor instead of the immediate parent.
func WithNthParent(n int64) GetParentOption {
	return func(c *getParentConfig) { c.nthParent = n }
}

// NewGetParentOp builds transform.get_parent_op. By default the immediate
// parent is selected.
func NewGetParentOp(b *ir.Builder, resultType ir.Type, target any, opts ...GetParentOption) (*GetParentOp, error) {
	in, err := ir.ResultOf(target)
	if err != nil {
		return nil, errors.Wrap(err, "get_parent_op target")
	}
	cfg := getParentConfig{nthParent: 1}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx := b.Context()
	attrs := []ir.NamedAttribute{
		{Name: "nth_parent", Attr: ir.IntegerAttrGet(ir.I64Type(ctx), cfg.nthParent)},
	}
	if cfg.isolatedFromAbove {
		attrs = append(attrs, ir.NamedAttribute{Name: "isolated_from_above", Attr: ir.UnitAttrGet(ctx)})
	}
	if cfg.deduplicate {
		attrs = append(attrs, ir.NamedAttribute{Name: "deduplicate", Attr: ir.UnitAttrGet(ctx)})
	}
	if cfg.opName != "" {
		attrs = append(attrs, ir.NamedAttribute{Name: "op_name", Attr: ir.StringAttrGet(ctx, cfg.opName)})
	}

	op, err := b.Create(ir.OperationState{
		Name:        OpGetParent,
		Operands:    []ir.Value{in},
		ResultTypes: []ir.Type{resultType},
		Attributes:  attrs,
	})
	if err != nil {
		return nil, err
	}
	return &GetParentOp{op: op}, nil
}

// Operation returns the underlying operation.
func (o *GetParentOp) Operation() *ir.Operation { return o.op }

// Result returns the parent handle.
func (o *GetParentOp) Result() ir.Value { return o.op.Result(0) }

// MergeHandlesOp merges several handles into one.
type MergeHandlesOp struct{ op *ir.Operation }

// NewMergeHandlesOp builds transform.merge_handles over the given handles.
// The result handle has the type of the first input.
func NewMergeHandlesOp(b *ir.Builder, handles []any, deduplicate bool) (*MergeHandlesOp, error) {
	if len(handles) == 0 {
		return nil, errors.New("merge_handles requires at least one handle")
	}
	values, err := resolveHandles(handles)
	if err != nil {
		return nil, errors.Wrap(err, "merge_handles input")
	}

	var attrs []ir.NamedAttribute
	if deduplicate {
		attrs = append(attrs, ir.NamedAttribute{Name: "deduplicate", Attr: ir.UnitAttrGet(b.Context())})
	}

	op, err := b.Create(ir.OperationState{
		Name:        OpMergeHandles,
		Operands:    values,
		ResultTypes: []ir.Type{values[0].Type()},
		Attributes:  attrs,
	})
	if err != nil {
		return nil, err
	}
	return &MergeHandlesOp{op: op}, nil
}

// Operation returns the underlying operation.
func (o *MergeHandlesOp) Operation() *ir.Operation { return o.op }

// Result returns the merged handle.
func (o *MergeHandlesOp) Result() ir.Value { return o.op.Result(0) }

// ReplicateOp produces one copy of its pattern handle per entry of the given
// handles, with result types mirroring the handle types in order.
type ReplicateOp struct{ op *ir.Operation }

// NewReplicateOp builds transform.replicate.
func NewReplicateOp(b *ir.Builder, pattern any, handles []any) (*ReplicateOp, error) {
	pat, err := ir.ResultOf(pattern)
	if err != nil {
		return nil, errors.Wrap(err, "replicate pattern")
	}
	values, err := resolveHandles(handles)
	if err != nil {
		return nil, errors.Wrap(err, "replicate input")
	}

	resultTypes := make([]ir.Type, len(values))
	for i, v := range values {
		resultTypes[i] = v.Type()
	}

	op, err := b.Create(ir.OperationState{
		Name:        OpReplicate,
		Operands:    append([]ir.Value{pat}, values...),
		ResultTypes: resultTypes,
	})
	if err != nil {
		return nil, err
	}
	return &ReplicateOp{op: op}, nil
}

// Operation returns the underlying operation.
func (o *ReplicateOp) Operation() *ir.Operation { return o.op }

// Results returns the replicated handles.
func (o *ReplicateOp) Results() []ir.Value { return o.op.Results() }

// SequenceOp applies its body operations in order, reacting to failures
// according to the failure propagation mode.
type SequenceOp struct{ op *ir.Operation }

// NewSequenceOp builds transform.sequence. The target is either a handle
// (bound as the root operand) or a bare ir.Type (no root operand; the body
// still receives an argument of that type). Extra bindings may be nil, a
// value slice, a type slice, or an operation whose results are bound; the
// body block receives one argument per binding after the root argument.
func NewSequenceOp(b *ir.Builder, mode FailurePropagationMode, resultTypes []ir.Type,
	target any, extraBindings any) (*SequenceOp, error) {
	var operands []ir.Value
	var rootType ir.Type
	switch t := target.(type) {
	case ir.Type:
		rootType = t
	default:
		root, err := ir.ResultOf(target)
		if err != nil {
			return nil, errors.Wrap(err, "sequence target")
		}
		operands = append(operands, root)
		rootType = root.Type()
	}

	extraValues, extraTypes, err := resolveExtraBindings(extraBindings)
	if err != nil {
		return nil, errors.Wrap(err, "sequence extra bindings")
	}
	operands = append(operands, extraValues...)

	ctx := b.Context()
	op, err := b.Create(ir.OperationState{
		Name:        OpSequence,
		Operands:    operands,
		ResultTypes: resultTypes,
		Attributes: []ir.NamedAttribute{
			{Name: "failure_propagation_mode", Attr: ir.IntegerAttrGet(ir.I32Type(ctx), int64(mode))},
		},
		NumRegions: 1,
	})
	if err != nil {
		return nil, err
	}
	op.Region(0).AppendBlock(append([]ir.Type{rootType}, extraTypes...)...)
	return &SequenceOp{op: op}, nil
}

// resolveExtraBindings normalizes a sequence's extra bindings: an operation
// contributes its results, a value slice binds values, a type slice declares
// body arguments without binding operands.
func resolveExtraBindings(bindings any) ([]ir.Value, []ir.Type, error) {
	switch bs := bindings.(type) {
	case nil:
		return nil, nil, nil
	case []ir.Type:
		return nil, append([]ir.Type(nil), bs...), nil
	case []ir.Value:
		types := make([]ir.Type, len(bs))
		for i, v := range bs {
			types[i] = v.Type()
		}
		return append([]ir.Value(nil), bs...), types, nil
	default:
		values, err := ir.ResultsOf(bindings)
		if err != nil {
			return nil, nil, err
		}
		types := make([]ir.Type, len(values))
		for i, v := range values {
			types[i] = v.Type()
		}
		return values, types, nil
	}
}

// Operation returns the underlying operation.
func (o *SequenceOp) Operation() *ir.Operation { return o.op }

// Results returns the sequence results.
func (o *SequenceOp) Results() []ir.Value { return o.op.Results() }

// Body returns the sequence body block.
func (o *SequenceOp) Body() *ir.Block { return o.op.Region(0).Block(0) }

// BodyTarget returns the body argument bound to the root handle.
func (o *SequenceOp) BodyTarget() ir.Value { return o.Body().Argument(0) }

// BodyExtraArgs returns the body arguments after the root, in order.
func (o *SequenceOp) BodyExtraArgs() []ir.Value {
	return o.Body().ArgumentValues()[1:]
}

// NamedSequenceOp is a named, reusable transform sequence referenced by
// symbol.
type NamedSequenceOp struct{ op *ir.Operation }

type namedSequenceConfig struct {
	visibility string
	argAttrs   []ir.Attribute
	resAttrs   []ir.Attribute
}

// NamedSequenceOption configures NewNamedSequenceOp.
type NamedSequenceOption func(*namedSequenceConfig)

// WithVisibility sets the symbol visibility, e.g. "private".
func WithVisibility(visibility string) NamedSequenceOption {
	return func(c *namedSequenceConfig) { c.visibility = visibility }
}

// WithArgAttrs attaches per-argument attribute dictionaries.
func WithArgAttrs(attrs []ir.Attribute) NamedSequenceOption {
	return func(c *namedSequenceConfig) { c.argAttrs = attrs }
}

// WithResAttrs attaches per-result attribute dictionaries.
func WithResAttrs(attrs []ir.Attribute) NamedSequenceOption {
	return func(c *namedSequenceConfig) { c.resAttrs = attrs }
}

// NewNamedSequenceOp builds transform.named_sequence with a body block
// receiving one argument per input type.
func NewNamedSequenceOp(b *ir.Builder, symName string, inputTypes, resultTypes []ir.Type,
	opts ...NamedSequenceOption) (*NamedSequenceOp, error) {
	var cfg namedSequenceConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx := b.Context()
	attrs := []ir.NamedAttribute{
		{Name: "sym_name", Attr: ir.StringAttrGet(ctx, symName)},
		{Name: "function_type", Attr: ir.TypeAttrGet(ir.FunctionTypeGet(ctx, inputTypes, resultTypes))},
	}
	if cfg.visibility != "" {
		attrs = append(attrs, ir.NamedAttribute{Name: "sym_visibility", Attr: ir.StringAttrGet(ctx, cfg.visibility)})
	}
	if cfg.argAttrs != nil {
		attrs = append(attrs, ir.NamedAttribute{Name: "arg_attrs", Attr: ir.ArrayAttrGet(ctx, cfg.argAttrs)})
	}
	if cfg.resAttrs != nil {
		attrs = append(attrs, ir.NamedAttribute{Name: "res_attrs", Attr: ir.ArrayAttrGet(ctx, cfg.resAttrs)})
	}

	op, err := b.Create(ir.OperationState{
		Name:       OpNamedSequence,
		Attributes: attrs,
		NumRegions: 1,
	})
	if err != nil {
		return nil, err
	}
	op.Region(0).AppendBlock(inputTypes...)
	return &NamedSequenceOp{op: op}, nil
}

// Operation returns the underlying operation.
func (o *NamedSequenceOp) Operation() *ir.Operation { return o.op }

// SymName returns the sequence's symbol name.
func (o *NamedSequenceOp) SymName() string {
	attr, _ := o.op.Attr("sym_name")
	return attr.(*ir.StringAttr).Value()
}

// Body returns the sequence body block.
func (o *NamedSequenceOp) Body() *ir.Block { return o.op.Region(0).Block(0) }

// BodyTarget returns the first body argument.
func (o *NamedSequenceOp) BodyTarget() ir.Value { return o.Body().Argument(0) }

// BodyExtraArgs returns the body arguments after the first, in order.
func (o *NamedSequenceOp) BodyExtraArgs() []ir.Value {
	return o.Body().ArgumentValues()[1:]
}

// YieldOp terminates a sequence body, forwarding its operands as the
// enclosing sequence's results.
type YieldOp struct{ op *ir.Operation }

// NewYieldOp builds transform.yield. Each operand handle contributes its
// values in order; an operation handle contributes all of its results.
func NewYieldOp(b *ir.Builder, operands ...any) (*YieldOp, error) {
	var values []ir.Value
	for _, operand := range operands {
		vs, err := ir.ResultsOf(operand)
		if err != nil {
			return nil, errors.Wrap(err, "yield operand")
		}
		values = append(values, vs...)
	}
	op, err := b.Create(ir.OperationState{
		Name:     OpYield,
		Operands: values,
	})
	if err != nil {
		return nil, err
	}
	return &YieldOp{op: op}, nil
}

// Operation returns the underlying operation.
func (o *YieldOp) Operation() *ir.Operation { return o.op }

// ApplyRegisteredPassOp applies a pass registered under a name to the payload
// anchored at its target handle. Static option values live in the options
// dictionary; handle-valued options become dynamic operands cross-referenced
// by param_operand placeholders.
type ApplyRegisteredPassOp struct{ op *ir.Operation }

// NewApplyRegisteredPassOp builds transform.apply_registered_pass. The pass
// name is a string or *ir.StringAttr.
func NewApplyRegisteredPassOp(b *ir.Builder, resultType ir.Type, target any,
	passName any, options PassOptions) (*ApplyRegisteredPassOp, error) {
	in, err := ir.ResultOf(target)
	if err != nil {
		return nil, errors.Wrap(err, "apply_registered_pass target")
	}

	ctx := b.Context()
	var name string
	switch n := passName.(type) {
	case string:
		name = n
	case *ir.StringAttr:
		name = n.Value()
	default:
		return nil, errors.Newf("pass name must be a string or string attribute, got %T", passName)
	}

	optionsDict, dynamicOptions, err := normalizeOptions(ctx, options)
	if err != nil {
		return nil, err
	}

	op, err := b.Create(ir.OperationState{
		Name:        OpApplyRegisteredPass,
		Operands:    append([]ir.Value{in}, dynamicOptions...),
		ResultTypes: []ir.Type{resultType},
		Attributes: []ir.NamedAttribute{
			{Name: "pass_name", Attr: ir.StringAttrGet(ctx, name)},
			{Name: "options", Attr: optionsDict},
		},
	})
	if err != nil {
		return nil, err
	}
	return &ApplyRegisteredPassOp{op: op}, nil
}

// Operation returns the underlying operation.
func (o *ApplyRegisteredPassOp) Operation() *ir.Operation { return o.op }

// Result returns the transformed handle.
func (o *ApplyRegisteredPassOp) Result() ir.Value { return o.op.Result(0) }

// PassName returns the registered pass name.
func (o *ApplyRegisteredPassOp) PassName() string {
	attr, _ := o.op.Attr("pass_name")
	return attr.(*ir.StringAttr).Value()
}

// Options returns the static options dictionary.
func (o *ApplyRegisteredPassOp) Options() *ir.DictAttr {
	attr, _ := o.op.Attr("options")
	return attr.(*ir.DictAttr)
}

// DynamicOptions returns the dynamic option operands, in placeholder index
// order.
func (o *ApplyRegisteredPassOp) DynamicOptions() []ir.Value {
	return o.op.Operands()[1:]
}

// ApplyRegisteredPass builds transform.apply_registered_pass and returns its
// result handle.
func ApplyRegisteredPass(b *ir.Builder, resultType ir.Type, target any,
	passName any, options PassOptions) (ir.Value, error) {
	op, err := NewApplyRegisteredPassOp(b, resultType, target, passName, options)
	if err != nil {
		return nil, err
	}
	return op.Result(), nil
}

// resolveHandles coerces each handle to a single value.
func resolveHandles(handles []any) ([]ir.Value, error) {
	values := make([]ir.Value, len(handles))
	for i, h := range handles {
		v, err := ir.ResultOf(h)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
