package transform

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-ir/halcyon/internal/ir"
)

// newBuilder returns a builder over a context with the transform dialect
// registered.
func newBuilder(t *testing.T) *ir.Builder {
	t.Helper()
	ctx := ir.NewContext()
	require.NoError(t, RegisterDialect(ctx))
	return ir.NewBuilder(ctx)
}

// handleValues produces n handle values by declaring a sequence with extra
// body arguments.
func handleValues(t *testing.T, b *ir.Builder, n int) []ir.Value {
	t.Helper()
	ctx := b.Context()
	extra := make([]ir.Type, n-1)
	for i := range extra {
		extra[i] = AnyOpType(ctx)
	}
	seq, err := NewSequenceOp(b, FailurePropagationPropagate, nil, ir.Type(AnyOpType(ctx)), extra)
	require.NoError(t, err)
	return seq.Body().ArgumentValues()
}

// requireSameValues asserts value-identity element by element.
func requireSameValues(t *testing.T, want, got []ir.Value) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.Same(t, want[i], got[i], "value %d", i)
	}
}

// decodeLiteral reverses literal normalization for round-trip checks.
func decodeLiteral(t *testing.T, attr ir.Attribute) any {
	t.Helper()
	switch a := attr.(type) {
	case *ir.BoolAttr:
		return a.Value()
	case *ir.IntegerAttr:
		require.Equal(t, 64, a.Type().Width())
		return a.Value()
	case *ir.StringAttr:
		return a.Value()
	case *ir.ArrayAttr:
		out := make([]any, 0, a.Len())
		for _, e := range a.Elements() {
			out = append(out, decodeLiteral(t, e))
		}
		return out
	default:
		t.Fatalf("unexpected attribute kind %T", attr)
		return nil
	}
}

func TestLiteralOptionsRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  any
	}{
		{"bool true", true, true},
		{"bool false", false, false},
		{"int", 7, int64(7)},
		{"int32", int32(-3), int64(-3)},
		{"int64", int64(1 << 40), int64(1 << 40)},
		{"string", "greedy", "greedy"},
		{"flat list", []any{1, 2, 3}, []any{int64(1), int64(2), int64(3)}},
		{"typed int slice", []int{4, 5}, []any{int64(4), int64(5)}},
		{"typed string slice", []string{"a", "b"}, []any{"a", "b"}},
		{"mixed list", []any{true, "x", 9}, []any{true, "x", int64(9)}},
		{"nested list", []any{[]any{1, []any{"deep"}}, false},
			[]any{[]any{int64(1), []any{"deep"}}, false}},
		{"empty list", []any{}, []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBuilder(t)
			target := handleValues(t, b, 1)[0]

			op, err := NewApplyRegisteredPassOp(b, AnyOpType(b.Context()), target,
				"canonicalize", PassOptions{Opt("o", tt.value)})
			require.NoError(t, err)

			assert.Empty(t, op.DynamicOptions(), "literal options bind no dynamic operands")
			attr, ok := op.Options().Get("o")
			require.True(t, ok)
			assert.Equal(t, tt.want, decodeLiteral(t, attr))
		})
	}
}

func TestHandleOptionsBecomeDynamicOperands(t *testing.T) {
	b := newBuilder(t)
	vals := handleValues(t, b, 4)
	target, h1, h2, h3 := vals[0], vals[1], vals[2], vals[3]

	op, err := NewApplyRegisteredPassOp(b, AnyOpType(b.Context()), target, "inline",
		PassOptions{
			Opt("first", h1),
			Opt("nested", []any{"static", h2}),
			Opt("last", h3),
		})
	require.NoError(t, err)

	// Dynamic operands appear in first-seen order across the option set.
	requireSameValues(t, []ir.Value{h1, h2, h3}, op.DynamicOptions())
	requireSameValues(t, []ir.Value{target, h1, h2, h3}, op.Operation().Operands())

	for i, name := range []string{"first", "nested", "last"} {
		attr, ok := op.Options().Get(name)
		require.True(t, ok, name)
		if name == "nested" {
			arr := attr.(*ir.ArrayAttr)
			require.Equal(t, 2, arr.Len())
			attr = arr.Elements()[1]
		}
		index, err := ParamOperandIndex(attr)
		require.NoError(t, err, name)
		assert.Equal(t, i, index, name)
	}
}

func TestWorkedExampleOptionEncoding(t *testing.T) {
	b := newBuilder(t)
	vals := handleValues(t, b, 2)
	target, handle := vals[0], vals[1]

	op, err := NewApplyRegisteredPassOp(b, AnyOpType(b.Context()), target, "cse",
		PassOptions{
			Opt("a", true),
			Opt("b", []any{1, 2}),
			Opt("c", handle),
		})
	require.NoError(t, err)

	requireSameValues(t, []ir.Value{handle}, op.DynamicOptions())
	assert.Equal(t,
		`{a = true, b = [1 : i64, 2 : i64], c = #transform.param_operand<index=0>}`,
		op.Options().String())
}

func TestUnsupportedOptionTypeFailsAtomically(t *testing.T) {
	b := newBuilder(t)
	vals := handleValues(t, b, 2)
	target, handle := vals[0], vals[1]

	seqBody := handle.(*ir.BlockArgument).Owner()
	b.SetInsertionPoint(seqBody)
	before := len(seqBody.Operations())

	// A handle is consumed before the float is reached; the failure must
	// still leave nothing behind.
	_, err := NewApplyRegisteredPassOp(b, AnyOpType(b.Context()), target, "cse",
		PassOptions{
			Opt("h", handle),
			Opt("rate", 0.5),
		})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedOptionType))
	assert.Contains(t, err.Error(), "float64")
	assert.Contains(t, err.Error(), `"rate"`)

	assert.Len(t, seqBody.Operations(), before, "failed construction must not append an operation")
}

func TestAttributeOptionPassesThrough(t *testing.T) {
	b := newBuilder(t)
	ctx := b.Context()
	target := handleValues(t, b, 1)[0]

	custom := ir.StringAttrGet(ctx, "verbatim")
	op, err := NewApplyRegisteredPassOp(b, AnyOpType(ctx), target, "sccp",
		PassOptions{Opt("raw", custom)})
	require.NoError(t, err)

	attr, ok := op.Options().Get("raw")
	require.True(t, ok)
	assert.Same(t, custom, attr)
}

func TestPassNameCoercion(t *testing.T) {
	b := newBuilder(t)
	ctx := b.Context()
	target := handleValues(t, b, 1)[0]

	op, err := NewApplyRegisteredPassOp(b, AnyOpType(ctx), target,
		ir.StringAttrGet(ctx, "canonicalize"), nil)
	require.NoError(t, err)
	assert.Equal(t, "canonicalize", op.PassName())

	_, err = NewApplyRegisteredPassOp(b, AnyOpType(ctx), target, 12, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pass name")
}

func TestApplyRegisteredPassFreeFunction(t *testing.T) {
	b := newBuilder(t)
	ctx := b.Context()
	target := handleValues(t, b, 1)[0]

	result, err := ApplyRegisteredPass(b, AnyOpType(ctx), target, "canonicalize", nil)
	require.NoError(t, err)
	res, ok := result.(*ir.OpResult)
	require.True(t, ok)
	assert.Equal(t, OpApplyRegisteredPass, res.Owner().Name())
	assert.Same(t, AnyOpType(ctx), result.Type())
}
