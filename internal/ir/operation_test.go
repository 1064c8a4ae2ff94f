package ir

import (
	"strings"
	"testing"
)

// registerTestOps installs a minimal dialect for construction tests.
func registerTestOps(t *testing.T, ctx *Context) {
	t.Helper()
	schemas := []OpSchema{
		{Name: "test.source", MinResults: 1, MaxResults: Unbounded},
		{Name: "test.sink", MinOperands: 1, MaxOperands: 2},
		{Name: "test.scoped", MaxOperands: Unbounded, NumRegions: 1},
	}
	for _, s := range schemas {
		if err := ctx.RegisterOp(s); err != nil {
			t.Fatalf("register %s: %v", s.Name, err)
		}
	}
}

func source(t *testing.T, ctx *Context, n int) *Operation {
	t.Helper()
	types := make([]Type, n)
	for i := range types {
		types[i] = I64Type(ctx)
	}
	op, err := ctx.CreateOperation(OperationState{Name: "test.source", ResultTypes: types})
	if err != nil {
		t.Fatalf("test.source: %v", err)
	}
	return op
}

func TestCreateOperationValidatesSchema(t *testing.T) {
	ctx := NewContext()
	registerTestOps(t, ctx)
	src := source(t, ctx, 1)

	tests := []struct {
		name    string
		state   OperationState
		wantErr string
	}{
		{
			name:    "unregistered name",
			state:   OperationState{Name: "test.unknown"},
			wantErr: "unregistered operation",
		},
		{
			name:    "too few operands",
			state:   OperationState{Name: "test.sink"},
			wantErr: "at least 1 operands",
		},
		{
			name: "too many operands",
			state: OperationState{Name: "test.sink",
				Operands: []Value{src.Result(0), src.Result(0), src.Result(0)}},
			wantErr: "at most 2 operands",
		},
		{
			name:    "too few results",
			state:   OperationState{Name: "test.source"},
			wantErr: "at least 1 results",
		},
		{
			name:    "missing region",
			state:   OperationState{Name: "test.scoped"},
			wantErr: "expects 1 regions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ctx.CreateOperation(tt.state)
			if err == nil {
				t.Fatal("expected construction to fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestOperationAccessors(t *testing.T) {
	ctx := NewContext()
	registerTestOps(t, ctx)
	src := source(t, ctx, 2)

	op, err := ctx.CreateOperation(OperationState{
		Name:     "test.sink",
		Location: FileLineColLoc("input.hir", 3, 7),
		Operands: []Value{src.Result(0), src.Result(1)},
		Attributes: []NamedAttribute{
			{Name: "mode", Attr: StringAttrGet(ctx, "strict")},
		},
	})
	if err != nil {
		t.Fatalf("test.sink: %v", err)
	}

	if op.Name() != "test.sink" {
		t.Errorf("Name() = %q", op.Name())
	}
	if op.NumOperands() != 2 || op.Operand(1) != src.Result(1) {
		t.Error("operands not preserved in order")
	}
	if op.NumResults() != 0 {
		t.Errorf("NumResults() = %d", op.NumResults())
	}
	if got, ok := op.Attr("mode"); !ok || got.(*StringAttr).Value() != "strict" {
		t.Error("attribute dictionary not preserved")
	}
	if op.Location().IsUnknown() {
		t.Error("location should be preserved")
	}
	if got := op.Location().String(); got != `loc("input.hir":3:7)` {
		t.Errorf("Location() prints %q", got)
	}

	res := src.Result(1)
	if res.Owner() != src || res.Index() != 1 || res.Type() != I64Type(ctx) {
		t.Error("result accessors inconsistent")
	}
}

func TestRegionAppendBlock(t *testing.T) {
	ctx := NewContext()
	registerTestOps(t, ctx)

	op, err := ctx.CreateOperation(OperationState{Name: "test.scoped", NumRegions: 1})
	if err != nil {
		t.Fatalf("test.scoped: %v", err)
	}

	region := op.Region(0)
	types := []Type{I64Type(ctx), I32Type(ctx), IntegerTypeGet(ctx, 1)}
	blk := region.AppendBlock(types...)

	if region.NumBlocks() != 1 || region.Block(0) != blk {
		t.Fatal("first appended block should be block 0")
	}
	if blk.NumArguments() != len(types) {
		t.Fatalf("expected %d arguments, got %d", len(types), blk.NumArguments())
	}
	for i, ty := range types {
		arg := blk.Argument(i)
		if arg.Type() != ty {
			t.Errorf("argument %d has type %s, want %s", i, arg.Type(), ty)
		}
		if arg.Index() != i || arg.Owner() != blk {
			t.Errorf("argument %d owner/index inconsistent", i)
		}
	}

	second := region.AppendBlock()
	if region.NumBlocks() != 2 || region.Block(1) != second {
		t.Error("second appended block should be block 1")
	}
}

func TestBuilderInsertionPointAndLocation(t *testing.T) {
	ctx := NewContext()
	registerTestOps(t, ctx)

	scoped, err := ctx.CreateOperation(OperationState{Name: "test.scoped", NumRegions: 1})
	if err != nil {
		t.Fatalf("test.scoped: %v", err)
	}
	body := scoped.Region(0).AppendBlock(I64Type(ctx))

	b := NewBuilder(ctx)
	b.SetLocation(FileLineColLoc("script.hir", 1, 1))
	b.SetInsertionPoint(body)

	op, err := b.Create(OperationState{
		Name:     "test.sink",
		Operands: []Value{body.Argument(0)},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if op.Parent() != body {
		t.Error("operation should be appended at the insertion point")
	}
	if ops := body.Operations(); len(ops) != 1 || ops[0] != op {
		t.Error("block should contain the created operation")
	}
	if op.Location().IsUnknown() {
		t.Error("builder location should be applied")
	}

	// A failed create must leave the insertion block untouched.
	if _, err := b.Create(OperationState{Name: "test.sink"}); err == nil {
		t.Fatal("expected arity failure")
	}
	if len(body.Operations()) != 1 {
		t.Error("failed create must not append to the block")
	}
}

func TestResultOf(t *testing.T) {
	ctx := NewContext()
	registerTestOps(t, ctx)

	single := source(t, ctx, 1)
	multi := source(t, ctx, 3)

	v, err := ResultOf(single)
	if err != nil || v != single.Result(0) {
		t.Errorf("ResultOf(op) = %v, %v", v, err)
	}
	if got, err := ResultOf(single.Result(0)); err != nil || got != single.Result(0) {
		t.Errorf("ResultOf(value) = %v, %v", got, err)
	}
	if _, err := ResultOf(multi); err == nil {
		t.Error("multi-result op should not coerce to a single value")
	}
	if _, err := ResultOf(nil); err == nil {
		t.Error("nil handle should be rejected")
	}
	if _, err := ResultOf(42); err == nil {
		t.Error("non-handle should be rejected")
	}

	vs, err := ResultsOf(multi)
	if err != nil || len(vs) != 3 || vs[2] != multi.Result(2) {
		t.Errorf("ResultsOf(op) = %v, %v", vs, err)
	}
	vs, err = ResultsOf(single.Result(0))
	if err != nil || len(vs) != 1 {
		t.Errorf("ResultsOf(value) = %v, %v", vs, err)
	}
	vs, err = ResultsOf(nil)
	if err != nil || vs != nil {
		t.Errorf("ResultsOf(nil) = %v, %v", vs, err)
	}
	if _, err := ResultsOf("nope"); err == nil {
		t.Error("non-handle should be rejected")
	}
}

func TestPrintGenericForm(t *testing.T) {
	ctx := NewContext()
	registerTestOps(t, ctx)

	scoped, err := ctx.CreateOperation(OperationState{
		Name:       "test.scoped",
		NumRegions: 1,
		Attributes: []NamedAttribute{
			{Name: "tag", Attr: StringAttrGet(ctx, "outer")},
		},
	})
	if err != nil {
		t.Fatalf("test.scoped: %v", err)
	}
	body := scoped.Region(0).AppendBlock(I64Type(ctx))

	b := NewBuilder(ctx)
	b.SetInsertionPoint(body)
	inner, err := b.Create(OperationState{Name: "test.source", ResultTypes: []Type{I64Type(ctx)}})
	if err != nil {
		t.Fatalf("test.source: %v", err)
	}
	if _, err := b.Create(OperationState{
		Name:     "test.sink",
		Operands: []Value{body.Argument(0), inner.Result(0)},
	}); err != nil {
		t.Fatalf("test.sink: %v", err)
	}

	want := `"test.scoped"() ({
^bb0(%arg0: i64):
  %0 = "test.source"() : () -> (i64)
  "test.sink"(%arg0, %0) : (i64, i64) -> ()
}) {tag = "outer"} : () -> ()`
	if got := Print(scoped); got != want {
		t.Errorf("Print() mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}
