// Package transform defines the transform dialect for Halcyon: operations
// that encode meta-programs rewriting and querying other IR.
//
// The package registers the dialect's operation schemas and types into an
// ir.Context and provides ergonomic constructors over generic operation
// construction. Constructors normalize their arguments (coercing
// operation-or-value handles, defaulting regions, converting option literals
// to attributes) and delegate to the schema-checked ir layer; interpretation
// of the constructed meta-programs is a separate engine and not part of this
// package.
package transform

import (
	"github.com/halcyon-ir/halcyon/internal/ir"
)

// DialectName is the transform dialect namespace.
const DialectName = "transform"

// Operation names of the transform dialect.
const (
	OpApplyPatterns       = "transform.apply_patterns"
	OpApplyRegisteredPass = "transform.apply_registered_pass"
	OpCast                = "transform.cast"
	OpGetParent           = "transform.get_parent_op"
	OpMergeHandles        = "transform.merge_handles"
	OpNamedSequence       = "transform.named_sequence"
	OpReplicate           = "transform.replicate"
	OpSequence            = "transform.sequence"
	OpYield               = "transform.yield"
)

// FailurePropagationMode controls how a sequence reacts to failure of one of
// its nested operations.
type FailurePropagationMode int

const (
	// FailurePropagationPropagate reports nested failures to the parent.
	FailurePropagationPropagate FailurePropagationMode = iota + 1
	// FailurePropagationSuppress swallows nested failures and continues.
	FailurePropagationSuppress
)

func (m FailurePropagationMode) String() string {
	switch m {
	case FailurePropagationPropagate:
		return "propagate"
	case FailurePropagationSuppress:
		return "suppress"
	default:
		return "invalid"
	}
}

// RegisterDialect registers the transform dialect and its operation schemas
// into the context. Registration is idempotent.
func RegisterDialect(ctx *ir.Context) error {
	ctx.RegisterDialect(DialectName)

	schemas := []ir.OpSchema{
		{Name: OpApplyPatterns, MinOperands: 1, MaxOperands: 1, NumRegions: 1,
			Summary: "applies the patterns in its region to the payload anchored at its operand"},
		{Name: OpApplyRegisteredPass, MinOperands: 1, MaxOperands: ir.Unbounded, MinResults: 1, MaxResults: 1,
			Summary: "applies a registered pass, configured through the options dictionary"},
		{Name: OpCast, MinOperands: 1, MaxOperands: 1, MinResults: 1, MaxResults: 1,
			Summary: "casts a handle to another handle type"},
		{Name: OpGetParent, MinOperands: 1, MaxOperands: 1, MinResults: 1, MaxResults: 1,
			Summary: "produces a handle to ancestors of the payload"},
		{Name: OpMergeHandles, MinOperands: 1, MaxOperands: ir.Unbounded, MinResults: 1, MaxResults: 1,
			Summary: "merges several handles into one"},
		{Name: OpNamedSequence, NumRegions: 1,
			Summary: "a named, reusable sequence of transform operations"},
		{Name: OpReplicate, MinOperands: 1, MaxOperands: ir.Unbounded, MaxResults: ir.Unbounded,
			Summary: "replicates a pattern handle per entry of the given handles"},
		{Name: OpSequence, MaxOperands: ir.Unbounded, MaxResults: ir.Unbounded, NumRegions: 1,
			Summary: "a sequence of transform operations applied in order"},
		{Name: OpYield, MaxOperands: ir.Unbounded,
			Summary: "terminates a sequence body, forwarding its operands as results"},
	}
	for _, s := range schemas {
		if err := ctx.RegisterOp(s); err != nil {
			return err
		}
	}
	return nil
}
