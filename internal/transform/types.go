package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/halcyon-ir/halcyon/internal/ir"
)

// AnyOpType returns !transform.any_op, the handle type matching payload
// operations of any kind.
func AnyOpType(ctx *ir.Context) *ir.DialectType {
	return ir.DialectTypeGet(ctx, DialectName, "any_op")
}

// AnyValueType returns !transform.any_value, the handle type matching
// payload values of any kind.
func AnyValueType(ctx *ir.Context) *ir.DialectType {
	return ir.DialectTypeGet(ctx, DialectName, "any_value")
}

// AnyParamType returns !transform.any_param, the parameter type accepting
// any attribute payload.
func AnyParamType(ctx *ir.Context) *ir.DialectType {
	return ir.DialectTypeGet(ctx, DialectName, "any_param")
}

// OperationType returns !transform.op<"name">, the handle type matching
// payload operations with the given fully qualified name.
func OperationType(ctx *ir.Context, opName string) *ir.DialectType {
	return ir.DialectTypeGet(ctx, DialectName, fmt.Sprintf("op<%q>", opName))
}

// ParamType returns !transform.param<type>, the parameter type for values of
// the given element type.
func ParamType(ctx *ir.Context, elem ir.Type) *ir.DialectType {
	return ir.DialectTypeGet(ctx, DialectName, fmt.Sprintf("param<%s>", elem))
}

// OperationTypeName recovers the payload operation name from an
// !transform.op<"name"> type.
func OperationTypeName(t ir.Type) (string, error) {
	dt, ok := t.(*ir.DialectType)
	if !ok || dt.Dialect() != DialectName {
		return "", errors.Newf("%s is not a transform operation type", t)
	}
	body := dt.Body()
	if !strings.HasPrefix(body, "op<") || !strings.HasSuffix(body, ">") {
		return "", errors.Newf("%s is not a transform operation type", t)
	}
	name, err := strconv.Unquote(strings.TrimSuffix(strings.TrimPrefix(body, "op<"), ">"))
	if err != nil {
		return "", errors.Wrapf(err, "malformed operation type %s", t)
	}
	return name, nil
}
