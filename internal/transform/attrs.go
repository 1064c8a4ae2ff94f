package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/halcyon-ir/halcyon/internal/ir"
)

const paramOperandMnemonic = "param_operand"

// ParamOperandAttr returns #transform.param_operand<index=N>, the
// placeholder stored in a pass-options dictionary when the option's value is
// supplied by a dynamic operand. The index is the 0-based position of that
// operand within the dynamic-options operand list.
func ParamOperandAttr(ctx *ir.Context, index int) *ir.DialectAttr {
	return ir.DialectAttrGet(ctx, DialectName,
		fmt.Sprintf("%s<index=%d>", paramOperandMnemonic, index))
}

// ParamOperandIndex recovers the operand index from a param_operand
// attribute.
func ParamOperandIndex(attr ir.Attribute) (int, error) {
	da, ok := attr.(*ir.DialectAttr)
	if !ok || da.Dialect() != DialectName {
		return 0, errors.Newf("%s is not a transform param_operand attribute", attr)
	}
	return parseParamOperandBody(da.Body())
}

// parseParamOperandBody extracts N from "param_operand<index=N>".
// Whitespace around "=" is tolerated.
func parseParamOperandBody(body string) (int, error) {
	if !strings.HasPrefix(body, paramOperandMnemonic+"<") || !strings.HasSuffix(body, ">") {
		return 0, errors.Newf("%q is not a param_operand body", body)
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(body, paramOperandMnemonic+"<"), ">")
	key, value, found := strings.Cut(inner, "=")
	if !found || strings.TrimSpace(key) != "index" {
		return 0, errors.Newf("malformed param_operand body %q", body)
	}
	index, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errors.Wrapf(err, "malformed param_operand index in %q", body)
	}
	return index, nil
}

// ParseParamOperandAttr parses the textual form
// "#transform.param_operand<index=N>" and returns the canonical interned
// attribute for index N.
func ParseParamOperandAttr(ctx *ir.Context, text string) (*ir.DialectAttr, error) {
	prefix := "#" + DialectName + "."
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, prefix) {
		return nil, errors.Newf("expected #transform.param_operand attribute, got %q", text)
	}
	index, err := parseParamOperandBody(strings.TrimPrefix(trimmed, prefix))
	if err != nil {
		return nil, err
	}
	return ParamOperandAttr(ctx, index), nil
}
