package transform

import (
	"reflect"

	"github.com/cockroachdb/errors"

	"github.com/halcyon-ir/halcyon/internal/ir"
)

// ErrUnsupportedOptionType reports a pass-option value outside the closed
// set of supported kinds: handle, attribute, bool, integer, string, or a
// slice of those.
var ErrUnsupportedOptionType = errors.New("unsupported option type")

// PassOption is one named pass option. The value is one of:
//   - a handle (ir.Value, *ir.Operation or an op view), supplied at run time
//     through a dynamic operand;
//   - an ir.Attribute, passed through unchanged;
//   - a bool, integer or string literal;
//   - a slice of any of the above, converted recursively.
//
// Options are an ordered list rather than a map: dynamic operands are
// allocated in first-seen order across the whole option set, so the caller's
// ordering is significant.
type PassOption struct {
	Name  string
	Value any
}

// PassOptions is an ordered pass-option list.
type PassOptions []PassOption

// Opt builds a single pass option.
func Opt(name string, value any) PassOption { return PassOption{Name: name, Value: value} }

// normalizeOptions converts an option list into the static options
// dictionary and the ordered dynamic-operand list. Handle-valued options are
// appended to the dynamic list and replaced in the dictionary by a
// param_operand placeholder carrying their 0-based position. The conversion
// is all-or-nothing: on error nothing is returned, so a failed construction
// leaves no observable state behind.
func normalizeOptions(ctx *ir.Context, options PassOptions) (*ir.DictAttr, []ir.Value, error) {
	entries := make([]ir.NamedAttribute, 0, len(options))
	var dynamic []ir.Value
	for _, opt := range options {
		attr, err := optionValueToAttr(ctx, opt.Value, &dynamic)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "option %q", opt.Name)
		}
		entries = append(entries, ir.NamedAttribute{Name: opt.Name, Attr: attr})
	}
	return ir.DictAttrGet(ctx, entries), dynamic, nil
}

func optionValueToAttr(ctx *ir.Context, value any, dynamic *[]ir.Value) (ir.Attribute, error) {
	switch v := value.(type) {
	case ir.Value, *ir.Operation, ir.OpProvider:
		val, err := ir.ResultOf(v)
		if err != nil {
			return nil, err
		}
		*dynamic = append(*dynamic, val)
		return ParamOperandAttr(ctx, len(*dynamic)-1), nil
	case ir.Attribute:
		return v, nil
	case bool:
		return ir.BoolAttrGet(ctx, v), nil
	case int:
		return ir.IntegerAttrGet(ir.I64Type(ctx), int64(v)), nil
	case int32:
		return ir.IntegerAttrGet(ir.I64Type(ctx), int64(v)), nil
	case int64:
		return ir.IntegerAttrGet(ir.I64Type(ctx), v), nil
	case string:
		return ir.StringAttrGet(ctx, v), nil
	}

	// Remaining supported shape: a slice (of any element type) converted
	// element-wise into an array attribute.
	rv := reflect.ValueOf(value)
	if value != nil && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
		elems := make([]ir.Attribute, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, err := optionValueToAttr(ctx, rv.Index(i).Interface(), dynamic)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		return ir.ArrayAttrGet(ctx, elems), nil
	}

	return nil, errors.Wrapf(ErrUnsupportedOptionType, "%T", value)
}
