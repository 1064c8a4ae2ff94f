package ir

import (
	"github.com/cockroachdb/errors"
)

// OpProvider is satisfied by typed operation wrappers that expose their
// underlying operation. Dialect op views implement it so they can be passed
// wherever a handle is expected.
type OpProvider interface {
	Operation() *Operation
}

// ResultOf coerces an operation-or-value handle to a single value: a Value
// passes through, an operation (or op view) contributes its sole result.
// An operation with zero or multiple results is an error.
func ResultOf(handle any) (Value, error) {
	switch h := handle.(type) {
	case Value:
		return h, nil
	case *Operation:
		if h.NumResults() != 1 {
			return nil, errors.Newf(
				"expected a single result from %s, got %d", h.Name(), h.NumResults())
		}
		return h.Result(0), nil
	case OpProvider:
		return ResultOf(h.Operation())
	case nil:
		return nil, errors.New("nil handle")
	default:
		return nil, errors.Newf("cannot use %T as an operation or value handle", handle)
	}
}

// ResultsOf coerces an operation-or-values handle to a value list: an
// operation (or op view) contributes all of its results in order, a value
// contributes itself, and a value slice passes through.
func ResultsOf(handle any) ([]Value, error) {
	switch h := handle.(type) {
	case []Value:
		return append([]Value(nil), h...), nil
	case Value:
		return []Value{h}, nil
	case *Operation:
		return h.Results(), nil
	case OpProvider:
		return ResultsOf(h.Operation())
	case nil:
		return nil, nil
	default:
		return nil, errors.Newf("cannot use %T as an operation or value-list handle", handle)
	}
}
