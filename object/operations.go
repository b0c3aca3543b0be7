package object

import (
	"github.com/bpl-lang/bpl/errors"
	"github.com/bpl-lang/bpl/op"
)

// Compare two objects using the given comparison operator. An error is
// returned if the objects cannot be ordered.
func Compare(opType op.CompareOpType, a, b Object) (Object, error) {
	switch opType {
	case op.Equal:
		return NewBool(a.Equals(b)), nil
	case op.NotEqual:
		return NewBool(!a.Equals(b)), nil
	}

	comparable, ok := a.(Comparable)
	if !ok {
		return nil, errors.TypeErrorf("expected a comparable object (got %s)", a.Type())
	}
	value, err := comparable.Compare(b)
	if err != nil {
		return nil, err
	}

	switch opType {
	case op.LessThan:
		return NewBool(value < 0), nil
	case op.LessThanOrEqual:
		return NewBool(value <= 0), nil
	case op.GreaterThan:
		return NewBool(value > 0), nil
	case op.GreaterThanOrEqual:
		return NewBool(value >= 0), nil
	default:
		return nil, errors.EvalErrorf("unknown object comparison operator: %d", opType)
	}
}

// BinaryOp performs a binary operation on two objects, given an operator.
// The logical operators take the truthiness of both operands and produce a
// Bool; both operands are already evaluated by the time this runs, so there
// is no short-circuiting. Everything else dispatches to the left operand's
// RunOperation.
func BinaryOp(opType op.BinaryOpType, a, b Object) (Object, error) {
	switch opType {
	case op.And:
		return NewBool(a.IsTruthy() && b.IsTruthy()), nil
	case op.Or:
		return NewBool(a.IsTruthy() || b.IsTruthy()), nil
	}
	return a.RunOperation(opType, b)
}
