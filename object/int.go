package object

import (
	"strconv"

	"github.com/bpl-lang/bpl/errors"
	"github.com/bpl-lang/bpl/op"
)

// Int wraps int64 and implements the Object and Comparable interfaces.
type Int struct {
	value int64
}

func (i *Int) Type() Type {
	return INT
}

func (i *Int) Value() int64 {
	return i.value
}

func (i *Int) Inspect() string {
	return strconv.FormatInt(i.value, 10)
}

func (i *Int) String() string {
	return i.Inspect()
}

func (i *Int) Interface() interface{} {
	return i.value
}

func (i *Int) Compare(other Object) (int, error) {
	switch other := other.(type) {
	case *Int:
		if i.value == other.value {
			return 0, nil
		}
		if i.value > other.value {
			return 1, nil
		}
		return -1, nil
	case *Float:
		thisFloat := float64(i.value)
		if thisFloat == other.value {
			return 0, nil
		}
		if thisFloat > other.value {
			return 1, nil
		}
		return -1, nil
	default:
		return 0, errors.TypeErrorf("unable to compare int and %s", other.Type())
	}
}

func (i *Int) Equals(other Object) bool {
	switch other := other.(type) {
	case *Int:
		return i.value == other.value
	case *Float:
		return float64(i.value) == other.value
	}
	return false
}

func (i *Int) IsTruthy() bool {
	return i.value != 0
}

func (i *Int) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	switch right := right.(type) {
	case *Int:
		return i.runOperationInt(opType, right.value)
	case *Float:
		return NewFloat(float64(i.value)).runOperationFloat(opType, right.value)
	default:
		return nil, errors.TypeErrorf("unsupported operation for int: %v on type %s", opType, right.Type())
	}
}

func (i *Int) runOperationInt(opType op.BinaryOpType, right int64) (Object, error) {
	switch opType {
	case op.Add:
		return NewInt(i.value + right), nil
	case op.Subtract:
		return NewInt(i.value - right), nil
	case op.Multiply:
		return NewInt(i.value * right), nil
	case op.Divide:
		// Division of two ints always yields a float
		if right == 0 {
			return nil, errors.EvalErrorf("division by zero").WithCode(errors.E3003)
		}
		return NewFloat(float64(i.value) / float64(right)), nil
	case op.Modulo:
		if right == 0 {
			return nil, errors.EvalErrorf("integer modulo by zero").WithCode(errors.E3003)
		}
		// Floored modulo: the result takes the sign of the divisor
		m := i.value % right
		if m != 0 && (m < 0) != (right < 0) {
			m += right
		}
		return NewInt(m), nil
	default:
		return nil, errors.TypeErrorf("unsupported operation for int: %v", opType)
	}
}

func NewInt(value int64) *Int {
	return &Int{value: value}
}
