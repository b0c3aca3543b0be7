package object

import (
	"math"
	"strconv"
	"strings"

	"github.com/bpl-lang/bpl/errors"
	"github.com/bpl-lang/bpl/op"
)

// Float wraps float64 and implements the Object and Comparable interfaces.
type Float struct {
	value float64
}

func (f *Float) Type() Type {
	return FLOAT
}

func (f *Float) Value() float64 {
	return f.value
}

// Inspect returns the shortest representation that still reads as a float:
// whole values keep a trailing ".0" ("2.0" rather than "2").
func (f *Float) Inspect() string {
	s := strconv.FormatFloat(f.value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !math.IsInf(f.value, 0) && !math.IsNaN(f.value) {
		s += ".0"
	}
	return s
}

func (f *Float) String() string {
	return f.Inspect()
}

func (f *Float) Interface() interface{} {
	return f.value
}

func (f *Float) Compare(other Object) (int, error) {
	switch other := other.(type) {
	case *Float:
		if f.value == other.value {
			return 0, nil
		}
		if f.value > other.value {
			return 1, nil
		}
		return -1, nil
	case *Int:
		otherFloat := float64(other.value)
		if f.value == otherFloat {
			return 0, nil
		}
		if f.value > otherFloat {
			return 1, nil
		}
		return -1, nil
	default:
		return 0, errors.TypeErrorf("unable to compare float and %s", other.Type())
	}
}

func (f *Float) Equals(other Object) bool {
	switch other := other.(type) {
	case *Int:
		return f.value == float64(other.value)
	case *Float:
		return f.value == other.value
	}
	return false
}

func (f *Float) IsTruthy() bool {
	return f.value != 0.0
}

func (f *Float) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	switch right := right.(type) {
	case *Int:
		return f.runOperationFloat(opType, float64(right.value))
	case *Float:
		return f.runOperationFloat(opType, right.value)
	default:
		return nil, errors.TypeErrorf("unsupported operation for float: %v on type %s", opType, right.Type())
	}
}

func (f *Float) runOperationFloat(opType op.BinaryOpType, right float64) (Object, error) {
	switch opType {
	case op.Add:
		return NewFloat(f.value + right), nil
	case op.Subtract:
		return NewFloat(f.value - right), nil
	case op.Multiply:
		return NewFloat(f.value * right), nil
	case op.Divide:
		if right == 0 {
			return nil, errors.EvalErrorf("float division by zero").WithCode(errors.E3003)
		}
		return NewFloat(f.value / right), nil
	case op.Modulo:
		if right == 0 {
			return nil, errors.EvalErrorf("float modulo").WithCode(errors.E3003)
		}
		// Floored modulo: the result takes the sign of the divisor
		m := math.Mod(f.value, right)
		if m != 0 && (m < 0) != (right < 0) {
			m += right
		}
		return NewFloat(m), nil
	default:
		return nil, errors.TypeErrorf("unsupported operation for float: %v", opType)
	}
}

func NewFloat(value float64) *Float {
	return &Float{value: value}
}
