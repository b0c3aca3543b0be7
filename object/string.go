package object

import (
	"fmt"

	"github.com/bpl-lang/bpl/errors"
	"github.com/bpl-lang/bpl/op"
)

// String wraps string and implements the Object and Comparable interfaces.
type String struct {
	value string
}

func (s *String) Type() Type {
	return STRING
}

func (s *String) Value() string {
	return s.value
}

func (s *String) Inspect() string {
	return fmt.Sprintf("%q", s.value)
}

func (s *String) String() string {
	return s.value
}

func (s *String) Interface() interface{} {
	return s.value
}

func (s *String) Compare(other Object) (int, error) {
	otherStr, ok := other.(*String)
	if !ok {
		return 0, errors.TypeErrorf("unable to compare string and %s", other.Type())
	}
	if s.value == otherStr.value {
		return 0, nil
	}
	if s.value > otherStr.value {
		return 1, nil
	}
	return -1, nil
}

func (s *String) Equals(other Object) bool {
	otherStr, ok := other.(*String)
	if !ok {
		return false
	}
	return s.value == otherStr.value
}

func (s *String) IsTruthy() bool {
	return s.value != ""
}

func (s *String) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	otherStr, ok := right.(*String)
	if !ok {
		return nil, errors.TypeErrorf("unsupported operation for string: %v on type %s", opType, right.Type())
	}
	switch opType {
	case op.Add:
		return NewString(s.value + otherStr.value), nil
	default:
		return nil, errors.TypeErrorf("unsupported operation for string: %v", opType)
	}
}

func NewString(s string) *String {
	return &String{value: s}
}
