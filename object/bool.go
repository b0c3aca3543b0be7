package object

import (
	"github.com/bpl-lang/bpl/errors"
	"github.com/bpl-lang/bpl/op"
)

// Bool wraps bool and implements the Object and Comparable interfaces. The
// only two values are the singletons True and False; NewBool selects one.
type Bool struct {
	value bool
}

func (b *Bool) Type() Type {
	return BOOL
}

func (b *Bool) Value() bool {
	return b.value
}

// Inspect returns the language spelling of the value: সত্য or মিথ্যা.
func (b *Bool) Inspect() string {
	if b.value {
		return "সত্য"
	}
	return "মিথ্যা"
}

func (b *Bool) String() string {
	return b.Inspect()
}

func (b *Bool) Interface() interface{} {
	return b.value
}

func (b *Bool) Compare(other Object) (int, error) {
	otherBool, ok := other.(*Bool)
	if !ok {
		return 0, errors.TypeErrorf("unable to compare bool and %s", other.Type())
	}
	if b.value == otherBool.value {
		return 0, nil
	}
	if b.value {
		return 1, nil
	}
	return -1, nil
}

func (b *Bool) Equals(other Object) bool {
	otherBool, ok := other.(*Bool)
	if !ok {
		return false
	}
	return b.value == otherBool.value
}

func (b *Bool) IsTruthy() bool {
	return b.value
}

func (b *Bool) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, errors.TypeErrorf("unsupported operation for bool: %v", opType)
}

// NewBool returns the singleton for the given bool value.
func NewBool(value bool) *Bool {
	if value {
		return True
	}
	return False
}
