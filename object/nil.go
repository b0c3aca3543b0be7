package object

import (
	"github.com/bpl-lang/bpl/errors"
	"github.com/bpl-lang/bpl/op"
)

// NilType is the type of the singleton Nil.
type NilType struct{}

func (n *NilType) Type() Type {
	return NIL
}

func (n *NilType) Inspect() string {
	return "নিল"
}

func (n *NilType) String() string {
	return "নিল"
}

func (n *NilType) Interface() interface{} {
	return nil
}

func (n *NilType) Compare(other Object) (int, error) {
	if _, ok := other.(*NilType); ok {
		return 0, nil
	}
	return 0, errors.TypeErrorf("unable to compare nil and %s", other.Type())
}

func (n *NilType) Equals(other Object) bool {
	_, ok := other.(*NilType)
	return ok
}

func (n *NilType) IsTruthy() bool {
	return false
}

func (n *NilType) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, errors.TypeErrorf("unsupported operation for nil: %v", opType)
}
