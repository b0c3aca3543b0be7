// Package object provides the runtime value types for BPL programs.
//
// Host code often type asserts an object.Object to a specific type, such as
// *object.Float. For example:
//
//	switch obj := obj.(type) {
//	case *object.String:
//		// do something with obj.Value()
//	case *object.Float:
//		// do something with obj.Value()
//	}
//
// The Type() method of each object may also be used to get a string
// name of the object type, such as "string" or "float".
package object

import (
	"context"

	"github.com/bpl-lang/bpl/op"
)

// Type of an object as a string.
type Type string

// Type constants
const (
	BOOL     Type = "bool"
	BUILTIN  Type = "builtin"
	CLOSURE  Type = "closure"
	FLOAT    Type = "float"
	FUNCTION Type = "function"
	INT      Type = "int"
	NIL      Type = "nil"
	STRING   Type = "string"
)

var (
	Nil   = &NilType{}
	True  = &Bool{value: true}
	False = &Bool{value: false}
)

// Object is the interface that all BPL value types implement.
type Object interface {
	// Type of the object.
	Type() Type

	// Inspect returns a string representation of the given object.
	Inspect() string

	// Interface converts the given object to a native Go value.
	Interface() interface{}

	// Returns true if the given object is equal to this object.
	Equals(other Object) bool

	// IsTruthy returns true if the object is considered "truthy".
	IsTruthy() bool

	// RunOperation runs an operation on this object with the given
	// right-hand side object.
	RunOperation(opType op.BinaryOpType, right Object) (Object, error)
}

// Callable is an interface for objects that can be invoked as functions.
// *Builtin implements it directly. Compiled functions and tree-walk closures
// are not Callables: the virtual machine and the evaluator invoke those by
// type asserting the concrete type, since each owns the calling convention
// for its own function representation.
type Callable interface {
	// Call invokes the callable with the given arguments and returns the result.
	Call(ctx context.Context, args ...Object) (Object, error)
}

// Comparable is an interface used to compare two objects.
//
//	-1 if this < other
//	 0 if this == other
//	 1 if this > other
type Comparable interface {
	Compare(other Object) (int, error)
}

// PrintableValue returns the string that দেখাও writes for an object: the raw
// string value for strings, the Inspect form for everything else.
func PrintableValue(obj Object) string {
	if s, ok := obj.(*String); ok {
		return s.Value()
	}
	return obj.Inspect()
}
