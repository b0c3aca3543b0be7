// Package bytecode provides immutable representations of compiled code.
//
// This package defines the output of compilation: pure data structures that
// represent compiled bytecode, function templates, and associated metadata.
// These types are designed to be created once during compilation and shared
// safely across multiple goroutines and VM instances.
//
// # Key Types
//
//   - [Code]: An immutable compiled code block (program or function body)
//   - [Function]: An immutable function template with parameters and code reference
//   - [SourceLocation]: Maps bytecode to source positions (value type)
//
// # Immutability Guarantees
//
// All types in this package are immutable after construction:
//
//   - No mutation methods exist on any type
//   - All fields are unexported
//   - Constructors copy input slices to prevent caller mutation
//   - Accessors return values or immutable pointers, never mutable slices
//
// Index-based access is used for all collections:
//
//	code.InstructionAt(0)
//	code.ConstantAt(i)
//	code.ChildAt(j)
//
// # Package Dependencies
//
// This package depends only on the op package (plus the serialization
// libraries) to avoid circular dependencies with the object package.
// Constants are stored as []any and converted to object values by the VM.
//
// # Usage
//
// The compiler produces bytecode.Code which can be:
//
//   - Executed directly by the VM
//   - Serialized with [Marshal] for caching or distribution
//   - Inspected for debugging or disassembly
package bytecode
