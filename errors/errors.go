// Package errors defines error types with source locations and formatting
// support for user-facing diagnostics.
package errors

import (
	"fmt"
	"strings"
)

// SourceLocation represents a position in source code.
type SourceLocation struct {
	Filename string
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Source   string // The line of source code
}

// String returns a formatted string representation of the source location.
func (s SourceLocation) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsZero returns true if the location has not been set.
func (s SourceLocation) IsZero() bool {
	return s.Line == 0 && s.Column == 0
}

// StackFrame represents a single frame in the call stack.
type StackFrame struct {
	Function string
	Location SourceLocation
}

// String returns a formatted string representation of the stack frame.
func (f StackFrame) String() string {
	if f.Function != "" {
		if f.Location.IsZero() {
			return fmt.Sprintf("at %s", f.Function)
		}
		return fmt.Sprintf("at %s (%s)", f.Function, f.Location.String())
	}
	return fmt.Sprintf("at %s", f.Location.String())
}

// FormatStackTrace formats a slice of stack frames as a human-readable string.
func FormatStackTrace(frames []StackFrame) string {
	if len(frames) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Stack trace:\n")
	for _, frame := range frames {
		b.WriteString("  ")
		b.WriteString(frame.String())
		b.WriteString("\n")
	}
	return b.String()
}

// FriendlyError is an interface for errors that have a human friendly message
// in addition to a the lower level default error message.
type FriendlyError interface {
	Error() string
	FriendlyErrorMessage() string
}

// FormattableError is an interface for errors that can be formatted with
// the enhanced error formatter (with colors, source context, etc).
type FormattableError interface {
	Error() string
	ToFormatted() *FormattedError
}

// FatalError is an interface for errors that may or may not be fatal.
type FatalError interface {
	Error() string
	IsFatal() bool
}

// EvalError is used to indicate an unrecoverable error that occurred
// during program evaluation. All EvalErrors are considered fatal errors.
type EvalError struct {
	Err      error
	Code     ErrorCode
	Location SourceLocation
	Stack    []StackFrame
}

func (r *EvalError) Error() string {
	return r.Err.Error()
}

func (r *EvalError) Unwrap() error {
	return r.Err
}

func (r *EvalError) IsFatal() bool {
	return true
}

// FriendlyErrorMessage returns the formatted form of this error.
func (r *EvalError) FriendlyErrorMessage() string {
	return NewFormatter(false).Format(r.ToFormatted())
}

// ToFormatted converts to the FormattedError type for display.
func (r *EvalError) ToFormatted() *FormattedError {
	fe := &FormattedError{
		Code:     r.Code,
		Kind:     "error",
		Message:  r.Err.Error(),
		Filename: r.Location.Filename,
		Line:     r.Location.Line,
		Column:   r.Location.Column,
		Stack:    r.Stack,
	}
	if r.Location.Source != "" {
		fe.SourceLines = []SourceLineEntry{
			{Number: r.Location.Line, Text: r.Location.Source, IsMain: true},
		}
	}
	return fe
}

func NewEvalError(err error) *EvalError {
	return &EvalError{Err: err}
}

func EvalErrorf(format string, args ...any) *EvalError {
	return NewEvalError(fmt.Errorf(format, args...))
}

// WithCode tags the error with an error code and returns it.
func (r *EvalError) WithCode(code ErrorCode) *EvalError {
	r.Code = code
	return r
}

// WithLocation tags the error with a source location and returns it.
func (r *EvalError) WithLocation(loc SourceLocation) *EvalError {
	r.Location = loc
	return r
}

// WithStack attaches a call stack to the error.
func (r *EvalError) WithStack(stack []StackFrame) *EvalError {
	r.Stack = stack
	return r
}

// ArgsError is used to indicate an error that occurred while processing
// function arguments. All ArgsErrors are considered fatal errors.
type ArgsError struct {
	Err error
}

func (a *ArgsError) Error() string {
	return a.Err.Error()
}

func (a *ArgsError) Unwrap() error {
	return a.Err
}

func (a *ArgsError) IsFatal() bool {
	return true
}

func NewArgsError(err error) *ArgsError {
	return &ArgsError{Err: err}
}

func ArgsErrorf(format string, args ...any) *ArgsError {
	return NewArgsError(fmt.Errorf(format, args...))
}

// TypeError is used to indicate an invalid operand or argument type.
type TypeError struct {
	Err error
}

func (t *TypeError) Error() string {
	return t.Err.Error()
}

func (t *TypeError) Unwrap() error {
	return t.Err
}

func (t *TypeError) IsFatal() bool {
	return true
}

func NewTypeError(err error) *TypeError {
	return &TypeError{Err: err}
}

func TypeErrorf(format string, args ...any) *TypeError {
	return NewTypeError(fmt.Errorf(format, args...))
}

// NameError indicates a reference to a name that is not bound in any
// reachable scope. The names that were in scope are retained so that the
// formatted form can offer a did-you-mean suggestion; the Error() string
// itself stays exact.
type NameError struct {
	Err      error
	Name     string
	Known    []string
	Location SourceLocation
	Stack    []StackFrame
}

func (n *NameError) Error() string {
	return n.Err.Error()
}

func (n *NameError) Unwrap() error {
	return n.Err
}

func (n *NameError) IsFatal() bool {
	return true
}

// FriendlyErrorMessage returns the formatted form of this error.
func (n *NameError) FriendlyErrorMessage() string {
	return NewFormatter(false).Format(n.ToFormatted())
}

// ToFormatted converts to the FormattedError type for display.
func (n *NameError) ToFormatted() *FormattedError {
	fe := &FormattedError{
		Code:     E3001,
		Kind:     "error",
		Message:  n.Err.Error(),
		Filename: n.Location.Filename,
		Line:     n.Location.Line,
		Column:   n.Location.Column,
		Stack:    n.Stack,
	}
	if n.Location.Source != "" {
		fe.SourceLines = []SourceLineEntry{
			{Number: n.Location.Line, Text: n.Location.Source, IsMain: true},
		}
	}
	if hint := FormatSuggestions(SuggestSimilar(n.Name, n.Known)); hint != "" {
		fe.Hint = hint
	}
	return fe
}

// NewNameError creates a NameError. The err message is used verbatim as the
// Error() string; name is the unresolved name and known lists the names that
// were in scope.
func NewNameError(err error, name string, known []string) *NameError {
	return &NameError{Err: err, Name: name, Known: known}
}

// WithLocation tags the error with a source location and returns it.
func (n *NameError) WithLocation(loc SourceLocation) *NameError {
	n.Location = loc
	return n
}

// WithStack attaches a call stack to the error.
func (n *NameError) WithStack(stack []StackFrame) *NameError {
	n.Stack = stack
	return n
}
