package lexer

import (
	"github.com/bpl-lang/bpl/errors"
	"github.com/bpl-lang/bpl/token"
)

// Error is a lexical error with its position in the input. The Error()
// string is the exact user-facing message; the formatted form adds source
// context.
type Error struct {
	errType    string
	message    string
	code       errors.ErrorCode
	file       string
	position   token.Position
	sourceLine string
}

func (e *Error) Error() string {
	return e.errType + ": " + e.message
}

// Type returns the error type prefix, e.g. "সিনট্যাক্স ত্রুটি".
func (e *Error) Type() string {
	return e.errType
}

// Message returns the message portion after the type prefix.
func (e *Error) Message() string {
	return e.message
}

// Code returns the error code.
func (e *Error) Code() errors.ErrorCode {
	return e.code
}

// File returns the name of the file being lexed, if known.
func (e *Error) File() string {
	return e.file
}

// Position returns the position of the offending text.
func (e *Error) Position() token.Position {
	return e.position
}

// SourceLine returns the line of source containing the error.
func (e *Error) SourceLine() string {
	return e.sourceLine
}

func (e *Error) IsFatal() bool {
	return true
}

// FriendlyErrorMessage returns the formatted form of this error.
func (e *Error) FriendlyErrorMessage() string {
	return errors.NewFormatter(false).Format(e.ToFormatted())
}

// ToFormatted converts the error to a FormattedError for display.
func (e *Error) ToFormatted() *errors.FormattedError {
	fe := &errors.FormattedError{
		Code:     e.code,
		Kind:     e.errType,
		Message:  e.message,
		Filename: e.file,
		Line:     e.position.LineNumber(),
		Column:   e.position.ColumnNumber(),
	}
	if e.sourceLine != "" {
		fe.SourceLines = []errors.SourceLineEntry{
			{Number: e.position.LineNumber(), Text: e.sourceLine, IsMain: true},
		}
	}
	return fe
}
