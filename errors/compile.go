package errors

// CompileError represents a compilation error with source context.
type CompileError struct {
	Code       ErrorCode
	Message    string
	Filename   string
	Line       int
	Column     int
	EndColumn  int
	SourceLine string
	Note       string
}

// Error returns the bare message; location and context appear only in the
// formatted form.
func (e *CompileError) Error() string {
	return e.Message
}

// FriendlyErrorMessage returns a human-friendly error message.
func (e *CompileError) FriendlyErrorMessage() string {
	return NewFormatter(false).Format(e.ToFormatted())
}

// ToFormatted converts to the FormattedError type for display.
func (e *CompileError) ToFormatted() *FormattedError {
	fe := &FormattedError{
		Code:      e.Code,
		Kind:      "error",
		Message:   e.Message,
		Filename:  e.Filename,
		Line:      e.Line,
		Column:    e.Column,
		EndColumn: e.EndColumn,
		Note:      e.Note,
	}
	if e.SourceLine != "" {
		fe.SourceLines = []SourceLineEntry{
			{Number: e.Line, Text: e.SourceLine, IsMain: true},
		}
	}
	return fe
}

// IsFatal returns true: compilation stops at the first error.
func (e *CompileError) IsFatal() bool {
	return true
}
