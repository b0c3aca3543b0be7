package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E1xxx: Lexical and parse errors
//   - E2xxx: Compile errors
//   - E3xxx: Runtime errors
type ErrorCode string

const (
	// Lexical and parse errors (E1xxx)
	E1001 ErrorCode = "E1001" // Unexpected token
	E1002 ErrorCode = "E1002" // Unterminated string literal
	E1003 ErrorCode = "E1003" // Invalid character
	E1004 ErrorCode = "E1004" // Invalid number literal
	E1005 ErrorCode = "E1005" // Invalid assignment target
	E1006 ErrorCode = "E1006" // Unexpected end of input

	// Compile errors (E2xxx)
	E2001 ErrorCode = "E2001" // Unsupported statement
	E2002 ErrorCode = "E2002" // Unsupported operator
	E2003 ErrorCode = "E2003" // Invalid assignment target
	E2004 ErrorCode = "E2004" // Unknown node type

	// Runtime errors (E3xxx)
	E3001 ErrorCode = "E3001" // Unknown name
	E3002 ErrorCode = "E3002" // Type error
	E3003 ErrorCode = "E3003" // Division or modulo by zero
	E3004 ErrorCode = "E3004" // Not callable
	E3005 ErrorCode = "E3005" // Wrong number of arguments
	E3006 ErrorCode = "E3006" // Unknown opcode
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "unexpected token",
	E1002: "unterminated string literal",
	E1003: "invalid character",
	E1004: "invalid number literal",
	E1005: "invalid assignment target",
	E1006: "unexpected end of input",

	E2001: "unsupported statement",
	E2002: "unsupported operator",
	E2003: "invalid assignment target",
	E2004: "unknown node type",

	E3001: "unknown name",
	E3002: "type error",
	E3003: "division or modulo by zero",
	E3004: "not callable",
	E3005: "wrong number of arguments",
	E3006: "unknown opcode",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		return "parse"
	case '2':
		return "compile"
	case '3':
		return "runtime"
	default:
		return "unknown"
	}
}
