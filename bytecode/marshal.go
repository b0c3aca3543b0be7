package bytecode

import (
	"fmt"

	"github.com/bpl-lang/bpl/op"
	"github.com/fxamacker/cbor/v2"
)

// Serialized program format identity. Version is bumped on any change to the
// wire layout; older versions are not readable.
const (
	Format  = "bplc"
	Version = 1
)

// Canonical mode gives deterministic encoding: marshaling the same Code twice
// yields identical bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("bytecode: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// envelope is the on-disk wrapper for a serialized program.
type envelope struct {
	Format  string       `cbor:"format"`
	Version int          `cbor:"version"`
	ID      string       `cbor:"id"`
	Codes   []codeRecord `cbor:"codes"`
}

// codeRecord is the serialized form of a single Code block. Code blocks are
// stored flattened in pre-order; children and function constants reference
// other blocks by ID and are relinked during Unmarshal.
type codeRecord struct {
	ID           string           `cbor:"id"`
	Name         string           `cbor:"name"`
	ParamCount   int              `cbor:"param_count"`
	Instructions []op.Code        `cbor:"instructions"`
	Constants    []constantRecord `cbor:"constants"`
	Names        []string         `cbor:"names"`
	Source       string           `cbor:"source,omitempty"`
	Filename     string           `cbor:"filename,omitempty"`
	Locations    []locationRecord `cbor:"locations,omitempty"`
	Children     []string         `cbor:"children,omitempty"`
}

type locationRecord struct {
	Line   int `cbor:"line"`
	Column int `cbor:"column"`
}

// Constant kinds in the serialized constant pool.
const (
	constNil      = "nil"
	constBool     = "bool"
	constInt      = "int"
	constFloat    = "float"
	constString   = "string"
	constFunction = "function"
)

type constantRecord struct {
	Kind  string  `cbor:"kind"`
	Int   int64   `cbor:"int,omitempty"`
	Float float64 `cbor:"float,omitempty"`
	Str   string  `cbor:"str,omitempty"`
	Bool  bool    `cbor:"bool,omitempty"`

	// Function constants only
	FunctionID string   `cbor:"function_id,omitempty"`
	Name       string   `cbor:"name,omitempty"`
	Parameters []string `cbor:"parameters,omitempty"`
	CodeID     string   `cbor:"code_id,omitempty"`
}

// Marshal serializes a compiled program to its CBOR wire form. The root code
// and all nested function code blocks are included. Stored IDs are preserved,
// so marshaling the same Code twice yields identical bytes.
func Marshal(code *Code) ([]byte, error) {
	flat := code.Flatten()
	records := make([]codeRecord, 0, len(flat))
	for _, c := range flat {
		rec, err := newCodeRecord(c)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	env := envelope{
		Format:  Format,
		Version: Version,
		ID:      code.ID(),
		Codes:   records,
	}
	return cborEncMode.Marshal(env)
}

// Unmarshal reconstructs a compiled program from its CBOR wire form.
func Unmarshal(data []byte) (*Code, error) {
	var env envelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("bytecode: unmarshal program: %w", err)
	}
	if env.Format != Format {
		return nil, fmt.Errorf("bytecode: unknown format %q", env.Format)
	}
	if env.Version != Version {
		return nil, fmt.Errorf("bytecode: unsupported version %d", env.Version)
	}
	// Children always follow their parent in the flattened list, so one
	// reverse pass has every referenced block built before its referrer.
	codes := make(map[string]*Code, len(env.Codes))
	for i := len(env.Codes) - 1; i >= 0; i-- {
		rec := env.Codes[i]
		code, err := rec.build(codes)
		if err != nil {
			return nil, err
		}
		codes[rec.ID] = code
	}
	root, ok := codes[env.ID]
	if !ok {
		return nil, fmt.Errorf("bytecode: missing root code %q", env.ID)
	}
	return root, nil
}

func newCodeRecord(c *Code) (codeRecord, error) {
	rec := codeRecord{
		ID:           c.id,
		Name:         c.name,
		ParamCount:   c.paramCount,
		Instructions: c.instructions,
		Names:        c.names,
		Source:       c.source,
		Filename:     c.filename,
	}
	for _, loc := range c.locations {
		rec.Locations = append(rec.Locations, locationRecord{
			Line:   loc.Line,
			Column: loc.Column,
		})
	}
	for _, child := range c.children {
		rec.Children = append(rec.Children, child.id)
	}
	for _, value := range c.constants {
		cr, err := newConstantRecord(value)
		if err != nil {
			return codeRecord{}, err
		}
		rec.Constants = append(rec.Constants, cr)
	}
	return rec, nil
}

func newConstantRecord(value any) (constantRecord, error) {
	switch value := value.(type) {
	case nil:
		return constantRecord{Kind: constNil}, nil
	case bool:
		return constantRecord{Kind: constBool, Bool: value}, nil
	case int64:
		return constantRecord{Kind: constInt, Int: value}, nil
	case float64:
		return constantRecord{Kind: constFloat, Float: value}, nil
	case string:
		return constantRecord{Kind: constString, Str: value}, nil
	case *Function:
		if value.code == nil {
			return constantRecord{}, fmt.Errorf("bytecode: function %q has no code", value.name)
		}
		return constantRecord{
			Kind:       constFunction,
			FunctionID: value.id,
			Name:       value.name,
			Parameters: value.parameters,
			CodeID:     value.code.ID(),
		}, nil
	default:
		return constantRecord{}, fmt.Errorf("bytecode: unsupported constant type %T", value)
	}
}

func (rec codeRecord) build(codes map[string]*Code) (*Code, error) {
	var children []*Code
	for _, id := range rec.Children {
		child, ok := codes[id]
		if !ok {
			return nil, fmt.Errorf("bytecode: missing child code %q", id)
		}
		children = append(children, child)
	}
	var constants []any
	for _, cr := range rec.Constants {
		value, err := cr.build(codes)
		if err != nil {
			return nil, err
		}
		constants = append(constants, value)
	}
	var locations []SourceLocation
	for _, loc := range rec.Locations {
		locations = append(locations, SourceLocation{
			Line:   loc.Line,
			Column: loc.Column,
		})
	}
	return NewCode(CodeParams{
		ID:           rec.ID,
		Name:         rec.Name,
		Children:     children,
		Instructions: rec.Instructions,
		Constants:    constants,
		Names:        rec.Names,
		ParamCount:   rec.ParamCount,
		Source:       rec.Source,
		Filename:     rec.Filename,
		Locations:    locations,
	}), nil
}

func (cr constantRecord) build(codes map[string]*Code) (any, error) {
	switch cr.Kind {
	case constNil:
		return nil, nil
	case constBool:
		return cr.Bool, nil
	case constInt:
		return cr.Int, nil
	case constFloat:
		return cr.Float, nil
	case constString:
		return cr.Str, nil
	case constFunction:
		code, ok := codes[cr.CodeID]
		if !ok {
			return nil, fmt.Errorf("bytecode: missing code %q for function %q", cr.CodeID, cr.Name)
		}
		return NewFunction(FunctionParams{
			ID:         cr.FunctionID,
			Name:       cr.Name,
			Parameters: cr.Parameters,
			Code:       code,
		}), nil
	default:
		return nil, fmt.Errorf("bytecode: unknown constant kind %q", cr.Kind)
	}
}
