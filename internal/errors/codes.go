// Package errors defines the witness generator's stable error-code table,
// grounded on the teacher's internal/errors/codes.go idiom (ranged
// categories, a description lookup) but re-scoped from compiler
// diagnostics to witness-generation failures.
package errors

// Code is a stable identifier for a class of witness-generation failure,
// suitable for attaching to structured log output or surfacing to a CLI
// exit code without coupling callers to error message text.
type Code string

const (
	// E0xxx: graph structure and serialization.
	ErrMalformedGraph      Code = "E0001"
	ErrUnknownDiscriminant Code = "E0002"
	ErrOperandOutOfOrder   Code = "E0003"
	ErrOutputOutOfRange    Code = "E0004"
	ErrNonCanonicalValue   Code = "E0005"

	// E1xxx: input binding.
	ErrUnknownInput   Code = "E1001"
	ErrSizeMismatch   Code = "E1002"
	ErrInputOutOfRange Code = "E1003"

	// E2xxx: arithmetic.
	ErrDivisionByZero Code = "E2001"
	ErrUnknownOperation Code = "E2002"

	// E3xxx: recorder misuse.
	ErrNonConstantAccess Code = "E3001"
	ErrInvalidHandle     Code = "E3002"

	// E4xxx: constants table.
	ErrConstantsTableTruncated Code = "E4001"
)

var descriptions = map[Code]string{
	ErrMalformedGraph:      "the serialized graph is structurally invalid",
	ErrUnknownDiscriminant: "a node carries an unrecognized kind discriminant",
	ErrOperandOutOfOrder:   "an operand index is not strictly less than its owning node's index",
	ErrOutputOutOfRange:    "an output index does not name a node in the graph",
	ErrNonCanonicalValue:   "a stored field value is not the canonical reduction modulo p",

	ErrUnknownInput:    "a named input does not appear in the graph's input map",
	ErrSizeMismatch:    "a named input's value count does not match its declared size",
	ErrInputOutOfRange: "a named input value is not less than the field modulus",

	ErrDivisionByZero:   "division, integer division, or modulus by a zero operand",
	ErrUnknownOperation: "a node carries an operator outside the known operation table",

	ErrNonConstantAccess: "is_true/to_int called on a handle whose value is not yet known",
	ErrInvalidHandle:     "a handle does not refer to any node the recorder has produced",

	ErrConstantsTableTruncated: "the constants table ended before a declared section was fully read",
}

// Describe returns the human-readable description for a Code, or the empty
// string if c is not a known code.
func Describe(c Code) string { return descriptions[c] }
