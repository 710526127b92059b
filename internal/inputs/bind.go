package inputs

import (
	"fmt"

	werrors "witness/internal/errors"
	"witness/internal/field"
	"witness/internal/graph"
)

// UnknownInputError reports a name passed to Bind that no binding in the
// graph's InputsMap recognizes.
type UnknownInputError struct {
	Name string
}

func (e *UnknownInputError) Error() string { return "inputs: unknown input name " + e.Name }

// Code reports the stable error code for an UnknownInputError.
func (e *UnknownInputError) Code() werrors.Code { return werrors.ErrUnknownInput }

// SizeMismatchError reports that a named input's value sequence does not
// match the size declared in the graph's InputsMap.
type SizeMismatchError struct {
	Name     string
	Declared int
	Got      int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("inputs: %q: declared size %d, got %d", e.Name, e.Declared, e.Got)
}

// Code reports the stable error code for a SizeMismatchError.
func (e *SizeMismatchError) Code() werrors.Code { return werrors.ErrSizeMismatch }

// OutOfRangeError reports an input Element whose integer lift is not below
// P. Bind checks every value and rejects such an Element rather than
// reducing it. The field package's constructors (FromBigInt, FromBytes32,
// Reduce) already reduce their argument modulo P, so an out-of-range
// integer converted through them reaches Bind reduced and passes the check.
type OutOfRangeError struct {
	Name  string
	Index int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("inputs: %q[%d]: value >= field modulus", e.Name, e.Index)
}

// Code reports the stable error code for an OutOfRangeError.
func (e *OutOfRangeError) Code() werrors.Code { return werrors.ErrInputOutOfRange }

// Bind resolves named, caller-supplied input values into the flat input
// buffer the evaluator consumes, per the graph's InputsMap (§4.7).
// Scenario 6: input_map = {fnv1a("in") -> {first_slot: 1, size: 3}},
// named["in"] = [2,3,5] => buf[1:4] = [2,3,5].
func Bind(prog *graph.Program, named map[string][]field.Element) ([]field.Element, error) {
	size := prog.InputsSize()
	for _, b := range prog.InputsMap {
		if end := b.FirstSlot + b.Size; end > size {
			size = end
		}
	}
	buf := make([]field.Element, size)

	byHash := make(map[uint64]graph.InputBinding, len(prog.InputsMap))
	for _, b := range prog.InputsMap {
		byHash[b.Hash] = b
	}

	for name, values := range named {
		b, ok := byHash[FNV1a(name)]
		if !ok {
			return nil, &UnknownInputError{Name: name}
		}
		if len(values) != b.Size {
			return nil, &SizeMismatchError{Name: name, Declared: b.Size, Got: len(values)}
		}
		for i, v := range values {
			if !isCanonical(v) {
				return nil, &OutOfRangeError{Name: name, Index: i}
			}
			buf[b.FirstSlot+i] = v
		}
	}
	return buf, nil
}

func isCanonical(v field.Element) bool {
	return v.BigInt().Cmp(field.P.ToBig()) < 0
}
