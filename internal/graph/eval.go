package graph

import (
	"witness/internal/field"
	werrors "witness/internal/errors"
)

// Eval is the single semantic authority for every operator in Operation: it
// is used by the recorder to maintain concrete values as nodes are
// appended, by the constant-folding pass, and by the evaluator. It is total
// except for Div, Idiv and Mod by a zero right-hand operand, which report a
// *field.ArithError.
func Eval(op Operation, a, b field.Element) (field.Element, error) {
	switch op {
	case Mul:
		return a.Mul(b), nil
	case Add:
		return a.Add(b), nil
	case Sub:
		return a.Sub(b), nil
	case Div:
		return a.Div(b)
	case Idiv:
		return a.Idiv(b)
	case Mod:
		return a.Mod(b)
	case Pow:
		return a.Pow(b), nil
	case Eq:
		return a.Eq(b), nil
	case Neq:
		return a.Neq(b), nil
	case Lt:
		return a.Lt(b), nil
	case Gt:
		return a.Gt(b), nil
	case Leq:
		return a.Leq(b), nil
	case Geq:
		return a.Geq(b), nil
	case Land:
		return a.Land(b), nil
	case Lor:
		return a.Lor(b), nil
	case Band:
		return a.Band(b), nil
	case Bor:
		return a.Bor(b), nil
	case Bxor:
		return a.Bxor(b), nil
	case Shl:
		return a.Shl(b), nil
	case Shr:
		return a.Shr(b), nil
	default:
		return field.Element{}, &UnknownOperationError{Op: op}
	}
}

// UnknownOperationError reports a Node carrying an Operation discriminant
// outside the closed set Eval knows how to interpret — only reachable from
// a malformed (e.g. corrupted or hand-crafted) graph.
type UnknownOperationError struct {
	Op Operation
}

func (e *UnknownOperationError) Error() string {
	return "graph: unknown operation " + e.Op.String()
}

// Code reports the stable error code for an UnknownOperationError.
func (e *UnknownOperationError) Code() werrors.Code { return werrors.ErrUnknownOperation }
