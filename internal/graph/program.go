package graph

import (
	"fmt"

	"github.com/pkg/errors"
	"witness/internal/field"
	werrors "witness/internal/errors"
)

// Program is a finalized expression graph: a topologically-ordered node
// list, the witness-ordered output indices, and the named-input slot map.
type Program struct {
	Nodes     []Node
	Outputs   []int
	InputsMap []InputBinding
}

// InputBinding records where a named input's values live in the evaluator's
// flat input buffer.
type InputBinding struct {
	Hash      uint64
	FirstSlot int
	Size      int
}

// MalformedError reports a structural problem with a graph — an
// out-of-range operand, a forward reference, or an unknown node
// discriminant. It is always fatal to the caller that detects it.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string { return "graph: malformed: " + e.Reason }

// Code reports the stable error code for a MalformedError.
func (e *MalformedError) Code() werrors.Code { return werrors.ErrMalformedGraph }

// Validate checks invariants I1 (topological ordering), I2 (no surviving
// MontConstant) and I6 (all stored values canonical) against p. It is
// intended to run at package boundaries — after deserialization and after
// optimization — not on every evaluation.
func (p *Program) Validate() error {
	for i, n := range p.Nodes {
		switch n.Kind {
		case KindOp:
			if n.Lhs >= i || n.Rhs >= i {
				return errors.Wrapf(&MalformedError{Reason: fmt.Sprintf(
					"node %d: operand out of topological order (lhs=%d rhs=%d)", i, n.Lhs, n.Rhs)},
					"Validate")
			}
			if n.Lhs < 0 || n.Rhs < 0 {
				return errors.Wrapf(&MalformedError{Reason: fmt.Sprintf(
					"node %d: negative operand index", i)}, "Validate")
			}
		case KindMontConstant:
			return errors.Wrapf(&MalformedError{Reason: fmt.Sprintf(
				"node %d: MontConstant survives into a finalized graph (I2)", i)}, "Validate")
		case KindConstant:
			if !isCanonical(n.Value) {
				return errors.Wrapf(&MalformedError{Reason: fmt.Sprintf(
					"node %d: constant value is not canonical (I6)", i)}, "Validate")
			}
		case KindInput:
			if n.Slot < 0 {
				return errors.Wrapf(&MalformedError{Reason: fmt.Sprintf(
					"node %d: negative input slot", i)}, "Validate")
			}
		default:
			return errors.Wrapf(&MalformedError{Reason: fmt.Sprintf(
				"node %d: unknown node kind %d", i, n.Kind)}, "Validate")
		}
	}
	for _, o := range p.Outputs {
		if o < 0 || o >= len(p.Nodes) {
			return errors.Wrapf(&MalformedError{Reason: fmt.Sprintf(
				"output index %d out of range (%d nodes)", o, len(p.Nodes))}, "Validate")
		}
	}
	return nil
}

func isCanonical(v field.Element) bool {
	return v.BigInt().Cmp(field.P.ToBig()) < 0
}

// InputsSize returns the size of the input buffer the evaluator needs:
// one more than the largest Input slot referenced anywhere in the graph
// (I5 — callers may rely on this as the buffer size).
func (p *Program) InputsSize() int {
	max := -1
	for _, n := range p.Nodes {
		if n.Kind == KindInput && n.Slot > max {
			max = n.Slot
		}
	}
	return max + 1
}

// ResolveMontConstants rewrites every KindMontConstant node in place into a
// canonical KindConstant, satisfying I2 ahead of optimization or
// evaluation. Deserializers should call this immediately after decoding;
// it is idempotent.
func ResolveMontConstants(nodes []Node) {
	for i, n := range nodes {
		if n.Kind == KindMontConstant {
			nodes[i] = ConstantNode(field.FromMontgomery(n.Value.Bytes32()))
		}
	}
}
