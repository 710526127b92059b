// Package evaluator implements the single forward pass over a finalized
// graph.Program that produces a witness vector from bound input values
// (§4.6).
package evaluator

import (
	"fmt"

	"github.com/pkg/errors"
	"witness/internal/field"
	"witness/internal/graph"
)

// InputRangeError reports that the graph references an input slot beyond
// the bounds of the caller-provided input buffer.
type InputRangeError struct {
	Slot, Size int
}

func (e *InputRangeError) Error() string {
	return fmt.Sprintf("evaluator: input slot %d out of range (buffer size %d)", e.Slot, e.Size)
}

// Evaluate walks prog.Nodes once, in order, computing each node's value
// from already-computed operands (I1 guarantees every operand precedes its
// owner) and returns the values at prog.Outputs, in order. inputs must be
// at least prog.InputsSize() long.
//
// Evaluate tolerates a KindMontConstant node that slipped past
// ResolveMontConstants by reducing it on the fly — a defensive fallback,
// not the primary path (§4.6).
func Evaluate(prog *graph.Program, inputs []field.Element) ([]field.Element, error) {
	values := make([]field.Element, len(prog.Nodes))

	for i, n := range prog.Nodes {
		switch n.Kind {
		case graph.KindInput:
			if n.Slot < 0 || n.Slot >= len(inputs) {
				return nil, &InputRangeError{Slot: n.Slot, Size: len(inputs)}
			}
			values[i] = inputs[n.Slot]
		case graph.KindConstant:
			values[i] = n.Value
		case graph.KindMontConstant:
			values[i] = field.FromMontgomery(n.Value.Bytes32())
		case graph.KindOp:
			v, err := graph.Eval(n.Op, values[n.Lhs], values[n.Rhs])
			if err != nil {
				return nil, errors.Wrapf(err, "evaluator: node %d (%s)", i, n.Op)
			}
			values[i] = v
		default:
			return nil, errors.Errorf("evaluator: node %d: unknown node kind %d", i, n.Kind)
		}
	}

	out := make([]field.Element, len(prog.Outputs))
	for i, o := range prog.Outputs {
		if o < 0 || o >= len(values) {
			return nil, errors.Errorf("evaluator: output index %d out of range (%d nodes)", o, len(values))
		}
		out[i] = values[o]
	}
	return out, nil
}
