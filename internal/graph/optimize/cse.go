package optimize

import "witness/internal/graph"

// CommonSubexpressionElimination finds nodes that compute the exact same
// value — same operator and same (canonicalized) operands, or the same
// constant, or the same input slot — and rewrites every later reference to
// point at the first occurrence (§4.4.3). Commutative operators are keyed
// on an unordered operand pair so that e.g. a+b and b+a collapse together.
// It never deletes a node itself; DeadCodeElimination reclaims whatever
// CSE leaves unreferenced.
type CommonSubexpressionElimination struct{}

func (*CommonSubexpressionElimination) Name() string { return "common-subexpression-elimination" }

type cseKey struct {
	kind     graph.NodeKind
	op       graph.Operation
	lhs, rhs int
	value    [32]byte
}

func (*CommonSubexpressionElimination) Apply(prog *graph.Program) (bool, error) {
	nodes := prog.Nodes
	canon := make([]int, len(nodes))
	seen := make(map[cseKey]int, len(nodes))
	dup := false

	for i, n := range nodes {
		var key cseKey
		switch n.Kind {
		case graph.KindInput:
			key = cseKey{kind: graph.KindInput, lhs: n.Slot}
		case graph.KindConstant:
			key = cseKey{kind: graph.KindConstant, value: n.Value.Bytes32()}
		case graph.KindMontConstant:
			key = cseKey{kind: graph.KindMontConstant, value: n.Value.Bytes32()}
		case graph.KindOp:
			l, r := canon[n.Lhs], canon[n.Rhs]
			if graph.Commutative(n.Op) && l > r {
				l, r = r, l
			}
			key = cseKey{kind: graph.KindOp, op: n.Op, lhs: l, rhs: r}
		}

		if first, ok := seen[key]; ok {
			canon[i] = first
			dup = true
			continue
		}
		seen[key] = i
		canon[i] = i
	}

	if !dup {
		return false, nil
	}

	// Duplicates stay in the node list until DCE, so only an actual
	// redirect of an operand or output counts as a change.
	changed := false
	for i := range nodes {
		if nodes[i].Kind == graph.KindOp {
			l, r := canon[nodes[i].Lhs], canon[nodes[i].Rhs]
			if l != nodes[i].Lhs || r != nodes[i].Rhs {
				changed = true
			}
			nodes[i].Lhs, nodes[i].Rhs = l, r
		}
	}
	for i, o := range prog.Outputs {
		if canon[o] != o {
			changed = true
		}
		prog.Outputs[i] = canon[o]
	}
	return changed, nil
}
