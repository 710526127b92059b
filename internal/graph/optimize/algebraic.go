package optimize

import "witness/internal/graph"

// AlgebraicSimplification rewrites Op nodes that match one of the
// identities in §4.4.2 — an additive/multiplicative identity or
// annihilator on one side — into a direct copy of the surviving operand's
// node. It never touches an Op node whose fold would observe a division
// or modulus error; those are left for ConstantFolding/the evaluator.
type AlgebraicSimplification struct{}

func (*AlgebraicSimplification) Name() string { return "algebraic-simplification" }

func (*AlgebraicSimplification) Apply(prog *graph.Program) (bool, error) {
	changed := false
	for i, n := range prog.Nodes {
		if n.Kind != graph.KindOp {
			continue
		}
		if replacement, ok := simplify(prog.Nodes, n); ok {
			prog.Nodes[i] = replacement
			changed = true
		}
	}
	return changed, nil
}

// simplify returns the node that should replace n, if any identity
// applies. lhsZero/rhsZero and lhsOne/rhsOne report whether the
// corresponding operand is a Constant node holding 0 or 1.
func simplify(nodes []graph.Node, n graph.Node) (graph.Node, bool) {
	lhs, rhs := nodes[n.Lhs], nodes[n.Rhs]
	lhsZero := lhs.Kind == graph.KindConstant && lhs.Value.IsZero()
	rhsZero := rhs.Kind == graph.KindConstant && rhs.Value.IsZero()
	lhsOne := lhs.Kind == graph.KindConstant && lhs.Value.Equal(onef())
	rhsOne := rhs.Kind == graph.KindConstant && rhs.Value.Equal(onef())

	switch n.Op {
	case graph.Add:
		if lhsZero {
			return rhs, true
		}
		if rhsZero {
			return lhs, true
		}
	case graph.Sub:
		if rhsZero {
			return lhs, true
		}
		if n.Lhs == n.Rhs {
			return graph.ConstantNode(zerof()), true
		}
	case graph.Mul:
		if lhsZero || rhsZero {
			return graph.ConstantNode(zerof()), true
		}
		if lhsOne {
			return rhs, true
		}
		if rhsOne {
			return lhs, true
		}
	case graph.Div:
		if rhsOne {
			return lhs, true
		}
	case graph.Pow:
		if rhsZero {
			return graph.ConstantNode(onef()), true
		}
		if rhsOne {
			return lhs, true
		}
	case graph.Band:
		if lhsZero || rhsZero {
			return graph.ConstantNode(zerof()), true
		}
	case graph.Bor, graph.Bxor:
		if lhsZero {
			return rhs, true
		}
		if rhsZero {
			return lhs, true
		}
	case graph.Land:
		// false short-circuits: Land(x, 0) == Land(0, x) == false regardless
		// of x's truthiness.
		if lhsZero || rhsZero {
			return graph.ConstantNode(zerof()), true
		}
	case graph.Lor:
		// false is Lor's identity: Lor(x, 0) == Lor(0, x) == truthiness(x).
		// Unlike Bor/Bxor this cannot be rewritten to a raw copy of x — Lor
		// coerces to boolean 0/1, and x need not already be one (Lor(9, 0)
		// must fold to 1, not 9) — so it becomes Neq(x, 0) instead, reusing
		// the zero operand already present at n.Lhs/n.Rhs.
		if lhsZero {
			return graph.OpNode(graph.Neq, n.Rhs, n.Lhs), true
		}
		if rhsZero {
			return graph.OpNode(graph.Neq, n.Lhs, n.Rhs), true
		}
	case graph.Shl, graph.Shr:
		if rhsZero {
			return lhs, true
		}
	}
	return graph.Node{}, false
}
