package optimize

import "witness/internal/graph"

// DeadCodeElimination keeps only the nodes reachable from prog.Outputs
// (§4.4.4), compacting the node list and remapping every surviving
// reference — operands and outputs alike — to the new indices. Run once,
// after the fold/simplify/CSE fixed point, since earlier passes can only
// ever shrink the live set further.
type DeadCodeElimination struct{}

func (*DeadCodeElimination) Name() string { return "dead-code-elimination" }

func (*DeadCodeElimination) Apply(prog *graph.Program) (bool, error) {
	nodes := prog.Nodes
	live := make([]bool, len(nodes))
	for _, o := range prog.Outputs {
		live[o] = true
	}
	// Nodes are topologically ordered (I1): a single backward sweep marks
	// every ancestor of anything already known live.
	for i := len(nodes) - 1; i >= 0; i-- {
		if !live[i] {
			continue
		}
		if nodes[i].Kind == graph.KindOp {
			live[nodes[i].Lhs] = true
			live[nodes[i].Rhs] = true
		}
	}

	newIndex := make([]int, len(nodes))
	out := make([]graph.Node, 0, len(nodes))
	removed := false
	for i, n := range nodes {
		if !live[i] {
			removed = true
			continue
		}
		newIndex[i] = len(out)
		out = append(out, n)
	}
	if !removed {
		return false, nil
	}

	for i := range out {
		if out[i].Kind == graph.KindOp {
			out[i].Lhs = newIndex[out[i].Lhs]
			out[i].Rhs = newIndex[out[i].Rhs]
		}
	}
	for i, o := range prog.Outputs {
		prog.Outputs[i] = newIndex[o]
	}
	prog.Nodes = out
	return true, nil
}
