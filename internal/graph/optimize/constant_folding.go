package optimize

import "witness/internal/graph"

// ConstantFolding replaces any Op node whose operands are both constants
// with a single Constant node holding the computed result, per §4.4.1.
// Folding never produces an error for the optimizer to surface: a fold
// that would fail (e.g. division by a constant zero) is simply skipped,
// leaving the Op node in place so the evaluator reports the failure at
// the point the spec says it should be observed.
type ConstantFolding struct{}

func (*ConstantFolding) Name() string { return "constant-folding" }

func (*ConstantFolding) Apply(prog *graph.Program) (bool, error) {
	changed := false
	for i, n := range prog.Nodes {
		if n.Kind != graph.KindOp {
			continue
		}
		lhs, rhs := prog.Nodes[n.Lhs], prog.Nodes[n.Rhs]
		if lhs.Kind != graph.KindConstant || rhs.Kind != graph.KindConstant {
			continue
		}
		v, err := graph.Eval(n.Op, lhs.Value, rhs.Value)
		if err != nil {
			continue
		}
		prog.Nodes[i] = graph.ConstantNode(v)
		changed = true
	}
	return changed, nil
}
