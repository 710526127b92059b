package optimize

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"witness/internal/evaluator"
	"witness/internal/field"
	"witness/internal/graph"
)

func run(t *testing.T, prog *graph.Program) {
	t.Helper()
	_, err := Default().Run(prog)
	require.NoError(t, err)
}

// Scenario 2 from §8: Constant(2), Constant(3), Op(Add,0,1), Input(0),
// Op(Mul,2,3), outputs=[4]. After optimize the graph has <=3 nodes and an
// input slot; inputs [7] -> witness [35].
func TestConstantFoldingScenario(t *testing.T) {
	prog := &graph.Program{
		Nodes: []graph.Node{
			graph.ConstantNode(field.FromUint64(2)),
			graph.ConstantNode(field.FromUint64(3)),
			graph.OpNode(graph.Add, 0, 1),
			graph.InputNode(0),
			graph.OpNode(graph.Mul, 2, 3),
		},
		Outputs: []int{4},
	}
	run(t, prog)

	assert.LessOrEqual(t, len(prog.Nodes), 3)
	foundInput := false
	for _, n := range prog.Nodes {
		if n.Kind == graph.KindInput {
			foundInput = true
		}
	}
	assert.True(t, foundInput)

	out, err := evaluator.Evaluate(prog, []field.Element{field.FromUint64(7)})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Equal(field.FromUint64(35)))
}

// Scenario 3: Input(0), Op(Mul,0,0), Op(Mul,0,0), Op(Add,1,2), outputs=[3].
// The two Mul nodes merge; inputs [4] -> witness [32].
func TestCSEScenario(t *testing.T) {
	prog := &graph.Program{
		Nodes: []graph.Node{
			graph.InputNode(0),
			graph.OpNode(graph.Mul, 0, 0),
			graph.OpNode(graph.Mul, 0, 0),
			graph.OpNode(graph.Add, 1, 2),
		},
		Outputs: []int{3},
	}
	run(t, prog)

	var mulCount int
	for _, n := range prog.Nodes {
		if n.Kind == graph.KindOp && n.Op == graph.Mul {
			mulCount++
		}
	}
	assert.Equal(t, 1, mulCount)

	out, err := evaluator.Evaluate(prog, []field.Element{field.FromUint64(4)})
	require.NoError(t, err)
	assert.True(t, out[0].Equal(field.FromUint64(32)))
}

// Boundary: Sub(x, x) folds to Constant(0) after optimization.
func TestSubSelfFoldsToZero(t *testing.T) {
	prog := &graph.Program{
		Nodes: []graph.Node{
			graph.InputNode(0),
			graph.OpNode(graph.Sub, 0, 0),
		},
		Outputs: []int{1},
	}
	run(t, prog)

	require.Len(t, prog.Nodes, 1)
	assert.Equal(t, graph.KindConstant, prog.Nodes[0].Kind)
	assert.True(t, prog.Nodes[0].Value.IsZero())
}

// §4.4.2's short-circuit absorbers: Land(x, 0) folds to false regardless of
// x, Lor(x, 0) folds to a direct copy of x's truthiness.
func TestLandLorAbsorbers(t *testing.T) {
	prog := &graph.Program{
		Nodes: []graph.Node{
			graph.InputNode(0),
			graph.ConstantNode(field.Zero),
			graph.OpNode(graph.Land, 0, 1),
			graph.OpNode(graph.Lor, 0, 1),
		},
		Outputs: []int{2, 3},
	}
	run(t, prog)

	out, err := evaluator.Evaluate(prog, []field.Element{field.FromUint64(9)})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[0].Equal(field.Zero)) // Land(9, 0) == false
	assert.True(t, out[1].Equal(field.One))  // Lor(9, 0) == true
}

// P3: evaluate(optimize(G), x) == evaluate(G, x).
func TestSemanticPreservation(t *testing.T) {
	build := func() *graph.Program {
		return &graph.Program{
			Nodes: []graph.Node{
				graph.InputNode(0),
				graph.InputNode(1),
				graph.ConstantNode(field.Zero),
				graph.OpNode(graph.Add, 0, 2),  // x + 0
				graph.OpNode(graph.Mul, 3, 1),  // (x+0) * y
				graph.OpNode(graph.Sub, 4, 4),  // result - result = 0
				graph.OpNode(graph.Add, 4, 5),  // result + 0
			},
			Outputs: []int{6},
		}
	}

	unopt := build()
	opt := build()
	run(t, opt)

	inputs := []field.Element{field.FromUint64(9), field.FromUint64(6)}
	gotUnopt, err := evaluator.Evaluate(unopt, inputs)
	require.NoError(t, err)
	gotOpt, err := evaluator.Evaluate(opt, inputs)
	require.NoError(t, err)

	require.Len(t, gotOpt, 1)
	assert.True(t, gotOpt[0].Equal(gotUnopt[0]))
}

// P4: optimize(optimize(G)) == optimize(G).
func TestIdempotence(t *testing.T) {
	prog := &graph.Program{
		Nodes: []graph.Node{
			graph.InputNode(0),
			graph.ConstantNode(field.Zero),
			graph.OpNode(graph.Add, 0, 1),
			graph.OpNode(graph.Mul, 0, 0),
			graph.OpNode(graph.Mul, 0, 0),
			graph.OpNode(graph.Add, 3, 4),
		},
		Outputs: []int{2, 5},
	}
	run(t, prog)
	firstPass := append([]graph.Node(nil), prog.Nodes...)
	firstOutputs := append([]int(nil), prog.Outputs...)

	rounds, err := Default().Run(prog)
	require.NoError(t, err)
	assert.Equal(t, 1, rounds)
	assert.Equal(t, firstPass, prog.Nodes)
	assert.Equal(t, firstOutputs, prog.Outputs)
}

// P5: after optimization no two Op nodes share (op, canonical-operand-pair)
// and no two Constant nodes share a value.
func TestCSECompleteness(t *testing.T) {
	prog := &graph.Program{
		Nodes: []graph.Node{
			graph.InputNode(0),
			graph.InputNode(1),
			graph.OpNode(graph.Add, 0, 1),
			graph.OpNode(graph.Add, 1, 0), // commutative duplicate
			graph.ConstantNode(field.FromUint64(9)),
			graph.ConstantNode(field.FromUint64(9)), // duplicate constant
			graph.OpNode(graph.Mul, 2, 4),
			graph.OpNode(graph.Mul, 3, 5),
		},
		Outputs: []int{6, 7},
	}
	run(t, prog)

	type opKey struct {
		op       graph.Operation
		lhs, rhs int
	}
	seenOps := map[opKey]bool{}
	seenConsts := map[field.Element]bool{}
	for _, n := range prog.Nodes {
		switch n.Kind {
		case graph.KindOp:
			l, r := n.Lhs, n.Rhs
			if graph.Commutative(n.Op) && l > r {
				l, r = r, l
			}
			k := opKey{n.Op, l, r}
			require.False(t, seenOps[k], "duplicate op node survived CSE")
			seenOps[k] = true
		case graph.KindConstant:
			require.False(t, seenConsts[n.Value], "duplicate constant survived CSE")
			seenConsts[n.Value] = true
		}
	}
}

// P6: after optimization every node index is reachable from outputs.
func TestDCECompleteness(t *testing.T) {
	prog := &graph.Program{
		Nodes: []graph.Node{
			graph.InputNode(0),
			graph.InputNode(1), // dead: never referenced
			graph.OpNode(graph.Mul, 0, 0),
		},
		Outputs: []int{2},
	}
	run(t, prog)

	reachable := make([]bool, len(prog.Nodes))
	for _, o := range prog.Outputs {
		reachable[o] = true
	}
	for i := len(prog.Nodes) - 1; i >= 0; i-- {
		if reachable[i] && prog.Nodes[i].Kind == graph.KindOp {
			reachable[prog.Nodes[i].Lhs] = true
			reachable[prog.Nodes[i].Rhs] = true
		}
	}
	for i, ok := range reachable {
		assert.True(t, ok, "node %d unreachable from outputs after DCE", i)
	}
}

// Montgomery-form constants round-trip and collapse to the same node as
// their canonical equivalent after optimization.
func TestMontgomeryConstantCollapsesWithCanonical(t *testing.T) {
	canonical := field.FromUint64(123)
	montBytes := montgomeryEncode(canonical)

	prog := &graph.Program{
		Nodes: []graph.Node{
			graph.MontConstantNode(field.FromBytes32(montBytes)),
			graph.ConstantNode(canonical),
			graph.OpNode(graph.Add, 0, 1),
		},
		Outputs: []int{2},
	}
	graph.ResolveMontConstants(prog.Nodes)
	run(t, prog)

	var constCount int
	for _, n := range prog.Nodes {
		if n.Kind == graph.KindConstant {
			constCount++
		}
	}
	assert.Equal(t, 1, constCount)
}

// A multi-slot binding (e.g. a vector input) must renumber as one atomic
// unit: losing an interior element to DeadCodeElimination must not shift a
// later element into the wrong new slot (the bug this test guards against
// assigned surviving Input nodes dense new slots purely by first-appearance
// order, ignoring which binding — and which offset within it — each slot
// belonged to).
func TestRenumberPreservesMultiSlotBindingAfterInteriorDCE(t *testing.T) {
	prog := &graph.Program{
		Nodes: []graph.Node{
			graph.InputNode(5),            // 0: scalar binding, slot 5
			graph.InputNode(10),           // 1: vec[0], slot 10
			graph.InputNode(11),           // 2: vec[1], slot 11 — unused, dies in DCE
			graph.InputNode(12),           // 3: vec[2], slot 12
			graph.OpNode(graph.Add, 0, 1), // 4
			graph.OpNode(graph.Add, 4, 3), // 5
		},
		Outputs: []int{5},
		InputsMap: []graph.InputBinding{
			{Hash: 1, FirstSlot: 5, Size: 1},
			{Hash: 2, FirstSlot: 10, Size: 3},
		},
	}

	run(t, prog)

	require.Len(t, prog.InputsMap, 2)
	scalar, vec := prog.InputsMap[0], prog.InputsMap[1]
	assert.Equal(t, 1, scalar.Size)
	assert.Equal(t, 3, vec.Size)
	// The two binding ranges must not overlap in the new numbering.
	assert.False(t, scalar.FirstSlot >= vec.FirstSlot && scalar.FirstSlot < vec.FirstSlot+vec.Size)

	// Every surviving Input node's new slot must fall inside exactly one
	// binding's new range, at the same offset it had in the old range.
	for _, n := range prog.Nodes {
		if n.Kind != graph.KindInput {
			continue
		}
		inScalar := n.Slot == scalar.FirstSlot
		inVec := n.Slot >= vec.FirstSlot && n.Slot < vec.FirstSlot+vec.Size
		assert.True(t, inScalar || inVec, "slot %d does not belong to any binding's new range", n.Slot)
	}

	inputs := make([]field.Element, prog.InputsSize())
	inputs[scalar.FirstSlot] = field.FromUint64(2)
	inputs[vec.FirstSlot+2] = field.FromUint64(9) // vec[2] survives DCE at offset 2
	result, err := evaluator.Evaluate(prog, inputs)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.True(t, result[0].Equal(field.FromUint64(11))) // (2 + vec[0]=0) + vec[2]=9
}

func montgomeryEncode(e field.Element) [32]byte {
	mont := new(big.Int).Lsh(e.BigInt(), 256)
	mont.Mod(mont, field.P.ToBig())
	return field.FromBigInt(mont).Bytes32()
}
