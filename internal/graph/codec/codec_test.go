package codec

import (
	"math/big"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"witness/internal/field"
	"witness/internal/graph"
)

// P7: deserialize(serialize(G)) == G, for a graph free of MontConstant
// nodes (Deserialize always resolves those, so round-tripping one would
// change its Kind by design — exercised separately below).
func TestRoundTrip(t *testing.T) {
	prog := &graph.Program{
		Nodes: []graph.Node{
			graph.InputNode(0),
			graph.InputNode(1),
			graph.ConstantNode(field.FromUint64(42)),
			graph.OpNode(graph.Mul, 0, 1),
			graph.OpNode(graph.Add, 3, 2),
		},
		Outputs:   []int{4},
		InputsMap: []graph.InputBinding{{Hash: 0xdeadbeef, FirstSlot: 0, Size: 2}},
	}

	b, err := Serialize(prog)
	require.NoError(t, err)

	got, err := Deserialize(b)
	require.NoError(t, err)

	assert.Equal(t, prog.Nodes, got.Nodes)
	assert.Equal(t, prog.Outputs, got.Outputs)
	assert.Equal(t, prog.InputsMap, got.InputsMap)
}

func TestDeserializeResolvesMontConstant(t *testing.T) {
	canonical := field.FromUint64(99)
	mont := new(big.Int).Lsh(canonical.BigInt(), 256)
	mont.Mod(mont, field.P.ToBig())
	montBytes := field.FromBigInt(mont).Bytes32()

	prog := &graph.Program{
		Nodes:   []graph.Node{graph.MontConstantNode(field.FromBytes32(montBytes))},
		Outputs: []int{0},
	}
	b, err := Serialize(prog)
	require.NoError(t, err)

	got, err := Deserialize(b)
	require.NoError(t, err)

	require.Equal(t, graph.KindConstant, got.Nodes[0].Kind)
	assert.True(t, got.Nodes[0].Value.Equal(canonical))
}

func TestDeserializeRejectsOutOfRangeOperand(t *testing.T) {
	prog := &graph.Program{
		Nodes:   []graph.Node{graph.InputNode(0), graph.OpNode(graph.Add, 0, 5)},
		Outputs: []int{1},
	}
	b, err := Serialize(prog)
	require.NoError(t, err)

	_, err = Deserialize(b)
	require.Error(t, err)
}

func TestDeserializeRejectsUnknownDiscriminant(t *testing.T) {
	dto := programDTO{Nodes: []nodeDTO{{Kind: 200}}, Outputs: []int{0}}
	b, err := cbor.Marshal(dto)
	require.NoError(t, err)

	_, err = Deserialize(b)
	require.Error(t, err)
}
