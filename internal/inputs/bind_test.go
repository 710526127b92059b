package inputs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"witness/internal/field"
	"witness/internal/graph"
)

func vals(xs ...uint64) []field.Element {
	out := make([]field.Element, len(xs))
	for i, x := range xs {
		out[i] = field.FromUint64(x)
	}
	return out
}

// Scenario 6: input_map = {fnv1a("in") -> {first_slot: 1, size: 3}}.
// named["in"] = [2,3,5] => buf[1:4] = [2,3,5].
func TestBindScenario(t *testing.T) {
	prog := &graph.Program{
		Nodes: []graph.Node{
			graph.InputNode(0),
			graph.InputNode(1),
			graph.InputNode(2),
			graph.InputNode(3),
		},
		Outputs:   []int{0},
		InputsMap: []graph.InputBinding{{Hash: FNV1a("in"), FirstSlot: 1, Size: 3}},
	}

	buf, err := Bind(prog, map[string][]field.Element{"in": vals(2, 3, 5)})
	require.NoError(t, err)
	require.Len(t, buf, 4)
	assert.True(t, buf[1].Equal(field.FromUint64(2)))
	assert.True(t, buf[2].Equal(field.FromUint64(3)))
	assert.True(t, buf[3].Equal(field.FromUint64(5)))
}

func TestBindUnknownName(t *testing.T) {
	prog := &graph.Program{
		Nodes:     []graph.Node{graph.InputNode(0)},
		Outputs:   []int{0},
		InputsMap: []graph.InputBinding{{Hash: FNV1a("in"), FirstSlot: 0, Size: 1}},
	}
	_, err := Bind(prog, map[string][]field.Element{"nope": vals(1)})
	require.Error(t, err)
	var ue *UnknownInputError
	require.ErrorAs(t, err, &ue)
}

func TestBindSizeMismatch(t *testing.T) {
	prog := &graph.Program{
		Nodes:     []graph.Node{graph.InputNode(0), graph.InputNode(1), graph.InputNode(2)},
		Outputs:   []int{0},
		InputsMap: []graph.InputBinding{{Hash: FNV1a("in"), FirstSlot: 0, Size: 3}},
	}
	_, err := Bind(prog, map[string][]field.Element{"in": vals(1, 2)})
	require.Error(t, err)
	var sme *SizeMismatchError
	require.ErrorAs(t, err, &sme)
}
