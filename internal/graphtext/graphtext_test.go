package graphtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"witness/internal/evaluator"
	"witness/internal/field"
)

const multiplierListing = `
# trivial product
input 0
input 1
op mul 0 1
outputs [2]
`

func TestParseAndEvaluate(t *testing.T) {
	doc, err := Parse(multiplierListing)
	require.NoError(t, err)

	prog, err := ToProgram(doc)
	require.NoError(t, err)
	require.NoError(t, prog.Validate())

	out, err := evaluator.Evaluate(prog, []field.Element{field.FromUint64(3), field.FromUint64(5)})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Equal(field.FromUint64(15)))
}

func TestRenderRoundTrip(t *testing.T) {
	doc, err := Parse(multiplierListing)
	require.NoError(t, err)
	prog, err := ToProgram(doc)
	require.NoError(t, err)

	rendered := Render(prog)

	doc2, err := Parse(rendered)
	require.NoError(t, err)
	prog2, err := ToProgram(doc2)
	require.NoError(t, err)

	assert.Equal(t, prog.Nodes, prog2.Nodes)
	assert.Equal(t, prog.Outputs, prog2.Outputs)
}

func TestParseConstantHex(t *testing.T) {
	doc, err := Parse("const 0x2a\noutputs [0]\n")
	require.NoError(t, err)
	prog, err := ToProgram(doc)
	require.NoError(t, err)
	require.Len(t, prog.Nodes, 1)
	assert.True(t, prog.Nodes[0].Value.Equal(field.FromUint64(42)))
}

func TestUnknownOperatorErrors(t *testing.T) {
	doc, err := Parse("input 0\ninput 1\nop frobnicate 0 1\noutputs [2]\n")
	require.NoError(t, err)
	_, err = ToProgram(doc)
	require.Error(t, err)
}
