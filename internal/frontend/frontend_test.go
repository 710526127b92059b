package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"witness/internal/evaluator"
	"witness/internal/field"
	"witness/internal/graph/codec"
	"witness/internal/graph/optimize"
	"witness/internal/inputs"
)

func TestMultiplierEndToEnd(t *testing.T) {
	c := Multiplier()
	_, err := optimize.Default().Run(c.Program)
	require.NoError(t, err)

	out, err := evaluator.Evaluate(c.Program, []field.Element{field.FromUint64(6), field.FromUint64(7)})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Equal(field.FromUint64(42)))
}

func TestComparisonEndToEnd(t *testing.T) {
	c := Comparison()
	_, err := optimize.Default().Run(c.Program)
	require.NoError(t, err)

	out, err := evaluator.Evaluate(c.Program, []field.Element{field.FromUint64(3), field.FromUint64(5)})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[0].Equal(field.One))  // 3 < 5
	assert.True(t, out[1].Equal(field.Zero)) // 3 == 5 is false
}

func TestRoundConstantFoldEndToEnd(t *testing.T) {
	rc := field.FromUint64(11)
	c := RoundConstantFold(rc)
	_, err := optimize.Default().Run(c.Program)
	require.NoError(t, err)

	x := field.FromUint64(2)
	out, err := evaluator.Evaluate(c.Program, []field.Element{x})
	require.NoError(t, err)

	want := x.Add(rc).Pow(field.FromUint64(5))
	require.Len(t, out, 1)
	assert.True(t, out[0].Equal(want))
}

// Exercises the exact path cmd/witnessgen's build/eval subcommands use:
// build a circuit, optimize it, serialize it, deserialize it back, and bind
// named inputs through the result — catching the case where a circuit's
// InputsMap never made it onto the serialized graph in the first place.
func TestBuildSerializeEvalRoundTrip(t *testing.T) {
	c := Multiplier()
	_, err := optimize.Default().Run(c.Program)
	require.NoError(t, err)

	data, err := codec.Serialize(c.Program)
	require.NoError(t, err)

	prog, err := codec.Deserialize(data)
	require.NoError(t, err)

	bound, err := inputs.Bind(prog, c.NamedInputs(field.FromUint64(6), field.FromUint64(7)))
	require.NoError(t, err)

	out, err := evaluator.Evaluate(prog, bound)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Equal(field.FromUint64(42)))
}
