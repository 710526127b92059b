package recorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"witness/internal/field"
	"witness/internal/graph"
)

func TestConstantFoldingDuringRecording(t *testing.T) {
	r := New()
	a := r.Constant(field.FromUint64(3))
	b := r.Constant(field.FromUint64(4))
	sum, err := r.Binop(graph.Add, a, b)
	require.NoError(t, err)

	v, err := r.ToInt(sum)
	require.NoError(t, err)
	assert.True(t, v.Equal(field.FromUint64(7)))
}

func TestInputHandleIsNotConstant(t *testing.T) {
	r := New()
	in := r.Input(0)

	_, err := r.ToInt(in)
	require.Error(t, err)
	var nce *NonConstantAccessError
	require.ErrorAs(t, err, &nce)
}

func TestBinopDivByConstantZeroErrors(t *testing.T) {
	r := New()
	a := r.Constant(field.FromUint64(1))
	z := r.Constant(field.Zero)
	_, err := r.Binop(graph.Div, a, z)
	require.Error(t, err)
}

func TestDerivedOps(t *testing.T) {
	r := New()
	a := r.Constant(field.FromUint64(5))

	neg, err := r.Neg(a)
	require.NoError(t, err)
	v, err := r.ToInt(neg)
	require.NoError(t, err)
	assert.True(t, v.Equal(field.FromUint64(5).Neg()))

	sq, err := r.Square(a)
	require.NoError(t, err)
	v, err = r.ToInt(sq)
	require.NoError(t, err)
	assert.True(t, v.Equal(field.FromUint64(25)))

	inv, err := r.Inv(a)
	require.NoError(t, err)
	v, err = r.ToInt(inv)
	require.NoError(t, err)
	recovered := v.Mul(field.FromUint64(5))
	assert.True(t, recovered.Equal(field.One))
}

func TestCreateVecProducesConsecutiveInputSlots(t *testing.T) {
	r := New()
	handles := r.CreateVec(2, 3)
	require.Len(t, handles, 3)

	prog := r.Snapshot(handles)
	for i, h := range handles {
		assert.Equal(t, graph.KindInput, prog.Nodes[h].Kind)
		assert.Equal(t, 2+i, prog.Nodes[h].Slot)
	}
}

func TestSnapshotOutputsMatchHandles(t *testing.T) {
	r := New()
	a := r.Input(0)
	b := r.Input(1)
	sum, err := r.Binop(graph.Add, a, b)
	require.NoError(t, err)

	prog := r.Snapshot([]Handle{sum})
	assert.Equal(t, []int{int(sum)}, prog.Outputs)
	assert.Len(t, prog.Nodes, 3)
}

func TestInvalidHandleErrors(t *testing.T) {
	r := New()
	r.Input(0)
	_, err := r.ToInt(Handle(99))
	require.Error(t, err)
	var ihe *InvalidHandleError
	require.ErrorAs(t, err, &ihe)
}
