package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAdder builds a two-input, one-output node of the given type.
func newAdder(seq *Sequence, t DataType) *Node {
	n := NewNode(KindFunction, "operator +")
	n.AddInput(seq, "lhs", t)
	n.AddInput(seq, "rhs", t)
	n.AddOutput(seq, "output", t)
	return n
}

func newSource(seq *Sequence, t DataType) *Node {
	n := NewNode(KindConstant, "Constant")
	n.AddOutput(seq, "value", t)
	return n
}

func TestConnect(t *testing.T) {
	t.Run("success links both endpoints", func(t *testing.T) {
		seq := NewSequence()
		src := newSource(seq, Scalar)
		add := newAdder(seq, Scalar)

		link, err := Connect(src.Output(0), add.Input(0))
		require.NoError(t, err)

		assert.Same(t, src.Output(0), link.Output)
		assert.Same(t, add.Input(0), link.Input)
		assert.Same(t, add.Input(0), src.Output(0).Next())
		assert.Same(t, src.Output(0), add.Input(0).Prev())
		assert.Same(t, add.Input(0), src.Output(0).Peer())
		assert.Same(t, src.Output(0), add.Input(0).Peer())
		assert.True(t, src.Output(0).IsLinked())
		assert.True(t, add.Input(0).IsLinked())
	})

	t.Run("argument order does not matter", func(t *testing.T) {
		seq := NewSequence()
		src := newSource(seq, Vec3)
		add := newAdder(seq, Vec3)

		link, err := Connect(add.Input(1), src.Output(0))
		require.NoError(t, err)
		assert.Same(t, src.Output(0), link.Output)
		assert.Same(t, add.Input(1), link.Input)
	})

	t.Run("rejections leave state untouched", func(t *testing.T) {
		seq := NewSequence()
		a := newSource(seq, Scalar)
		b := newSource(seq, Scalar)
		wide := newSource(seq, Vec2)
		add := newAdder(seq, Scalar)
		other := newAdder(seq, Scalar)

		_, err := Connect(a.Output(0), b.Output(0))
		assert.ErrorIs(t, err, ErrDirectionMismatch)

		_, err = Connect(add.Input(0), other.Input(0))
		assert.ErrorIs(t, err, ErrDirectionMismatch)

		_, err = Connect(wide.Output(0), add.Input(0))
		assert.ErrorIs(t, err, ErrTypeMismatch)

		_, err = Connect(nil, add.Input(0))
		assert.ErrorIs(t, err, ErrNilSlot)

		for _, n := range []*Node{a, b, wide, add, other} {
			for _, s := range n.Slots() {
				assert.False(t, s.IsLinked(), "slot %s should be untouched", s.VarName())
			}
		}
	})

	t.Run("no fan-out from an output", func(t *testing.T) {
		seq := NewSequence()
		src := newSource(seq, Scalar)
		add := newAdder(seq, Scalar)

		_, err := Connect(src.Output(0), add.Input(0))
		require.NoError(t, err)

		_, err = Connect(src.Output(0), add.Input(1))
		assert.ErrorIs(t, err, ErrAlreadyLinked)
		assert.Nil(t, add.Input(1).Prev())
		assert.Same(t, add.Input(0), src.Output(0).Next())
	})

	t.Run("input accepts a single feed", func(t *testing.T) {
		seq := NewSequence()
		a := newSource(seq, Scalar)
		b := newSource(seq, Scalar)
		add := newAdder(seq, Scalar)

		_, err := Connect(a.Output(0), add.Input(0))
		require.NoError(t, err)

		_, err = Connect(b.Output(0), add.Input(0))
		assert.ErrorIs(t, err, ErrAlreadyLinked)
		assert.Nil(t, b.Output(0).Next())
		assert.Same(t, a.Output(0), add.Input(0).Prev())
	})
}

func TestDisconnect(t *testing.T) {
	seq := NewSequence()
	src := newSource(seq, Scalar)
	add := newAdder(seq, Scalar)
	_, err := Connect(src.Output(0), add.Input(0))
	require.NoError(t, err)

	removed, ok := Disconnect(add.Input(0))
	require.True(t, ok)
	assert.Same(t, src.Output(0), removed.Output)
	assert.Nil(t, src.Output(0).Next())
	assert.Nil(t, add.Input(0).Prev())

	// Idempotent: a second call changes nothing.
	_, ok = Disconnect(add.Input(0))
	assert.False(t, ok)
	_, ok = Disconnect(src.Output(0))
	assert.False(t, ok)
	assert.False(t, src.Output(0).IsLinked())
	assert.False(t, add.Input(0).IsLinked())

	// The freed endpoints are linkable again.
	_, err = Connect(src.Output(0), add.Input(1))
	assert.NoError(t, err)

	// Disconnecting from the output side works symmetrically.
	_, ok = Disconnect(src.Output(0))
	assert.True(t, ok)
	assert.Nil(t, add.Input(1).Prev())

	_, ok = Disconnect(nil)
	assert.False(t, ok)
}

func TestLinks(t *testing.T) {
	seq := NewSequence()
	a := newSource(seq, Scalar)
	b := newSource(seq, Scalar)
	add := newAdder(seq, Scalar)

	assert.Empty(t, Links(a, b, add))

	_, err := Connect(a.Output(0), add.Input(0))
	require.NoError(t, err)
	_, err = Connect(add.Input(1), b.Output(0))
	require.NoError(t, err)

	links := Links(a, b, add)
	require.Len(t, links, 2)
	assert.Same(t, add.Input(0), links[0].Input)
	assert.Same(t, add.Input(1), links[1].Input)

	add.DisconnectAll()
	assert.Empty(t, Links(a, b, add))
}

func TestSequence(t *testing.T) {
	seq := NewSequence()
	var nodes []*Node
	for range 5 {
		nodes = append(nodes, newAdder(seq, Vec4), newSource(seq, Scalar))
	}

	var last uint64
	count := 0
	for _, n := range nodes {
		for _, s := range n.Slots() {
			assert.Greater(t, s.VarID, last, "var ids must strictly increase")
			last = s.VarID
			count++
		}
	}
	assert.Equal(t, 20, count)
	assert.Equal(t, uint64(21), seq.Peek())

	seq.AdvancePast(10)
	assert.Equal(t, uint64(21), seq.Peek(), "advancing to a smaller id is a no-op")
	seq.AdvancePast(40)
	assert.Equal(t, uint64(41), seq.Next())

	seq.Reset()
	assert.Equal(t, uint64(1), seq.Next())
}

func TestNode(t *testing.T) {
	seq := NewSequence()
	add := newAdder(seq, Vec2)

	assert.Len(t, add.Inputs(), 2)
	assert.Len(t, add.Outputs(), 1)
	assert.Nil(t, add.Input(2))
	assert.Nil(t, add.Output(-1))
	assert.Nil(t, add.Slot(3))
	assert.Equal(t, "rhs", add.InputByTag("rhs").Tag)
	assert.Nil(t, add.InputByTag("output"))
	assert.False(t, add.IsComplete())

	src := newSource(seq, Vec2)
	assert.True(t, src.IsComplete(), "nodes without inputs are complete")

	slots := add.Slots()
	slots[0] = nil
	assert.NotNil(t, add.Slot(0), "Slots returns a copy")

	t.Run("restore var ids", func(t *testing.T) {
		require.NoError(t, add.RestoreVarIDs([]uint64{100, 101, 102}))
		assert.Equal(t, []uint64{100, 101, 102}, add.VarIDs())
		assert.Equal(t, "var_102", add.Output(0).VarName())

		assert.Error(t, add.RestoreVarIDs([]uint64{1}))
		assert.ErrorIs(t, add.RestoreVarIDs([]uint64{200, 201, 200}), ErrDuplicateVarID)
		assert.Equal(t, []uint64{100, 101, 102}, add.VarIDs(), "rejected ids leave the slots alone")

		_, err := Connect(src.Output(0), add.Input(0))
		require.NoError(t, err)
		assert.Error(t, add.RestoreVarIDs([]uint64{7, 8, 9}))
	})
}

func TestTypeNames(t *testing.T) {
	assert.Equal(t, "float", Scalar.String())
	assert.Equal(t, "float2", Vec2.String())
	assert.Equal(t, "float3", Vec3.String())
	assert.Equal(t, "float4", Vec4.String())
	assert.Equal(t, 3, Vec3.Width())

	dt, err := DataTypeOfWidth(4)
	require.NoError(t, err)
	assert.Equal(t, Vec4, dt)
	_, err = DataTypeOfWidth(5)
	assert.Error(t, err)

	dt, err = ParseDataType("float2")
	require.NoError(t, err)
	assert.Equal(t, Vec2, dt)

	assert.Equal(t, "Texture2D", Texture2D.String())
	assert.Equal(t, "TextureCubeArray", TextureCubeArray.String())
	assert.Equal(t, "None", TextureNone.String())

	assert.Equal(t, "AnisotropicMirror", AnisotropicMirror.String())
	mode, err := ParseSamplerMode("PointClamp")
	require.NoError(t, err)
	assert.Equal(t, PointClamp, mode)
	_, err = ParseSamplerMode("Bilinear")
	assert.Error(t, err)
}
