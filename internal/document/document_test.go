package document

import (
	"testing"

	"github.com/specialistvlad/shadergraph/internal/catalog"
	"github.com/specialistvlad/shadergraph/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoc(t *testing.T) *Document {
	t.Helper()
	opts := DefaultOptions()
	opts.Newline = "\n"
	return New(opts)
}

func create(t *testing.T, d *Document, name string) *graph.Node {
	t.Helper()
	n, err := d.CreateNode(name)
	require.NoError(t, err)
	return n
}

func TestNew(t *testing.T) {
	d := newDoc(t)

	stage := d.StageOutput()
	require.NotNil(t, stage)
	assert.Equal(t, graph.KindStageOutput, stage.Kind)
	assert.Equal(t, []uint64{1, 2, 3, 4, 5, 6}, stage.VarIDs())
	assert.Empty(t, d.Nodes())
	assert.Empty(t, d.Links())
	assert.Equal(t, uint64(7), d.Sequence().Peek())
}

func TestAddNode(t *testing.T) {
	d := newDoc(t)

	n := catalog.ConstantValue(d.Sequence(), graph.Scalar)
	require.NoError(t, d.AddNode(n))
	assert.Equal(t, []*graph.Node{n}, d.Nodes())

	assert.ErrorIs(t, d.AddNode(n), ErrDuplicateNode)
	assert.ErrorIs(t, d.AddNode(d.StageOutput()), ErrStageOutput)
	assert.Error(t, d.AddNode(nil))

	// A node built from another sequence reuses ids 1..6.
	foreign := catalog.ConstantValue(graph.NewSequence(), graph.Scalar)
	assert.ErrorIs(t, d.AddNode(foreign), ErrVarIDInUse)
}

func TestCreateNode_Unknown(t *testing.T) {
	d := newDoc(t)
	_, err := d.CreateNode("no_such_node")
	require.Error(t, err)
	assert.Empty(t, d.Nodes())
}

func TestRemoveNode(t *testing.T) {
	d := newDoc(t)
	a := create(t, d, catalog.ConstantName(graph.Scalar))
	op := create(t, d, catalog.Add.CatalogName(graph.Scalar))
	b := create(t, d, catalog.ConstantName(graph.Scalar))

	_, err := d.Connect(a.Output(0), op.Input(0))
	require.NoError(t, err)
	_, err = d.Connect(op.Output(0), d.StageOutput().InputByTag("Roughness"))
	require.NoError(t, err)

	require.NoError(t, d.RemoveNode(op))

	assert.Equal(t, []*graph.Node{a, b}, d.Nodes())
	assert.False(t, a.Output(0).IsLinked())
	assert.False(t, d.StageOutput().InputByTag("Roughness").IsLinked())
	assert.Empty(t, d.Links())

	assert.ErrorIs(t, d.RemoveNode(op), ErrUnknownNode)
	assert.ErrorIs(t, d.RemoveNode(d.StageOutput()), ErrStageOutput)
}

func TestConnect(t *testing.T) {
	d := newDoc(t)
	c := create(t, d, catalog.ConstantName(graph.Vec3))
	stage := d.StageOutput()

	l, err := d.Connect(stage.InputByTag("BaseColor"), c.Output(0))
	require.NoError(t, err)
	assert.Same(t, c.Output(0), l.Output)
	assert.Equal(t, []graph.Link{l}, d.Links())

	_, err = d.Connect(c.Output(0), stage.InputByTag("Roughness"))
	assert.ErrorIs(t, err, graph.ErrTypeMismatch)

	outsider := catalog.ConstantValue(d.Sequence(), graph.Vec3)
	_, err = d.Connect(outsider.Output(0), stage.InputByTag("Emissive"))
	assert.ErrorIs(t, err, ErrUnknownNode)
	assert.False(t, stage.InputByTag("Emissive").IsLinked())

	removed, ok := d.Disconnect(c.Output(0))
	assert.True(t, ok)
	assert.Equal(t, l, removed)
	_, ok = d.Disconnect(c.Output(0))
	assert.False(t, ok)
}

func TestFind(t *testing.T) {
	d := newDoc(t)
	n := create(t, d, catalog.Add.CatalogName(graph.Vec2))

	assert.Same(t, d.StageOutput().Input(2), d.FindSlot(3))
	assert.Same(t, n.Input(1), d.FindSlot(n.Input(1).VarID))
	assert.Nil(t, d.FindSlot(999))

	assert.Same(t, n, d.FindNode(n.ID))
	assert.Same(t, d.StageOutput(), d.FindNode(d.StageOutput().ID))
	assert.Nil(t, d.FindNode(catalog.TexCoord(graph.NewSequence(), 0).ID))
}

func TestSetValues(t *testing.T) {
	d := newDoc(t)
	c := create(t, d, catalog.ConstantName(graph.Vec2))

	require.NoError(t, d.SetValues(c, 0.5, 2))
	assert.Equal(t, [4]float32{0.5, 2, 0, 0}, c.Constant.Values)

	assert.Error(t, d.SetValues(c, 1, 2, 3))

	op := create(t, d, catalog.Add.CatalogName(graph.Scalar))
	assert.Error(t, d.SetValues(op, 1))

	outsider := catalog.ConstantValue(d.Sequence(), graph.Scalar)
	assert.ErrorIs(t, d.SetValues(outsider, 1), ErrUnknownNode)
}

func TestSetSampler(t *testing.T) {
	d := newDoc(t)
	tex := create(t, d, "sample2d")
	assert.Equal(t, graph.LinearWrap, tex.Texture.Sampler)

	require.NoError(t, d.SetSampler(tex, graph.AnisotropicClamp))
	assert.Equal(t, graph.AnisotropicClamp, tex.Texture.Sampler)

	assert.Error(t, d.SetSampler(tex, graph.SamplerMode(42)))
	c := create(t, d, catalog.ConstantName(graph.Scalar))
	assert.Error(t, d.SetSampler(c, graph.PointWrap))
}

func TestReset(t *testing.T) {
	d := newDoc(t)
	c := create(t, d, catalog.ConstantName(graph.Scalar))
	oldStage := d.StageOutput()
	_, err := d.Connect(c.Output(0), oldStage.InputByTag("Occlusion"))
	require.NoError(t, err)

	d.Reset()

	assert.Empty(t, d.Nodes())
	assert.Empty(t, d.Links())
	assert.Empty(t, d.Source())
	assert.NotSame(t, oldStage, d.StageOutput())
	assert.False(t, c.Output(0).IsLinked())
	assert.Equal(t, []uint64{1, 2, 3, 4, 5, 6}, d.StageOutput().VarIDs())
	assert.Equal(t, uint64(7), d.Sequence().Peek())
}
