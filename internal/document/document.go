// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package document

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/specialistvlad/shadergraph/internal/catalog"
	"github.com/specialistvlad/shadergraph/internal/config"
	"github.com/specialistvlad/shadergraph/internal/graph"
	"github.com/specialistvlad/shadergraph/internal/metrics"
)

var (
	// ErrUnknownNode is returned for nodes that are not part of the document.
	ErrUnknownNode = errors.New("node is not in the document")
	// ErrDuplicateNode is returned when a node is added twice.
	ErrDuplicateNode = errors.New("node is already in the document")
	// ErrStageOutput is returned when the stage output is added or removed
	// like an ordinary node.
	ErrStageOutput = errors.New("stage output is owned by the document")
	// ErrVarIDInUse is returned when a node brings a var id another slot of
	// the document already has.
	ErrVarIDInUse = errors.New("var id already in use")
	// ErrUnknownSlot is returned when a var id names no slot of the document.
	ErrUnknownSlot = errors.New("no slot with this var id")
)

// Options controls how a document generates source.
type Options struct {
	EntryPoint string
	Includes   []string
	// Newline replaces every line break of the generated source.
	Newline  string
	Annotate bool

	// Registry builds nodes by catalog name. Nil means catalog.Default().
	Registry *catalog.Registry
	// Metrics is optional.
	Metrics *metrics.Metrics
}

// DefaultOptions mirrors config.Default.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

// OptionsFromConfig takes the generation settings from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		EntryPoint: cfg.EntryPoint,
		Includes:   slices.Clone(cfg.Includes),
		Newline:    cfg.NewlineSequence(),
		Annotate:   cfg.Annotate,
	}
}

// Document is the node set plus the singleton stage output.
type Document struct {
	opts   Options
	seq    *graph.Sequence
	stage  *graph.Node
	nodes  []*graph.Node
	source string
}

// New creates an empty document: just the stage output, whose six slots take
// var ids 1 to 6.
func New(opts Options) *Document {
	if opts.Registry == nil {
		opts.Registry = catalog.Default()
	}
	if opts.EntryPoint == "" {
		opts.EntryPoint = "main"
	}
	if opts.Newline == "" {
		opts.Newline = "\r\n"
	}
	d := &Document{opts: opts, seq: graph.NewSequence()}
	d.stage = catalog.StageOutput(d.seq)
	return d
}

// Reset drops every node and link and restarts var ids at 1.
func (d *Document) Reset() {
	for _, n := range d.nodes {
		n.DisconnectAll()
	}
	d.stage.DisconnectAll()
	d.nodes = nil
	d.source = ""
	d.seq.Reset()
	d.stage = catalog.StageOutput(d.seq)
}

// Sequence is the var id source new nodes of this document must draw from.
func (d *Document) Sequence() *graph.Sequence {
	return d.seq
}

// Registry returns the catalog the document builds nodes with.
func (d *Document) Registry() *catalog.Registry {
	return d.opts.Registry
}

// StageOutput returns the terminal node.
func (d *Document) StageOutput() *graph.Node {
	return d.stage
}

// Nodes returns the nodes in insertion order, without the stage output.
func (d *Document) Nodes() []*graph.Node {
	return slices.Clone(d.nodes)
}

// CreateNode builds a node by catalog name and adds it.
func (d *Document) CreateNode(name string) (*graph.Node, error) {
	n, err := d.opts.Registry.Create(d.seq, name)
	if err != nil {
		return nil, err
	}
	if err := d.AddNode(n); err != nil {
		return nil, err
	}
	return n, nil
}

// AddNode appends n. Nodes must be built from Sequence so their var ids stay
// unique.
func (d *Document) AddNode(n *graph.Node) error {
	if n == nil {
		return errors.New("node is nil")
	}
	if n.Kind == graph.KindStageOutput {
		return ErrStageOutput
	}
	if d.contains(n) {
		return fmt.Errorf("node %q: %w", n.Tag, ErrDuplicateNode)
	}
	for _, s := range n.Slots() {
		if d.FindSlot(s.VarID) != nil {
			return fmt.Errorf("node %q slot %q: %s: %w", n.Tag, s.Tag, s.VarName(), ErrVarIDInUse)
		}
	}
	d.nodes = append(d.nodes, n)
	return nil
}

// RemoveNode disconnects n from its neighbours and drops it.
func (d *Document) RemoveNode(n *graph.Node) error {
	if n == d.stage {
		return ErrStageOutput
	}
	i := slices.Index(d.nodes, n)
	if i < 0 {
		return ErrUnknownNode
	}
	n.DisconnectAll()
	d.nodes = slices.Delete(d.nodes, i, i+1)
	return nil
}

// Connect links two slots of this document. See graph.Connect for the rules.
func (d *Document) Connect(a, b *graph.Slot) (graph.Link, error) {
	for _, s := range []*graph.Slot{a, b} {
		if s != nil && !d.contains(s.Owner()) {
			return graph.Link{}, fmt.Errorf("slot %s: %w", s.VarName(), ErrUnknownNode)
		}
	}
	return graph.Connect(a, b)
}

// Disconnect removes the link through s, if any.
func (d *Document) Disconnect(s *graph.Slot) (graph.Link, bool) {
	return graph.Disconnect(s)
}

// Links lists every link of the document, each once.
func (d *Document) Links() []graph.Link {
	return graph.Links(d.all()...)
}

// FindSlot returns the slot whose var id is id, or nil.
func (d *Document) FindSlot(id uint64) *graph.Slot {
	for _, n := range d.all() {
		for _, s := range n.Slots() {
			if s.VarID == id {
				return s
			}
		}
	}
	return nil
}

// FindNode returns the node with the given identity, or nil.
func (d *Document) FindNode(id uuid.UUID) *graph.Node {
	for _, n := range d.all() {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// SetValues overwrites the leading values of a constant node.
func (d *Document) SetValues(n *graph.Node, values ...float32) error {
	if !d.contains(n) {
		return ErrUnknownNode
	}
	if n.Kind != graph.KindConstant {
		return fmt.Errorf("node %q is a %s node, not a constant", n.Tag, n.Kind)
	}
	if width := n.Output(0).Type.Width(); len(values) > width {
		return fmt.Errorf("node %q holds %d values, got %d", n.Tag, width, len(values))
	}
	copy(n.Constant.Values[:], values)
	return nil
}

// SetSampler changes the sampler of a texture node.
func (d *Document) SetSampler(n *graph.Node, mode graph.SamplerMode) error {
	if !d.contains(n) {
		return ErrUnknownNode
	}
	if n.Kind != graph.KindTexture {
		return fmt.Errorf("node %q is a %s node, not a texture", n.Tag, n.Kind)
	}
	if !mode.Valid() {
		return fmt.Errorf("node %q: unknown sampler mode %d", n.Tag, mode)
	}
	n.Texture.Sampler = mode
	return nil
}

func (d *Document) contains(n *graph.Node) bool {
	return n != nil && (n == d.stage || slices.Contains(d.nodes, n))
}

// all returns the nodes followed by the stage output.
func (d *Document) all() []*graph.Node {
	out := make([]*graph.Node, 0, len(d.nodes)+1)
	out = append(out, d.nodes...)
	return append(out, d.stage)
}
