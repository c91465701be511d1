// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package graph

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrDuplicateVarID is returned when one id list names the same var id twice.
var ErrDuplicateVarID = errors.New("var id repeated")

// TextureParams is the payload of a KindTexture node.
type TextureParams struct {
	Dimension TextureDimension
	Sampler   SamplerMode
	// Path is the source image the host previews. It does not affect codegen.
	Path string
}

// ConstantParams is the payload of a KindConstant node. Narrow constants only
// read the leading values.
type ConstantParams struct {
	Values  [4]float32
	AsColor bool
}

// Node is a single shading operation. Kind decides which payload is meaningful
// and how Template is instantiated.
type Node struct {
	// ID identifies the node to hosts and in saved documents. It is unrelated
	// to slot var ids.
	ID   uuid.UUID
	Kind Kind
	Tag  string
	// Factory is the catalog name the node was built from; empty for the
	// stage output.
	Factory  string
	Template string

	Texture  TextureParams
	Constant ConstantParams

	slots []*Slot
}

// NewNode creates an empty node with a fresh identity. Slots are added with
// AddInput and AddOutput while the node is being assembled.
func NewNode(kind Kind, tag string) *Node {
	return &Node{
		ID:   uuid.New(),
		Kind: kind,
		Tag:  tag,
		Texture: TextureParams{
			Sampler: LinearWrap,
		},
	}
}

// AddInput appends an Input slot with a var id drawn from seq.
func (n *Node) AddInput(seq *Sequence, tag string, t DataType) *Slot {
	return n.addSlot(seq, Input, tag, t)
}

// AddOutput appends an Output slot with a var id drawn from seq.
func (n *Node) AddOutput(seq *Sequence, tag string, t DataType) *Slot {
	return n.addSlot(seq, Output, tag, t)
}

func (n *Node) addSlot(seq *Sequence, dir Direction, tag string, t DataType) *Slot {
	s := &Slot{
		Direction: dir,
		Type:      t,
		Tag:       tag,
		VarID:     seq.Next(),
		owner:     n,
	}
	n.slots = append(n.slots, s)
	return s
}

// Slots returns the slots in declaration order. The returned slice is a copy;
// the slots themselves are shared.
func (n *Node) Slots() []*Slot {
	out := make([]*Slot, len(n.slots))
	copy(out, n.slots)
	return out
}

// Slot returns the i-th slot in declaration order, or nil when out of range.
func (n *Node) Slot(i int) *Slot {
	if i < 0 || i >= len(n.slots) {
		return nil
	}
	return n.slots[i]
}

// Inputs returns the Input slots in declaration order.
func (n *Node) Inputs() []*Slot {
	return n.filter(Input)
}

// Outputs returns the Output slots in declaration order.
func (n *Node) Outputs() []*Slot {
	return n.filter(Output)
}

// Input returns the i-th Input slot, or nil.
func (n *Node) Input(i int) *Slot {
	return nth(n.filter(Input), i)
}

// Output returns the i-th Output slot, or nil.
func (n *Node) Output(i int) *Slot {
	return nth(n.filter(Output), i)
}

// InputByTag finds an Input slot by its tag, e.g. "Roughness" on the stage
// output.
func (n *Node) InputByTag(tag string) *Slot {
	for _, s := range n.slots {
		if s.Direction == Input && s.Tag == tag {
			return s
		}
	}
	return nil
}

// IsComplete reports whether every Input slot is fed. Nodes without inputs
// are always complete.
func (n *Node) IsComplete() bool {
	for _, s := range n.slots {
		if s.Direction == Input && s.prev == nil {
			return false
		}
	}
	return true
}

// DisconnectAll drops every link that touches the node. Call it before the
// node is detached so nothing keeps pointing at it.
func (n *Node) DisconnectAll() []Link {
	var removed []Link
	for _, s := range n.slots {
		if l, ok := Disconnect(s); ok {
			removed = append(removed, l)
		}
	}
	return removed
}

// RestoreVarIDs overwrites the slot var ids in declaration order. It is meant
// for loading saved documents, before the node is linked to anything.
func (n *Node) RestoreVarIDs(ids []uint64) error {
	if len(ids) != len(n.slots) {
		return fmt.Errorf("node %q has %d slots, got %d var ids", n.Tag, len(n.slots), len(ids))
	}
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return fmt.Errorf("node %q: var_%d: %w", n.Tag, id, ErrDuplicateVarID)
		}
		seen[id] = struct{}{}
	}
	for i, s := range n.slots {
		if s.IsLinked() {
			return fmt.Errorf("node %q: cannot restore var id of linked slot %q", n.Tag, s.Tag)
		}
		s.VarID = ids[i]
	}
	return nil
}

// VarIDs lists the slot var ids in declaration order.
func (n *Node) VarIDs() []uint64 {
	ids := make([]uint64, len(n.slots))
	for i, s := range n.slots {
		ids[i] = s.VarID
	}
	return ids
}

func (n *Node) filter(dir Direction) []*Slot {
	var out []*Slot
	for _, s := range n.slots {
		if s.Direction == dir {
			out = append(out, s)
		}
	}
	return out
}

func nth(slots []*Slot, i int) *Slot {
	if i < 0 || i >= len(slots) {
		return nil
	}
	return slots[i]
}
