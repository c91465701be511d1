// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package graph

import "strconv"

// Slot is one named, typed connection point on a node.
type Slot struct {
	Direction Direction
	Type      DataType
	Tag       string
	// VarID seeds the generated variable name and is unique per document.
	VarID uint64

	owner *Node
	prev  *Slot // feeding Output, set only on Input slots
	next  *Slot // fed Input, set only on Output slots
}

// Owner returns the node the slot belongs to.
func (s *Slot) Owner() *Node {
	return s.owner
}

// Prev returns the Output slot feeding this Input, or nil.
func (s *Slot) Prev() *Slot {
	return s.prev
}

// Next returns the Input slot this Output feeds, or nil.
func (s *Slot) Next() *Slot {
	return s.next
}

// Peer returns the slot on the other end of the link, whichever direction
// this slot has.
func (s *Slot) Peer() *Slot {
	if s.Direction == Input {
		return s.prev
	}
	return s.next
}

// IsLinked reports whether the slot already takes part in a link.
func (s *Slot) IsLinked() bool {
	return s.prev != nil || s.next != nil
}

// VarName returns the generated variable name, var_<id>.
func (s *Slot) VarName() string {
	return "var_" + strconv.FormatUint(s.VarID, 10)
}
