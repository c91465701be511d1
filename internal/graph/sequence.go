// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package graph

// Sequence hands out strictly increasing var ids starting at 1.
type Sequence struct {
	next uint64
}

// NewSequence returns a sequence whose first id is 1.
func NewSequence() *Sequence {
	return &Sequence{next: 1}
}

// Next returns a fresh id and advances the sequence.
func (s *Sequence) Next() uint64 {
	id := s.next
	s.next++
	return id
}

// Peek returns the id the next call to Next will hand out.
func (s *Sequence) Peek() uint64 {
	return s.next
}

// Reset rewinds the sequence to 1. Only a document reset may call this, once
// every slot allocated from the old run has been dropped.
func (s *Sequence) Reset() {
	s.next = 1
}

// AdvancePast guarantees the next id is greater than id. Used after restoring
// persisted ids so new slots never collide with them.
func (s *Sequence) AdvancePast(id uint64) {
	if s.next <= id {
		s.next = id + 1
	}
}
