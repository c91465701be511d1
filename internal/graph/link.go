// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrNilSlot is returned when either endpoint is missing.
	ErrNilSlot = errors.New("slot is nil")
	// ErrDirectionMismatch is returned when both endpoints are inputs or both
	// are outputs.
	ErrDirectionMismatch = errors.New("slots have the same direction")
	// ErrTypeMismatch is returned when the endpoints carry different widths.
	ErrTypeMismatch = errors.New("slots have different data types")
	// ErrAlreadyLinked is returned when an endpoint already holds its one link.
	ErrAlreadyLinked = errors.New("slot is already linked")
)

// Link pairs an Output slot with the Input slot it feeds.
type Link struct {
	Output *Slot
	Input  *Slot
}

// Connect links two slots given in either order. On error nothing changes.
func Connect(a, b *Slot) (Link, error) {
	if a == nil || b == nil {
		return Link{}, ErrNilSlot
	}
	if a.Direction == b.Direction {
		return Link{}, fmt.Errorf("connect %s to %s: %w", a.VarName(), b.VarName(), ErrDirectionMismatch)
	}
	if a.Type != b.Type {
		return Link{}, fmt.Errorf("connect %s (%s) to %s (%s): %w", a.VarName(), a.Type, b.VarName(), b.Type, ErrTypeMismatch)
	}

	out, in := a, b
	if a.Direction == Input {
		out, in = b, a
	}
	if out.IsLinked() {
		return Link{}, fmt.Errorf("connect output %s: %w", out.VarName(), ErrAlreadyLinked)
	}
	if in.IsLinked() {
		return Link{}, fmt.Errorf("connect input %s: %w", in.VarName(), ErrAlreadyLinked)
	}

	out.next = in
	in.prev = out
	return Link{Output: out, Input: in}, nil
}

// Disconnect removes the link through s, clearing both endpoints. It reports
// the removed link; an unlinked slot is left alone.
func Disconnect(s *Slot) (Link, bool) {
	if s == nil {
		return Link{}, false
	}
	l, ok := LinkOf(s)
	if !ok {
		return Link{}, false
	}
	l.Output.next = nil
	l.Input.prev = nil
	return l, true
}

// LinkOf returns the link s takes part in, if any.
func LinkOf(s *Slot) (Link, bool) {
	switch {
	case s.Direction == Input && s.prev != nil:
		return Link{Output: s.prev, Input: s}, true
	case s.Direction == Output && s.next != nil:
		return Link{Output: s, Input: s.next}, true
	default:
		return Link{}, false
	}
}

// Links derives the link list of the given nodes from their Output slots, in
// node then slot order. Each link appears once.
func Links(nodes ...*Node) []Link {
	var links []Link
	for _, n := range nodes {
		for _, s := range n.slots {
			if s.Direction == Output && s.next != nil {
				links = append(links, Link{Output: s, Input: s.next})
			}
		}
	}
	return links
}
