// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package collect orders the nodes a stage output depends on so that each
// variable is declared before it is read.
//
// The walk is depth first from the root, following each fed Input back to the
// node that owns the feeding Output, in slot order. A node with any unfed
// Input is dropped together with everything reachable only through it; that
// is how incomplete subgraphs stay out of generated code. Nodes reachable along
// several paths are emitted once per path.
package collect

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/shadergraph/internal/graph"
)

// ErrCycle is returned when a node feeds, directly or indirectly, one of its
// own inputs.
var ErrCycle = errors.New("shader graph contains a cycle")

// Plan is the result of a walk.
type Plan struct {
	// Order lists the nodes to emit, dependencies first and the root last.
	Order []*graph.Node
	// Dropped lists the incomplete nodes the walk ran into, in discovery
	// order. A node shows up once per path that reached it.
	Dropped []*graph.Node
}

type frame struct {
	node   *graph.Node
	inputs []*graph.Slot
	next   int
}

// Collect walks the dependencies of root. The root itself is never gated on
// completeness and always ends the order.
//
// Each node is recorded when it is first entered and its dependencies are
// walked afterwards; the emission order is that record reversed. This is the
// same order as inserting every visited node at the front before descending.
func Collect(root *graph.Node) (Plan, error) {
	var plan Plan
	if root == nil {
		return plan, nil
	}

	var visits []*graph.Node
	onPath := map[*graph.Node]bool{root: true}
	stack := []frame{{node: root, inputs: root.Inputs()}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.inputs) {
			onPath[top.node] = false
			stack = stack[:len(stack)-1]
			continue
		}
		in := top.inputs[top.next]
		top.next++

		up := in.Prev()
		if up == nil {
			continue
		}
		dep := up.Owner()
		if !dep.IsComplete() {
			plan.Dropped = append(plan.Dropped, dep)
			continue
		}
		if onPath[dep] {
			return Plan{}, fmt.Errorf("%w: %q (%s) reaches itself through %s", ErrCycle, dep.Tag, dep.ID, in.VarName())
		}

		visits = append(visits, dep)
		onPath[dep] = true
		stack = append(stack, frame{node: dep, inputs: dep.Inputs()})
	}

	plan.Order = make([]*graph.Node, 0, len(visits)+1)
	for i := len(visits) - 1; i >= 0; i-- {
		plan.Order = append(plan.Order, visits[i])
	}
	plan.Order = append(plan.Order, root)
	return plan, nil
}
