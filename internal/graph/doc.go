// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package graph is the data model of a shader graph: nodes that own an ordered
// sequence of typed slots, and the links between them.
//
// # Connectivity
//
// Connectivity lives only in the slots. Every slot holds at most one neighbor:
// an Input slot points back at the Output that feeds it (prev) and an Output
// slot points forward at the single Input it feeds (next). There is no fan-out;
// an Output that already drives one Input must be disconnected before it can
// drive another.
//
//	┌────────────┐ next        prev ┌────────────┐
//	│ Output slot│ ───────────────▶ │ Input slot │
//	│  (node A)  │ ◀─────────────── │  (node B)  │
//	└────────────┘                  └────────────┘
//
// Link values are a derived view over those pointers (see Links) and are never
// stored separately, so they cannot drift from the ground truth.
//
// # Variable ids
//
// Each slot receives a var id from a Sequence when it is created. The id seeds
// the generated variable name (var_<id>) and is never reused while the owning
// Sequence lives. A document owns exactly one Sequence.
//
// # Thread-Safety
//
// None. The model is edited from a single goroutine, one interaction at a time.
package graph
