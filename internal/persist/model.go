// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package persist reads and writes saved documents. A saved document is an
// HCL file; this package only knows its layout, not how nodes are built.
package persist

// FormatVersion is written into every file and is the only version Decode
// accepts.
const FormatVersion = 1

// File is the format-agnostic content of a saved document.
type File struct {
	FormatVersion int
	// NextVarID is the id the document's sequence hands out next.
	NextVarID uint64
	// StageVarIDs are the var ids of the stage output's slots.
	StageVarIDs []uint64
	Nodes       []Node
	Links       []Link
}

// Node is one saved node. Everything that is not here is rebuilt by the
// catalog factory.
type Node struct {
	ID      string
	Factory string
	Tag     string
	// Values is set for constants only.
	Values []float32
	// Sampler and Texture are set for texture nodes only.
	Sampler string
	Texture string
	// VarIDs lists the slot var ids in declaration order.
	VarIDs []uint64
}

// Link connects two slots by var id.
type Link struct {
	Output uint64
	Input  uint64
}
