// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package catalog

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/shadergraph/internal/graph"
)

// Channel is one fixed input of the stage output.
type Channel struct {
	Name string
	Type graph.DataType
}

// StageChannels are the G-buffer channels in slot order.
var StageChannels = []Channel{
	{"BaseColor", graph.Vec3},
	{"Normal", graph.Vec3},
	{"Roughness", graph.Scalar},
	{"Metalness", graph.Scalar},
	{"Occlusion", graph.Scalar},
	{"Emissive", graph.Vec3},
}

// StageOutput builds the terminal node that fills and encodes the G-buffer.
// It is not part of the registry; every document owns exactly one.
func StageOutput(seq *graph.Sequence) *graph.Node {
	n := graph.NewNode(graph.KindStageOutput, "Stage Output")

	width := 0
	for _, ch := range StageChannels {
		width = max(width, len(ch.Name))
	}

	var b strings.Builder
	b.WriteString("GBuffer gbuffer;\n")
	for i, ch := range StageChannels {
		n.AddInput(seq, ch.Name, ch.Type)
		fmt.Fprintf(&b, "gbuffer.%-*s = %%Input%d;\n", width, ch.Name, i)
	}
	b.WriteString("output = EncodeGBuffer(gbuffer);\n")
	n.Template = b.String()
	return n
}
