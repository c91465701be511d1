// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gogpu/naga/hlsl"
	"github.com/specialistvlad/shadergraph/internal/graph"
)

// Shape describes how an intrinsic's slots relate to the width it is
// instantiated at.
type Shape struct {
	// Args names the inputs. All inputs take the instantiated width.
	Args []string
	// Reduces makes the output a scalar regardless of width.
	Reduces bool
	// Widths restricts the allowed widths; empty means all four.
	Widths []graph.DataType
}

var vectorsOnly = []graph.DataType{graph.Vec2, graph.Vec3, graph.Vec4}

var (
	unary   = Shape{Args: []string{"x"}}
	binary  = Shape{Args: []string{"x", "y"}}
	lerpish = Shape{Args: []string{"x", "y", "s"}}
)

// intrinsics is the set of shading-language built-ins exposed as nodes.
var intrinsics = map[string]Shape{
	"abs":        unary,
	"acos":       unary,
	"asin":       unary,
	"atan":       unary,
	"ceil":       unary,
	"cos":        unary,
	"ddx":        unary,
	"ddy":        unary,
	"degrees":    unary,
	"exp":        unary,
	"exp2":       unary,
	"floor":      unary,
	"frac":       unary,
	"log":        unary,
	"log10":      unary,
	"log2":       unary,
	"radians":    unary,
	"round":      unary,
	"rsqrt":      unary,
	"saturate":   unary,
	"sign":       unary,
	"sin":        unary,
	"sinh":       unary,
	"sqrt":       unary,
	"tan":        unary,
	"tanh":       unary,
	"trunc":      unary,
	"atan2":      binary,
	"fmod":       binary,
	"max":        binary,
	"min":        binary,
	"pow":        binary,
	"step":       binary,
	"lerp":       lerpish,
	"clamp":      {Args: []string{"x", "min", "max"}},
	"smoothstep": {Args: []string{"min", "max", "x"}},
	"normalize":  {Args: []string{"x"}, Widths: vectorsOnly},
	"reflect":    {Args: []string{"i", "n"}, Widths: vectorsOnly},
	"length":     {Args: []string{"x"}, Reduces: true, Widths: vectorsOnly},
	"dot":        {Args: []string{"x", "y"}, Reduces: true, Widths: vectorsOnly},
	"distance":   {Args: []string{"x", "y"}, Reduces: true, Widths: vectorsOnly},
	"cross":      {Args: []string{"x", "y"}, Widths: []graph.DataType{graph.Vec3}},
}

// IntrinsicName is the catalog name of Intrinsic(fn, t), e.g.
// "intrinsic.lerp.float3".
func IntrinsicName(fn string, t graph.DataType) string {
	return "intrinsic." + fn + "." + t.String()
}

// IntrinsicNames lists the supported intrinsic functions, sorted.
func IntrinsicNames() []string {
	names := make([]string, 0, len(intrinsics))
	for name := range intrinsics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s Shape) allows(t graph.DataType) bool {
	if len(s.Widths) == 0 {
		return true
	}
	for _, w := range s.Widths {
		if w == t {
			return true
		}
	}
	return false
}

func (s Shape) widths() []graph.DataType {
	if len(s.Widths) == 0 {
		return graph.DataTypes
	}
	return s.Widths
}

// Intrinsic builds a call to the built-in fn at width t.
func Intrinsic(seq *graph.Sequence, fn string, t graph.DataType) (*graph.Node, error) {
	shape, ok := intrinsics[fn]
	if !ok {
		return nil, fmt.Errorf("unknown intrinsic %q", fn)
	}
	if !hlsl.IsReserved(fn) {
		return nil, fmt.Errorf("intrinsic %q is not a shading-language built-in", fn)
	}
	if !shape.allows(t) {
		return nil, fmt.Errorf("intrinsic %q does not accept %s", fn, t)
	}

	out := t
	if shape.Reduces {
		out = graph.Scalar
	}

	n := graph.NewNode(graph.KindFunction, fn)
	n.Factory = IntrinsicName(fn, t)
	args := make([]string, len(shape.Args))
	for i, arg := range shape.Args {
		n.AddInput(seq, arg, t)
		args[i] = fmt.Sprintf("%%Input%d", i)
	}
	n.AddOutput(seq, "output", out)
	n.Template = fmt.Sprintf("%s %%Output0 = %s(%s);\n", out, fn, strings.Join(args, ", "))
	return n, nil
}

// Intrinsics registers every intrinsic at every width it accepts.
type Intrinsics struct{}

func (*Intrinsics) Register(r *Registry) {
	for _, fn := range IntrinsicNames() {
		for _, t := range intrinsics[fn].widths() {
			r.Register(IntrinsicName(fn, t), "intrinsic", func(seq *graph.Sequence) *graph.Node {
				n, err := Intrinsic(seq, fn, t)
				if err != nil {
					panic(err)
				}
				return n
			})
		}
	}
}
