// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package catalog

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/shadergraph/internal/graph"
)

var components = [...]string{"x", "y", "z", "w"}

// ConstantName is the catalog name of ConstantValue(t).
func ConstantName(t graph.DataType) string { return "constant." + t.String() }

// ConstantValue is a literal of width t. Its values start at zero.
func ConstantValue(seq *graph.Sequence, t graph.DataType) *graph.Node {
	n := graph.NewNode(graph.KindConstant, "Constant")
	n.Factory = ConstantName(t)
	n.AddOutput(seq, "value", t)
	n.Template = constantTemplate(t)
	return n
}

// Color3 is a three-wide constant edited as a color, white by default.
func Color3(seq *graph.Sequence) *graph.Node {
	return color(seq, "Color3", graph.Vec3)
}

// Color4 is a four-wide constant edited as a color, opaque white by default.
func Color4(seq *graph.Sequence) *graph.Node {
	return color(seq, "Color4", graph.Vec4)
}

func color(seq *graph.Sequence, tag string, t graph.DataType) *graph.Node {
	n := graph.NewNode(graph.KindConstant, tag)
	n.Factory = strings.ToLower(tag)
	n.AddOutput(seq, "color", t)
	n.Template = constantTemplate(t)
	n.Constant = graph.ConstantParams{Values: [4]float32{1, 1, 1, 1}, AsColor: true}
	return n
}

// constantTemplate only mentions as many %Value tokens as the width needs.
func constantTemplate(t graph.DataType) string {
	if t == graph.Scalar {
		return "const float %Output0 = %Value0;\n"
	}
	values := make([]string, t.Width())
	for i := range values {
		values[i] = fmt.Sprintf("%%Value%d", i)
	}
	return fmt.Sprintf("const %s %%Output0 = %s(%s);\n", t, t, strings.Join(values, ", "))
}

// Sample1D samples a one-dimensional texture at a scalar coordinate.
func Sample1D(seq *graph.Sequence) *graph.Node {
	return sample(seq, "Sample1D", graph.Texture1D, graph.Scalar)
}

// Sample2D samples a two-dimensional texture at a float2 coordinate.
func Sample2D(seq *graph.Sequence) *graph.Node {
	return sample(seq, "Sample2D", graph.Texture2D, graph.Vec2)
}

func sample(seq *graph.Sequence, tag string, dim graph.TextureDimension, coord graph.DataType) *graph.Node {
	n := graph.NewNode(graph.KindTexture, tag)
	n.Factory = strings.ToLower(tag)
	n.AddInput(seq, "texcoord", coord)
	n.AddOutput(seq, "result", graph.Vec4)
	n.Texture.Dimension = dim
	n.Template = "float4 %Output0 = %Texture.Sample(%Sampler, %Input0);\n"
	return n
}

// DecomposeName is the catalog name of Decompose(t).
func DecomposeName(t graph.DataType) string { return fmt.Sprintf("from_float%d", t.Width()) }

// Decompose splits a vector into one scalar output per component. t must be
// at least two wide.
func Decompose(seq *graph.Sequence, t graph.DataType) *graph.Node {
	n := graph.NewNode(graph.KindFunction, fmt.Sprintf("FromFloat%d", t.Width()))
	n.Factory = DecomposeName(t)
	n.AddInput(seq, "input", t)
	var b strings.Builder
	for i := 0; i < t.Width(); i++ {
		n.AddOutput(seq, components[i], graph.Scalar)
		fmt.Fprintf(&b, "float %%Output%d = %%Input0.%s;\n", i, components[i])
	}
	n.Template = b.String()
	return n
}

// ComposeName is the catalog name of Compose(t).
func ComposeName(t graph.DataType) string { return fmt.Sprintf("to_float%d", t.Width()) }

// Compose packs one scalar input per component into a vector. t must be at
// least two wide.
func Compose(seq *graph.Sequence, t graph.DataType) *graph.Node {
	n := graph.NewNode(graph.KindFunction, fmt.Sprintf("ToFloat%d", t.Width()))
	n.Factory = ComposeName(t)
	args := make([]string, t.Width())
	for i := range args {
		n.AddInput(seq, components[i], graph.Scalar)
		args[i] = fmt.Sprintf("%%Input%d", i)
	}
	n.AddOutput(seq, "output", t)
	n.Template = fmt.Sprintf("%s %%Output0 = %s(%s);\n", t, t, strings.Join(args, ", "))
	return n
}

// Operator is one of the four arithmetic binary operators.
type Operator struct {
	Name   string
	Symbol string
}

var (
	Add = Operator{Name: "op_add", Symbol: "+"}
	Sub = Operator{Name: "op_sub", Symbol: "-"}
	Mul = Operator{Name: "op_mul", Symbol: "*"}
	Div = Operator{Name: "op_div", Symbol: "/"}
)

// ArithmeticOperators lists the operators in menu order.
var ArithmeticOperators = []Operator{Add, Sub, Mul, Div}

// CatalogName returns the name of the operator at width t, e.g. "op_add.float3".
func (op Operator) CatalogName(t graph.DataType) string {
	return op.Name + "." + t.String()
}

// Binary builds lhs <op> rhs at width t.
func (op Operator) Binary(seq *graph.Sequence, t graph.DataType) *graph.Node {
	n := graph.NewNode(graph.KindFunction, "operator "+op.Symbol)
	n.Factory = op.CatalogName(t)
	n.AddInput(seq, "lhs", t)
	n.AddInput(seq, "rhs", t)
	n.AddOutput(seq, "output", t)
	n.Template = fmt.Sprintf("%s %%Output0 = %%Input0 %s %%Input1;\n", t, op.Symbol)
	return n
}

// OpAdd is lhs + rhs.
func OpAdd(seq *graph.Sequence, t graph.DataType) *graph.Node { return Add.Binary(seq, t) }

// OpSub is lhs - rhs.
func OpSub(seq *graph.Sequence, t graph.DataType) *graph.Node { return Sub.Binary(seq, t) }

// OpMul is lhs * rhs.
func OpMul(seq *graph.Sequence, t graph.DataType) *graph.Node { return Mul.Binary(seq, t) }

// OpDiv is lhs / rhs.
func OpDiv(seq *graph.Sequence, t graph.DataType) *graph.Node { return Div.Binary(seq, t) }

// TexCoordName is the catalog name of TexCoord(set).
func TexCoordName(set int) string { return fmt.Sprintf("texcoord%d", set) }

// TexCoord reads interpolated texture coordinate set 0 through 3.
func TexCoord(seq *graph.Sequence, set int) *graph.Node {
	n := graph.NewNode(graph.KindFunction, fmt.Sprintf("TexCoord%d", set))
	n.Factory = TexCoordName(set)
	n.AddOutput(seq, "uv", graph.Vec2)
	n.Template = fmt.Sprintf("float2 %%Output0 = input.TexCoord%d;\n", set)
	return n
}

// GeometryNormal reads the normalized surface normal.
func GeometryNormal(seq *graph.Sequence) *graph.Node {
	return geometry(seq, "Normal", "normal")
}

// GeometryTangent reads the normalized surface tangent.
func GeometryTangent(seq *graph.Sequence) *graph.Node {
	return geometry(seq, "Tangent", "tangent")
}

// GeometryBitangent reads the normalized surface bitangent.
func GeometryBitangent(seq *graph.Sequence) *graph.Node {
	return geometry(seq, "Bitangent", "bitangent")
}

func geometry(seq *graph.Sequence, field, slot string) *graph.Node {
	n := graph.NewNode(graph.KindFunction, "Geometry "+field)
	n.Factory = "geometry_" + slot
	n.AddOutput(seq, slot, graph.Vec3)
	n.Template = fmt.Sprintf("float3 %%Output0 = geometry.%s;\n", field)
	return n
}

// Constants registers literal and color factories.
type Constants struct{}

func (*Constants) Register(r *Registry) {
	for _, t := range graph.DataTypes {
		r.Register(ConstantName(t), "constant", func(seq *graph.Sequence) *graph.Node {
			return ConstantValue(seq, t)
		})
	}
	r.Register("color3", "constant", Color3)
	r.Register("color4", "constant", Color4)
}

// Textures registers texture sampling factories.
type Textures struct{}

func (*Textures) Register(r *Registry) {
	r.Register("sample1d", "texture", Sample1D)
	r.Register("sample2d", "texture", Sample2D)
}

// Packing registers vector compose and decompose factories.
type Packing struct{}

func (*Packing) Register(r *Registry) {
	for _, t := range graph.DataTypes[1:] {
		r.Register(ComposeName(t), "packing", func(seq *graph.Sequence) *graph.Node {
			return Compose(seq, t)
		})
	}
	for _, t := range graph.DataTypes[1:] {
		r.Register(DecomposeName(t), "packing", func(seq *graph.Sequence) *graph.Node {
			return Decompose(seq, t)
		})
	}
}

// Operators registers the arithmetic operators at every width.
type Operators struct{}

func (*Operators) Register(r *Registry) {
	for _, op := range ArithmeticOperators {
		for _, t := range graph.DataTypes {
			r.Register(op.CatalogName(t), "operator", func(seq *graph.Sequence) *graph.Node {
				return op.Binary(seq, t)
			})
		}
	}
}

// Getters registers the zero-input fixed-semantic readers.
type Getters struct{}

func (*Getters) Register(r *Registry) {
	for set := 0; set < 4; set++ {
		r.Register(TexCoordName(set), "getter", func(seq *graph.Sequence) *graph.Node {
			return TexCoord(seq, set)
		})
	}
	r.Register("geometry_normal", "getter", GeometryNormal)
	r.Register("geometry_tangent", "getter", GeometryTangent)
	r.Register("geometry_bitangent", "getter", GeometryBitangent)
}
