// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package graph

import (
	"fmt"

	"github.com/gogpu/naga/hlsl"
	"github.com/gogpu/naga/ir"
)

// Kind selects how a node's template is instantiated.
type Kind uint8

const (
	KindFunction Kind = iota
	KindTexture
	KindConstant
	KindStageOutput
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindTexture:
		return "texture"
	case KindConstant:
		return "constant"
	case KindStageOutput:
		return "stage_output"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Direction tells whether a slot consumes or produces a value.
type Direction uint8

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// DataType is the float-vector width carried by a slot.
type DataType uint8

const (
	Scalar DataType = iota
	Vec2
	Vec3
	Vec4
)

// f32 is the only scalar the editor works with.
var f32 = ir.ScalarType{Kind: ir.ScalarFloat, Width: 4}

// dataTypeNames holds the HLSL spelling of each width, e.g. "float3".
var dataTypeNames = [...]string{
	Scalar: hlsl.ScalarToHLSL(f32),
	Vec2:   hlsl.VectorToHLSL(ir.VectorType{Size: ir.Vec2, Scalar: f32}),
	Vec3:   hlsl.VectorToHLSL(ir.VectorType{Size: ir.Vec3, Scalar: f32}),
	Vec4:   hlsl.VectorToHLSL(ir.VectorType{Size: ir.Vec4, Scalar: f32}),
}

// DataTypes lists every data type from narrowest to widest.
var DataTypes = []DataType{Scalar, Vec2, Vec3, Vec4}

// Width returns the number of float components, 1 through 4.
func (t DataType) Width() int {
	return int(t) + 1
}

// Valid reports whether t is one of the four known widths.
func (t DataType) Valid() bool {
	return t <= Vec4
}

// String returns the shading-language type name.
func (t DataType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("datatype(%d)", uint8(t))
	}
	return dataTypeNames[t]
}

// DataTypeOfWidth maps a component count to its data type.
func DataTypeOfWidth(width int) (DataType, error) {
	if width < 1 || width > 4 {
		return Scalar, fmt.Errorf("unsupported vector width %d", width)
	}
	return DataType(width - 1), nil
}

// ParseDataType accepts the shading-language spelling produced by String.
func ParseDataType(s string) (DataType, error) {
	for _, t := range DataTypes {
		if t.String() == s {
			return t, nil
		}
	}
	return Scalar, fmt.Errorf("unknown data type %q", s)
}

// TextureDimension is the resource shape sampled by a texture node.
type TextureDimension uint8

const (
	TextureNone TextureDimension = iota
	Texture1D
	Texture2D
	Texture3D
	TextureCube
	Texture1DArray
	Texture2DArray
	TextureCubeArray
)

var textureImageTypes = map[TextureDimension]ir.ImageType{
	Texture1D:        {Dim: ir.Dim1D, Class: ir.ImageClassSampled},
	Texture2D:        {Dim: ir.Dim2D, Class: ir.ImageClassSampled},
	Texture3D:        {Dim: ir.Dim3D, Class: ir.ImageClassSampled},
	TextureCube:      {Dim: ir.DimCube, Class: ir.ImageClassSampled},
	Texture1DArray:   {Dim: ir.Dim1D, Arrayed: true, Class: ir.ImageClassSampled},
	Texture2DArray:   {Dim: ir.Dim2D, Arrayed: true, Class: ir.ImageClassSampled},
	TextureCubeArray: {Dim: ir.DimCube, Arrayed: true, Class: ir.ImageClassSampled},
}

// String returns the HLSL resource type, e.g. "Texture2DArray".
func (d TextureDimension) String() string {
	img, ok := textureImageTypes[d]
	if !ok {
		return "None"
	}
	return hlsl.ImageToHLSL(img, false)
}

// SamplerMode is a fixed filter/address combination declared by the shader
// preset include.
type SamplerMode uint8

const (
	PointWrap SamplerMode = iota
	PointClamp
	PointMirror
	LinearWrap
	LinearClamp
	LinearMirror
	AnisotropicWrap
	AnisotropicClamp
	AnisotropicMirror
)

var samplerNames = [...]string{
	PointWrap:         "PointWrap",
	PointClamp:        "PointClamp",
	PointMirror:       "PointMirror",
	LinearWrap:        "LinearWrap",
	LinearClamp:       "LinearClamp",
	LinearMirror:      "LinearMirror",
	AnisotropicWrap:   "AnisotropicWrap",
	AnisotropicClamp:  "AnisotropicClamp",
	AnisotropicMirror: "AnisotropicMirror",
}

// String returns the sampler's declared name in the shader preset.
func (m SamplerMode) String() string {
	if int(m) >= len(samplerNames) {
		return fmt.Sprintf("sampler(%d)", uint8(m))
	}
	return samplerNames[m]
}

// Valid reports whether m is one of the declared sampler modes.
func (m SamplerMode) Valid() bool {
	return int(m) < len(samplerNames)
}

// ParseSamplerMode is the inverse of SamplerMode.String.
func ParseSamplerMode(s string) (SamplerMode, error) {
	for i, name := range samplerNames {
		if name == s {
			return SamplerMode(i), nil
		}
	}
	return LinearWrap, fmt.Errorf("unknown sampler mode %q", s)
}
