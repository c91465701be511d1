// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package codegen

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/shadergraph/internal/graph"
)

// TextureUnit0 is the only texture binding the generated code samples.
const TextureUnit0 = "MaterialTexture0"

// ErrUnfedInput is returned when a function or texture node reaches
// generation with an Input nothing feeds.
var ErrUnfedInput = errors.New("input is not connected")

// Generate instantiates the template of n.
func Generate(n *graph.Node) (string, error) {
	switch n.Kind {
	case graph.KindConstant:
		return generateConstant(n)
	case graph.KindFunction:
		return generateFunction(n)
	case graph.KindTexture:
		return generateTexture(n)
	case graph.KindStageOutput:
		return generateStageOutput(n), nil
	default:
		return "", fmt.Errorf("node %q: unsupported kind %s", n.Tag, n.Kind)
	}
}

func generateConstant(n *graph.Node) (string, error) {
	out := n.Output(0)
	if out == nil {
		return "", fmt.Errorf("constant %q has no output", n.Tag)
	}
	return Substitute(n.Template, func(t Token) (string, bool) {
		switch {
		case t.Name == TokenOutput && t.Index == 0:
			return out.VarName(), true
		case t.Name == TokenValue && t.Index < len(n.Constant.Values):
			return FloatLiteral(n.Constant.Values[t.Index]), true
		}
		return "", false
	}), nil
}

func generateFunction(n *graph.Node) (string, error) {
	var inputs, outputs []string
	for _, s := range n.Slots() {
		if s.Direction == graph.Output {
			outputs = append(outputs, s.VarName())
			continue
		}
		if s.Prev() == nil {
			return "", fmt.Errorf("node %q input %q: %w", n.Tag, s.Tag, ErrUnfedInput)
		}
		inputs = append(inputs, s.Prev().VarName())
	}
	return Substitute(n.Template, func(t Token) (string, bool) {
		switch t.Name {
		case TokenInput:
			return at(inputs, t.Index)
		case TokenOutput:
			return at(outputs, t.Index)
		}
		return "", false
	}), nil
}

func generateTexture(n *graph.Node) (string, error) {
	in, out := n.Input(0), n.Output(0)
	if in == nil || out == nil {
		return "", fmt.Errorf("texture %q needs an input and an output", n.Tag)
	}
	if in.Prev() == nil {
		return "", fmt.Errorf("texture %q input %q: %w", n.Tag, in.Tag, ErrUnfedInput)
	}
	return Substitute(n.Template, func(t Token) (string, bool) {
		switch {
		case t.Name == TokenOutput && t.Index == 0:
			return out.VarName(), true
		case t.Name == TokenInput && t.Index == 0:
			return in.Prev().VarName(), true
		case t.Name == TokenSampler:
			return n.Texture.Sampler.String(), true
		case t.Name == TokenTexture:
			return TextureUnit0, true
		}
		return "", false
	}), nil
}

func generateStageOutput(n *graph.Node) string {
	var inputs []string
	for _, s := range n.Inputs() {
		if s.Prev() == nil {
			inputs = append(inputs, ZeroLiteral(s.Type))
		} else {
			inputs = append(inputs, s.Prev().VarName())
		}
	}
	return Substitute(n.Template, func(t Token) (string, bool) {
		if t.Name == TokenInput {
			return at(inputs, t.Index)
		}
		return "", false
	})
}

func at(names []string, i int) (string, bool) {
	if i < 0 || i >= len(names) {
		return "", false
	}
	return names[i], true
}
