// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package codegen

import (
	"math"
	"strconv"
	"strings"

	"github.com/specialistvlad/shadergraph/internal/graph"
)

// FloatLiteral spells v as a float literal: the shortest decimal that
// round-trips through float32, always with a '.' or exponent and an f suffix.
func FloatLiteral(v float32) string {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return "asfloat(0x7FC00000)"
	case math.IsInf(f, 1):
		return "asfloat(0x7F800000)"
	case math.IsInf(f, -1):
		return "asfloat(0xFF800000)"
	}

	s := strconv.FormatFloat(f, 'g', -1, 32)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s + "f"
}

// ZeroLiteral is the value an unfed stage output channel of type t gets.
func ZeroLiteral(t graph.DataType) string {
	if t == graph.Scalar {
		return "0.0f"
	}
	zeros := make([]string, t.Width())
	for i := range zeros {
		zeros[i] = "0.0f"
	}
	return t.String() + "(" + strings.Join(zeros, ", ") + ")"
}
