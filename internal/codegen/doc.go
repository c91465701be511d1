// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package codegen turns one node into source text by instantiating its
// template.
//
// Templates carry placeholder tokens: %Output<i>, %Input<i> and %Value<i> are
// indexed left to right per direction, and texture templates also use
// %Sampler and %Texture. The template is scanned once from left to right;
// digits are consumed greedily, so %Input1 never matches the front of
// %Input10. Tokens without a substitution are copied through untouched.
//
// What a token is replaced with depends on the node kind:
//
//   - constant: %Output0 is the output variable, %Value<i> the stored values
//   - function: %Input<i> is the variable feeding the i-th input and
//     %Output<i> the i-th output's own variable
//   - texture: as function for %Input0 and %Output0, plus the sampler name and
//     texture unit 0
//   - stage output: as function for inputs, with a zero literal of the slot's
//     width for inputs nothing feeds
//
// Generation only reads the node.
package codegen
