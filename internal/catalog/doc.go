// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package catalog is the closed set of node factories the editor offers:
// constants, texture samples, channel packing, arithmetic operators, fixed
// getters and shading-language intrinsics.
//
// Every factory returns a fresh node whose slots draw new var ids from the
// Sequence passed in, and whose Factory field records the catalog name it was
// built from. The Registry maps those names back to factories so that saved
// documents and command-line hosts can create nodes by name.
package catalog
