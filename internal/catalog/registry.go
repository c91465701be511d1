// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package catalog

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/shadergraph/internal/graph"
)

// Factory builds one preconfigured node.
type Factory func(seq *graph.Sequence) *graph.Node

// Entry is a registered factory.
type Entry struct {
	Name  string
	Group string
	New   Factory
}

// Module contributes a group of factories to a Registry.
type Module interface {
	Register(r *Registry)
}

// Registry maps catalog names to factories.
type Registry struct {
	entries map[string]Entry
	order   []string
}

// coreModules is every group of factories compiled into the editor.
var coreModules = []Module{
	&Constants{},
	&Textures{},
	&Packing{},
	&Operators{},
	&Getters{},
	&Intrinsics{},
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Default returns a registry holding every built-in factory.
func Default() *Registry {
	r := New()
	for _, mod := range coreModules {
		mod.Register(r)
	}
	return r
}

// Register adds a factory. Registering a name twice is a programming error.
func (r *Registry) Register(name, group string, f Factory) {
	if _, exists := r.entries[name]; exists {
		panic(fmt.Sprintf("factory with name '%s' already registered", name))
	}
	slog.Debug("Registering node factory.", "name", name, "group", group)
	r.entries[name] = Entry{Name: name, Group: group, New: f}
	r.order = append(r.order, name)
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Create builds a node by catalog name.
func (r *Registry) Create(seq *graph.Sequence, name string) (*graph.Node, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("unknown node factory %q", name)
	}
	n := e.New(seq)
	n.Factory = name
	return n, nil
}

// Entries lists the registered factories in registration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name])
	}
	return out
}

// Groups returns the distinct group names, sorted.
func (r *Registry) Groups() []string {
	seen := make(map[string]struct{})
	var groups []string
	for _, e := range r.entries {
		if _, ok := seen[e.Group]; ok {
			continue
		}
		seen[e.Group] = struct{}{}
		groups = append(groups, e.Group)
	}
	sort.Strings(groups)
	return groups
}
