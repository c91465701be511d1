// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package document

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/google/uuid"
	"github.com/specialistvlad/shadergraph/internal/ctxlog"
	"github.com/specialistvlad/shadergraph/internal/graph"
	"github.com/specialistvlad/shadergraph/internal/persist"
)

// Encode serializes the document into the saved-document format.
func (d *Document) Encode() ([]byte, error) {
	f := &persist.File{
		FormatVersion: persist.FormatVersion,
		NextVarID:     d.seq.Peek(),
		StageVarIDs:   d.stage.VarIDs(),
	}
	for _, n := range d.nodes {
		rec := persist.Node{
			ID:      n.ID.String(),
			Factory: n.Factory,
			Tag:     n.Tag,
			VarIDs:  n.VarIDs(),
		}
		switch n.Kind {
		case graph.KindConstant:
			rec.Values = slices.Clone(n.Constant.Values[:n.Output(0).Type.Width()])
		case graph.KindTexture:
			rec.Sampler = n.Texture.Sampler.String()
			rec.Texture = n.Texture.Path
		}
		f.Nodes = append(f.Nodes, rec)
	}
	for _, l := range d.Links() {
		f.Links = append(f.Links, persist.Link{Output: l.Output.VarID, Input: l.Input.VarID})
	}
	return persist.Encode(f)
}

// Save writes the document to path.
func (d *Document) Save(ctx context.Context, path string) error {
	data, err := d.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save document to %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Info("Document saved.", "path", path, "nodes", len(d.nodes))
	return nil
}

// Load reads a document saved with Save.
func Load(ctx context.Context, path string, opts Options) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	d, err := Decode(ctx, data, path, opts)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Info("Document loaded.", "path", path, "nodes", len(d.nodes))
	return d, nil
}

// Decode rebuilds a document from saved bytes. Nodes are created through the
// registry and links go through Connect, so a file that breaks the graph
// rules fails to load.
func Decode(ctx context.Context, data []byte, filename string, opts Options) (*Document, error) {
	logger := ctxlog.FromContext(ctx)

	f, err := persist.Decode(data, filename)
	if err != nil {
		return nil, err
	}

	if err := uniqueVarIDs(f); err != nil {
		return nil, fmt.Errorf("document %s: %w", filename, err)
	}

	d := New(opts)
	if err := d.stage.RestoreVarIDs(f.StageVarIDs); err != nil {
		return nil, fmt.Errorf("document %s: %w", filename, err)
	}
	maxID := slices.Max(append([]uint64{0}, f.StageVarIDs...))

	for _, rec := range f.Nodes {
		n, err := d.restoreNode(rec)
		if err != nil {
			return nil, fmt.Errorf("document %s: node %s: %w", filename, rec.ID, err)
		}
		maxID = max(maxID, slices.Max(append([]uint64{0}, rec.VarIDs...)))
		logger.Debug("Node restored.", "node", n.Tag, "id", n.ID, "factory", n.Factory)
	}

	d.seq.AdvancePast(maxID)
	if f.NextVarID > 0 {
		d.seq.AdvancePast(f.NextVarID - 1)
	}

	for _, l := range f.Links {
		out, in := d.FindSlot(l.Output), d.FindSlot(l.Input)
		if out == nil || in == nil {
			return nil, fmt.Errorf("document %s: link %d -> %d: %w", filename, l.Output, l.Input, ErrUnknownSlot)
		}
		if _, err := d.Connect(out, in); err != nil {
			return nil, fmt.Errorf("document %s: link %d -> %d: %w", filename, l.Output, l.Input, err)
		}
	}
	return d, nil
}

// uniqueVarIDs rejects a file that gives two slots the same var id.
func uniqueVarIDs(f *persist.File) error {
	seen := make(map[uint64]struct{}, len(f.StageVarIDs)+4*len(f.Nodes))
	claim := func(owner string, ids []uint64) error {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				return fmt.Errorf("%s: var_%d: %w", owner, id, ErrVarIDInUse)
			}
			seen[id] = struct{}{}
		}
		return nil
	}
	if err := claim("stage", f.StageVarIDs); err != nil {
		return err
	}
	for _, rec := range f.Nodes {
		if err := claim("node "+rec.ID, rec.VarIDs); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) restoreNode(rec persist.Node) (*graph.Node, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid id: %w", err)
	}
	if d.FindNode(id) != nil {
		return nil, ErrDuplicateNode
	}

	n, err := d.opts.Registry.Create(d.seq, rec.Factory)
	if err != nil {
		return nil, err
	}
	n.ID = id
	if rec.Tag != "" {
		n.Tag = rec.Tag
	}
	if err := n.RestoreVarIDs(rec.VarIDs); err != nil {
		return nil, err
	}

	switch n.Kind {
	case graph.KindConstant:
		if width := n.Output(0).Type.Width(); len(rec.Values) > 0 && len(rec.Values) != width {
			return nil, fmt.Errorf("constant holds %d values, got %d", width, len(rec.Values))
		}
		copy(n.Constant.Values[:], rec.Values)
	case graph.KindTexture:
		if rec.Sampler != "" {
			mode, err := graph.ParseSamplerMode(rec.Sampler)
			if err != nil {
				return nil, err
			}
			n.Texture.Sampler = mode
		}
		n.Texture.Path = rec.Texture
	}

	if err := d.AddNode(n); err != nil {
		return nil, err
	}
	return n, nil
}
