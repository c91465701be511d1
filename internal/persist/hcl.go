// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package persist

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// fileRoot is the HCL schema of a saved document.
type fileRoot struct {
	FormatVersion int          `hcl:"format_version"`
	NextVarID     uint64       `hcl:"next_var_id"`
	Stage         *stageBlock  `hcl:"stage,block"`
	Nodes         []*nodeBlock `hcl:"node,block"`
	Links         []*linkBlock `hcl:"link,block"`
	Remain        hcl.Body     `hcl:",remain"`
}

type stageBlock struct {
	VarIDs []uint64 `hcl:"var_ids"`
}

type nodeBlock struct {
	ID      string    `hcl:"id,label"`
	Factory string    `hcl:"factory"`
	Tag     string    `hcl:"tag,optional"`
	Values  []float64 `hcl:"values,optional"`
	Sampler string    `hcl:"sampler,optional"`
	Texture string    `hcl:"texture,optional"`
	VarIDs  []uint64  `hcl:"var_ids"`
}

type linkBlock struct {
	Output uint64 `hcl:"output"`
	Input  uint64 `hcl:"input"`
}

// Decode parses a saved document. filename is only used in diagnostics.
func Decode(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse document %s: %w", filename, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode document %s: %w", filename, diags)
	}
	if root.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("document %s: unsupported format_version %d, want %d", filename, root.FormatVersion, FormatVersion)
	}
	if root.Stage == nil {
		return nil, fmt.Errorf("document %s: missing stage block", filename)
	}

	f := &File{
		FormatVersion: root.FormatVersion,
		NextVarID:     root.NextVarID,
		StageVarIDs:   root.Stage.VarIDs,
	}
	for _, n := range root.Nodes {
		node := Node{
			ID:      n.ID,
			Factory: n.Factory,
			Tag:     n.Tag,
			Sampler: n.Sampler,
			Texture: n.Texture,
			VarIDs:  n.VarIDs,
		}
		for _, v := range n.Values {
			node.Values = append(node.Values, float32(v))
		}
		f.Nodes = append(f.Nodes, node)
	}
	for _, l := range root.Links {
		f.Links = append(f.Links, Link{Output: l.Output, Input: l.Input})
	}
	return f, nil
}

// Encode writes f in canonical HCL formatting.
func Encode(f *File) ([]byte, error) {
	out := hclwrite.NewEmptyFile()
	body := out.Body()

	body.SetAttributeValue("format_version", cty.NumberIntVal(int64(FormatVersion)))
	body.SetAttributeValue("next_var_id", cty.NumberUIntVal(f.NextVarID))

	body.AppendNewline()
	stage := body.AppendNewBlock("stage", nil).Body()
	if err := setIDs(stage, f.StageVarIDs); err != nil {
		return nil, fmt.Errorf("stage: %w", err)
	}

	for _, n := range f.Nodes {
		body.AppendNewline()
		b := body.AppendNewBlock("node", []string{n.ID}).Body()
		b.SetAttributeValue("factory", cty.StringVal(n.Factory))
		if n.Tag != "" {
			b.SetAttributeValue("tag", cty.StringVal(n.Tag))
		}
		if len(n.Values) > 0 {
			values, err := floatList(n.Values)
			if err != nil {
				return nil, fmt.Errorf("node %s: %w", n.ID, err)
			}
			b.SetAttributeValue("values", values)
		}
		if n.Sampler != "" {
			b.SetAttributeValue("sampler", cty.StringVal(n.Sampler))
		}
		if n.Texture != "" {
			b.SetAttributeValue("texture", cty.StringVal(n.Texture))
		}
		if err := setIDs(b, n.VarIDs); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}

	for _, l := range f.Links {
		body.AppendNewline()
		b := body.AppendNewBlock("link", nil).Body()
		b.SetAttributeValue("output", cty.NumberUIntVal(l.Output))
		b.SetAttributeValue("input", cty.NumberUIntVal(l.Input))
	}

	return hclwrite.Format(out.Bytes()), nil
}

func setIDs(body *hclwrite.Body, ids []uint64) error {
	if len(ids) == 0 {
		body.SetAttributeValue("var_ids", cty.ListValEmpty(cty.Number))
		return nil
	}
	v, err := gocty.ToCtyValue(ids, cty.List(cty.Number))
	if err != nil {
		return fmt.Errorf("var_ids: %w", err)
	}
	body.SetAttributeValue("var_ids", v)
	return nil
}

// floatList spells values with their shortest float32 decimal so a saved
// 0.1 reads back as the same float32.
func floatList(values []float32) (cty.Value, error) {
	vals := make([]cty.Value, len(values))
	for i, v := range values {
		n, err := cty.ParseNumberVal(strconv.FormatFloat(float64(v), 'g', -1, 32))
		if err != nil {
			return cty.NilVal, fmt.Errorf("value %d: %w", i, err)
		}
		vals[i] = n
	}
	return cty.ListVal(vals), nil
}
