// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package document

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/specialistvlad/shadergraph/internal/codegen"
	"github.com/specialistvlad/shadergraph/internal/collect"
	"github.com/specialistvlad/shadergraph/internal/ctxlog"
)

const (
	banner = "//-----------------------------------------------------------------------------"
	indent = "     "
)

// oneLine keeps a node tag inside a single line comment.
var oneLine = strings.NewReplacer("\r", " ", "\n", " ")

var autoGenerated = []string{
	banner,
	"// <auto-generated>",
	"//     This code was generated by a tool.",
	"//",
	"//     Changes to this file may cause incorrect behavior and will be lost if",
	"//     the code is regenerated.",
	"// </auto-generated>",
	banner,
}

// GenerateSource rebuilds the source text from the current graph and keeps
// it as Source. Nodes with an unconnected input are left out, together with
// everything only they depend on.
func (d *Document) GenerateSource(ctx context.Context) (string, error) {
	logger := ctxlog.FromContext(ctx)

	plan, err := collect.Collect(d.stage)
	if err != nil {
		return "", fmt.Errorf("failed to order nodes: %w", err)
	}
	for _, n := range plan.Dropped {
		logger.Warn("Node left out of generated source, an input is not connected.", "node", n.Tag, "id", n.ID)
	}

	var b strings.Builder
	d.writePreamble(&b)
	for _, n := range plan.Order {
		code, err := codegen.Generate(n)
		if err != nil {
			return "", fmt.Errorf("failed to generate node %q (%s): %w", n.Tag, n.ID, err)
		}
		if d.opts.Annotate {
			b.WriteString(indent + "// " + oneLine.Replace(n.Tag) + "\n")
		}
		writeIndented(&b, code)
	}
	b.WriteString("\n")
	b.WriteString(indent + "return output;\n")
	b.WriteString("}\n")

	src := b.String()
	if d.opts.Newline != "\n" {
		src = strings.ReplaceAll(src, "\n", d.opts.Newline)
	}
	d.source = src

	d.opts.Metrics.ObserveGeneration(len(plan.Order), len(plan.Dropped))
	logger.Debug("Source generated.", "nodes", len(plan.Order), "dropped", len(plan.Dropped), "bytes", len(src))
	return src, nil
}

// Source returns the text of the last successful GenerateSource.
func (d *Document) Source() string {
	return d.source
}

// Export generates the source and writes it to path. The directory must
// exist.
func (d *Document) Export(ctx context.Context, path string) (err error) {
	logger := ctxlog.FromContext(ctx)
	defer func() { d.opts.Metrics.ObserveExport(err) }()

	src, err := d.GenerateSource(ctx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		return fmt.Errorf("failed to export shader to %s: %w", path, err)
	}
	logger.Info("Shader exported.", "path", path, "bytes", len(src))
	return nil
}

func (d *Document) writePreamble(b *strings.Builder) {
	for _, line := range autoGenerated {
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
	for _, inc := range d.opts.Includes {
		b.WriteString("#include \"" + inc + "\"\n")
	}
	if len(d.opts.Includes) > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "PSOutput %s(const PSInput input)\n", d.opts.EntryPoint)
	b.WriteString("{\n")
	b.WriteString(indent + "PSOutput output = (PSOutput)0;\n")
	b.WriteString(indent + "Geometry geometry;\n")
	b.WriteString(indent + "geometry.Normal    = normalize(input.Normal);\n")
	b.WriteString(indent + "geometry.Tangent   = normalize(input.Tangent);\n")
	b.WriteString(indent + "geometry.Bitangent = normalize(input.Bitangent);\n")
	b.WriteString("\n")
}

// writeIndented writes code one line at a time at body indentation.
func writeIndented(b *strings.Builder, code string) {
	for _, line := range strings.SplitAfter(code, "\n") {
		if line == "" {
			continue
		}
		if line != "\n" {
			b.WriteString(indent)
		}
		b.WriteString(line)
	}
	if !strings.HasSuffix(code, "\n") && code != "" {
		b.WriteString("\n")
	}
}
