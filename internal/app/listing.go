package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/specialistvlad/shadergraph/internal/graph"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

// signature spells a node's slots as "(float3 lhs, float3 rhs) -> float3 output".
func signature(n *graph.Node) string {
	var in, out []string
	for _, s := range n.Slots() {
		part := s.Type.String() + " " + s.Tag
		if s.Direction == graph.Input {
			in = append(in, part)
		} else {
			out = append(out, part)
		}
	}
	return "(" + strings.Join(in, ", ") + ") -> " + strings.Join(out, ", ")
}

// Catalog prints every node factory with its signature.
func (a *App) Catalog() error {
	t := newTable("NAME", "GROUP", "KIND", "SIGNATURE")
	seq := graph.NewSequence()
	for _, e := range a.registry.Entries() {
		n := e.New(seq)
		t.Row(e.Name, e.Group, n.Kind.String(), signature(n))
	}
	_, err := fmt.Fprintln(a.outW, t.Render())
	return err
}

// Describe prints the nodes, slots and links of the document at path.
func (a *App) Describe(ctx context.Context, path string) error {
	doc, err := a.Load(ctx, path)
	if err != nil {
		return err
	}

	slots := newTable("NODE", "ID", "SLOT", "DIR", "TYPE", "VAR", "PEER")
	for _, n := range append(doc.Nodes(), doc.StageOutput()) {
		for _, s := range n.Slots() {
			peer := "-"
			if p := s.Peer(); p != nil {
				peer = p.VarName()
			}
			slots.Row(n.Tag, n.ID.String(), s.Tag, s.Direction.String(), s.Type.String(), s.VarName(), peer)
		}
	}

	links := newTable("OUTPUT", "FROM", "INPUT", "TO")
	for _, l := range doc.Links() {
		links.Row(l.Output.VarName(), l.Output.Owner().Tag, l.Input.VarName(), l.Input.Owner().Tag)
	}

	_, err = fmt.Fprintf(a.outW, "%s\n%d links\n%s\n", slots.Render(), len(doc.Links()), links.Render())
	return err
}
