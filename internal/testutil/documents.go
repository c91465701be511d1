package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/shadergraph/internal/catalog"
	"github.com/specialistvlad/shadergraph/internal/document"
	"github.com/specialistvlad/shadergraph/internal/graph"
	"github.com/stretchr/testify/require"
)

// SumDocument builds a document that feeds 1.0 + 2.0 into Roughness. With a
// fresh document the sum lands in var_11.
func SumDocument(t *testing.T, opts document.Options) *document.Document {
	t.Helper()
	d := document.New(opts)

	one, err := d.CreateNode(catalog.ConstantName(graph.Scalar))
	require.NoError(t, err)
	two, err := d.CreateNode(catalog.ConstantName(graph.Scalar))
	require.NoError(t, err)
	add, err := d.CreateNode(catalog.Add.CatalogName(graph.Scalar))
	require.NoError(t, err)
	require.NoError(t, d.SetValues(one, 1))
	require.NoError(t, d.SetValues(two, 2))

	for _, pair := range [][2]*graph.Slot{
		{one.Output(0), add.Input(0)},
		{two.Output(0), add.Input(1)},
		{add.Output(0), d.StageOutput().InputByTag("Roughness")},
	} {
		_, err := d.Connect(pair[0], pair[1])
		require.NoError(t, err)
	}
	return d
}

// WriteSumDocument saves SumDocument under dir and returns its path.
func WriteSumDocument(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, SumDocument(t, document.DefaultOptions()).Save(context.Background(), path))
	return path
}

// WriteFile writes content to dir/name, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// RequireInOrder fails unless every part occurs in s, each after the previous.
func RequireInOrder(t *testing.T, s string, parts ...string) {
	t.Helper()
	rest := s
	for _, p := range parts {
		i := strings.Index(rest, p)
		require.GreaterOrEqual(t, i, 0, "%q not found after the previous parts", p)
		rest = rest[i+len(p):]
	}
}
