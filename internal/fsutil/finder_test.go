package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{
		"b.hcl",
		"a.hcl",
		"notes.txt",
		"nested/c.hcl",
		".git/ignored.hcl",
	} {
		full := filepath.Join(root, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, nil, 0o600))
	}

	files, err := FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.hcl"),
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "nested", "c.hcl"),
	}, files)

	_, err = FindFilesByExtension(filepath.Join(root, "missing"), ".hcl")
	assert.Error(t, err)

	assert.Panics(t, func() { _, _ = FindFilesByExtension(root, "") })
}

func TestReplaceExtension(t *testing.T) {
	assert.Equal(t, "dir/doc.hlsl", ReplaceExtension("dir/doc.hcl", ".hlsl"))
	assert.Equal(t, "doc.hlsl", ReplaceExtension("doc", ".hlsl"))
}
