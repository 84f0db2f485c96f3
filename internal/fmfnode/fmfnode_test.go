package fmfnode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad_DirectoryAndLeaves(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.fmf", "tag: [slow]\n")

	sub := filepath.Join(root, "feature")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFile(t, sub, "main.fmf", "framework: shell\n")
	writeFile(t, sub, "test-one.fmf", "test: echo hi\n")

	tree, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "/", tree.Name)
	assert.Equal(t, []any{"slow"}, tree.Raw["tag"])

	leaves := Leaves(tree)
	require.Len(t, leaves, 1)
	assert.Equal(t, "/feature/test-one", leaves[0].Name)
	assert.Equal(t, "echo hi", leaves[0].Raw["test"])
}
