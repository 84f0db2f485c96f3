package capability

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBundle(t *testing.T, root, provisioner, rego string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, provisioner+".rego"), []byte(rego), 0o644))
}

func TestSupports_AllowedAndDisallowedLeaf(t *testing.T) {
	root := t.TempDir()
	writeBundle(t, root, "beaker", `package capability

allow if input.leaf == "memory"
allow if input.leaf == "cpu.cores"
`)

	c := NewChecker(root)

	ok, err := c.Supports("beaker", "memory")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Supports("beaker", "tpm.version")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSupports_MissingBundleIsFalseNotError(t *testing.T) {
	c := NewChecker(t.TempDir())

	ok, err := c.Supports("nonexistent-provisioner", "memory")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSupports_CachesPreparedQuery(t *testing.T) {
	root := t.TempDir()
	writeBundle(t, root, "beaker", `package capability

allow if input.leaf == "memory"
`)
	c := NewChecker(root)

	ok1, err := c.Supports("beaker", "memory")
	require.NoError(t, err)
	assert.True(t, ok1)

	_, ok := c.qc.cache["beaker"]
	assert.True(t, ok)

	ok2, err := c.Supports("beaker", "memory")
	require.NoError(t, err)
	assert.True(t, ok2)
}
