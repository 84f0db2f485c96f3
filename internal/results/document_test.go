package results

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad_YAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.yaml")
	records := []Record{
		{Name: "/t", Result: Pass, SerialNumber: 1},
		{Name: "/t/sub", Result: Fail, Note: "boom"},
	}

	require.NoError(t, Save(path, records))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestLoad_PreservesUnknownYAMLFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- name: /t\n  result: pass\n  future-field: something\n"), 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "something", loaded[0].Extra["future-field"])

	out := filepath.Join(t.TempDir(), "roundtrip.yaml")
	require.NoError(t, Save(out, loaded))

	again, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, "something", again[0].Extra["future-field"])
}

func TestSaveLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	records := []Record{{Name: "/t", Result: Skip}}

	require.NoError(t, Save(path, records))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Skip, loaded[0].Result)
}
