package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_ScalarToSequenceShorthand(t *testing.T) {
	raw := map[string]any{"name": "/t", "tag": "fast"}

	got, err := Normalize(raw, nil, SourceFMF)
	require.NoError(t, err)

	tag, ok := got.Get("tag")
	require.True(t, ok)
	assert.Equal(t, KindSequence, tag.Kind)
	assert.Len(t, tag.Items(), 1)
	assert.Equal(t, "fast", tag.Items()[0].Str())
}

func TestNormalize_MergeMarkerAppendsToParent(t *testing.T) {
	parentRaw := map[string]any{"name": "/p", "tag": []any{"a", "b"}}
	parent, err := Normalize(parentRaw, nil, SourceFMF)
	require.NoError(t, err)

	childRaw := map[string]any{"name": "/p/c", "tag+": []any{"c"}}
	child, err := Normalize(childRaw, parent, SourceFMF)
	require.NoError(t, err)

	tag, ok := child.Get("tag")
	require.True(t, ok)
	var got []string
	for _, v := range tag.Items() {
		got = append(got, v.Str())
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestNormalize_MergeMarkerIndependentOfKeyOrder(t *testing.T) {
	parentRaw := map[string]any{"name": "/p", "tag": []any{"a", "b"}}
	parent, err := Normalize(parentRaw, nil, SourceFMF)
	require.NoError(t, err)

	// Same child declared with keys in a different order must yield the same merge.
	childA := map[string]any{"tag+": []any{"c"}, "name": "/p/c"}
	childB := map[string]any{"name": "/p/c", "tag+": []any{"c"}}

	gotA, err := Normalize(childA, parent, SourceFMF)
	require.NoError(t, err)
	gotB, err := Normalize(childB, parent, SourceFMF)
	require.NoError(t, err)

	tagA, _ := gotA.Get("tag")
	tagB, _ := gotB.Get("tag")
	assert.True(t, Equal(tagA, tagB))
}

func TestNormalize_TypeMismatchIsFatal(t *testing.T) {
	raw := map[string]any{"name": "/t", "enabled": "yes"}
	_, err := Normalize(raw, nil, SourceFMF)
	assert.Error(t, err)
}

func TestNormalize_UnknownKeysPreserved(t *testing.T) {
	raw := map[string]any{"name": "/t", "x-custom": map[string]any{"foo": "bar"}}
	got, err := Normalize(raw, nil, SourceFMF)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"foo": "bar"}, got.Extra["x-custom"])
}

func TestNormalize_DefaultsApplied(t *testing.T) {
	got, err := Normalize(map[string]any{"name": "/t"}, nil, SourceFMF)
	require.NoError(t, err)

	enabled, ok := got.Get("enabled")
	require.True(t, ok)
	assert.True(t, enabled.Boolean())
	assert.Equal(t, SourceDefault, enabled.Source)
}

func TestDuration_RoundTrip(t *testing.T) {
	d, err := ParseDuration("00:00:30")
	require.NoError(t, err)
	assert.Equal(t, "00:00:30", d.String())

	d2, err := ParseDuration("5m")
	require.NoError(t, err)
	assert.Equal(t, Seconds(300), d2)
}
