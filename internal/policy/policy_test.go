package policy

import (
	"testing"

	"github.com/fmf-tmt/tmtcore/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, yamlText string) *Document {
	t.Helper()
	doc, err := Parse([]byte(yamlText))
	require.NoError(t, err)
	return doc
}

func TestRender_S4PolicyDefaultInjection(t *testing.T) {
	doc := mustDoc(t, `
test-policy:
  - check: |-
      {{- $hasAvc := false -}}
      {{- range attr "how" .VALUE -}}{{- if eq . "avc" -}}{{ $hasAvc = true }}{{- end -}}{{- end -}}
      {{- if $hasAvc -}}
      {{ toYaml .VALUE }}
      {{- else -}}
      - how: avc
        result: respect
      {{- end -}}
`)

	engine := NewEngine()

	empty, err := schema.Normalize(map[string]any{"check": []any{}}, nil, schema.SourceFMF)
	require.NoError(t, err)

	rendered, err := engine.Render(doc, empty)
	require.NoError(t, err)

	check, ok := rendered.Get("check")
	require.True(t, ok)
	require.Len(t, check.Items(), 1)
	entry := check.Items()[0].Fields()
	assert.Equal(t, "avc", entry["how"].Str())
	assert.Equal(t, "respect", entry["result"].Str())

	withAvc, err := schema.Normalize(map[string]any{
		"check": []any{map[string]any{"how": "avc", "result": "respect"}},
	}, nil, schema.SourceFMF)
	require.NoError(t, err)

	reRendered, err := engine.Render(doc, withAvc)
	require.NoError(t, err)
	check2, _ := reRendered.Get("check")
	require.Len(t, check2.Items(), 1)
	assert.Equal(t, "avc", check2.Items()[0].Fields()["how"].Str())
}

func TestRender_Invariant5NoOpValueRule(t *testing.T) {
	doc := mustDoc(t, `
test-policy:
  - tag: "{{ toYaml .VALUE }}"
`)
	engine := NewEngine()

	test, err := schema.Normalize(map[string]any{"tag": []any{"slow", "fast"}}, nil, schema.SourceFMF)
	require.NoError(t, err)

	rendered, err := engine.Render(doc, test)
	require.NoError(t, err)

	before, _ := test.Get("tag")
	after, _ := rendered.Get("tag")
	assert.True(t, schema.Equal(before, after))
}

func TestRender_SourceTagSetToPolicy(t *testing.T) {
	doc := mustDoc(t, `
test-policy:
  - framework: "beakerlib"
`)
	engine := NewEngine()

	test, err := schema.Normalize(map[string]any{}, nil, schema.SourceFMF)
	require.NoError(t, err)

	rendered, err := engine.Render(doc, test)
	require.NoError(t, err)

	fw, ok := rendered.Get("framework")
	require.True(t, ok)
	assert.Equal(t, schema.SourcePolicy, fw.Source)
	assert.Equal(t, "beakerlib", fw.Str())
}

func TestRender_MultipleKeysWithinOneRuleApplyInOrder(t *testing.T) {
	doc := mustDoc(t, `
test-policy:
  - framework: "beakerlib"
    result: '{{ if eq .TEST.framework "beakerlib" }}xfail{{ else }}respect{{ end }}'
`)
	engine := NewEngine()
	test, err := schema.Normalize(map[string]any{}, nil, schema.SourceFMF)
	require.NoError(t, err)

	rendered, err := engine.Render(doc, test)
	require.NoError(t, err)

	fw, _ := rendered.Get("framework")
	res, _ := rendered.Get("result")
	assert.Equal(t, "beakerlib", fw.Str())
	assert.Equal(t, "xfail", res.Str())
}

func TestRender_RenderErrorNamesRuleAndKey(t *testing.T) {
	doc := mustDoc(t, `
test-policy:
  - result: '{{ fail "boom" }}'
`)
	engine := NewEngine()
	test, err := schema.Normalize(map[string]any{}, nil, schema.SourceFMF)
	require.NoError(t, err)

	_, err = engine.Render(doc, test)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test-policy[0]")
	assert.Contains(t, err.Error(), "key=result")
}

func TestResolve_RejectsPathOutsideRoot(t *testing.T) {
	_, err := Resolve("", "", "")
	assert.Error(t, err)

	_, err = Resolve("/etc/passwd", "", "/policies")
	assert.Error(t, err)

	got, err := Resolve("", "suite.smoke", "/policies")
	require.NoError(t, err)
	assert.Equal(t, "/policies/suite/smoke.yaml", got)
}
