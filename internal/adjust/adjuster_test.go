package adjust

import (
	"testing"

	"github.com/fmf-tmt/tmtcore/internal/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_S1DisablesOnOlderDistro(t *testing.T) {
	ctx := context.New()
	ctx.Set("distro", "fedora-32")

	node := map[string]any{
		"enabled": true,
		"adjust": []any{
			map[string]any{
				"when":    "distro < fedora-33",
				"enabled": false,
				"because": "x",
			},
		},
	}

	out, fired, err := Apply(node, ctx)
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, fired)
	assert.Equal(t, false, out["enabled"])
	_, hasAdjust := out["adjust"]
	assert.False(t, hasAdjust)
}

func TestApply_NoAdjustKeyIsNoop(t *testing.T) {
	node := map[string]any{"enabled": true}
	out, fired, err := Apply(node, context.New())
	require.NoError(t, err)
	assert.Nil(t, fired)
	assert.Equal(t, node, out)
}

func TestApply_NonMatchingRuleLeavesNodeUnchanged(t *testing.T) {
	ctx := context.New()
	ctx.Set("distro", "fedora-40")

	node := map[string]any{
		"enabled": true,
		"adjust": []any{
			map[string]any{"when": "distro < fedora-33", "enabled": false},
		},
	}

	out, fired, err := Apply(node, ctx)
	require.NoError(t, err)
	assert.Equal(t, []bool{false}, fired)
	assert.Equal(t, true, out["enabled"])
}

func TestApply_SingleMappingAdjust(t *testing.T) {
	ctx := context.New()
	ctx.Set("arch", "aarch64")

	node := map[string]any{
		"adjust": map[string]any{"when": "arch == aarch64", "enabled": false},
	}

	out, fired, err := Apply(node, ctx)
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, fired)
	assert.Equal(t, false, out["enabled"])
}

func TestApply_ContinueFalseStopsRemainingRules(t *testing.T) {
	ctx := context.New()
	ctx.Set("arch", "x86_64")

	node := map[string]any{
		"adjust": []any{
			map[string]any{"when": "arch == x86_64", "enabled": false, "continue": false},
			map[string]any{"when": "arch == x86_64", "tag": []any{"should-not-apply"}},
		},
	}

	out, fired, err := Apply(node, ctx)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, fired)
	assert.Equal(t, false, out["enabled"])
	_, hasTag := out["tag"]
	assert.False(t, hasTag)
}

func TestApply_PlusSuffixAppendsToExistingList(t *testing.T) {
	ctx := context.New()
	ctx.Set("arch", "x86_64")

	node := map[string]any{
		"tag": []any{"slow"},
		"adjust": []any{
			map[string]any{"when": "arch == x86_64", "tag+": []any{"x86"}},
		},
	}

	out, _, err := Apply(node, ctx)
	require.NoError(t, err)
	assert.Equal(t, []any{"slow", "x86"}, out["tag"])
}

func TestApply_PlusSuffixMergesIntoMapping(t *testing.T) {
	ctx := context.New()
	ctx.Set("arch", "x86_64")

	node := map[string]any{
		"environment": map[string]any{"A": "1"},
		"adjust": []any{
			map[string]any{"when": "arch == x86_64", "environment+": map[string]any{"B": "2"}},
		},
	}

	out, _, err := Apply(node, ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"A": "1", "B": "2"}, out["environment"])
}

func TestApply_MalformedWhenIsFatal(t *testing.T) {
	node := map[string]any{
		"adjust": []any{
			map[string]any{"when": "distro ==", "enabled": false},
		},
	}

	_, _, err := Apply(node, context.New())
	assert.Error(t, err)
}

func TestApply_MissingWhenIsFatal(t *testing.T) {
	node := map[string]any{
		"adjust": []any{
			map[string]any{"enabled": false},
		},
	}

	_, _, err := Apply(node, context.New())
	assert.Error(t, err)
}
