package adjust

import (
	"testing"

	"github.com/fmf-tmt/tmtcore/internal/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalStr(t *testing.T, src string, ctx context.Context) bool {
	t.Helper()
	expr, err := Parse(src)
	require.NoError(t, err)
	matched, err := expr.Eval(ctx)
	require.NoError(t, err)
	return matched
}

func TestEval_VersionedComparison(t *testing.T) {
	ctx := context.New()
	ctx.Set("distro", "fedora-32")

	assert.True(t, evalStr(t, "distro < fedora-33", ctx))
	assert.False(t, evalStr(t, "distro >= fedora-33", ctx))
	assert.True(t, evalStr(t, "distro == fedora-32", ctx))
}

func TestEval_UndefinedDimensionNeverRaises(t *testing.T) {
	ctx := context.New()

	assert.False(t, evalStr(t, "arch == x86_64", ctx))
	assert.False(t, evalStr(t, "arch != x86_64", ctx))
	assert.False(t, evalStr(t, "arch < fedora-33", ctx))
	assert.False(t, evalStr(t, "arch is defined", ctx))
	assert.True(t, evalStr(t, "arch is not defined", ctx))
}

func TestEval_AnyMatchOverMultiValuedDimension(t *testing.T) {
	ctx := context.New()
	ctx.Set("arch", "i386", "x86_64")

	assert.True(t, evalStr(t, "arch == x86_64", ctx))
	assert.True(t, evalStr(t, "arch == i386", ctx))
	assert.False(t, evalStr(t, "arch == aarch64", ctx))
}

func TestEval_RegexSearch(t *testing.T) {
	ctx := context.New()
	ctx.Set("component", "kernel-devel")

	assert.True(t, evalStr(t, "component ~ ^kernel", ctx))
	assert.False(t, evalStr(t, "component !~ ^kernel", ctx))
	assert.False(t, evalStr(t, "component ~ ^userspace", ctx))
}

func TestEval_UnorderedComparisonNeverMatches(t *testing.T) {
	ctx := context.New()
	ctx.Set("initiator", "human")

	assert.False(t, evalStr(t, "initiator < robot", ctx))
	assert.False(t, evalStr(t, "initiator > robot", ctx))
	assert.True(t, evalStr(t, "initiator == human", ctx))
}

func TestEval_BooleanCombinators(t *testing.T) {
	ctx := context.New()
	ctx.Set("distro", "fedora-32")
	ctx.Set("arch", "x86_64")

	assert.True(t, evalStr(t, "distro == fedora-32 and arch == x86_64", ctx))
	assert.False(t, evalStr(t, "distro == fedora-32 and arch == aarch64", ctx))
	assert.True(t, evalStr(t, "distro == fedora-40 or arch == x86_64", ctx))
	assert.True(t, evalStr(t, "not arch == aarch64", ctx))
	assert.True(t, evalStr(t, "(distro == fedora-32 or distro == fedora-33) and arch == x86_64", ctx))
}

func TestEval_PrecedenceNotGtCmpGtAndGtOr(t *testing.T) {
	ctx := context.New()
	ctx.Set("distro", "fedora-32")

	// "not" binds tighter than "and": (not distro == fedora-33) and true
	assert.True(t, evalStr(t, "not distro == fedora-33 and distro == fedora-32", ctx))
	// "and" binds tighter than "or"
	assert.True(t, evalStr(t, "distro == fedora-99 or distro == fedora-32 and not distro == fedora-1", ctx))
}

func TestParse_MalformedExpression(t *testing.T) {
	_, err := Parse("distro ==")
	assert.Error(t, err)

	_, err = Parse("distro unknown fedora-32")
	assert.Error(t, err)

	_, err = Parse("(distro == fedora-32")
	assert.Error(t, err)
}
