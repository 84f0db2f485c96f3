// Package materialize wires three pipeline stages of spec.md §2 together over a whole fmf
// tree: adjust (§4.1), normalize (§4.2), and, when a policy document is supplied, the policy
// engine (§4.3). Hardware parsing (§4.4) and result merging (§4.5) operate on the objects this
// package produces but are invoked separately by callers that need them (climd's "hardware"
// and "results" command groups) — this package only owns the loader→adjuster→normalizer→policy
// chain that every other entry point shares.
package materialize

import (
	"github.com/fmf-tmt/tmtcore/internal/adjust"
	"github.com/fmf-tmt/tmtcore/internal/context"
	"github.com/fmf-tmt/tmtcore/internal/fmfnode"
	"github.com/fmf-tmt/tmtcore/internal/policy"
	"github.com/fmf-tmt/tmtcore/internal/schema"
	"github.com/fmf-tmt/tmtcore/internal/xerrors"
)

// Overrides holds plugin-option default overrides resolved from CLI flags and environment
// variables before normalization (spec §6: "precedence is CLI > env > fmf > built-in default,
// and is encoded in the source tag"). Keys are well-known test-key names; values are raw,
// pre-normalization data merged into every node's raw map before adjust/normalize run, so a
// node's own declaration of a key wins, while a value the node would otherwise inherit from an
// ancestor is replaced by the override.
type Overrides map[string]any

// Result is the outcome of materializing one fmf tree: every successfully materialized test,
// keyed by name, plus a report of per-test failures and warnings (spec §7 propagation rule —
// a failure in one test never aborts its siblings).
type Result struct {
	Tests  map[string]*schema.Test
	Report *xerrors.Report
}

// Tree runs loader-output root through adjust→normalize→policy for ctx, with eng/doc optionally
// rewriting every materialized test (nil eng skips the policy stage entirely). overrides, if
// non-nil, are merged into every node's raw data before adjust runs, with schema.SourceCLI as
// the resulting tag — the caller is responsible for having already applied CLI > env precedence
// when building overrides (see internal/climd.MergeOverrides).
func Tree(root *fmfnode.Node, ctx context.Context, eng *policy.Engine, doc *policy.Document, overrides Overrides) Result {
	res := Result{Tests: map[string]*schema.Test{}, Report: xerrors.NewReport()}
	walk(root, nil, ctx, eng, doc, overrides, &res)
	return res
}

// walk applies the pipeline to n and recurses into its children, threading the parent's
// normalized Test down as the merge base for inheritance (spec §4.2). A node whose own
// materialization fails is recorded in the report and its subtree is skipped, since its
// children have no valid parent Test to inherit from (spec §7: the failure is isolated to this
// test and its descendants, never to unrelated siblings).
func walk(n *fmfnode.Node, parent *schema.Test, ctx context.Context, eng *policy.Engine, doc *policy.Document, overrides Overrides, res *Result) {
	test, err := materializeNode(n, parent, ctx, eng, doc, overrides)
	if err != nil {
		res.Report.Fail(n.Name, err)
		return
	}

	if n.IsLeaf {
		res.Tests[n.Name] = test
	}

	for _, child := range n.Children {
		walk(child, test, ctx, eng, doc, overrides, res)
	}
}

func materializeNode(n *fmfnode.Node, parent *schema.Test, ctx context.Context, eng *policy.Engine, doc *policy.Document, overrides Overrides) (*schema.Test, error) {
	raw := withOverrides(n.Raw, overrides)

	adjusted, _, err := adjust.Apply(raw, ctx)
	if err != nil {
		return nil, err
	}

	test, err := schema.Normalize(adjusted, parent, schema.SourceFMF)
	if err != nil {
		return nil, err
	}
	if test.Name == "" {
		test.Name = n.Name
	}

	// Only re-tag a key as CLI-sourced if this node's own fmf data didn't declare it — the
	// override took effect on every node whose own file leaves the key unset, including nodes
	// that would otherwise inherit it from an ancestor.
	for key := range overrides {
		if _, ownFmf := n.Raw[key]; ownFmf {
			continue
		}
		if v, ok := test.Get(key); ok && v.Source != schema.SourceCLI {
			v.Source = schema.SourceCLI
			test.Set(key, v)
		}
	}

	if eng != nil && doc != nil {
		test, err = eng.Render(doc, test)
		if err != nil {
			return nil, err
		}
	}

	return test, nil
}

// withOverrides returns raw with overrides merged in underneath the node's own declarations —
// any key the node's own raw data sets wins; ancestors' data is not consulted here, so an
// override replaces a value the node would otherwise inherit. Overrides never mutate raw itself.
func withOverrides(raw map[string]any, overrides Overrides) map[string]any {
	if len(overrides) == 0 {
		return raw
	}
	out := make(map[string]any, len(raw)+len(overrides))
	for k, v := range overrides {
		out[k] = v
	}
	for k, v := range raw {
		out[k] = v
	}
	return out
}
