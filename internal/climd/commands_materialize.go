package climd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	tmtcontext "github.com/fmf-tmt/tmtcore/internal/context"
	"github.com/fmf-tmt/tmtcore/internal/fmfnode"
	"github.com/fmf-tmt/tmtcore/internal/materialize"
	"github.com/fmf-tmt/tmtcore/internal/policy"
	"github.com/fmf-tmt/tmtcore/internal/schema"
)

// MaterializeCommand loads an fmf tree, adjusts it against a context, normalizes it, and,
// when a policy is configured, runs it through the policy engine — the full pipeline of
// spec.md §2, exposed as a single CLI verb.
func MaterializeCommand() *cli.Command {
	return &cli.Command{
		Name:  "materialize",
		Usage: "Load, adjust, normalize, and (optionally) policy-rewrite an fmf tree",
		Flags: append(contextFlags(), policyFlags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			root := c.Args().First()
			if root == "" {
				return fmt.Errorf("fmf tree root path required")
			}

			tree, err := fmfnode.Load(root)
			if err != nil {
				return fmt.Errorf("loading fmf tree: %w", err)
			}

			rctx, err := contextFromFlags(c)
			if err != nil {
				return err
			}

			eng, doc, err := resolvePolicyFromFlags(c)
			if err != nil {
				return err
			}

			overrides := MergeOverrides(EnvOverrides(), nil)
			res := materialize.Tree(tree, rctx, eng, doc, overrides)

			for name, err := range res.Report.Failures {
				fmt.Fprintf(os.Stderr, "materialize: %s: %v\n", name, err)
			}
			for _, w := range res.Report.Warnings {
				fmt.Fprintf(os.Stderr, "materialize: warning: %s\n", w)
			}

			return PrettyPrint(os.Stdout, viewTests(res.Tests))
		},
	}
}

// viewTests projects every materialized Test into plain structured data for display, in the
// same way the policy engine's TEST binding does (spec §4.3, §9 design note).
func viewTests(tests map[string]*schema.Test) map[string]any {
	out := make(map[string]any, len(tests))
	for name, t := range tests {
		out[name] = t.View()
	}
	return out
}

// contextFlags returns the --context dim=value repeatable flag shared by every command that
// needs a dimension map (spec §3: "supplied by CLI flags, a config file, or environment").
func contextFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "context",
			Usage: "Context dimension as dim=value (repeatable, e.g. --context distro=fedora-40)",
		},
	}
}

// contextFromFlags builds a tmtcontext.Context from repeated --context dim=value flags.
func contextFromFlags(c *cli.Command) (tmtcontext.Context, error) {
	rctx := tmtcontext.New()
	for _, kv := range c.StringSlice("context") {
		dim, val, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --context value %q, expected dim=value", kv)
		}
		rctx.Add(strings.TrimSpace(dim), strings.TrimSpace(val))
	}
	return rctx, nil
}

// policyFlags returns the policy-resolution flags of spec §4.3/§6.
func policyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "policy-file",
			Usage:   "Policy document path",
			Sources: cli.EnvVars("POLICY_FILE"),
		},
		&cli.StringFlag{
			Name:    "policy-name",
			Usage:   "Symbolic policy name, resolved under --policy-root",
			Sources: cli.EnvVars("POLICY_NAME"),
		},
		&cli.StringFlag{
			Name:    "policy-root",
			Usage:   "Root directory policy paths must resolve under",
			Sources: cli.EnvVars("POLICY_ROOT"),
		},
	}
}

// resolvePolicyFromFlags resolves and parses the configured policy document, if any. A command
// invoked with none of --policy-file/--policy-name configured runs the pipeline with no policy
// stage at all (nil, nil, nil) — policy is optional per spec §2.
func resolvePolicyFromFlags(c *cli.Command) (*policy.Engine, *policy.Document, error) {
	file := c.String("policy-file")
	name := c.String("policy-name")
	root := c.String("policy-root")

	if file == "" && name == "" {
		return nil, nil, nil
	}

	path, err := policy.Resolve(file, name, root)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving policy: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading policy %s: %w", path, err)
	}

	doc, err := policy.Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing policy %s: %w", path, err)
	}

	return policy.NewEngine(), doc, nil
}
