package climd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/fmf-tmt/tmtcore/internal/fmfnode"
	"github.com/fmf-tmt/tmtcore/internal/materialize"
	"github.com/fmf-tmt/tmtcore/internal/schema"
	"github.com/fmf-tmt/tmtcore/internal/watch"
)

// WatchCommand re-runs the materialization pipeline on a fixed interval and reports which test
// names changed since the previous tick (spec.md §9 supplement — pure sugar over the
// synchronous core, see internal/watch).
func WatchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Periodically re-materialize an fmf tree and report changed tests",
		Flags: append(append(contextFlags(), policyFlags()...), &cli.DurationFlag{
			Name:  "interval",
			Usage: "Re-materialization interval",
			Value: 30 * time.Second,
		}),
		Action: func(ctx context.Context, c *cli.Command) error {
			root := c.Args().First()
			if root == "" {
				return fmt.Errorf("fmf tree root path required")
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

			materializeFn := func() (map[string]*schema.Test, error) {
				tree, err := fmfnode.Load(root)
				if err != nil {
					return nil, err
				}
				res := materialize.Tree(tree, rctx, eng, doc, overrides)
				if !res.Report.OK() {
					for name, failErr := range res.Report.Failures {
						fmt.Fprintf(os.Stderr, "watch: %s: %v\n", name, failErr)
					}
				}
				return res.Tests, nil
			}

			w := watch.NewWatcher(c.Duration("interval"), materializeFn)
			if err := w.Start(); err != nil {
				return err
			}
			defer w.Stop()

			sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			for {
				select {
				case tick := <-w.Events:
					if tick.Err != nil {
						fmt.Fprintf(os.Stderr, "watch: materialize failed: %v\n", tick.Err)
						continue
					}
					if len(tick.Changed) == 0 {
						continue
					}
					fmt.Fprintf(os.Stdout, "changed: %v\n", tick.Changed)
				case <-sigCtx.Done():
					return nil
				}
			}
		},
	}
}
