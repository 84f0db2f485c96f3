package climd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/fmf-tmt/tmtcore/internal/policy"
)

// PolicyCommand exposes policy resolution (spec §4.3): locating a policy document by path or
// symbolic name, enforcing the configured root.
func PolicyCommand() *cli.Command {
	return &cli.Command{
		Name:  "policy",
		Usage: "Resolve a policy document by filepath or symbolic name",
		Commands: []*cli.Command{
			policyResolveCommand(),
		},
	}
}

func policyResolveCommand() *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "Print the resolved path of a policy file or symbolic name",
		Flags: policyFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			path, err := policy.Resolve(c.String("policy-file"), c.String("policy-name"), c.String("policy-root"))
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, path)
			return nil
		},
	}
}
