package climd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/fmf-tmt/tmtcore/internal/capability"
	"github.com/fmf-tmt/tmtcore/internal/hardware"
)

// HardwareCommand groups the three observables spec §4.4 requires: canonical re-serialization,
// tree simplification, and the three-valued satisfies predicate — plus the supplemental
// capability advisory of SPEC_FULL.md §6 (whether a provisioner's policy claims it can filter
// on a given leaf path; the core itself never drops a leaf regardless of the answer).
func HardwareCommand() *cli.Command {
	return &cli.Command{
		Name:  "hardware",
		Usage: "Parse, simplify, and evaluate hardware-requirement constraint documents",
		Commands: []*cli.Command{
			hardwareParseCommand(),
			hardwareSimplifyCommand(),
			hardwareSatisfiesCommand(),
			hardwareCapabilityCommand(),
		},
	}
}

func hardwareParseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse a constraint document and print its canonical form",
		ArgsUsage: "<document.yaml>",
		Action: func(ctx context.Context, c *cli.Command) error {
			tree, err := loadConstraintTree(c.Args().First())
			if err != nil {
				return err
			}
			return PrettyPrint(os.Stdout, hardware.Serialize(tree))
		},
	}
}

func hardwareSimplifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "simplify",
		Usage:     "Parse a constraint document, flatten trivially-nested and/or, print canonical form",
		ArgsUsage: "<document.yaml>",
		Action: func(ctx context.Context, c *cli.Command) error {
			tree, err := loadConstraintTree(c.Args().First())
			if err != nil {
				return err
			}
			return PrettyPrint(os.Stdout, hardware.Serialize(hardware.Simplify(tree)))
		},
	}
}

func hardwareSatisfiesCommand() *cli.Command {
	return &cli.Command{
		Name:      "satisfies",
		Usage:     "Evaluate a constraint document against a hardware-facts document",
		ArgsUsage: "<document.yaml> <facts.yaml>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() < 2 {
				return fmt.Errorf("both <document.yaml> and <facts.yaml> are required")
			}

			tree, err := loadConstraintTree(c.Args().Get(0))
			if err != nil {
				return err
			}

			facts, err := loadFacts(c.Args().Get(1))
			if err != nil {
				return err
			}

			result := hardware.Satisfies(tree, facts)
			fmt.Fprintln(os.Stdout, result.String())
			if result == hardware.No {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func hardwareCapabilityCommand() *cli.Command {
	return &cli.Command{
		Name:      "capability",
		Usage:     "Check whether a provisioner's capability policy can filter on a leaf path",
		ArgsUsage: "<policy-root> <provisioner> <leaf>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() < 3 {
				return fmt.Errorf("<policy-root>, <provisioner>, and <leaf> are all required")
			}

			checker := capability.NewChecker(c.Args().Get(0))
			ok, err := checker.Supports(c.Args().Get(1), c.Args().Get(2))
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, ok)
			return nil
		},
	}
}

func loadConstraintTree(path string) (*hardware.Tree, error) {
	if path == "" {
		return nil, fmt.Errorf("constraint document path required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	tree, err := hardware.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

func loadFacts(path string) (hardware.Facts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var facts hardware.Facts
	if err := yaml.Unmarshal(data, &facts); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return facts, nil
}
