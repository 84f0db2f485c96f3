package climd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/fmf-tmt/tmtcore/internal/results"
)

// ResultsCommand groups the result-merger operations of spec §4.5/§6: merging per-test custom
// result files with runner-observed metadata into a plan's final results document, and
// displaying an existing one with its overall exit code.
func ResultsCommand() *cli.Command {
	return &cli.Command{
		Name:  "results",
		Usage: "Merge and inspect results documents",
		Commands: []*cli.Command{
			resultsMergeCommand(),
			resultsShowCommand(),
			resultsIndexCommand(),
			resultsHistoryCommand(),
		},
	}
}

// mergeManifest describes one plan's worth of tests to merge: each job names a test, where its
// data directory and (optional) custom result file live, and the runner-observed metadata for
// it. Test discovery and runner process control are out of this core's scope (spec §1); this
// manifest is the boundary a runner/provisioner hands the merger.
type mergeManifest struct {
	ResultsDir string     `yaml:"results-dir"`
	Jobs       []mergeJob `yaml:"jobs"`
}

type mergeJob struct {
	Name       string           `yaml:"name"`
	DataDir    string           `yaml:"data-dir"`
	CustomFile string           `yaml:"custom-file"`
	Observe    observedMetadata `yaml:"observation"`
}

type observedMetadata struct {
	Result       results.Outcome `yaml:"result"`
	SerialNumber int             `yaml:"serial-number"`
	Guest        string          `yaml:"guest"`
	FMFID        string          `yaml:"fmf_id"`
	Duration     string          `yaml:"duration"`
}

func resultsMergeCommand() *cli.Command {
	return &cli.Command{
		Name:      "merge",
		Usage:     "Merge per-test custom result files with runner observations into a results document",
		ArgsUsage: "<manifest.yaml> <output.yaml|output.json>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() < 2 {
				return fmt.Errorf("both <manifest.yaml> and an output path are required")
			}

			manifest, err := loadManifest(c.Args().Get(0))
			if err != nil {
				return err
			}

			var all []results.Record
			for _, job := range manifest.Jobs {
				obs := results.Observation{
					Result:       job.Observe.Result,
					SerialNumber: job.Observe.SerialNumber,
					Guest:        job.Observe.Guest,
					FMFID:        job.Observe.FMFID,
					Duration:     job.Observe.Duration,
				}

				var custom []results.CustomEntry
				if job.CustomFile != "" {
					custom, err = loadCustomEntries(job.CustomFile)
					if err != nil {
						return fmt.Errorf("test %s: %w", job.Name, err)
					}
				}

				all = append(all, results.MergeTest(job.Name, custom, obs, job.DataDir, manifest.ResultsDir)...)
			}

			if err := results.Save(c.Args().Get(1), all); err != nil {
				return err
			}

			outcomes := make([]results.Outcome, len(all))
			for i, r := range all {
				outcomes[i] = r.Result
			}
			fmt.Fprintf(os.Stdout, "merged %d record(s), overall %s\n", len(all), FormatOutcome(results.Reduce(outcomes)))
			return cli.Exit("", results.ExitCode(outcomes))
		},
	}
}

func resultsShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print a results document's records and overall outcome",
		ArgsUsage: "<results.yaml|results.json>",
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return fmt.Errorf("results document path required")
			}

			records, err := results.Load(path)
			if err != nil {
				return err
			}

			for _, r := range records {
				fmt.Fprintf(os.Stdout, "%-40s %s\n", r.Name, FormatOutcome(r.Result))
			}

			outcomes := make([]results.Outcome, len(records))
			for i, r := range records {
				outcomes[i] = r.Result
			}
			overall := results.Reduce(outcomes)
			fmt.Fprintf(os.Stdout, "overall: %s\n", FormatOutcome(overall))
			return cli.Exit("", results.ExitCode(outcomes))
		},
	}
}

func loadManifest(path string) (*mergeManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var m mergeManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

func loadCustomEntries(path string) ([]results.CustomEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading custom result file %s: %w", path, err)
	}
	var entries []results.CustomEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing custom result file %s: %w", path, err)
	}
	return entries, nil
}
