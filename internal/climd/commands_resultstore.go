package climd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/fmf-tmt/tmtcore/internal/results"
	"github.com/fmf-tmt/tmtcore/internal/resultstore"
)

// resultstoreFlags configures the optional historical results warehouse (SPEC_FULL.md §7):
// ambient persistence that indexes merged results documents, entirely outside the results file
// itself.
func resultstoreFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "db-host", Value: resultstore.DefaultConfig.Host, Sources: cli.EnvVars("TMTCORE_DB_HOST")},
		&cli.IntFlag{Name: "db-port", Value: int64(resultstore.DefaultConfig.Port), Sources: cli.EnvVars("TMTCORE_DB_PORT")},
		&cli.StringFlag{Name: "db-name", Value: resultstore.DefaultConfig.DBName, Sources: cli.EnvVars("TMTCORE_DB_NAME")},
		&cli.StringFlag{Name: "db-user", Value: resultstore.DefaultConfig.User, Sources: cli.EnvVars("TMTCORE_DB_USER")},
		&cli.StringFlag{Name: "db-password", Value: resultstore.DefaultConfig.Password, Sources: cli.EnvVars("TMTCORE_DB_PASSWORD")},
		&cli.BoolFlag{Name: "in-memory", Usage: "Use an in-process database instead of Postgres"},
	}
}

func openWarehouseFromFlags(c *cli.Command) (resultstore.Warehouse, error) {
	cfg := resultstore.DefaultConfig
	cfg.Host = c.String("db-host")
	cfg.Port = int(c.Int("db-port"))
	cfg.DBName = c.String("db-name")
	cfg.User = c.String("db-user")
	cfg.Password = c.String("db-password")
	cfg.InMemoryDB = c.Bool("in-memory")

	return resultstore.NewWarehouse(resultstore.WithConfig(cfg))
}

func resultsIndexCommand() *cli.Command {
	return &cli.Command{
		Name:      "index",
		Usage:     "Index a results document into the historical results warehouse",
		ArgsUsage: "[run-id] <results.yaml|results.json>",
		Flags:     resultstoreFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() < 1 {
				return fmt.Errorf("a results document path is required")
			}

			runID, resultsPath := c.Args().Get(0), c.Args().Get(1)
			if c.Args().Len() < 2 {
				// No run-id given: the sole argument is the results document and a
				// fresh run-id is minted for it.
				runID, resultsPath = uuid.NewString(), c.Args().Get(0)
			}

			records, err := results.Load(resultsPath)
			if err != nil {
				return err
			}

			warehouse, err := openWarehouseFromFlags(c)
			if err != nil {
				return err
			}

			if err := warehouse.IndexRun(runID, records); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "indexed %d record(s) under run %s\n", len(records), runID)
			return nil
		},
	}
}

func resultsHistoryCommand() *cli.Command {
	return &cli.Command{
		Name:      "history",
		Usage:     "Print the historical pass/fail trend for one test name",
		ArgsUsage: "<test-name>",
		Flags:     append(resultstoreFlags(), &cli.IntFlag{Name: "limit", Value: 20}),
		Action: func(ctx context.Context, c *cli.Command) error {
			testName := c.Args().First()
			if testName == "" {
				return fmt.Errorf("test name required")
			}

			warehouse, err := openWarehouseFromFlags(c)
			if err != nil {
				return err
			}

			rows, err := warehouse.History(testName, int(c.Int("limit")))
			if err != nil {
				return err
			}

			for _, row := range rows {
				fmt.Fprintf(os.Stdout, "%s\t%s\t%s\n", row.RunID, FormatOutcome(results.Outcome(row.Result)), strconv.Itoa(row.SerialNumber))
			}
			return nil
		},
	}
}
