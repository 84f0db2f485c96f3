// Copyright 2016-2025 Fraunhofer AISEC
//
// SPDX-License-Identifier: Apache-2.0
//
//                                 /$$$$$$  /$$                                     /$$
//                               /$$__  $$|__/                                    | $$
//   /$$$$$$$  /$$$$$$  /$$$$$$$ | $$  \__/ /$$  /$$$$$$  /$$$$$$/$$$$   /$$$$$$  /$$$$$$    /$$$$$$
//  /$$_____/ /$$__  $$| $$__  $$| $$$$    | $$ /$$__  $$| $$_  $$_  $$ |____  $$|_  $$_/   /$$__  $$
// | $$      | $$  \ $$| $$  \ $$| $$_/    | $$| $$      | $$ | $$ | $$ /$$__  $$  | $$ /$$| $$_____/
// |  $$$$$$$|  $$$$$$/| $$  | $$| $$      | $$| $$      | $$ | $$ | $$|  $$$$$$$  |  $$$$/|  $$$$$$$
// \_______/ \______/ |__/  |__/|__/      |__/|__/      |__/ |__/ |__/ \_______/   \___/   \_______/
//
// This file is part of Confirmate Core.

package climd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/fmf-tmt/tmtcore/internal/tmtlog"
)

// NewRootCommand returns the root CLI command for tmtcore, mirroring the teacher's
// cli/commands.NewRootCommand structure: a thin root carrying global flags, with each
// subsystem's commands grouped under its own named subcommand.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:                  "tmtcore",
		Usage:                 "fmf metadata materialization core",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "TRACE, DEBUG, INFO, WARN, or ERROR",
				Value:   "INFO",
				Sources: cli.EnvVars("TMTCORE_LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := tmtlog.Configure(c.String("log-level")); err != nil {
				return ctx, fmt.Errorf("invalid --log-level: %w", err)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			MaterializeCommand(),
			HardwareCommand(),
			ResultsCommand(),
			PolicyCommand(),
			WatchCommand(),
		},
	}
}
