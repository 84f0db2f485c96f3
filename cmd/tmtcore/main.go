package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/fmf-tmt/tmtcore/internal/climd"
)

func main() {
	cmd := climd.NewRootCommand()

	err := cmd.Run(context.Background(), os.Args)
	if err == nil {
		return
	}

	if msg := err.Error(); msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}

	var exitErr cli.ExitCoder
	if ok := asExitCoder(err, &exitErr); ok {
		os.Exit(exitErr.ExitCode())
	}
	os.Exit(1)
}

func asExitCoder(err error, target *cli.ExitCoder) bool {
	for err != nil {
		if ec, ok := err.(cli.ExitCoder); ok {
			*target = ec
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}
