package climd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"

	"github.com/fmf-tmt/tmtcore/internal/results"
	"github.com/fmf-tmt/tmtcore/internal/tmtlog"
)

// PrettyPrint marshals v to JSON and writes it color-highlighted to w, matching the teacher's
// cmd/cf presentation layer (prettyjson over protojson there; plain encoding/json here since
// materialized objects and results are already plain Go values, not proto messages).
func PrettyPrint(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	if !tmtlog.ColorEnabled() {
		var out []byte
		out, err = json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}

	out, err := prettyjson.Format(b)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// outcomeColor returns the fatih/color SprintFunc used to highlight a result outcome on the
// terminal: pass/info in green, warn in yellow, fail/error in red, skip dimmed.
func outcomeColor(o results.Outcome) func(a ...any) string {
	switch o {
	case results.Pass, results.Info:
		return color.New(color.FgGreen).SprintFunc()
	case results.Warn:
		return color.New(color.FgYellow).SprintFunc()
	case results.Fail, results.Error:
		return color.New(color.FgRed).SprintFunc()
	default: // Skip
		return color.New(color.FgHiBlack).SprintFunc()
	}
}

// FormatOutcome renders a single outcome for terminal output, colorized when color.NoColor is
// false (fatih/color auto-detects via isatty.IsTerminal on first use; tmtlog.ColorEnabled does
// the same detection for the logger, so both stay in sync).
func FormatOutcome(o results.Outcome) string {
	return outcomeColor(o)(string(o))
}
