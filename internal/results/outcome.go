package results

// Reduce folds a sequence of outcomes under the monoid of spec §4.5: pass < info < warn <
// fail < error (higher wins); skip is absorbing only if every entry is skip. An empty sequence
// has no defined outcome; callers use len(outcomes)==0 to detect that case for the exit-code
// mapping (spec §6, exit 3).
func Reduce(outcomes []Outcome) Outcome {
	if len(outcomes) == 0 {
		return Skip
	}

	allSkip := true
	best := Pass
	haveNonSkip := false

	for _, o := range outcomes {
		if o != Skip {
			allSkip = false
		}
		if o == Skip {
			continue
		}
		if !haveNonSkip || rank[o] > rank[best] {
			best = o
			haveNonSkip = true
		}
	}

	if allSkip {
		return Skip
	}
	return best
}

// ExitCode maps a run's outcomes to the five exit codes of spec §6.
func ExitCode(outcomes []Outcome) int {
	if len(outcomes) == 0 {
		return 3
	}

	overall := Reduce(outcomes)
	switch overall {
	case Skip:
		return 4
	case Error:
		return 2
	case Warn, Fail:
		return 1
	default: // Pass, Info
		return 0
	}
}
