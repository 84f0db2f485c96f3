package results

import (
	"path/filepath"
	"time"
)

// CustomEntry is one entry of a test-supplied custom result file (spec §4.5).
type CustomEntry struct {
	Name      string            `yaml:"name"`
	Result    Outcome           `yaml:"result"`
	Note      string            `yaml:"note,omitempty"`
	Log       []string          `yaml:"log,omitempty"`
	IDs       map[string]string `yaml:"ids,omitempty"`
	StartTime *time.Time        `yaml:"start-time,omitempty"`
	EndTime   *time.Time        `yaml:"end-time,omitempty"`
	Duration  string            `yaml:"duration,omitempty"`
	Check     []Check           `yaml:"check,omitempty"`
}

// Observation is the runner-observed metadata for one test execution, independent of whether a
// custom result file was produced.
type Observation struct {
	Result       Outcome
	SerialNumber int
	Guest        string
	FMFID        string
	Duration     string
	StartTime    *time.Time
	EndTime      *time.Time
}

// MergeTest applies the custom-result merge rules of spec §4.5 for one test, producing the
// final Records that belong in the plan's results document. dataDir is the test's data
// directory (where custom-file log paths are relative to); resultsDir is the plan's
// results-file directory (where the final log paths must be relative to).
func MergeTest(testName string, custom []CustomEntry, obs Observation, dataDir, resultsDir string) []Record {
	if len(custom) == 0 {
		return []Record{{
			Name:         testName,
			Result:       obs.Result,
			SerialNumber: obs.SerialNumber,
			Guest:        obs.Guest,
			FMFID:        obs.FMFID,
			Duration:     obs.Duration,
			StartTime:    obs.StartTime,
			EndTime:      obs.EndTime,
		}}
	}

	records := make([]Record, 0, len(custom))
	for _, entry := range custom {
		isParent := entry.Name == "/"

		rec := Record{
			Name:   recordName(testName, entry.Name),
			Result: entry.Result,
			Note:   entry.Note,
			IDs:    entry.IDs,
			Check:  entry.Check,
			Log:    rewriteLogPaths(entry.Log, dataDir, resultsDir),

			SerialNumber: obs.SerialNumber,
			Guest:        obs.Guest,
			FMFID:        obs.FMFID,
		}

		if isParent {
			rec.Duration = obs.Duration
			rec.StartTime = obs.StartTime
			rec.EndTime = obs.EndTime
		} else {
			rec.Duration = entry.Duration
			rec.StartTime = entry.StartTime
			rec.EndTime = entry.EndTime
		}

		records = append(records, rec)
	}
	return records
}

// recordName prefixes a custom entry's name with the parent test's name: "/" (the parent test
// itself) becomes testName; any other name (already an absolute sub-path, e.g. "/sub") is
// appended to testName.
func recordName(testName, entryName string) string {
	if entryName == "/" {
		return testName
	}
	return testName + entryName
}

// rewriteLogPaths resolves each log path relative to dataDir (where the custom file declared
// it) then re-expresses it relative to resultsDir (where the final results document lives).
func rewriteLogPaths(logs []string, dataDir, resultsDir string) []string {
	if len(logs) == 0 {
		return nil
	}
	out := make([]string, len(logs))
	for i, l := range logs {
		abs := filepath.Join(dataDir, l)
		rel, err := filepath.Rel(resultsDir, abs)
		if err != nil {
			out[i] = abs
			continue
		}
		out[i] = rel
	}
	return out
}
