package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeTest_S5ParentAndSubEntry(t *testing.T) {
	custom := []CustomEntry{
		{Name: "/", Result: Pass, Duration: "00:99:99"},
		{Name: "/sub", Result: Fail},
	}
	obs := Observation{SerialNumber: 7, Guest: "guest-0", Duration: "00:00:30"}

	records := MergeTest("/t", custom, obs, "/data", "/results")
	assert := assert.New(t)

	assert.Len(records, 2)
	assert.Equal("/t", records[0].Name)
	assert.Equal(Pass, records[0].Result)
	assert.Equal("00:00:30", records[0].Duration) // overwritten by runner observation

	assert.Equal("/t/sub", records[1].Name)
	assert.Equal(Fail, records[1].Result)
	assert.Equal(7, records[1].SerialNumber)
	assert.Equal("guest-0", records[1].Guest)
}

func TestMergeTest_Invariant6NamePrefixing(t *testing.T) {
	custom := []CustomEntry{{Name: "/x"}}
	records := MergeTest("/t", custom, Observation{}, "/data", "/results")
	assert.Equal(t, "/t/x", records[0].Name)
}

func TestMergeTest_NoCustomFileSynthesizesSingleResult(t *testing.T) {
	records := MergeTest("/t", nil, Observation{Result: Fail, SerialNumber: 3}, "/data", "/results")
	assert.Len(t, records, 1)
	assert.Equal(t, "/t", records[0].Name)
	assert.Equal(t, Fail, records[0].Result)
	assert.Equal(t, 3, records[0].SerialNumber)
}

func TestMergeTest_LogPathRewrittenRelativeToResultsDir(t *testing.T) {
	custom := []CustomEntry{{Name: "/", Log: []string{"output.log"}}}
	records := MergeTest("/t", custom, Observation{}, "/plan/data/t", "/plan")
	assert.Equal(t, []string{"data/t/output.log"}, records[0].Log)
}

func TestReduce_S6ExitCode(t *testing.T) {
	cases := []struct {
		outcomes []Outcome
		exit     int
	}{
		{[]Outcome{Info, Info}, 0},
		{[]Outcome{Info, Warn}, 1},
		{[]Outcome{Fail, Error}, 2},
		{nil, 3},
		{[]Outcome{Skip, Skip}, 4},
	}
	for _, c := range cases {
		assert.Equal(t, c.exit, ExitCode(c.outcomes), "%v", c.outcomes)
	}
}

func TestReduce_Invariant7Monoid(t *testing.T) {
	assert.Equal(t, Fail, Reduce([]Outcome{Pass, Info, Warn, Fail}))
	assert.Equal(t, Error, Reduce([]Outcome{Error, Pass}))
	assert.Equal(t, Skip, Reduce([]Outcome{Skip, Skip, Skip}))
	assert.Equal(t, Pass, Reduce([]Outcome{Pass, Skip}))
}
