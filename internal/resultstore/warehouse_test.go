package resultstore

import (
	"testing"

	"github.com/fmf-tmt/tmtcore/internal/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWarehouse(t *testing.T) Warehouse {
	t.Helper()
	w, err := NewWarehouse(WithConfig(Config{InMemoryDB: true}))
	require.NoError(t, err)
	return w
}

func TestWarehouse_IndexAndHistory(t *testing.T) {
	w := newTestWarehouse(t)

	err := w.IndexRun("run-1", []results.Record{
		{Name: "/t", Result: results.Pass, Duration: "00:00:10"},
		{Name: "/t/sub", Result: results.Fail},
	})
	require.NoError(t, err)

	rows, err := w.History("/t", 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "pass", rows[0].Result)
}

func TestWarehouse_IndexRunWithNoRecordsIsNoop(t *testing.T) {
	w := newTestWarehouse(t)
	require.NoError(t, w.IndexRun("run-1", nil))
}

func TestWarehouse_HistoryRespectsLimit(t *testing.T) {
	w := newTestWarehouse(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, w.IndexRun("run-x", []results.Record{{Name: "/t", Result: results.Pass}}))
	}

	rows, err := w.History("/t", 2)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
