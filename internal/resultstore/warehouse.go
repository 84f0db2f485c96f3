package resultstore

import (
	"database/sql"
	"fmt"
	"math/rand/v2"

	_ "github.com/proullon/ramsql/driver"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fmf-tmt/tmtcore/internal/results"
)

// Warehouse indexes merged results documents so historical pass/fail trends can be queried
// across runs. This is additive ambient persistence, not part of the core pipeline.
type Warehouse interface {
	// IndexRun stores every record of one run, tagged with runID.
	IndexRun(runID string, records []results.Record) error

	// History returns the most recent rows for a test name, most recent first.
	History(testName string, limit int) ([]ResultRow, error)
}

type gormWarehouse struct {
	*gorm.DB
	cfg Config
}

// Option configures a Warehouse.
type Option func(*gormWarehouse)

// WithConfig sets the warehouse's connection configuration.
func WithConfig(cfg Config) Option {
	return func(w *gormWarehouse) { w.cfg = cfg }
}

// NewWarehouse opens a results warehouse, migrating ResultRow. With Config.InMemoryDB set, it
// uses an in-process ramsql database instead of Postgres — the same pattern the teacher's
// persistence layer uses for tests.
func NewWarehouse(opts ...Option) (Warehouse, error) {
	w := &gormWarehouse{cfg: DefaultConfig}
	for _, o := range opts {
		o(w)
	}

	var pcfg postgres.Config
	if w.cfg.InMemoryDB {
		conn, err := sql.Open("ramsql", fmt.Sprintf("tmtcore_resultstore_%d", rand.Uint64()))
		if err != nil {
			return nil, fmt.Errorf("could not open in-memory results store: %w", err)
		}
		pcfg.Conn = conn
		w.cfg.MaxConn = 1
	} else {
		pcfg.DSN = w.cfg.buildDSN()
	}

	db, err := gorm.Open(postgres.New(pcfg), &gorm.Config{Logger: newSlogGormLogger()})
	if err != nil {
		return nil, fmt.Errorf("could not open results store connection: %w", err)
	}
	w.DB = db

	if w.cfg.MaxConn > 0 {
		sqlDB, err := w.DB.DB()
		if err != nil {
			return nil, fmt.Errorf("could not retrieve sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(w.cfg.MaxConn)
	}

	if err := w.DB.AutoMigrate(&ResultRow{}); err != nil {
		return nil, fmt.Errorf("error during auto-migration: %w", err)
	}

	return w, nil
}

func (w *gormWarehouse) IndexRun(runID string, records []results.Record) error {
	rows := make([]ResultRow, len(records))
	for i, r := range records {
		rows[i] = ResultRow{
			RunID:        runID,
			Name:         r.Name,
			Result:       string(r.Result),
			Note:         r.Note,
			Duration:     r.Duration,
			SerialNumber: r.SerialNumber,
			Guest:        r.Guest,
			FMFID:        r.FMFID,
			StartTime:    r.StartTime,
			EndTime:      r.EndTime,
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return w.Create(&rows).Error
}

func (w *gormWarehouse) History(testName string, limit int) ([]ResultRow, error) {
	var rows []ResultRow
	q := w.Where("name = ?", testName).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("could not query result history for %s: %w", testName, err)
	}
	return rows, nil
}
