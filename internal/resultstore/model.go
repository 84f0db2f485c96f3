package resultstore

import "time"

// ResultRow is one indexed result record: a merged results.Record plus the run it belongs to,
// flattened into plain columns GORM can migrate and query without any protobuf machinery.
type ResultRow struct {
	ID           uint   `gorm:"primaryKey"`
	RunID        string `gorm:"index"`
	Name         string `gorm:"index"`
	Result       string
	Note         string
	Duration     string
	SerialNumber int
	Guest        string
	FMFID        string
	StartTime    *time.Time
	EndTime      *time.Time
	CreatedAt    time.Time
}

// TableName pins the table name instead of GORM's default pluralization guess.
func (ResultRow) TableName() string { return "result_rows" }
