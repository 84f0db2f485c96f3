// Package resultstore is the optional historical results warehouse: a GORM-backed index over
// every merged results document a run produces, so a caller can query pass/fail trends across
// runs. It sits entirely outside spec.md's "only durable artifact" language — the results file
// produced by internal/results remains the sole required artifact — and internal/results has
// zero dependency on this package.
package resultstore

import "fmt"

// DefaultConfig is the default connection configuration.
var DefaultConfig = Config{
	Host:     "localhost",
	Port:     5432,
	DBName:   "tmtcore",
	User:     "tmtcore",
	Password: "tmtcore",
	SSLMode:  "disable",
	MaxConn:  10,
}

// Config holds the warehouse's database connection parameters.
type Config struct {
	Host       string
	Port       int
	DBName     string
	User       string
	Password   string
	SSLMode    string
	InMemoryDB bool
	MaxConn    int
}

func (c Config) buildDSN() string {
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.DBName, c.User, c.Password, c.SSLMode)
}
