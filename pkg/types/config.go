package types

import "errors"

// Config holds the settings resolved for a single fieldmod invocation.
type Config struct {
	DBPath  string `yaml:"db"`
	Driver  string `yaml:"driver"`
	Verbose bool   `yaml:"verbose"`
}

// Supported database/sql driver names.
const (
	DriverModernc = "sqlite"  // modernc.org/sqlite, pure Go.
	DriverCgo     = "sqlite3" // github.com/mattn/go-sqlite3, requires cgo.
)

// DefaultDBPath is the database file used when no path is configured.
const DefaultDBPath = "mlvt.db"

// Config validation errors.
var (
	ErrDBPathEmpty   = errors.New("database path must not be empty")
	ErrDriverEmpty   = errors.New("driver must not be empty")
	ErrDriverUnknown = errors.New("unknown driver")
)

// knownDrivers lists the drivers that Validate accepts.
var knownDrivers = map[string]bool{
	DriverModernc: true,
	DriverCgo:     true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return ErrDBPathEmpty
	}
	if c.Driver == "" {
		return ErrDriverEmpty
	}
	if !knownDrivers[c.Driver] {
		return ErrDriverUnknown
	}
	return nil
}
