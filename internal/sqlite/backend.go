// Package sqlite implements the editor that applies fieldmod requests to a
// SQLite database file through database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/fieldmod/pkg/types"
)

// Lifecycle errors.
var (
	ErrAlreadyAttached = errors.New("editor already attached")
	ErrDetached        = errors.New("editor is detached")
)

// Editor owns one database connection for the lifetime of an edit.
// It is attached to a database file with Attach and must be released with
// Detach on every exit path.
type Editor struct {
	mu       sync.Mutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   *slog.Logger

	// engineVersion reports the SQLite library version. Tests replace it to
	// emulate older engines.
	engineVersion func(ctx context.Context) (string, error)
}

// NewEditor creates a detached editor. A nil logger means slog.Default().
func NewEditor(logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Editor{logger: logger}
	e.engineVersion = e.queryVersion
	return e
}

// Attach opens the database named by config.DBPath with config.Driver.
// The file is not created or modified by Attach beyond what the driver does
// when it first touches the file.
func (e *Editor) Attach(ctx context.Context, config types.Config) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.attached {
		return ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	db, err := sql.Open(config.Driver, config.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	// One statement per invocation.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("connect database: %w", err)
	}

	e.db = db
	e.config = config
	e.attached = true
	e.logger.Debug("database attached", "path", config.DBPath, "driver", config.Driver)
	return nil
}

// Detach closes the connection. Detach is idempotent.
func (e *Editor) Detach() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.attached {
		return nil
	}
	err := e.db.Close()
	e.db = nil
	e.attached = false
	e.logger.Debug("database detached", "path", e.config.DBPath)
	return err
}

// EngineVersion returns the version of the SQLite library behind the driver,
// for example "3.46.1".
func (e *Editor) EngineVersion(ctx context.Context) (string, error) {
	if err := e.checkAttached(); err != nil {
		return "", err
	}
	return e.engineVersion(ctx)
}

func (e *Editor) queryVersion(ctx context.Context) (string, error) {
	var v string
	if err := e.db.QueryRowContext(ctx, "SELECT sqlite_version()").Scan(&v); err != nil {
		return "", fmt.Errorf("query sqlite version: %w", err)
	}
	return v, nil
}

func (e *Editor) checkAttached() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.attached {
		return ErrDetached
	}
	return nil
}

// exec runs stmt in its own transaction and returns the affected row count.
func (e *Editor) exec(ctx context.Context, stmt string, args ...any) (int64, error) {
	e.logger.Debug("executing statement", "sql", stmt, "args", len(args))

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, stmt, args...)
	if err != nil {
		e.rollback(tx)
		return 0, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		e.rollback(tx)
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return rows, nil
}

func (e *Editor) rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		e.logger.Error("error rolling back transaction", "error", err)
		return
	}
	e.logger.Debug("transaction rolled back")
}
