// Package integration runs the built fieldmod binary end to end.
package integration

import (
	"bytes"
	"database/sql"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

var (
	// fieldmodBin is the path to the built fieldmod binary.
	fieldmodBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// TestEnv provides an isolated directory holding the database and config.
type TestEnv struct {
	t         *testing.T
	TempDir   string
	ConfigDir string
	DBPath    string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build fieldmod: %v", buildErr)
	}
	if fieldmodBin == "" {
		t.Fatal("fieldmod binary not built (fieldmodBin is empty)")
	}

	tempDir := t.TempDir()
	return &TestEnv{
		t:         t,
		TempDir:   tempDir,
		ConfigDir: filepath.Join(tempDir, "config"),
		DBPath:    filepath.Join(tempDir, "mlvt.db"),
	}
}

// CmdResult holds the result of a fieldmod command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes the fieldmod binary inside the env directory.
func (e *TestEnv) Run(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.ConfigDir}, args...)
	cmd := exec.Command(fieldmodBin, allArgs...)
	cmd.Dir = e.TempDir
	cmd.Env = append(os.Environ(), "FIELDMOD_DB=", "FIELDMOD_DRIVER=", "FIELDMOD_VERBOSE=")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run fieldmod: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRun executes fieldmod and fails the test if it returns non-zero.
func (e *TestEnv) MustRun(args ...string) CmdResult {
	e.t.Helper()
	result := e.Run(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("fieldmod %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// Exec runs a statement against the env database outside of fieldmod.
func (e *TestEnv) Exec(stmt string) {
	e.t.Helper()
	db, err := sql.Open("sqlite", e.DBPath)
	if err != nil {
		e.t.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec(stmt); err != nil {
		e.t.Fatalf("exec %q: %v", stmt, err)
	}
}

// Count returns the single integer produced by query.
func (e *TestEnv) Count(query string) int {
	e.t.Helper()
	db, err := sql.Open("sqlite", e.DBPath)
	if err != nil {
		e.t.Fatalf("open database: %v", err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow(query).Scan(&n); err != nil {
		e.t.Fatalf("query %q: %v", query, err)
	}
	return n
}
