package cli

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/fieldmod/pkg/types"
)

// result holds the outcome of one command execution.
type result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// testEnv isolates each test in its own directory and config dir.
type testEnv struct {
	t         *testing.T
	Dir       string
	ConfigDir string
	DBPath    string
	fs        afero.Fs
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("FIELDMOD_DB", "")
	t.Setenv("FIELDMOD_DRIVER", "")
	t.Setenv("FIELDMOD_VERBOSE", "")

	dir := t.TempDir()
	return &testEnv{
		t:         t,
		Dir:       dir,
		ConfigDir: filepath.Join(dir, "config"),
		DBPath:    filepath.Join(dir, "app.db"),
		fs:        afero.NewOsFs(),
	}
}

// run executes fieldmod against the env's config dir. The --db flag is
// added unless args already carry one.
func (e *testEnv) run(args ...string) result {
	e.t.Helper()

	all := append([]string{"--config-dir", e.ConfigDir}, args...)
	hasDB := false
	for _, a := range args {
		if a == "--db" {
			hasDB = true
		}
	}
	if !hasDB {
		all = append(all, "--db", e.DBPath)
	}

	var stdout, stderr bytes.Buffer
	root := newRootCmd(e.fs)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(all)
	err := root.Execute()
	if err != nil {
		stderr.WriteString(err.Error())
	}
	return result{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: exitCode(err)}
}

// seed creates the users table with n rows in the env database.
func (e *testEnv) seed(n int) {
	e.t.Helper()

	db, err := sql.Open(types.DriverModernc, e.DBPath)
	require.NoError(e.t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)`)
	require.NoError(e.t, err)
	for i := 1; i <= n; i++ {
		_, err = db.Exec(`INSERT INTO users (id, name) VALUES (?, ?)`, i, "user")
		require.NoError(e.t, err)
	}
}

func (e *testEnv) query(q string) []string {
	e.t.Helper()

	db, err := sql.Open(types.DriverModernc, e.DBPath)
	require.NoError(e.t, err)
	defer db.Close()

	rows, err := db.Query(q)
	require.NoError(e.t, err)
	defer rows.Close()

	var got []string
	for rows.Next() {
		var s string
		require.NoError(e.t, rows.Scan(&s))
		got = append(got, s)
	}
	require.NoError(e.t, rows.Err())
	return got
}

func (e *testEnv) columnNames() []string {
	return e.query(`SELECT name FROM pragma_table_info('users') ORDER BY cid`)
}
