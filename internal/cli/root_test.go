package cli

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(errors.New("unknown flag: --foo")))
	assert.Equal(t, exitSysError, exitCode(exitError(exitSysError, "open database", errors.New("locked"))))

	wrapped := exitError(exitUserError, "backup", os.ErrPermission)
	assert.ErrorIs(t, wrapped, os.ErrPermission)
	assert.Equal(t, "backup: permission denied", wrapped.Error())
}

func TestVersionCmd(t *testing.T) {
	env := newTestEnv(t)

	res := env.run("version")
	require.Equal(t, 0, res.ExitCode, res.Stderr)
	assert.Contains(t, res.Stdout, "fieldmod v"+Version)
	assert.Contains(t, res.Stdout, "module: github.com/mesh-intelligence/fieldmod")
	assert.Contains(t, res.Stdout, "sqlite: 3.")
	assert.Contains(t, res.Stdout, "drop column: true")

	_, err := os.Stat(env.DBPath)
	assert.True(t, os.IsNotExist(err), "version must not create the database")
}

func TestInitCmd(t *testing.T) {
	env := newTestEnv(t)

	res := env.run("init")
	require.Equal(t, 0, res.ExitCode, res.Stderr)
	assert.Contains(t, res.Stdout, "fieldmod initialized successfully")

	data, err := os.ReadFile(filepath.Join(env.ConfigDir, "config.yaml"))
	require.NoError(t, err)
	var cfg configFile
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, env.DBPath, cfg.DB)
	assert.Equal(t, "sqlite", cfg.Driver)

	res = env.run("init", "--db", "other.db")
	require.Equal(t, 0, res.ExitCode, res.Stderr)
	assert.Contains(t, res.Stdout, "fieldmod already initialized")

	again, err := os.ReadFile(filepath.Join(env.ConfigDir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, data, again, "existing config.yaml must not be rewritten")
}

func TestConfigPrecedence(t *testing.T) {
	env := newTestEnv(t)

	configured := filepath.Join(env.Dir, "configured.db")
	require.NoError(t, os.MkdirAll(env.ConfigDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.ConfigDir, "config.yaml"),
		[]byte("db: "+configured+"\ndriver: sqlite\n"), 0o644))

	t.Run("config.yaml used when flag and env unset", func(t *testing.T) {
		opts := &rootOptions{fs: env.fs}
		cmd := newRootCommand(opts)
		require.NoError(t, cmd.ParseFlags([]string{"--config-dir", env.ConfigDir}))
		cfg, dir, err := loadConfig(cmd, opts)
		require.NoError(t, err)
		assert.Equal(t, env.ConfigDir, dir)
		assert.Equal(t, configured, cfg.DBPath)
	})

	t.Run("env wins over config.yaml", func(t *testing.T) {
		t.Setenv("FIELDMOD_DB", "/env/path.db")
		opts := &rootOptions{fs: env.fs}
		cmd := newRootCommand(opts)
		require.NoError(t, cmd.ParseFlags([]string{"--config-dir", env.ConfigDir}))
		cfg, _, err := loadConfig(cmd, opts)
		require.NoError(t, err)
		assert.Equal(t, "/env/path.db", cfg.DBPath)
	})

	t.Run("flag wins over env", func(t *testing.T) {
		t.Setenv("FIELDMOD_DB", "/env/path.db")
		opts := &rootOptions{fs: env.fs}
		cmd := newRootCommand(opts)
		require.NoError(t, cmd.ParseFlags([]string{"--config-dir", env.ConfigDir, "--db", env.DBPath}))
		cfg, _, err := loadConfig(cmd, opts)
		require.NoError(t, err)
		assert.Equal(t, env.DBPath, cfg.DBPath)
	})

	t.Run("default without config", func(t *testing.T) {
		opts := &rootOptions{fs: env.fs}
		cmd := newRootCommand(opts)
		require.NoError(t, cmd.ParseFlags([]string{"--config-dir", filepath.Join(env.Dir, "empty")}))
		cfg, _, err := loadConfig(cmd, opts)
		require.NoError(t, err)
		assert.Equal(t, "mlvt.db", cfg.DBPath)
		assert.Equal(t, "sqlite", cfg.Driver)
	})

	t.Run("edit uses configured path", func(t *testing.T) {
		cmd := newRootCmd(env.fs)
		cmd.SetArgs([]string{"--config-dir", env.ConfigDir,
			"--action", "update_all", "--table", "users", "--field", "name", "--value", "v"})
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)
		require.NoError(t, cmd.Execute())

		_, err := os.Stat(configured)
		assert.NoError(t, err, "configured database should have been created")
	})
}
