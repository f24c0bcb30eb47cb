package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/fieldmod/internal/backup"
	"github.com/mesh-intelligence/fieldmod/internal/sqlite"
	"github.com/mesh-intelligence/fieldmod/pkg/types"
)

// runEdit performs one edit: ensure the database exists, validate the
// request, back the file up, then apply the action. Only pre-flight and
// backup failures return an error; a rejected statement is reported on
// stdout and the command still succeeds.
func runEdit(cmd *cobra.Command, opts *rootOptions) error {
	out := cmd.OutOrStdout()

	action, err := types.ParseAction(opts.action)
	if err != nil {
		return exitError(exitUserError, err.Error(), nil)
	}

	cfg, _, err := loadConfig(cmd, opts)
	if err != nil {
		return exitError(exitSysError, "load config", err)
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	guard := backup.NewGuard(opts.fs)
	created, err := guard.EnsureDatabase(cfg.DBPath)
	if err != nil {
		return exitError(exitSysError, "prepare database", err)
	}
	if created {
		fmt.Fprintf(out, "Database file '%s' does not exist. Creating a new database.\n", cfg.DBPath)
	}

	flags := cmd.Flags()
	req := types.Request{
		Action:       action,
		Table:        opts.table,
		Field:        opts.field,
		Type:         opts.fieldType,
		InitValue:    opts.initValue,
		HasInitValue: flags.Changed("init_value"),
		ID:           opts.id,
		HasID:        flags.Changed("id"),
		Value:        opts.value,
		HasValue:     flags.Changed("value"),
	}
	if err := req.Validate(); err != nil {
		return exitError(exitUserError, err.Error(), nil)
	}

	dst, err := guard.Backup(cfg.DBPath)
	if err != nil {
		return exitError(exitUserError, "An error occurred while creating the backup", err)
	}
	fmt.Fprintf(out, "Backup created: '%s'\n", dst)
	logger.Debug("backup written", "db", cfg.DBPath, "backup", dst)

	editor := sqlite.NewEditor(logger)
	if err := editor.Attach(cmd.Context(), cfg); err != nil {
		return exitError(exitSysError, "open database", err)
	}
	defer func() {
		if err := editor.Detach(); err != nil {
			logger.Error("error closing database", "error", err)
		}
	}()

	outcome := editor.Apply(cmd.Context(), req)
	fmt.Fprintln(out, outcome.Message)
	if !outcome.OK() {
		logger.Warn("edit not applied", "action", string(action), "table", req.Table, "status", outcome.Status.String())
	} else {
		logger.Debug("edit applied", "action", string(action), "table", req.Table, "rows", outcome.RowsAffected)
	}
	return nil
}
