package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/fieldmod/internal/sqlite"
	"github.com/mesh-intelligence/fieldmod/pkg/types"
)

// Version is the fieldmod release.
const Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/fieldmod"

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the fieldmod and SQLite engine versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "fieldmod v%s\nmodule: %s\n", Version, modulePath)

			cfg, _, err := loadConfig(cmd, opts)
			if err != nil {
				return exitError(exitSysError, "load config", err)
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

			// Introspect an in-memory database so the configured file is untouched.
			editor := sqlite.NewEditor(logger)
			if err := editor.Attach(cmd.Context(), types.Config{DBPath: ":memory:", Driver: cfg.Driver}); err != nil {
				return exitError(exitSysError, "open engine", err)
			}
			defer func() {
				if err := editor.Detach(); err != nil {
					logger.Error("error closing engine", "error", err)
				}
			}()

			v, err := editor.EngineVersion(cmd.Context())
			if err != nil {
				return exitError(exitSysError, "engine version", err)
			}
			dropColumn, err := sqlite.SupportsDropColumn(v)
			if err != nil {
				return exitError(exitSysError, "engine version", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sqlite: %s (driver %s, drop column: %t)\n", v, cfg.Driver, dropColumn)
			return nil
		},
	}
}
