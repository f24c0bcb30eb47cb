package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config.yaml",
		Long:  "Create the configuration directory and a config.yaml holding the current db and driver settings. An existing config.yaml is left unchanged.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, configDir, err := loadConfig(cmd, opts)
			if err != nil {
				return exitError(exitSysError, "load config", err)
			}

			path, written, err := writeConfigIfMissing(configDir, cfg)
			if err != nil {
				return exitError(exitSysError, "write config", err)
			}

			out := cmd.OutOrStdout()
			if written {
				fmt.Fprintln(out, "fieldmod initialized successfully")
			} else {
				fmt.Fprintln(out, "fieldmod already initialized")
			}
			fmt.Fprintln(out, "  config:", path)
			fmt.Fprintln(out, "  db:    ", cfg.DBPath)
			return nil
		},
	}
}
