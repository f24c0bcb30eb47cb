// Package cli implements the fieldmod command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/fieldmod/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// ExitError carries the process exit status for a fatal error.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func exitError(code int, msg string, err error) *ExitError {
	return &ExitError{Code: code, Message: msg, Err: err}
}

// exitCode maps an error returned by the root command to a process status.
// Errors that are not ExitErrors come from cobra flag parsing and count as
// user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return exitUserError
}

// rootOptions holds flag values for one invocation.
type rootOptions struct {
	configDir string
	dbPath    string
	driver    string
	verbose   bool

	action    string
	table     string
	field     string
	fieldType string
	initValue string
	id        int64
	value     string

	// fs backs the database existence check and the backup copy.
	fs afero.Fs
}

// NewRootCmd creates the top-level "fieldmod" command with its flags and
// subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs())
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	return newRootCommand(&rootOptions{fs: fs})
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "fieldmod",
		Short: "Add, drop, or update a field in a SQLite database",
		Long: `fieldmod edits a single SQLite database file. Each run performs exactly one
action and copies the database to <name>_backup<ext> before touching it.

Example:
  fieldmod --action add --table users --field age --type INTEGER --init_value 0
  fieldmod --action delete --table users --field age
  fieldmod --action update_one --table users --field name --id 3 --value alice
  fieldmod --action update_all --table users --field active --value 1`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&opts.dbPath, flagDB, types.DefaultDBPath, "path to the SQLite database file")
	pf.StringVar(&opts.driver, flagDriver, types.DriverModernc, "database/sql driver (sqlite or sqlite3)")
	pf.BoolVarP(&opts.verbose, flagVerbose, "v", false, "debug logging to stderr")

	f := root.Flags()
	f.StringVar(&opts.action, "action", "", "action to perform (add, delete, update_one, update_all)")
	f.StringVar(&opts.table, "table", "", "table name")
	f.StringVar(&opts.field, "field", "", "field (column) name")
	f.StringVar(&opts.fieldType, "type", "", "data type of the new field (add)")
	f.StringVar(&opts.initValue, "init_value", "", "initial value of the new field (add)")
	f.Int64Var(&opts.id, "id", 0, "record id (update_one)")
	f.StringVar(&opts.value, "value", "", "value to set (update_one, update_all)")
	_ = root.MarkFlagRequired("action")
	_ = root.MarkFlagRequired("table")
	_ = root.MarkFlagRequired("field")

	root.AddCommand(newVersionCmd(opts))
	root.AddCommand(newInitCmd(opts))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
