package types

import "errors"

// Request validation errors. Each maps to a usage error on the command line.
var (
	ErrUnknownAction       = errors.New("invalid action specified")
	ErrMissingTable        = errors.New("--table is required")
	ErrMissingField        = errors.New("--field is required")
	ErrMissingAddInputs    = errors.New("for 'add' action, --type and --init_value are required")
	ErrMissingUpdateInputs = errors.New("for 'update_one' action, --id and --value are required")
	ErrMissingValue        = errors.New("for 'update_all' action, --value is required")
)

// Request describes a single edit. It is built once per invocation and never
// persisted.
//
// InitValue, ID, and Value carry a companion presence flag because an empty
// string is a legitimate value while an absent flag is not.
type Request struct {
	Action Action
	Table  string
	Field  string

	// Type is the declared column type (add only).
	Type string

	// InitValue is the column default (add only).
	InitValue    string
	HasInitValue bool

	// ID selects the row for update_one.
	ID    int64
	HasID bool

	// Value is the new field value for update_one and update_all.
	Value    string
	HasValue bool
}

// Validate checks the action-specific required inputs. It does not inspect
// identifiers; the editor quotes those when it renders SQL.
func (r Request) Validate() error {
	if r.Table == "" {
		return ErrMissingTable
	}
	if r.Field == "" {
		return ErrMissingField
	}

	switch r.Action {
	case ActionAdd:
		if r.Type == "" || !r.HasInitValue {
			return ErrMissingAddInputs
		}
	case ActionDelete:
	case ActionUpdateOne:
		if !r.HasID || !r.HasValue {
			return ErrMissingUpdateInputs
		}
	case ActionUpdateAll:
		if !r.HasValue {
			return ErrMissingValue
		}
	default:
		return ErrUnknownAction
	}
	return nil
}
