package types

import "fmt"

// Action selects one of the four mutually exclusive edit operations.
type Action string

// Recognized actions, spelled as they appear on the command line.
const (
	ActionAdd       Action = "add"
	ActionDelete    Action = "delete"
	ActionUpdateOne Action = "update_one"
	ActionUpdateAll Action = "update_all"
)

// Actions lists every recognized action in the order shown in help output.
var Actions = []Action{ActionAdd, ActionDelete, ActionUpdateOne, ActionUpdateAll}

// ParseAction converts a command-line value to an Action.
// Returns ErrUnknownAction for anything outside Actions.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w %q (valid: add, delete, update_one, update_all)", ErrUnknownAction, s)
}
