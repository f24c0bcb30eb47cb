package sqlite

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/mesh-intelligence/fieldmod/pkg/types"
)

// MinDropColumnVersion is the first SQLite release with ALTER TABLE DROP COLUMN.
const MinDropColumnVersion = "3.35.0"

// Apply dispatches req to the matching operation. The request must already
// have passed Validate.
func (e *Editor) Apply(ctx context.Context, req types.Request) types.Outcome {
	switch req.Action {
	case types.ActionAdd:
		return e.AddField(ctx, req.Table, req.Field, req.Type, req.InitValue)
	case types.ActionDelete:
		return e.DeleteField(ctx, req.Table, req.Field)
	case types.ActionUpdateOne:
		return e.UpdateOne(ctx, req.Table, req.Field, req.ID, req.Value)
	case types.ActionUpdateAll:
		return e.UpdateAll(ctx, req.Table, req.Field, req.Value)
	default:
		return types.Failed(fmt.Errorf("%w %q", types.ErrUnknownAction, req.Action))
	}
}

// AddField adds column field of type typ to table with initValue as its
// default.
func (e *Editor) AddField(ctx context.Context, table, field, typ, initValue string) types.Outcome {
	if err := e.checkAttached(); err != nil {
		return types.Failed(err)
	}
	stmt, err := addColumnSQL(table, field, typ, initValue)
	if err != nil {
		return types.Failed(err)
	}
	if _, err := e.exec(ctx, stmt); err != nil {
		return e.failed("add field", err)
	}
	return types.Succeeded(fmt.Sprintf("Field '%s' added to table '%s'.", field, table), 0)
}

// DeleteField drops column field from table. On engines older than
// MinDropColumnVersion it returns StatusUnsupported without issuing SQL.
func (e *Editor) DeleteField(ctx context.Context, table, field string) types.Outcome {
	if err := e.checkAttached(); err != nil {
		return types.Failed(err)
	}

	version, err := e.engineVersion(ctx)
	if err != nil {
		return types.Failed(err)
	}
	ok, err := SupportsDropColumn(version)
	if err != nil {
		return types.Failed(err)
	}
	if !ok {
		e.logger.Debug("drop column unsupported", "engine", version)
		return types.Unsupported(fmt.Sprintf(
			"SQLite version %s does not support DROP COLUMN. Please upgrade to version %s or higher.",
			version, MinDropColumnVersion))
	}

	stmt, err := dropColumnSQL(table, field)
	if err != nil {
		return types.Failed(err)
	}
	if _, err := e.exec(ctx, stmt); err != nil {
		return e.failed("delete field", err)
	}
	return types.Succeeded(fmt.Sprintf("Field '%s' deleted from table '%s'.", field, table), 0)
}

// UpdateOne sets field to value on the row whose id column equals id.
// Matching no row is not an error; RowsAffected is 0 in that case.
func (e *Editor) UpdateOne(ctx context.Context, table, field string, id int64, value string) types.Outcome {
	if err := e.checkAttached(); err != nil {
		return types.Failed(err)
	}
	stmt, err := updateOneSQL(table, field)
	if err != nil {
		return types.Failed(err)
	}
	rows, err := e.exec(ctx, stmt, value, id)
	if err != nil {
		return e.failed("update one", err)
	}
	if rows == 0 {
		e.logger.Debug("no row matched", "table", table, "id", id)
	}
	return types.Succeeded(fmt.Sprintf("Record with id %d updated in table '%s'.", id, table), rows)
}

// UpdateAll sets field to value on every row of table.
func (e *Editor) UpdateAll(ctx context.Context, table, field, value string) types.Outcome {
	if err := e.checkAttached(); err != nil {
		return types.Failed(err)
	}
	stmt, err := updateAllSQL(table, field)
	if err != nil {
		return types.Failed(err)
	}
	rows, err := e.exec(ctx, stmt, value)
	if err != nil {
		return e.failed("update all", err)
	}
	return types.Succeeded(fmt.Sprintf("All records updated in table '%s'.", table), rows)
}

func (e *Editor) failed(op string, err error) types.Outcome {
	e.logger.Debug("statement failed", "op", op, "error", err)
	return types.Failed(err)
}

// SupportsDropColumn reports whether an engine at version can run
// ALTER TABLE DROP COLUMN.
func SupportsDropColumn(version string) (bool, error) {
	v := "v" + strings.TrimPrefix(strings.TrimSpace(version), "v")
	if !semver.IsValid(v) {
		return false, fmt.Errorf("unrecognized sqlite version %q", version)
	}
	return semver.Compare(v, "v"+MinDropColumnVersion) >= 0, nil
}
