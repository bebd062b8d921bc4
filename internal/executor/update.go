package executor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

type UpdateExecutor struct {
	storage Storage
	logger  *zap.Logger
}

type setter struct {
	column jsondb.Column
	value  valueFunc
}

// Execute applies the assignments to every row matching WHERE. Assigned
// values referring to columns read the row as it was before the update.
func (e *UpdateExecutor) Execute(ctx context.Context, stmt jsondb.UpdateStatement) (jsondb.Result, error) {
	aTable, err := e.storage.GetTable(stmt.Table)
	if err != nil {
		return jsondb.Result{}, err
	}

	fields := tableScope(aTable, false)
	filter, err := compileWhere(fields, stmt.Where)
	if err != nil {
		return jsondb.Result{}, err
	}

	setters := make([]setter, 0, len(stmt.Assignments))
	for _, anAssignment := range stmt.Assignments {
		aColumn, ok := aTable.Column(anAssignment.Column)
		if !ok {
			return jsondb.Result{}, fmt.Errorf("%w: %s in table %s", jsondb.ErrColumnNotFound, anAssignment.Column, aTable.Name)
		}
		if aColumn.PrimaryKey {
			return jsondb.Result{}, jsondb.ConstraintErrorf("cannot update PRIMARY KEY column %q", aColumn.Name)
		}
		setters = append(setters, setter{
			column: aColumn,
			value:  compileOperand(fields, anAssignment.Value),
		})
	}

	if err := ctx.Err(); err != nil {
		return jsondb.Result{}, err
	}

	n, err := e.storage.UpdateRows(aTable, func(aRow jsondb.Row) bool {
		return filter(aRow)
	}, func(aRow jsondb.Row) (jsondb.Row, error) {
		original := aRow.Clone()
		for _, s := range setters {
			v, err := s.column.Convert(s.value(original))
			if err != nil {
				return jsondb.Row{}, err
			}
			aRow.Set(s.column.Name, v)
		}
		return aRow, nil
	})
	if err != nil {
		return jsondb.Result{}, err
	}

	e.logger.Sugar().With("table", aTable.Name, "rows", n).Debug("updated")

	return jsondb.Success(fmt.Sprintf("%d row(s) updated", n), n), nil
}
