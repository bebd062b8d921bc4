package executor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

type DeleteExecutor struct {
	storage Storage
	logger  *zap.Logger
}

// Execute removes every row matching WHERE, all rows without one.
func (e *DeleteExecutor) Execute(ctx context.Context, stmt jsondb.DeleteStatement) (jsondb.Result, error) {
	aTable, err := e.storage.GetTable(stmt.Table)
	if err != nil {
		return jsondb.Result{}, err
	}

	filter, err := compileWhere(tableScope(aTable, false), stmt.Where)
	if err != nil {
		return jsondb.Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return jsondb.Result{}, err
	}

	n, err := e.storage.DeleteRows(aTable, func(aRow jsondb.Row) bool {
		return filter(aRow)
	})
	if err != nil {
		return jsondb.Result{}, err
	}

	e.logger.Sugar().With("table", aTable.Name, "rows", n).Debug("deleted")

	return jsondb.Success(fmt.Sprintf("%d row(s) deleted", n), n), nil
}
