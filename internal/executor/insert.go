package executor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

type InsertExecutor struct {
	storage Storage
	logger  *zap.Logger
}

// Execute converts every tuple to a row and hands all of them to storage in
// one batch, so either every tuple is stored or none is.
func (e *InsertExecutor) Execute(ctx context.Context, stmt jsondb.InsertStatement) (jsondb.Result, error) {
	aTable, err := e.storage.GetTable(stmt.Table)
	if err != nil {
		return jsondb.Result{}, err
	}

	targets, err := insertTargets(aTable, stmt.Columns)
	if err != nil {
		return jsondb.Result{}, err
	}

	rows := make([]jsondb.Row, 0, len(stmt.Values))
	for i, tuple := range stmt.Values {
		if err := ctx.Err(); err != nil {
			return jsondb.Result{}, err
		}
		aRow, err := tupleRow(aTable, targets, tuple)
		if err != nil {
			if len(stmt.Values) > 1 {
				return jsondb.Result{}, fmt.Errorf("row %d: %w", i+1, err)
			}
			return jsondb.Result{}, err
		}
		rows = append(rows, aRow)
	}

	if err := e.storage.InsertRows(aTable, rows); err != nil {
		return jsondb.Result{}, err
	}

	e.logger.Sugar().With("table", aTable.Name, "rows", len(rows)).Debug("inserted")

	return jsondb.Success(fmt.Sprintf("%d row(s) inserted", len(rows)), len(rows)), nil
}

// insertTargets returns the explicit column list, or every column in schema
// order when none was given.
func insertTargets(aTable *jsondb.Table, names []string) ([]jsondb.Column, error) {
	if len(names) == 0 {
		return aTable.Columns, nil
	}

	var (
		targets = make([]jsondb.Column, 0, len(names))
		seen    = make(map[string]struct{}, len(names))
	)
	for _, name := range names {
		aColumn, ok := aTable.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s in table %s", jsondb.ErrColumnNotFound, name, aTable.Name)
		}
		if _, ok := seen[strings.ToLower(name)]; ok {
			return nil, fmt.Errorf("column %q specified more than once", name)
		}
		seen[strings.ToLower(name)] = struct{}{}
		targets = append(targets, aColumn)
	}
	return targets, nil
}

func tupleRow(aTable *jsondb.Table, targets []jsondb.Column, tuple []jsondb.Operand) (jsondb.Row, error) {
	if len(tuple) != len(targets) {
		return jsondb.Row{}, fmt.Errorf("expected %d values, got %d", len(targets), len(tuple))
	}

	aRow := jsondb.Row{}
	for i, aColumn := range targets {
		v, err := aColumn.Convert(literal(tuple[i]))
		if err != nil {
			return jsondb.Row{}, err
		}
		aRow.Set(aColumn.Name, v)
	}

	for _, aColumn := range aTable.Columns {
		if aRow.Has(aColumn.Name) {
			continue
		}
		// Primary keys fall through to storage validation.
		if aColumn.NotNull && !aColumn.PrimaryKey {
			return jsondb.Row{}, jsondb.ConstraintErrorf("NOT NULL constraint failed for column %q", aColumn.Name)
		}
		aRow.Set(aColumn.Name, jsondb.NullValue())
	}

	return aRow, nil
}

// literal is the value of an operand outside any row, identifiers being
// read as text.
func literal(op jsondb.Operand) jsondb.Value {
	return compileOperand(nil, op)(jsondb.Row{})
}
