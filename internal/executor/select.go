package executor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

type SelectExecutor struct {
	storage Storage
	logger  *zap.Logger
}

// Execute loads the FROM table, joins the other tables in order, filters,
// sorts and finally projects the rows.
func (e *SelectExecutor) Execute(ctx context.Context, stmt jsondb.SelectStatement) (jsondb.Result, error) {
	aTable, err := e.storage.GetTable(stmt.Table)
	if err != nil {
		return jsondb.Result{}, err
	}

	var (
		fields = tableScope(aTable, true)
		rows   = qualifiedRows(aTable, fields)
		seen   = map[string]struct{}{strings.ToLower(aTable.Name): {}}
	)
	for _, aJoin := range stmt.Joins {
		if err := ctx.Err(); err != nil {
			return jsondb.Result{}, err
		}

		joined, err := e.storage.GetTable(aJoin.Table)
		if err != nil {
			return jsondb.Result{}, err
		}
		if _, ok := seen[strings.ToLower(joined.Name)]; ok {
			return jsondb.Result{}, fmt.Errorf("%w: table %s appears more than once", jsondb.ErrUnsupported, joined.Name)
		}
		seen[strings.ToLower(joined.Name)] = struct{}{}

		joinedFields := tableScope(joined, true)
		rows, err = joinRows(aJoin, rows, fields, qualifiedRows(joined, joinedFields), joinedFields)
		if err != nil {
			return jsondb.Result{}, err
		}
		fields = append(fields, joinedFields...)
	}

	filter, err := compileWhere(fields, stmt.Where)
	if err != nil {
		return jsondb.Result{}, err
	}
	filtered := rows[:0]
	for _, aRow := range rows {
		if filter(aRow) {
			filtered = append(filtered, aRow)
		}
	}
	rows = filtered

	if err := sortRows(rows, stmt, fields); err != nil {
		return jsondb.Result{}, err
	}

	columns, rows, err := project(stmt, fields, rows)
	if err != nil {
		return jsondb.Result{}, err
	}

	e.logger.Sugar().With("table", aTable.Name, "joins", len(stmt.Joins), "rows", len(rows)).Debug("selected rows")

	return jsondb.Result{
		Success: true,
		Message: fmt.Sprintf("%d row(s) returned", len(rows)),
		Columns: columns,
		Rows:    rows,
	}, nil
}

// qualifiedRows copies the table rows, naming every value table.column.
func qualifiedRows(aTable *jsondb.Table, fields scope) []jsondb.Row {
	rows := make([]jsondb.Row, 0, len(aTable.Rows))
	for _, stored := range aTable.Rows {
		aRow := jsondb.Row{}
		for _, f := range fields {
			aRow.Set(f.key, stored.Get(f.name))
		}
		rows = append(rows, aRow)
	}
	return rows
}

// project keeps the selected columns under their output names. A wildcard
// keeps every column: bare names for a single table, table.column names
// when tables were joined.
func project(stmt jsondb.SelectStatement, fields scope, rows []jsondb.Row) ([]string, []jsondb.Row, error) {
	if stmt.Wildcard {
		if len(stmt.Joins) > 0 {
			return fields.keys(), rows, nil
		}
		columns := make([]string, 0, len(fields))
		for _, f := range fields {
			columns = append(columns, f.name)
		}
		return columns, rename(rows, fields.keys(), columns), nil
	}

	var (
		keys    = make([]string, 0, len(stmt.Columns))
		columns = make([]string, 0, len(stmt.Columns))
		sources = make(map[string]string, len(stmt.Columns))
	)
	for _, aColumn := range stmt.Columns {
		key, err := fields.mustFind(aColumn.Ref)
		if err != nil {
			return nil, nil, err
		}
		// Rows hold one value per name, so a name may only repeat for the
		// same source column.
		name := aColumn.OutputName()
		if source, ok := sources[strings.ToLower(name)]; ok && source != key {
			return nil, nil, fmt.Errorf("output column %q is selected more than once from different columns", name)
		}
		sources[strings.ToLower(name)] = key
		keys = append(keys, key)
		columns = append(columns, name)
	}
	return columns, rename(rows, keys, columns), nil
}

func rename(rows []jsondb.Row, keys, names []string) []jsondb.Row {
	projected := make([]jsondb.Row, 0, len(rows))
	for _, aRow := range rows {
		values := make([]jsondb.Value, 0, len(keys))
		for _, key := range keys {
			values = append(values, aRow.Get(key))
		}
		projected = append(projected, jsondb.NewRow(names, values))
	}
	return projected
}
