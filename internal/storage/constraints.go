package storage

import (
	"fmt"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

// normalizeRow returns a copy of the row holding every table column, in
// schema order, after checking NOT NULL, type and length constraints.
func normalizeRow(aTable *jsondb.Table, aRow jsondb.Row) (jsondb.Row, error) {
	for _, name := range aRow.Names() {
		if _, ok := aTable.Column(name); !ok {
			return jsondb.Row{}, fmt.Errorf("%w: %s in table %s", jsondb.ErrColumnNotFound, name, aTable.Name)
		}
	}

	normalized := jsondb.Row{}
	for _, aColumn := range aTable.Columns {
		v := aRow.Get(aColumn.Name)
		if err := aColumn.Validate(v); err != nil {
			return jsondb.Row{}, err
		}
		normalized.Set(aColumn.Name, v)
	}
	return normalized, nil
}

// checkUnique fails when another row in rows holds the same PRIMARY KEY or
// UNIQUE value as aRow. The row at position skip is ignored. With useIndex,
// rows must be the table's own rows so index positions match. Nulls never
// conflict.
func (e *Engine) checkUnique(aTable *jsondb.Table, aRow jsondb.Row, rows []jsondb.Row, skip int, useIndex bool) error {
	for _, aColumn := range aTable.Columns {
		if !aColumn.PrimaryKey && !aColumn.Unique {
			continue
		}
		v := aRow.Get(aColumn.Name)
		if v.IsNull() {
			continue
		}

		var candidates []int
		if idx, ok := aTable.IndexOn(aColumn.Name); ok && useIndex {
			candidates = idx.Lookup(v)
		} else {
			candidates = make([]int, 0, len(rows))
			for i := range rows {
				candidates = append(candidates, i)
			}
		}

		for _, p := range candidates {
			if p == skip || p < 0 || p >= len(rows) {
				continue
			}
			if rows[p].Get(aColumn.Name).Equal(v) {
				return uniqueViolation(aTable, aColumn, v)
			}
		}
	}
	return nil
}

func uniqueViolation(aTable *jsondb.Table, aColumn jsondb.Column, v jsondb.Value) error {
	if aColumn.PrimaryKey {
		return jsondb.ConstraintErrorf("PRIMARY KEY violation: duplicate value %s for column %q in table %s", v.SQL(), aColumn.Name, aTable.Name)
	}
	return jsondb.ConstraintErrorf("UNIQUE constraint violation: duplicate value %s for column %q in table %s", v.SQL(), aColumn.Name, aTable.Name)
}
