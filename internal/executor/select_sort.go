package executor

import (
	"sort"
	"strings"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

// sortRows orders rows by the ORDER BY keys, the first key deciding and the
// rest breaking ties. The sort is stable and null sorts first ascending.
// A bare ORDER BY name may refer to a select alias.
func sortRows(rows []jsondb.Row, stmt jsondb.SelectStatement, fields scope) error {
	if len(stmt.OrderBy) == 0 {
		return nil
	}

	keys := make([]string, 0, len(stmt.OrderBy))
	for _, clause := range stmt.OrderBy {
		ref := aliasTarget(stmt, clause.Ref)
		key, err := fields.mustFind(ref)
		if err != nil {
			return err
		}
		keys = append(keys, key)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for k, clause := range stmt.OrderBy {
			cmp := jsondb.Compare(rows[i].Get(keys[k]), rows[j].Get(keys[k]))
			if cmp == 0 {
				continue
			}
			if clause.Direction == jsondb.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})

	return nil
}

func aliasTarget(stmt jsondb.SelectStatement, ref jsondb.ColumnRef) jsondb.ColumnRef {
	if ref.Table != "" {
		return ref
	}
	for _, aColumn := range stmt.Columns {
		if aColumn.Alias != "" && strings.EqualFold(aColumn.Alias, ref.Name) {
			return aColumn.Ref
		}
	}
	return ref
}
