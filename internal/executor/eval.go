package executor

import (
	"fmt"
	"strings"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

// field is a column visible to a statement. key is the name the column has
// in the rows being evaluated: "table.column" while selecting, the bare
// column name while updating or deleting.
type field struct {
	table string
	name  string
	key   string
}

type scope []field

func tableScope(aTable *jsondb.Table, qualified bool) scope {
	s := make(scope, 0, len(aTable.Columns))
	for _, aColumn := range aTable.Columns {
		key := aColumn.Name
		if qualified {
			key = aTable.Name + "." + aColumn.Name
		}
		s = append(s, field{table: aTable.Name, name: aColumn.Name, key: key})
	}
	return s
}

// find returns the row key a reference resolves to. A bare name matches
// the first table that has such a column.
func (s scope) find(ref jsondb.ColumnRef) (string, bool) {
	for _, f := range s {
		if !strings.EqualFold(f.name, ref.Name) {
			continue
		}
		if ref.Table == "" || strings.EqualFold(f.table, ref.Table) {
			return f.key, true
		}
	}
	return "", false
}

func (s scope) mustFind(ref jsondb.ColumnRef) (string, error) {
	key, ok := s.find(ref)
	if !ok {
		return "", fmt.Errorf("%w: %s", jsondb.ErrColumnNotFound, ref)
	}
	return key, nil
}

func (s scope) keys() []string {
	keys := make([]string, 0, len(s))
	for _, f := range s {
		keys = append(keys, f.key)
	}
	return keys
}

type (
	predicate func(jsondb.Row) bool
	valueFunc func(jsondb.Row) jsondb.Value
)

func matchAll(jsondb.Row) bool { return true }

// compileOperand resolves an operand against the scope. An identifier that
// names no column is read as text.
func compileOperand(s scope, op jsondb.Operand) valueFunc {
	if op.Type != jsondb.OperandColumn {
		v := op.Value
		return func(jsondb.Row) jsondb.Value { return v }
	}
	key, ok := s.find(op.Column)
	if !ok {
		v := jsondb.TextValue(op.Column.String())
		return func(jsondb.Row) jsondb.Value { return v }
	}
	return func(aRow jsondb.Row) jsondb.Value { return aRow.Get(key) }
}

// compileWhere turns a predicate tree into a row filter. The left side of
// every comparison must name a column in scope. A nil tree matches all rows.
func compileWhere(s scope, where *jsondb.Where) (predicate, error) {
	if where == nil {
		return matchAll, nil
	}
	if where.IsLeaf() {
		return compileCondition(s, *where.Condition)
	}

	left, err := compileWhere(s, where.Left)
	if err != nil {
		return nil, err
	}
	right, err := compileWhere(s, where.Right)
	if err != nil {
		return nil, err
	}

	// Both sides are always evaluated.
	if where.Operator == jsondb.Or {
		return func(aRow jsondb.Row) bool {
			l, r := left(aRow), right(aRow)
			return l || r
		}, nil
	}
	return func(aRow jsondb.Row) bool {
		l, r := left(aRow), right(aRow)
		return l && r
	}, nil
}

func compileCondition(s scope, c jsondb.Condition) (predicate, error) {
	key, err := s.mustFind(c.Left)
	if err != nil {
		return nil, err
	}
	right := compileOperand(s, c.Right)
	return func(aRow jsondb.Row) bool {
		return compare(aRow.Get(key), c.Operator, right(aRow))
	}, nil
}

// compare applies a comparison operator. With a null on either side, =
// holds only when both are null and != holds only when exactly one is.
// Ordering comparisons against null are false.
func compare(left jsondb.Value, op jsondb.Operator, right jsondb.Value) bool {
	if left.IsNull() || right.IsNull() {
		bothNull := left.IsNull() && right.IsNull()
		switch op {
		case jsondb.Eq:
			return bothNull
		case jsondb.Ne:
			return !bothNull
		default:
			return false
		}
	}

	cmp := jsondb.Compare(left, right)
	switch op {
	case jsondb.Eq:
		return cmp == 0
	case jsondb.Ne:
		return cmp != 0
	case jsondb.Gt:
		return cmp > 0
	case jsondb.Lt:
		return cmp < 0
	case jsondb.Gte:
		return cmp >= 0
	case jsondb.Lte:
		return cmp <= 0
	}
	return false
}
