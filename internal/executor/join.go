package executor

import (
	"fmt"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

// joinSide locates one side of an ON condition in either the accumulated
// left row or the row of the table being joined.
type joinSide struct {
	key   string
	right bool
}

func (s joinSide) value(left, right jsondb.Row) jsondb.Value {
	if s.right {
		return right.Get(s.key)
	}
	return left.Get(s.key)
}

func resolveJoinSide(ref jsondb.ColumnRef, leftFields, rightFields scope) (joinSide, error) {
	if key, ok := rightFields.find(ref); ok && (ref.Table != "" || !hasField(leftFields, ref)) {
		return joinSide{key: key, right: true}, nil
	}
	if key, ok := leftFields.find(ref); ok {
		return joinSide{key: key}, nil
	}
	return joinSide{}, fmt.Errorf("%w: %s in JOIN ON", jsondb.ErrColumnNotFound, ref)
}

func hasField(s scope, ref jsondb.ColumnRef) bool {
	_, ok := s.find(ref)
	return ok
}

// joinRows is a nested loop join. Every left row is compared with every
// right row. Null never equals anything, null included. Unmatched left rows
// are kept for LEFT and FULL joins, unmatched right rows for RIGHT and FULL
// joins, padded with nulls for the other side.
func joinRows(aJoin jsondb.Join, left []jsondb.Row, leftFields scope, right []jsondb.Row, rightFields scope) ([]jsondb.Row, error) {
	a, err := resolveJoinSide(aJoin.Left, leftFields, rightFields)
	if err != nil {
		return nil, err
	}
	b, err := resolveJoinSide(aJoin.Right, leftFields, rightFields)
	if err != nil {
		return nil, err
	}

	var (
		keepLeft     = aJoin.Type == jsondb.LeftJoin || aJoin.Type == jsondb.FullJoin
		keepRight    = aJoin.Type == jsondb.RightJoin || aJoin.Type == jsondb.FullJoin
		rightMatched = make([]bool, len(right))
		joined       = make([]jsondb.Row, 0, len(left))
	)
	for _, leftRow := range left {
		matched := false
		for j, rightRow := range right {
			x, y := a.value(leftRow, rightRow), b.value(leftRow, rightRow)
			if x.IsNull() || y.IsNull() || jsondb.Compare(x, y) != 0 {
				continue
			}
			matched = true
			rightMatched[j] = true
			joined = append(joined, merge(leftRow, rightRow))
		}
		if !matched && keepLeft {
			joined = append(joined, merge(leftRow, nullRow(rightFields)))
		}
	}

	if keepRight {
		for j, rightRow := range right {
			if !rightMatched[j] {
				joined = append(joined, merge(nullRow(leftFields), rightRow))
			}
		}
	}

	return joined, nil
}

func merge(left, right jsondb.Row) jsondb.Row {
	merged := left.Clone()
	names, values := right.Names(), right.Values()
	for i, name := range names {
		merged.Set(name, values[i])
	}
	return merged
}

func nullRow(fields scope) jsondb.Row {
	aRow := jsondb.Row{}
	for _, f := range fields {
		aRow.Set(f.key, jsondb.NullValue())
	}
	return aRow
}
