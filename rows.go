package jsondb

import (
	"database/sql/driver"
	"io"

	internal "github.com/RichardKnop/jsondb/internal/jsondb"
)

type Rows struct {
	columns []string
	rows    []internal.Row
	pos     int
}

func newRows(result internal.Result) *Rows {
	return &Rows{
		columns: result.Columns,
		rows:    result.Rows,
	}
}

// Columns returns the names of the columns. Statements other than
// SELECT return no columns.
func (r *Rows) Columns() []string {
	return r.columns
}

// Close closes the rows iterator.
func (r *Rows) Close() error {
	r.pos = len(r.rows)
	return nil
}

// Next is called to populate the next row of data into
// the provided slice. The provided slice will be the same
// size as the Columns() are wide.
//
// Values are int64, string, bool, time.Time or nil. Decimals are
// returned as their exact string form.
func (r *Rows) Next(dest []driver.Value) error {
	if r.pos >= len(r.rows) {
		return io.EOF
	}

	aRow := r.rows[r.pos]
	r.pos++

	for i := range dest {
		dest[i] = aRow.Get(r.columns[i]).GoValue()
	}

	return nil
}
