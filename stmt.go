package jsondb

import (
	"context"
	"database/sql/driver"

	internal "github.com/RichardKnop/jsondb/internal/jsondb"
)

type Stmt struct {
	conn      *Conn
	statement internal.Statement
}

// Close closes the statement. Parsed statements hold no resources.
func (s Stmt) Close() error {
	return nil
}

// NumInput returns the number of placeholder parameters. The SQL dialect
// has none, so the sql package rejects any arguments before Exec or Query
// are called.
func (s Stmt) NumInput() int {
	return 0
}

// Exec executes a query that doesn't return rows, such
// as an INSERT or UPDATE.
//
// Deprecated: Drivers should implement StmtExecContext instead (or additionally).
func (s Stmt) Exec(args []driver.Value) (driver.Result, error) {
	if len(args) > 0 {
		return nil, errArgsNotSupported
	}
	return s.ExecContext(context.Background(), nil)
}

func (s Stmt) ExecContext(ctx context.Context, args []driver.NamedValue) (driver.Result, error) {
	if len(args) > 0 {
		return nil, errArgsNotSupported
	}

	result, err := s.conn.execute(ctx, s.statement)
	if err != nil {
		return nil, err
	}

	return Result{rowsAffected: int64(result.RowsAffected)}, nil
}

// Query executes a query that may return rows, such as a
// SELECT.
//
// Deprecated: Drivers should implement StmtQueryContext instead (or additionally).
func (s Stmt) Query(args []driver.Value) (driver.Rows, error) {
	if len(args) > 0 {
		return nil, errArgsNotSupported
	}
	return s.QueryContext(context.Background(), nil)
}

func (s Stmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	if len(args) > 0 {
		return nil, errArgsNotSupported
	}

	result, err := s.conn.execute(ctx, s.statement)
	if err != nil {
		return nil, err
	}

	return newRows(result), nil
}
