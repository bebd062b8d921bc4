package executor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

// DDLExecutor creates and drops tables and indexes.
type DDLExecutor struct {
	storage Storage
	logger  *zap.Logger
}

func (e *DDLExecutor) CreateTable(ctx context.Context, stmt jsondb.CreateTableStatement) (jsondb.Result, error) {
	columns := append([]jsondb.Column(nil), stmt.Columns...)
	if err := e.storage.CreateTable(jsondb.NewTable(stmt.Table, columns)); err != nil {
		return jsondb.Result{}, err
	}

	e.logger.Sugar().With("table", stmt.Table, "columns", len(columns)).Info("table created")

	return jsondb.Success(fmt.Sprintf("Table '%s' created successfully", stmt.Table), 0), nil
}

func (e *DDLExecutor) DropTable(ctx context.Context, stmt jsondb.DropTableStatement) (jsondb.Result, error) {
	if err := e.storage.DropTable(stmt.Table); err != nil {
		return jsondb.Result{}, err
	}

	e.logger.Sugar().With("table", stmt.Table).Info("table dropped")

	return jsondb.Success(fmt.Sprintf("Table '%s' dropped successfully", stmt.Table), 0), nil
}

func (e *DDLExecutor) CreateIndex(ctx context.Context, stmt jsondb.CreateIndexStatement) (jsondb.Result, error) {
	aTable, err := e.storage.GetTable(stmt.Table)
	if err != nil {
		return jsondb.Result{}, err
	}
	if err := e.storage.CreateIndex(aTable, stmt.Name, stmt.Column); err != nil {
		return jsondb.Result{}, err
	}

	e.logger.Sugar().With("index", stmt.Name, "table", aTable.Name, "column", stmt.Column).Info("index created")

	return jsondb.Success(fmt.Sprintf("Index '%s' created successfully on %s(%s)", stmt.Name, aTable.Name, stmt.Column), 0), nil
}

func (e *DDLExecutor) DropIndex(ctx context.Context, stmt jsondb.DropIndexStatement) (jsondb.Result, error) {
	aTable, err := e.storage.GetTable(stmt.Table)
	if err != nil {
		return jsondb.Result{}, err
	}
	if err := e.storage.DropIndex(aTable, stmt.Name); err != nil {
		return jsondb.Result{}, err
	}

	e.logger.Sugar().With("index", stmt.Name, "table", aTable.Name).Info("index dropped")

	return jsondb.Success(fmt.Sprintf("Index '%s' dropped successfully", stmt.Name), 0), nil
}
