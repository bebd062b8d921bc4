package executor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/RichardKnop/jsondb/internal/jsondb"
	"github.com/RichardKnop/jsondb/internal/storage"
)

// Storage is the part of the storage engine the executors need.
type Storage interface {
	GetTable(name string) (*jsondb.Table, error)
	CreateTable(aTable *jsondb.Table) error
	DropTable(name string) error
	InsertRows(aTable *jsondb.Table, rows []jsondb.Row) error
	UpdateRows(aTable *jsondb.Table, predicate storage.Predicate, mutator storage.Mutator) (int, error)
	DeleteRows(aTable *jsondb.Table, predicate storage.Predicate) (int, error)
	CreateIndex(aTable *jsondb.Table, name, column string) error
	DropIndex(aTable *jsondb.Table, name string) error
}

// QueryExecutor dispatches a statement to the executor for its kind. It
// keeps no state between statements.
type QueryExecutor struct {
	selects *SelectExecutor
	inserts *InsertExecutor
	updates *UpdateExecutor
	deletes *DeleteExecutor
	ddl     *DDLExecutor
	logger  *zap.Logger
}

func New(logger *zap.Logger, store Storage) *QueryExecutor {
	return &QueryExecutor{
		selects: &SelectExecutor{storage: store, logger: logger},
		inserts: &InsertExecutor{storage: store, logger: logger},
		updates: &UpdateExecutor{storage: store, logger: logger},
		deletes: &DeleteExecutor{storage: store, logger: logger},
		ddl:     &DDLExecutor{storage: store, logger: logger},
		logger:  logger,
	}
}

// Execute runs one statement. Failures, including panics, are reported in
// the returned result and never escape as errors.
func (e *QueryExecutor) Execute(ctx context.Context, stmt jsondb.Statement) (result jsondb.Result) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Sugar().With("statement", fmt.Sprintf("%v", stmt), "panic", r).Error("executor panicked")
			result = jsondb.Failure(fmt.Errorf("internal error: %v", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return jsondb.Failure(err)
	}

	var err error
	switch s := stmt.(type) {
	case jsondb.SelectStatement:
		result, err = e.selects.Execute(ctx, s)
	case jsondb.InsertStatement:
		result, err = e.inserts.Execute(ctx, s)
	case jsondb.UpdateStatement:
		result, err = e.updates.Execute(ctx, s)
	case jsondb.DeleteStatement:
		result, err = e.deletes.Execute(ctx, s)
	case jsondb.CreateTableStatement:
		result, err = e.ddl.CreateTable(ctx, s)
	case jsondb.DropTableStatement:
		result, err = e.ddl.DropTable(ctx, s)
	case jsondb.CreateIndexStatement:
		result, err = e.ddl.CreateIndex(ctx, s)
	case jsondb.DropIndexStatement:
		result, err = e.ddl.DropIndex(ctx, s)
	default:
		err = fmt.Errorf("%w: statement %T", jsondb.ErrUnsupported, stmt)
	}
	if err != nil {
		return jsondb.Failure(err)
	}
	return result
}
