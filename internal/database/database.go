package database

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RichardKnop/jsondb/internal/executor"
	"github.com/RichardKnop/jsondb/internal/jsondb"
	"github.com/RichardKnop/jsondb/internal/parser"
	"github.com/RichardKnop/jsondb/internal/storage"
	"github.com/RichardKnop/jsondb/pkg/lrucache"
)

type Parser interface {
	Parse(ctx context.Context, sql string) (jsondb.Statement, error)
}

// Database ties the parser, the executor and the storage engine together
// behind the calls its consumers need: run SQL, describe tables and flush
// to disk.
type Database struct {
	parser     Parser
	engine     *storage.Engine
	executor   *executor.QueryExecutor
	stmtCache  *lrucache.LRU[string, jsondb.Statement]
	cacheSize  int
	updateMode storage.UpdateMode
	lock       sync.Locker
	logger     *zap.Logger
}

// New opens the database stored in dir. The directory is created on the
// first write. Tables are loaded lazily.
func New(logger *zap.Logger, dir string, opts ...Option) *Database {
	d := &Database{
		parser:     parser.New(),
		cacheSize:  DefaultMaxCachedStatements,
		updateMode: storage.UpdateAtomic,
		lock:       nopLocker{},
		logger:     logger,
	}

	for _, opt := range opts {
		opt(d)
	}

	d.stmtCache = lrucache.New[string, jsondb.Statement](d.cacheSize)
	d.engine = storage.New(logger, dir, storage.WithUpdateMode(d.updateMode))
	d.executor = executor.New(logger, d.engine)

	logger.Sugar().With(
		"dir", dir,
		"update_mode", d.updateMode,
		"stmt_cache", d.cacheSize,
	).Debug("opened database")

	return d
}

func (d *Database) Dir() string {
	return d.engine.Dir()
}

// Prepare parses sql, reusing a cached statement for text seen before.
// Statements are immutable so one may be executed any number of times.
func (d *Database) Prepare(ctx context.Context, sql string) (jsondb.Statement, error) {
	key := strings.TrimSpace(sql)
	if stmt, ok := d.stmtCache.Get(key); ok {
		return stmt, nil
	}

	stmt, err := d.parser.Parse(ctx, key)
	if err != nil {
		return nil, err
	}
	d.stmtCache.Put(key, stmt)

	return stmt, nil
}

// ExecuteSQL parses and runs one statement. It never fails: syntax and
// execution errors are reported in the result.
func (d *Database) ExecuteSQL(ctx context.Context, sql string) jsondb.Result {
	var (
		start  = time.Now()
		logger = d.logger.Sugar().With("query_id", uuid.NewString())
	)

	logger.With("sql", sql).Debug("executing sql")

	stmt, err := d.Prepare(ctx, sql)
	if err != nil {
		logger.With("sql", sql, "error", err).Warn("failed to parse sql")
		return jsondb.Failure(err)
	}

	result := d.Execute(ctx, stmt)
	if !result.Success {
		logger.With("statement", stmt.Kind(), "error", result.Error).Warn("statement failed")
		return result
	}

	logger.With(
		"statement", stmt.Kind(),
		"rows", len(result.Rows),
		"rows_affected", result.RowsAffected,
		"duration", time.Since(start),
	).Debug("statement executed")

	return result
}

// Execute runs an already parsed statement.
func (d *Database) Execute(ctx context.Context, stmt jsondb.Statement) jsondb.Result {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.executor.Execute(ctx, stmt)
}

// ListTables returns the table names found in the storage directory, sorted.
func (d *Database) ListTables(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.lock.Lock()
	defer d.lock.Unlock()

	return d.engine.ListTables()
}

func (d *Database) TableSchema(ctx context.Context, name string) (jsondb.TableSchema, error) {
	if err := ctx.Err(); err != nil {
		return jsondb.TableSchema{}, err
	}

	d.lock.Lock()
	defer d.lock.Unlock()

	aTable, err := d.engine.GetTable(name)
	if err != nil {
		return jsondb.TableSchema{}, err
	}
	return aTable.Schema(), nil
}

// FlushAll writes the data and indexes of every loaded table.
func (d *Database) FlushAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.lock.Lock()
	defer d.lock.Unlock()

	if err := d.engine.FlushAll(); err != nil {
		return err
	}
	d.logger.Sugar().With("dir", d.engine.Dir()).Debug("flushed all tables")
	return nil
}

func (d *Database) Close() error {
	d.stmtCache.Purge()
	return d.FlushAll(context.Background())
}

func (d *Database) Logger() *zap.Logger {
	return d.logger
}
