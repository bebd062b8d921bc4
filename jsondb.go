package jsondb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/RichardKnop/jsondb/internal/database"
	internal "github.com/RichardKnop/jsondb/internal/jsondb"
	"github.com/RichardKnop/jsondb/internal/pkg/logging"
)

const (
	driverName = "jsondb"
)

var (
	errTxNotSupported   = errors.New("transactions are not supported")
	errArgsNotSupported = errors.New("query arguments are not supported")
	errNoLastInsertID   = errors.New("LastInsertId is not supported")
)

func init() {
	sql.Register(driverName, &Driver{})
}

// Driver implements the database/sql/driver.Driver interface.
type Driver struct {
	mu        sync.Mutex
	databases map[string]*openDatabase
}

type openDatabase struct {
	db     *database.Database
	config ConnectionConfig
}

// Open returns a new connection to the database.
// The name is a connection string, see ParseConnectionString.
func (d *Driver) Open(name string) (driver.Conn, error) {
	config, err := ParseConnectionString(name)
	if err != nil {
		return nil, err
	}

	// Connections to the same directory share one database so they see
	// each other's writes, however the path is spelled.
	dir, err := filepath.Abs(config.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory %s: %w", config.Dir, err)
	}
	config.Dir = dir

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.databases == nil {
		d.databases = make(map[string]*openDatabase)
	}

	opened, exists := d.databases[dir]
	if exists {
		if opened.config != *config {
			return nil, fmt.Errorf("database %s is already open with different options", dir)
		}
	} else {
		logConf := logging.DefaultConfig()
		logConf.Level = config.ZapLevel()
		logger, err := logConf.Build()
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}

		opened = &openDatabase{
			db:     database.New(logger, dir, config.databaseOptions()...),
			config: *config,
		}
		d.databases[dir] = opened
	}

	return &Conn{
		db:     opened.db,
		logger: opened.db.Logger(),
	}, nil
}

// Conn implements the database/sql/driver.Conn interface.
type Conn struct {
	db     *database.Database
	logger *zap.Logger
}

func (c *Conn) Ping(ctx context.Context) error {
	_, err := c.db.ListTables(ctx)
	return err
}

// Close flushes every loaded table. The database itself stays open for
// other connections to the same directory.
func (c *Conn) Close() error {
	return c.db.FlushAll(context.Background())
}

// Prepare returns a prepared statement, bound to this connection.
func (c *Conn) Prepare(query string) (driver.Stmt, error) {
	return c.PrepareContext(context.Background(), query)
}

// PrepareContext returns a prepared statement, bound to this connection.
// context is for the preparation of the statement,
// it must not store the context within the statement itself.
func (c *Conn) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	statement, err := c.db.Prepare(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to parse query: %w", err)
	}

	return Stmt{
		conn:      c,
		statement: statement,
	}, nil
}

func (c *Conn) Begin() (driver.Tx, error) {
	return nil, errTxNotSupported
}

func (c *Conn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	return nil, errTxNotSupported
}

// ExecContext runs a statement without preparing it first.
func (c *Conn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	if len(args) > 0 {
		return nil, errArgsNotSupported
	}

	result := c.db.ExecuteSQL(ctx, query)
	if !result.Success {
		return nil, result.Err
	}

	return Result{rowsAffected: int64(result.RowsAffected)}, nil
}

// QueryContext runs a statement and returns its rows.
func (c *Conn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	if len(args) > 0 {
		return nil, errArgsNotSupported
	}

	result := c.db.ExecuteSQL(ctx, query)
	if !result.Success {
		return nil, result.Err
	}

	return newRows(result), nil
}

func (c *Conn) execute(ctx context.Context, statement internal.Statement) (internal.Result, error) {
	result := c.db.Execute(ctx, statement)
	if !result.Success {
		c.logger.Sugar().With("statement", statement.Kind(), "error", result.Error).Debug("prepared statement failed")
		return result, result.Err
	}
	return result, nil
}
