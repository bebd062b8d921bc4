package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	"github.com/RichardKnop/jsondb/internal/database"
	"github.com/RichardKnop/jsondb/internal/pkg/logging"
	"github.com/RichardKnop/jsondb/internal/pkg/util"
)

var (
	dirFlag     string
	usersFlag   int
	ordersFlag  int
	previewFlag int
)

func init() {
	flag.StringVar(&dirFlag, "dir", "./data", "Storage directory")
	flag.IntVar(&usersFlag, "users", 100, "Number of users to insert")
	flag.IntVar(&ordersFlag, "orders", 500, "Number of orders to insert")
	flag.IntVar(&previewFlag, "preview", 5, "Rows of each table to print when done, 0 to disable")
}

var seedTables = []string{
	`CREATE TABLE users (
		id INT PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(100) NOT NULL,
		verified BOOLEAN,
		created DATETIME
	)`,
	`CREATE TABLE orders (
		id INT PRIMARY KEY,
		user_id INT NOT NULL,
		product VARCHAR(100) NOT NULL,
		total DECIMAL,
		placed DATETIME
	)`,
	`CREATE INDEX idx_orders_user_id ON orders (user_id)`,
}

func main() {
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	logger, err := logging.New(level)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() // flushes buffer, if any

	aDatabase := database.New(logger, dirFlag)

	if err := seed(ctx, aDatabase, logger); err != nil {
		logger.Sugar().With("error", err).Error("seeding failed")
	}

	// Flush whatever made it in, also after an interrupt.
	if err := aDatabase.Close(); err != nil {
		logger.Sugar().With("error", err).Error("error closing database")
		os.Exit(1)
	}
}

func seed(ctx context.Context, aDatabase *database.Database, logger *zap.Logger) error {
	start := time.Now()

	for _, sql := range seedTables {
		if result := aDatabase.ExecuteSQL(ctx, sql); !result.Success {
			return result.Err
		}
	}

	gen := gofakeit.New(uint64(start.UnixNano()))

	emails := make(map[string]struct{}, usersFlag)
	for id := 1; id <= usersFlag; id++ {
		email := gen.Email()
		if _, ok := emails[email]; ok {
			email = fmt.Sprintf("%d.%s", id, email)
		}
		emails[email] = struct{}{}

		sql := fmt.Sprintf(
			"INSERT INTO users VALUES (%d, %s, %s, %t, '%s')",
			id,
			quote(email),
			quote(gen.Name()),
			gen.Bool(),
			gen.PastDate().UTC().Format(time.DateTime),
		)
		if result := aDatabase.ExecuteSQL(ctx, sql); !result.Success {
			return result.Err
		}
	}

	for id := 1; id <= ordersFlag && usersFlag > 0; id++ {
		sql := fmt.Sprintf(
			"INSERT INTO orders VALUES (%d, %d, %s, %.2f, '%s')",
			id,
			gen.IntRange(1, usersFlag),
			quote(gen.ProductName()),
			gen.Price(1, 500),
			gen.PastDate().UTC().Format(time.DateTime),
		)
		if result := aDatabase.ExecuteSQL(ctx, sql); !result.Success {
			return result.Err
		}
	}

	logger.Sugar().With(
		"dir", aDatabase.Dir(),
		"users", usersFlag,
		"orders", ordersFlag,
		"duration", time.Since(start),
	).Info("seeded database")

	if previewFlag <= 0 {
		return nil
	}

	tables, err := aDatabase.ListTables(ctx)
	if err != nil {
		return err
	}
	for _, table := range tables {
		result := aDatabase.ExecuteSQL(ctx, "SELECT * FROM "+table+" ORDER BY id")
		if !result.Success {
			return result.Err
		}
		rows := result.Rows
		if len(rows) > previewFlag {
			rows = rows[:previewFlag]
		}
		fmt.Printf("%s (%d rows)\n", table, len(result.Rows))
		util.PrintResult(os.Stdout, result.Columns, rows)
	}

	return nil
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
