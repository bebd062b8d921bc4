package jsondb

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/RichardKnop/jsondb/internal/database"
	"github.com/RichardKnop/jsondb/internal/pkg/logging"
	"github.com/RichardKnop/jsondb/internal/storage"
)

// ConnectionConfig holds parsed connection string parameters
type ConnectionConfig struct {
	Dir                string             // Storage directory holding the JSON files
	LogLevel           string             // Log level: debug, info, warn, error (default: warn)
	StatementCacheSize int                // Parsed statements to cache (default: 1000, 0 disables)
	UpdateMode         storage.UpdateMode // atomic (default) or in_place
}

// DefaultConnectionConfig returns default configuration
func DefaultConnectionConfig(dir string) *ConnectionConfig {
	return &ConnectionConfig{
		Dir:                dir,
		LogLevel:           "warn",
		StatementCacheSize: database.DefaultMaxCachedStatements,
		UpdateMode:         storage.UpdateAtomic,
	}
}

// ParseConnectionString parses a connection string with optional query parameters.
//
// Format: /path/to/dir?param1=value1&param2=value2
//
// Supported parameters:
//   - log_level=debug|info|warn|error : Set logging level (default: warn)
//   - stmt_cache=N : Number of parsed statements to cache (default: 1000)
//   - update_mode=atomic|in_place : How a failing multi-row UPDATE behaves (default: atomic)
//
// Examples:
//   - "./data"                              : Default settings
//   - "./data?log_level=debug"              : Enable debug logging
//   - "./data?update_mode=in_place&stmt_cache=0" : Legacy updates, no statement cache
func ParseConnectionString(connStr string) (*ConnectionConfig, error) {
	// Split on first '?' to separate path from query params
	parts := strings.SplitN(connStr, "?", 2)
	if strings.TrimSpace(parts[0]) == "" {
		return nil, fmt.Errorf("connection string must start with a directory path")
	}

	config := DefaultConnectionConfig(parts[0])

	if len(parts) == 1 {
		return config, nil
	}

	queryParams, err := url.ParseQuery(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid connection string query parameters: %w", err)
	}

	if logLevel := queryParams.Get("log_level"); logLevel != "" {
		logLevel = strings.ToLower(logLevel)
		switch logLevel {
		case "debug", "info", "warn", "error":
			config.LogLevel = logLevel
		default:
			return nil, fmt.Errorf("invalid log_level parameter: must be 'debug', 'info', 'warn', or 'error', got %q", logLevel)
		}
	}

	if cacheStr := queryParams.Get("stmt_cache"); cacheStr != "" {
		size, err := strconv.Atoi(cacheStr)
		if err != nil {
			return nil, fmt.Errorf("invalid stmt_cache parameter: must be a non-negative integer, got %q", cacheStr)
		}
		if size < 0 {
			return nil, fmt.Errorf("invalid stmt_cache parameter: must be non-negative, got %d", size)
		}
		config.StatementCacheSize = size
	}

	if modeStr := queryParams.Get("update_mode"); modeStr != "" {
		mode, err := storage.ParseUpdateMode(modeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid update_mode parameter: %w", err)
		}
		config.UpdateMode = mode
	}

	return config, nil
}

// ZapLevel converts the log level string to a zap level, warn if unknown.
func (c *ConnectionConfig) ZapLevel() zap.AtomicLevel {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return zap.NewAtomicLevelAt(level)
}

func (c *ConnectionConfig) databaseOptions() []database.Option {
	return []database.Option{
		database.WithStatementCacheSize(c.StatementCacheSize),
		database.WithUpdateMode(c.UpdateMode),
		// database/sql uses connections from several goroutines.
		database.WithSerializedAccess(),
	}
}
