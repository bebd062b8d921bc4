package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

const (
	schemaFileSuffix = "_schema.json"
	dataFileSuffix   = "_data.json"
)

// Index names ending like this would produce a file name that reads as
// some table's schema or data file.
var reservedIndexSuffixes = []string{"schema", "data"}

func reservedIndexName(name string) bool {
	name = fileBase(name)
	for _, suffix := range reservedIndexSuffixes {
		if name == suffix || strings.HasSuffix(name, "_"+suffix) {
			return true
		}
	}
	return false
}

// FileStorage reads and writes the per-table JSON files of one directory.
// Every write rewrites the whole file.
type FileStorage struct {
	dir    string
	logger *zap.Logger
}

func NewFileStorage(logger *zap.Logger, dir string) *FileStorage {
	return &FileStorage{
		dir:    dir,
		logger: logger,
	}
}

func (s *FileStorage) Dir() string {
	return s.dir
}

func fileBase(name string) string {
	return strings.ToLower(name)
}

func (s *FileStorage) schemaPath(table string) string {
	return filepath.Join(s.dir, fileBase(table)+schemaFileSuffix)
}

func (s *FileStorage) dataPath(table string) string {
	return filepath.Join(s.dir, fileBase(table)+dataFileSuffix)
}

func (s *FileStorage) indexPath(table, index string) string {
	return filepath.Join(s.dir, fileBase(table)+"_"+fileBase(index)+".json")
}

func (s *FileStorage) SchemaExists(table string) (bool, error) {
	return s.exists(s.schemaPath(table))
}

func (s *FileStorage) DataExists(table string) (bool, error) {
	return s.exists(s.dataPath(table))
}

func (s *FileStorage) IndexExists(table, index string) (bool, error) {
	return s.exists(s.indexPath(table, index))
}

func (s *FileStorage) exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %w", jsondb.ErrStorage, err)
}

func (s *FileStorage) WriteSchema(schema schemaFile) error {
	return s.writeJSON(s.schemaPath(schema.Name), schema)
}

func (s *FileStorage) ReadSchema(table string) (schemaFile, error) {
	var schema schemaFile
	if err := s.readJSON(s.schemaPath(table), &schema); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return schemaFile{}, fmt.Errorf("%w: %s", jsondb.ErrTableNotFound, table)
		}
		return schemaFile{}, err
	}
	return schema, nil
}

func (s *FileStorage) WriteRows(table string, rows []map[string]any) error {
	if rows == nil {
		rows = []map[string]any{}
	}
	return s.writeJSON(s.dataPath(table), rows)
}

// ReadRows returns the stored rows. A missing data file means no rows.
func (s *FileStorage) ReadRows(table string) ([]map[string]any, error) {
	var rows []map[string]any
	if err := s.readJSON(s.dataPath(table), &rows); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return rows, nil
}

func (s *FileStorage) WriteIndex(table, index string, entries map[string][]int) error {
	return s.writeJSON(s.indexPath(table, index), entries)
}

func (s *FileStorage) ReadIndex(table, index string) (map[string][]int, error) {
	entries := map[string][]int{}
	if err := s.readJSON(s.indexPath(table, index), &entries); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", jsondb.ErrIndexNotFound, index)
		}
		return nil, err
	}
	return entries, nil
}

func (s *FileStorage) DeleteIndex(table, index string) error {
	return s.remove(s.indexPath(table, index))
}

// DeleteTable removes the schema, data and index files of a table.
func (s *FileStorage) DeleteTable(table string, indexes []string) error {
	paths := []string{s.schemaPath(table), s.dataPath(table)}
	for _, index := range indexes {
		paths = append(paths, s.indexPath(table, index))
	}
	for _, path := range paths {
		if err := s.remove(path); err != nil {
			return err
		}
	}
	return nil
}

// ListSchemas reads every schema file in the directory, sorted by table name.
func (s *FileStorage) ListSchemas() ([]schemaFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %w", jsondb.ErrStorage, s.dir, err)
	}

	var schemas []schemaFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), schemaFileSuffix) {
			continue
		}
		var schema schemaFile
		if err := s.readJSON(filepath.Join(s.dir, entry.Name()), &schema); err != nil {
			return nil, err
		}
		if strings.TrimSpace(schema.Name) == "" {
			s.logger.Sugar().With("file_name", entry.Name()).Warn("skipping file without a table name")
			continue
		}
		schemas = append(schemas, schema)
	}
	sort.Slice(schemas, func(i, j int) bool {
		return strings.ToLower(schemas[i].Name) < strings.ToLower(schemas[j].Name)
	})
	return schemas, nil
}

func (s *FileStorage) writeJSON(path string, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", jsondb.ErrStorage, s.dir, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %w", jsondb.ErrStorage, path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %w", jsondb.ErrStorage, path, err)
	}
	s.logger.Sugar().With("file_name", path, "bytes", len(data)).Debug("wrote file")
	return nil
}

// readJSON decodes numbers as json.Number so integers survive unchanged.
// A missing file is reported as fs.ErrNotExist.
func (s *FileStorage) readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return fmt.Errorf("%w: reading %s: %w", jsondb.ErrStorage, path, err)
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: decoding %s: %w", jsondb.ErrStorage, path, err)
	}
	return nil
}

func (s *FileStorage) remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: removing %s: %w", jsondb.ErrStorage, path, err)
	}
	s.logger.Sugar().With("file_name", path).Debug("removed file")
	return nil
}
