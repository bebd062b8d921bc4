package storage

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

// TableManager owns the table cache. Tables stay cached until dropped.
type TableManager struct {
	files  *FileStorage
	tables map[string]*jsondb.Table
	logger *zap.Logger
}

func NewTableManager(logger *zap.Logger, files *FileStorage) *TableManager {
	return &TableManager{
		files:  files,
		tables: make(map[string]*jsondb.Table),
		logger: logger,
	}
}

func cacheKey(name string) string {
	return strings.ToLower(name)
}

// Create persists the schema and an empty data file of a new table.
func (m *TableManager) Create(aTable *jsondb.Table) error {
	if err := m.CheckAvailable(aTable.Name); err != nil {
		return err
	}

	m.logger.Sugar().With("name", aTable.Name).Debug("creating table")

	if err := m.SaveSchema(aTable); err != nil {
		return err
	}
	if err := m.SaveRows(aTable); err != nil {
		return err
	}
	m.tables[cacheKey(aTable.Name)] = aTable
	return nil
}

// CheckAvailable fails when a table of that name is cached or when its
// schema or data file is already on disk.
func (m *TableManager) CheckAvailable(name string) error {
	if _, ok := m.tables[cacheKey(name)]; ok {
		return fmt.Errorf("%w: %s", jsondb.ErrTableAlreadyExists, name)
	}
	exists, err := m.files.SchemaExists(name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", jsondb.ErrTableAlreadyExists, name)
	}
	exists, err = m.files.DataExists(name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: data file of table %s is already in use", jsondb.ErrTableAlreadyExists, name)
	}
	return nil
}

// Get returns the cached table or loads it from disk, rebuilding its
// indexes from the loaded rows.
func (m *TableManager) Get(name string) (*jsondb.Table, error) {
	if aTable, ok := m.tables[cacheKey(name)]; ok {
		return aTable, nil
	}

	schema, err := m.files.ReadSchema(name)
	if err != nil {
		return nil, err
	}
	aTable, err := decodeSchema(schema)
	if err != nil {
		return nil, err
	}

	stored, err := m.files.ReadRows(name)
	if err != nil {
		return nil, err
	}
	aTable.Rows = make([]jsondb.Row, 0, len(stored))
	for i, s := range stored {
		aRow, err := decodeRow(aTable.Columns, s)
		if err != nil {
			return nil, fmt.Errorf("%w: table %s row %d: %w", jsondb.ErrStorage, aTable.Name, i, err)
		}
		aTable.Rows = append(aTable.Rows, aRow)
	}
	for _, idx := range aTable.Indexes {
		idx.Rebuild(aTable.Rows)
	}

	m.logger.Sugar().With(
		"name", aTable.Name,
		"rows", len(aTable.Rows),
		"indexes", len(aTable.Indexes),
	).Debug("loaded table")

	m.tables[cacheKey(aTable.Name)] = aTable
	return aTable, nil
}

// Drop removes every file of the table and evicts it from the cache.
func (m *TableManager) Drop(name string) error {
	aTable, err := m.Get(name)
	if err != nil {
		return err
	}

	m.logger.Sugar().With("name", aTable.Name).Debug("dropping table")

	indexes := make([]string, 0, len(aTable.Indexes))
	for _, idx := range aTable.Indexes {
		indexes = append(indexes, idx.Name)
	}
	delete(m.tables, cacheKey(name))
	return m.files.DeleteTable(aTable.Name, indexes)
}

// List returns the names of all tables on disk, sorted.
func (m *TableManager) List() ([]string, error) {
	schemas, err := m.files.ListSchemas()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(schemas))
	for _, schema := range schemas {
		names = append(names, schema.Name)
	}
	return names, nil
}

// Cached returns the loaded tables sorted by name.
func (m *TableManager) Cached() []*jsondb.Table {
	tables := make([]*jsondb.Table, 0, len(m.tables))
	for _, aTable := range m.tables {
		tables = append(tables, aTable)
	}
	sort.Slice(tables, func(i, j int) bool {
		return cacheKey(tables[i].Name) < cacheKey(tables[j].Name)
	})
	return tables
}

func (m *TableManager) SaveSchema(aTable *jsondb.Table) error {
	return m.files.WriteSchema(encodeSchema(aTable))
}

func (m *TableManager) SaveRows(aTable *jsondb.Table) error {
	return m.files.WriteRows(aTable.Name, encodeRows(aTable))
}
