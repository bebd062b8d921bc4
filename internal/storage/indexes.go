package storage

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

// IndexManager keeps a table's hash indexes in step with its rows and
// persists them, one file per index.
type IndexManager struct {
	files  *FileStorage
	logger *zap.Logger
}

func NewIndexManager(logger *zap.Logger, files *FileStorage) *IndexManager {
	return &IndexManager{
		files:  files,
		logger: logger,
	}
}

// Create builds a new index from the current rows and attaches it to the
// table. Persisting is left to the caller.
func (m *IndexManager) Create(aTable *jsondb.Table, name, column string) (*jsondb.Index, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("index name cannot be empty")
	}
	if reservedIndexName(name) {
		return nil, fmt.Errorf("index name %q is reserved: it cannot be or end in _schema or _data", name)
	}
	aColumn, ok := aTable.Column(column)
	if !ok {
		return nil, fmt.Errorf("%w: %s in table %s", jsondb.ErrColumnNotFound, column, aTable.Name)
	}
	if _, ok := aTable.Index(name); ok {
		return nil, fmt.Errorf("%w: %s", jsondb.ErrIndexAlreadyExists, name)
	}
	// Another table's index can map to the same file name.
	exists, err := m.files.IndexExists(aTable.Name, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s, its file name is taken by another index", jsondb.ErrIndexAlreadyExists, name)
	}

	m.logger.Sugar().With("name", name, "table", aTable.Name, "column", aColumn.Name).Debug("creating index")

	idx := jsondb.NewIndex(name, aTable.Name, aColumn.Name)
	idx.Rebuild(aTable.Rows)
	aTable.Indexes = append(aTable.Indexes, idx)
	return idx, nil
}

// Drop detaches the index from the table and deletes its file.
func (m *IndexManager) Drop(aTable *jsondb.Table, name string) error {
	for i, idx := range aTable.Indexes {
		if !strings.EqualFold(idx.Name, name) {
			continue
		}
		m.logger.Sugar().With("name", idx.Name, "table", aTable.Name).Debug("dropping index")
		aTable.Indexes = append(aTable.Indexes[:i:i], aTable.Indexes[i+1:]...)
		return m.files.DeleteIndex(aTable.Name, idx.Name)
	}
	return fmt.Errorf("%w: %s", jsondb.ErrIndexNotFound, name)
}

// OnInsert records the row at position in every index.
func (m *IndexManager) OnInsert(aTable *jsondb.Table, position int) {
	aRow := aTable.Rows[position]
	for _, idx := range aTable.Indexes {
		idx.Add(aRow.Get(idx.ColumnName), position)
	}
}

// OnUpdate moves the position between keys of every index whose column
// value changed.
func (m *IndexManager) OnUpdate(aTable *jsondb.Table, position int, before, after jsondb.Row) {
	for _, idx := range aTable.Indexes {
		oldValue, newValue := before.Get(idx.ColumnName), after.Get(idx.ColumnName)
		if oldValue.IndexKey() == newValue.IndexKey() {
			continue
		}
		idx.Remove(oldValue, position)
		idx.Add(newValue, position)
	}
}

func (m *IndexManager) RebuildAll(aTable *jsondb.Table) {
	for _, idx := range aTable.Indexes {
		idx.Rebuild(aTable.Rows)
	}
	m.logger.Sugar().With("table", aTable.Name, "indexes", len(aTable.Indexes)).Debug("rebuilt indexes")
}

func (m *IndexManager) Save(aTable *jsondb.Table, idx *jsondb.Index) error {
	return m.files.WriteIndex(aTable.Name, idx.Name, idx.Entries())
}

func (m *IndexManager) SaveAll(aTable *jsondb.Table) error {
	for _, idx := range aTable.Indexes {
		if err := m.Save(aTable, idx); err != nil {
			return err
		}
	}
	return nil
}
