package jsondb

import "strings"

type Table struct {
	Name    string
	Columns []Column
	Rows    []Row
	Indexes []*Index
}

func NewTable(name string, columns []Column) *Table {
	return &Table{
		Name:    name,
		Columns: columns,
	}
}

func (t *Table) ColumnIndex(name string) int {
	for i, aColumn := range t.Columns {
		if strings.EqualFold(aColumn.Name, name) {
			return i
		}
	}
	return -1
}

func (t *Table) Column(name string) (Column, bool) {
	i := t.ColumnIndex(name)
	if i < 0 {
		return Column{}, false
	}
	return t.Columns[i], true
}

func (t *Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, aColumn := range t.Columns {
		names = append(names, aColumn.Name)
	}
	return names
}

func (t *Table) PrimaryKey() (Column, bool) {
	for _, aColumn := range t.Columns {
		if aColumn.PrimaryKey {
			return aColumn, true
		}
	}
	return Column{}, false
}

func (t *Table) Index(name string) (*Index, bool) {
	for _, idx := range t.Indexes {
		if strings.EqualFold(idx.Name, name) {
			return idx, true
		}
	}
	return nil, false
}

// IndexOn returns the first index on the given column.
func (t *Table) IndexOn(column string) (*Index, bool) {
	for _, idx := range t.Indexes {
		if strings.EqualFold(idx.ColumnName, column) {
			return idx, true
		}
	}
	return nil, false
}

func (t *Table) Schema() TableSchema {
	schema := TableSchema{
		Name:     t.Name,
		Columns:  append([]Column(nil), t.Columns...),
		Indexes:  make([]IndexInfo, 0, len(t.Indexes)),
		RowCount: len(t.Rows),
	}
	for _, idx := range t.Indexes {
		schema.Indexes = append(schema.Indexes, idx.Info())
	}
	return schema
}

// TableSchema describes a table for introspection.
type TableSchema struct {
	Name     string
	Columns  []Column
	Indexes  []IndexInfo
	RowCount int
}

type IndexInfo struct {
	Name   string
	Table  string
	Column string
}

// PrimaryKeyIndexName is the name of the index created for a primary key.
func PrimaryKeyIndexName(table, column string) string {
	return "pk_" + table + "_" + column
}
