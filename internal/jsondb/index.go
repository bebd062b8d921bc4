package jsondb

import "slices"

// Index is a hash index mapping a column value to the positions of the rows
// holding it. Null values are keyed by NullIndexKey.
type Index struct {
	Name       string
	TableName  string
	ColumnName string
	entries    map[string][]int
}

func NewIndex(name, table, column string) *Index {
	return &Index{
		Name:       name,
		TableName:  table,
		ColumnName: column,
		entries:    make(map[string][]int),
	}
}

func (i *Index) Info() IndexInfo {
	return IndexInfo{Name: i.Name, Table: i.TableName, Column: i.ColumnName}
}

func (i *Index) Add(v Value, position int) {
	key := v.IndexKey()
	i.entries[key] = append(i.entries[key], position)
}

func (i *Index) Remove(v Value, position int) {
	key := v.IndexKey()
	positions := i.entries[key]
	for j, p := range positions {
		if p == position {
			positions = slices.Delete(positions, j, j+1)
			break
		}
	}
	if len(positions) == 0 {
		delete(i.entries, key)
		return
	}
	i.entries[key] = positions
}

// Lookup returns the positions of rows whose indexed value has the same key as v.
func (i *Index) Lookup(v Value) []int {
	return slices.Clone(i.entries[v.IndexKey()])
}

// Rebuild recomputes every entry from the rows.
func (i *Index) Rebuild(rows []Row) {
	i.entries = make(map[string][]int, len(rows))
	for position, aRow := range rows {
		i.Add(aRow.Get(i.ColumnName), position)
	}
}

// Entries returns a copy of the key to positions mapping.
func (i *Index) Entries() map[string][]int {
	entries := make(map[string][]int, len(i.entries))
	for k, positions := range i.entries {
		entries[k] = slices.Clone(positions)
	}
	return entries
}

// Keys returns the number of distinct keys.
func (i *Index) Keys() int {
	return len(i.entries)
}
