package storage

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

// schemaFile is the content of <table>_schema.json.
type schemaFile struct {
	Name    string       `json:"name"`
	Columns []columnFile `json:"columns"`
	Indexes []indexFile  `json:"indexes"`
}

type columnFile struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	MaxLength  int    `json:"max_length,omitempty"`
	PrimaryKey bool   `json:"primary_key"`
	Unique     bool   `json:"unique"`
	NotNull    bool   `json:"not_null"`
}

type indexFile struct {
	Name   string `json:"name"`
	Table  string `json:"table"`
	Column string `json:"column"`
}

func encodeSchema(aTable *jsondb.Table) schemaFile {
	schema := schemaFile{
		Name:    aTable.Name,
		Columns: make([]columnFile, 0, len(aTable.Columns)),
		Indexes: make([]indexFile, 0, len(aTable.Indexes)),
	}
	for _, aColumn := range aTable.Columns {
		schema.Columns = append(schema.Columns, columnFile{
			Name:       aColumn.Name,
			Type:       aColumn.Type.String(),
			MaxLength:  aColumn.MaxLength,
			PrimaryKey: aColumn.PrimaryKey,
			Unique:     aColumn.Unique,
			NotNull:    aColumn.NotNull,
		})
	}
	for _, idx := range aTable.Indexes {
		schema.Indexes = append(schema.Indexes, indexFile{
			Name:   idx.Name,
			Table:  idx.TableName,
			Column: idx.ColumnName,
		})
	}
	return schema
}

// decodeSchema builds a table with empty indexes from a schema file.
func decodeSchema(schema schemaFile) (*jsondb.Table, error) {
	columns := make([]jsondb.Column, 0, len(schema.Columns))
	for _, c := range schema.Columns {
		dataType, err := jsondb.ParseDataType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("table %s column %s: %w", schema.Name, c.Name, err)
		}
		columns = append(columns, jsondb.Column{
			Name:       c.Name,
			Type:       dataType,
			MaxLength:  c.MaxLength,
			PrimaryKey: c.PrimaryKey,
			Unique:     c.Unique,
			NotNull:    c.NotNull,
		})
	}
	aTable := jsondb.NewTable(schema.Name, columns)
	for _, i := range schema.Indexes {
		aTable.Indexes = append(aTable.Indexes, jsondb.NewIndex(i.Name, schema.Name, i.Column))
	}
	return aTable, nil
}

func encodeRows(aTable *jsondb.Table) []map[string]any {
	rows := make([]map[string]any, 0, len(aTable.Rows))
	for _, aRow := range aTable.Rows {
		encoded := make(map[string]any, len(aTable.Columns))
		for _, aColumn := range aTable.Columns {
			encoded[aColumn.Name] = aRow.Get(aColumn.Name).ToJSON()
		}
		rows = append(rows, encoded)
	}
	return rows
}

// decodeRow converts stored scalars to the declared column types. Keys that
// are not columns are dropped.
func decodeRow(columns []jsondb.Column, stored map[string]any) (jsondb.Row, error) {
	lowered := make(map[string]any, len(stored))
	for k, v := range stored {
		lowered[strings.ToLower(k)] = v
	}

	aRow := jsondb.Row{}
	for _, aColumn := range columns {
		raw, ok := stored[aColumn.Name]
		if !ok {
			raw = lowered[strings.ToLower(aColumn.Name)]
		}
		v, err := valueFromJSON(raw)
		if err != nil {
			return jsondb.Row{}, fmt.Errorf("column %s: %w", aColumn.Name, err)
		}
		converted, err := aColumn.Convert(v)
		if err != nil {
			return jsondb.Row{}, err
		}
		aRow.Set(aColumn.Name, converted)
	}
	return aRow, nil
}

func valueFromJSON(raw any) (jsondb.Value, error) {
	switch v := raw.(type) {
	case nil:
		return jsondb.NullValue(), nil
	case bool:
		return jsondb.BoolValue(v), nil
	case string:
		return jsondb.TextValue(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return jsondb.IntValue(i), nil
		}
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return jsondb.Value{}, fmt.Errorf("invalid number %s", v)
		}
		return jsondb.DecimalValue(d), nil
	case float64:
		return jsondb.DecimalValue(decimal.NewFromFloat(v)), nil
	case int64:
		return jsondb.IntValue(v), nil
	}
	return jsondb.Value{}, fmt.Errorf("unsupported stored value %v (%T)", raw, raw)
}
