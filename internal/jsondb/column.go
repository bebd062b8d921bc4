package jsondb

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type DataType int

const (
	TypeInt DataType = iota + 1
	TypeVarchar
	TypeBoolean
	TypeDatetime
	TypeDecimal
)

func (t DataType) String() string {
	switch t {
	case TypeInt:
		return "INT"
	case TypeVarchar:
		return "VARCHAR"
	case TypeBoolean:
		return "BOOLEAN"
	case TypeDatetime:
		return "DATETIME"
	case TypeDecimal:
		return "DECIMAL"
	default:
		return "UNKNOWN"
	}
}

// Kind is the value kind cells of this type hold.
func (t DataType) Kind() Kind {
	switch t {
	case TypeInt:
		return KindInt
	case TypeVarchar:
		return KindText
	case TypeBoolean:
		return KindBool
	case TypeDatetime:
		return KindTimestamp
	case TypeDecimal:
		return KindDecimal
	default:
		return KindNull
	}
}

// ParseDataType maps a type name to a DataType, case-insensitively.
func ParseDataType(name string) (DataType, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "INT":
		return TypeInt, nil
	case "VARCHAR":
		return TypeVarchar, nil
	case "BOOLEAN":
		return TypeBoolean, nil
	case "DATETIME":
		return TypeDatetime, nil
	case "DECIMAL":
		return TypeDecimal, nil
	}
	return 0, fmt.Errorf("%w: data type %q", ErrUnsupported, name)
}

type Column struct {
	Name       string
	Type       DataType
	MaxLength  int // VARCHAR only, 0 means unbounded
	PrimaryKey bool
	Unique     bool
	NotNull    bool
}

// Nullable is false for NOT NULL and PRIMARY KEY columns.
func (c Column) Nullable() bool {
	return !c.NotNull && !c.PrimaryKey
}

// IsValidValue checks v against the column type. Null is always type-valid,
// nullability is checked separately.
func (c Column) IsValidValue(v Value) bool {
	if v.IsNull() {
		return true
	}
	if v.Kind() != c.Type.Kind() {
		return false
	}
	if c.Type == TypeVarchar && c.MaxLength > 0 {
		s, _ := v.Text()
		return utf8.RuneCountInString(s) <= c.MaxLength
	}
	return true
}

// Validate returns a constraint error describing why v cannot be stored in
// the column. Uniqueness is not checked here.
func (c Column) Validate(v Value) error {
	if v.IsNull() {
		if c.PrimaryKey {
			return ConstraintErrorf("PRIMARY KEY column %q cannot be NULL", c.Name)
		}
		if c.NotNull {
			return ConstraintErrorf("NOT NULL constraint failed for column %q", c.Name)
		}
		return nil
	}
	if v.Kind() != c.Type.Kind() {
		return ConstraintErrorf("column %q expects %s, got %s value %s", c.Name, c.Type, v.Kind(), v.SQL())
	}
	if !c.IsValidValue(v) {
		return ConstraintErrorf("value for column %q exceeds maximum VARCHAR length of %d", c.Name, c.MaxLength)
	}
	return nil
}

// Convert converts a literal to the column type. Null converts to null.
func (c Column) Convert(v Value) (Value, error) {
	if v.IsNull() {
		return v, nil
	}
	converted, ok := Coerce(v, c.Type.Kind())
	if !ok {
		return Value{}, fmt.Errorf("cannot convert %s to %s for column %q", v.SQL(), c.Type, c.Name)
	}
	return converted, nil
}

// Definition renders the column as it appears in CREATE TABLE.
func (c Column) Definition() string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteString(" ")
	b.WriteString(c.Type.String())
	if c.Type == TypeVarchar && c.MaxLength > 0 {
		fmt.Fprintf(&b, "(%d)", c.MaxLength)
	}
	if c.PrimaryKey {
		b.WriteString(" PRIMARY KEY")
	}
	if c.Unique {
		b.WriteString(" UNIQUE")
	}
	if c.NotNull {
		b.WriteString(" NOT NULL")
	}
	return b.String()
}
