package jsondb

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies which variant of Value is populated.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindText
	KindBool
	KindTimestamp
	KindDecimal
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindInt:
		return "INT"
	case KindText:
		return "TEXT"
	case KindBool:
		return "BOOLEAN"
	case KindTimestamp:
		return "TIMESTAMP"
	case KindDecimal:
		return "DECIMAL"
	default:
		return "UNKNOWN"
	}
}

// NullIndexKey is the index key null values are stored under.
const NullIndexKey = "__NULL__"

// TimestampLayout is the canonical text form of a timestamp. Trailing zero
// fractional seconds are omitted.
const TimestampLayout = "2006-01-02 15:04:05.999999999"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Value is a single cell: null or one of int, text, bool, timestamp and decimal.
// The zero Value is null.
type Value struct {
	kind Kind
	i    int64
	s    string
	b    bool
	t    time.Time
	d    decimal.Decimal
}

func NullValue() Value                    { return Value{} }
func IntValue(v int64) Value              { return Value{kind: KindInt, i: v} }
func TextValue(v string) Value            { return Value{kind: KindText, s: v} }
func BoolValue(v bool) Value              { return Value{kind: KindBool, b: v} }
func DecimalValue(v decimal.Decimal) Value { return Value{kind: KindDecimal, d: v} }

// TimestampValue stores t in UTC.
func TimestampValue(t time.Time) Value {
	return Value{kind: KindTimestamp, t: t.UTC()}
}

// ParseTimestamp accepts RFC3339 and the common "YYYY-MM-DD[ HH:MM:SS]" forms.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as timestamp", s)
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Int() (int64, bool)               { return v.i, v.kind == KindInt }
func (v Value) Text() (string, bool)             { return v.s, v.kind == KindText }
func (v Value) Bool() (bool, bool)               { return v.b, v.kind == KindBool }
func (v Value) Timestamp() (time.Time, bool)     { return v.t, v.kind == KindTimestamp }
func (v Value) Decimal() (decimal.Decimal, bool) { return v.d, v.kind == KindDecimal }

// String renders the value the way it is displayed and compared as text.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindText:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTimestamp:
		return v.t.Format(TimestampLayout)
	case KindDecimal:
		return v.d.String()
	default:
		return "NULL"
	}
}

// SQL renders the value as a literal the parser reads back.
func (v Value) SQL() string {
	switch v.kind {
	case KindText:
		return quote(v.s)
	case KindTimestamp:
		return quote(v.String())
	case KindBool:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	case KindDecimal:
		// Keep the scale, and at least one fractional digit so the literal
		// does not read back as INT.
		places := -v.d.Exponent()
		if places < 1 {
			places = 1
		}
		return v.d.StringFixed(places)
	default:
		return v.String()
	}
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// IndexKey is the canonical hash index key of the value.
func (v Value) IndexKey() string {
	if v.IsNull() {
		return NullIndexKey
	}
	return v.String()
}

// Equal reports whether both values have the same kind and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindInt:
		return v.i == other.i
	case KindText:
		return v.s == other.s
	case KindBool:
		return v.b == other.b
	case KindTimestamp:
		return v.t.Equal(other.t)
	case KindDecimal:
		return v.d.Equal(other.d)
	}
	return false
}

// ToJSON returns the value in the shape it is persisted in data files.
// Decimals and timestamps are written as strings to keep them exact.
func (v Value) ToJSON() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindText:
		return v.s
	case KindBool:
		return v.b
	case KindTimestamp, KindDecimal:
		return v.String()
	default:
		return nil
	}
}

// GoValue returns the value as one of the types database/sql understands.
func (v Value) GoValue() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindText:
		return v.s
	case KindBool:
		return v.b
	case KindTimestamp:
		return v.t
	case KindDecimal:
		return v.d.String()
	default:
		return nil
	}
}

// Coerce converts v to the given kind when a lossless conversion exists.
func Coerce(v Value, kind Kind) (Value, bool) {
	if v.kind == kind {
		return v, true
	}
	if v.IsNull() || kind == KindNull {
		return Value{}, false
	}
	switch kind {
	case KindText:
		return TextValue(v.String()), true
	case KindInt:
		switch v.kind {
		case KindDecimal:
			if v.d.IsInteger() && v.d.Cmp(decimal.NewFromInt(v.d.IntPart())) == 0 {
				return IntValue(v.d.IntPart()), true
			}
		case KindText:
			if i, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64); err == nil {
				return IntValue(i), true
			}
		case KindBool:
			if v.b {
				return IntValue(1), true
			}
			return IntValue(0), true
		}
	case KindDecimal:
		switch v.kind {
		case KindInt:
			return DecimalValue(decimal.NewFromInt(v.i)), true
		case KindText:
			if d, err := decimal.NewFromString(strings.TrimSpace(v.s)); err == nil {
				return DecimalValue(d), true
			}
		}
	case KindBool:
		switch v.kind {
		case KindText:
			switch strings.ToLower(strings.TrimSpace(v.s)) {
			case "true", "1":
				return BoolValue(true), true
			case "false", "0":
				return BoolValue(false), true
			}
		case KindInt:
			switch v.i {
			case 0:
				return BoolValue(false), true
			case 1:
				return BoolValue(true), true
			}
		}
	case KindTimestamp:
		if v.kind == KindText {
			if t, err := ParseTimestamp(v.s); err == nil {
				return TimestampValue(t), true
			}
		}
	}
	return Value{}, false
}

// Compare orders left against right. Right is coerced to the kind of left
// when possible, ints and decimals compare numerically, and anything else
// falls back to comparing the text forms. Null sorts before every other value.
func Compare(left, right Value) int {
	switch {
	case left.IsNull() && right.IsNull():
		return 0
	case left.IsNull():
		return -1
	case right.IsNull():
		return 1
	}

	if isNumeric(left) && isNumeric(right) && left.kind != right.kind {
		l, _ := Coerce(left, KindDecimal)
		r, _ := Coerce(right, KindDecimal)
		return l.d.Cmp(r.d)
	}

	if coerced, ok := Coerce(right, left.kind); ok {
		return compareSameKind(left, coerced)
	}
	return strings.Compare(left.String(), right.String())
}

func isNumeric(v Value) bool {
	return v.kind == KindInt || v.kind == KindDecimal
}

func compareSameKind(left, right Value) int {
	switch left.kind {
	case KindInt:
		switch {
		case left.i < right.i:
			return -1
		case left.i > right.i:
			return 1
		}
		return 0
	case KindText:
		return strings.Compare(left.s, right.s)
	case KindBool:
		switch {
		case left.b == right.b:
			return 0
		case !left.b:
			return -1
		}
		return 1
	case KindTimestamp:
		return left.t.Compare(right.t)
	case KindDecimal:
		return left.d.Cmp(right.d)
	}
	return 0
}
