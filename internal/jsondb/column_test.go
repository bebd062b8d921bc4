package jsondb

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumn_Convert(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		column   Column
		value    Value
		expected string
		err      string
	}{
		{
			"int from int",
			Column{Name: "id", Type: TypeInt},
			IntValue(7),
			"7",
			"",
		},
		{
			"int from text",
			Column{Name: "id", Type: TypeInt},
			TextValue("12"),
			"12",
			"",
		},
		{
			"int from fractional decimal",
			Column{Name: "id", Type: TypeInt},
			DecimalValue(decimal.RequireFromString("1.5")),
			"",
			`cannot convert 1.5 to INT for column "id"`,
		},
		{
			"varchar from int",
			Column{Name: "name", Type: TypeVarchar},
			IntValue(12),
			"12",
			"",
		},
		{
			"boolean from text",
			Column{Name: "active", Type: TypeBoolean},
			TextValue("false"),
			"false",
			"",
		},
		{
			"boolean from text that is not a boolean",
			Column{Name: "active", Type: TypeBoolean},
			TextValue("maybe"),
			"",
			`cannot convert 'maybe' to BOOLEAN for column "active"`,
		},
		{
			"datetime from text",
			Column{Name: "created", Type: TypeDatetime},
			TextValue("2024-01-02 03:04:05"),
			"2024-01-02 03:04:05",
			"",
		},
		{
			"decimal from int",
			Column{Name: "price", Type: TypeDecimal},
			IntValue(3),
			"3",
			"",
		},
		{
			"null stays null",
			Column{Name: "price", Type: TypeDecimal, NotNull: true},
			NullValue(),
			"NULL",
			"",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := tc.column.Convert(tc.value)
			if tc.err != "" {
				require.Error(t, err)
				assert.Equal(t, tc.err, err.Error())
				return
			}
			require.NoError(t, err)
			assert.True(t, v.IsNull() || v.Kind() == tc.column.Type.Kind())
			assert.Equal(t, tc.expected, v.String())
		})
	}
}

func TestColumn_Validate(t *testing.T) {
	t.Parallel()

	name := Column{Name: "name", Type: TypeVarchar, MaxLength: 3, NotNull: true}

	assert.NoError(t, name.Validate(TextValue("abc")))
	assert.NoError(t, name.Validate(TextValue("äöü")), "length counts characters, not bytes")

	err := name.Validate(TextValue("abcd"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConstraintViolation))
	assert.True(t, errors.Is(err, ErrStorage))
	assert.Equal(t, `value for column "name" exceeds maximum VARCHAR length of 3`, err.Error())

	err = name.Validate(NullValue())
	require.Error(t, err)
	assert.Equal(t, `NOT NULL constraint failed for column "name"`, err.Error())

	err = Column{Name: "id", Type: TypeInt, PrimaryKey: true}.Validate(NullValue())
	require.Error(t, err)
	assert.Equal(t, `PRIMARY KEY column "id" cannot be NULL`, err.Error())

	err = Column{Name: "id", Type: TypeInt}.Validate(TextValue("x"))
	require.Error(t, err)
	assert.Equal(t, `column "id" expects INT, got TEXT value 'x'`, err.Error())

	assert.NoError(t, Column{Name: "bio", Type: TypeVarchar}.Validate(TextValue("unbounded text")))
}

func TestParseDataType(t *testing.T) {
	t.Parallel()

	dataType, err := ParseDataType("varchar")
	require.NoError(t, err)
	assert.Equal(t, TypeVarchar, dataType)

	_, err = ParseDataType("BLOB")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestColumn_Definition(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "id INT PRIMARY KEY", Column{Name: "id", Type: TypeInt, PrimaryKey: true}.Definition())
	assert.Equal(t, "email VARCHAR(255) UNIQUE NOT NULL", Column{Name: "email", Type: TypeVarchar, MaxLength: 255, Unique: true, NotNull: true}.Definition())
}
