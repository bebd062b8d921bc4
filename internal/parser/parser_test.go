package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

type testCase struct {
	name     string
	sql      string
	expected jsondb.Statement
	err      string
}

func runTestCases(t *testing.T, testCases []testCase) {
	t.Helper()

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stmt, err := New().Parse(context.Background(), tc.sql)
			if tc.err != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, tc.err)
				var syntaxErr *jsondb.SyntaxError
				assert.True(t, errors.As(err, &syntaxErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, stmt)
		})
	}
}

func column(name string) jsondb.ColumnRef {
	return jsondb.ColumnRef{Name: name}
}

func qualified(table, name string) jsondb.ColumnRef {
	return jsondb.ColumnRef{Table: table, Name: name}
}

func literal(v jsondb.Value) jsondb.Operand {
	return jsondb.ValueOperand(v)
}

func cond(left jsondb.ColumnRef, op jsondb.Operator, right jsondb.Operand) *jsondb.Where {
	return jsondb.Leaf(jsondb.Condition{Left: left, Operator: op, Right: right})
}

func TestParse_Statement(t *testing.T) {
	t.Parallel()

	testCases := []testCase{
		{
			"empty input fails",
			"",
			nil,
			"at start of statement: expected SELECT, INSERT, UPDATE, DELETE, CREATE or DROP, got end of input",
		},
		{
			"unknown statement fails",
			"EXPLAIN SELECT 1",
			nil,
			`got IDENTIFIER "EXPLAIN"`,
		},
		{
			"trailing semicolon is accepted",
			"DROP TABLE t;",
			jsondb.DropTableStatement{Table: "t"},
			"",
		},
		{
			"tokens after the statement fail",
			"DROP TABLE t; DROP TABLE u",
			nil,
			`at end of statement: expected end of input, got DROP "DROP"`,
		},
		{
			"CREATE without TABLE or INDEX fails",
			"CREATE VIEW v",
			nil,
			"at CREATE: expected TABLE or INDEX",
		},
	}

	runTestCases(t, testCases)
}

func TestParse_ErrorPosition(t *testing.T) {
	t.Parallel()

	_, err := New().Parse(context.Background(), "SELECT a FROM 42")
	require.Error(t, err)

	var syntaxErr *jsondb.SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, 14, syntaxErr.Pos)
	assert.Equal(t, `syntax error at position 14: at FROM: expected IDENTIFIER, got NUMBER_LITERAL "42"`, err.Error())
}

func TestParse_Values(t *testing.T) {
	t.Parallel()

	stmt, err := New().Parse(context.Background(), "INSERT INTO t VALUES ('x', 12, 1.25, -3, TRUE, NULL, other, 99999999999999999999)")
	require.NoError(t, err)

	insert, ok := stmt.(jsondb.InsertStatement)
	require.True(t, ok)
	require.Len(t, insert.Values, 1)

	expected := []jsondb.Operand{
		literal(jsondb.TextValue("x")),
		literal(jsondb.IntValue(12)),
		literal(jsondb.DecimalValue(decimal.RequireFromString("1.25"))),
		literal(jsondb.IntValue(-3)),
		literal(jsondb.BoolValue(true)),
		literal(jsondb.NullValue()),
		jsondb.ColumnOperand(column("other")),
		literal(jsondb.DecimalValue(decimal.RequireFromString("99999999999999999999"))),
	}
	require.Len(t, insert.Values[0], len(expected))
	for i, anOperand := range expected {
		assert.True(t, anOperand.Equal(insert.Values[0][i]), "operand %d: %s", i, insert.Values[0][i])
	}
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	statements := []string{
		"SELECT * FROM users",
		"SELECT users.name AS n, orders.product FROM users LEFT JOIN orders ON users.id = orders.user_id WHERE users.age >= 18 AND orders.product != 'x' OR users.id = 1 ORDER BY n DESC, orders.product ASC",
		"SELECT a FROM t RIGHT JOIN u ON t.id = u.t_id FULL OUTER JOIN v ON u.id = v.u_id INNER JOIN w ON v.id = w.v_id",
		"INSERT INTO t (id, name, price) VALUES (1, 'it''s', 9.99), (2, NULL, -1)",
		"INSERT INTO t (price) VALUES (12.0), (3.50), (100.000)",
		"UPDATE t SET name = 'back\\slash', active = FALSE, copy = name WHERE id < 10",
		"DELETE FROM t WHERE name = 'a' OR name = 'b' OR name = 'c'",
		"CREATE TABLE t (id INT PRIMARY KEY, name VARCHAR(10) UNIQUE NOT NULL, bio VARCHAR, at DATETIME, price DECIMAL, ok BOOLEAN)",
		"DROP TABLE t",
		"CREATE INDEX idx_name ON t (name)",
		"DROP INDEX idx_name ON t",
	}

	for _, sql := range statements {
		t.Run(sql, func(t *testing.T) {
			first, err := New().Parse(context.Background(), sql)
			require.NoError(t, err)

			second, err := New().Parse(context.Background(), first.String())
			require.NoError(t, err, first.String())

			assert.Equal(t, first, second)
			assert.Equal(t, first.String(), second.String())
		})
	}
}

func TestParse_DecimalLiteralKeepsKind(t *testing.T) {
	t.Parallel()

	first, err := New().Parse(context.Background(), "INSERT INTO t (price) VALUES (12.0)")
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO t (price) VALUES (12.0)", first.String())

	second, err := New().Parse(context.Background(), first.String())
	require.NoError(t, err)

	before := first.(jsondb.InsertStatement).Values[0][0].Value
	after := second.(jsondb.InsertStatement).Values[0][0].Value
	assert.Equal(t, jsondb.KindDecimal, after.Kind())
	assert.True(t, before.Equal(after), "%s != %s", before, after)
}

func TestParse_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Parse(ctx, "SELECT * FROM t")
	assert.ErrorIs(t, err, context.Canceled)
}
