package parser

import (
	"testing"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

func TestParse_Update(t *testing.T) {
	t.Parallel()

	testCases := []testCase{
		{
			"UPDATE without SET fails",
			"UPDATE t name = 'a'",
			nil,
			`at UPDATE: expected SET, got IDENTIFIER "name"`,
		},
		{
			"UPDATE without assignment fails",
			"UPDATE t SET",
			nil,
			"at SET: expected IDENTIFIER, got end of input",
		},
		{
			"UPDATE with comparison instead of assignment fails",
			"UPDATE t SET a != 1",
			nil,
			`at SET: expected '=', got '!=' "!="`,
		},
		{
			"UPDATE all rows",
			"UPDATE t SET name = 'bob', age = 30",
			jsondb.UpdateStatement{
				Table: "t",
				Assignments: []jsondb.Assignment{
					{Column: "name", Value: literal(jsondb.TextValue("bob"))},
					{Column: "age", Value: literal(jsondb.IntValue(30))},
				},
			},
			"",
		},
		{
			"UPDATE with WHERE and column operand",
			"UPDATE t SET nickname = name WHERE id = 1",
			jsondb.UpdateStatement{
				Table: "t",
				Assignments: []jsondb.Assignment{
					{Column: "nickname", Value: jsondb.ColumnOperand(column("name"))},
				},
				Where: cond(column("id"), jsondb.Eq, literal(jsondb.IntValue(1))),
			},
			"",
		},
	}

	runTestCases(t, testCases)
}
