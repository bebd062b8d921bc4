package parser

import (
	"testing"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

func TestParse_Delete(t *testing.T) {
	t.Parallel()

	testCases := []testCase{
		{
			"DELETE without FROM fails",
			"DELETE t",
			nil,
			`at DELETE: expected FROM, got IDENTIFIER "t"`,
		},
		{
			"DELETE all rows",
			"DELETE FROM t",
			jsondb.DeleteStatement{Table: "t"},
			"",
		},
		{
			"DELETE with WHERE",
			"DELETE FROM t WHERE id = 999",
			jsondb.DeleteStatement{
				Table: "t",
				Where: cond(column("id"), jsondb.Eq, literal(jsondb.IntValue(999))),
			},
			"",
		},
		{
			"DELETE with empty WHERE fails",
			"DELETE FROM t WHERE",
			nil,
			"at WHERE: expected IDENTIFIER, got end of input",
		},
	}

	runTestCases(t, testCases)
}
