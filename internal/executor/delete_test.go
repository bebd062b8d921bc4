package executor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

func TestDeleteExecutor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		sql       string
		affected  int
		remaining [][]any
	}{
		{"by primary key", "DELETE FROM accounts WHERE id = 2", 1, [][]any{{int64(1)}, {int64(3)}}},
		{"no match", "DELETE FROM accounts WHERE id = 999", 0, [][]any{{int64(1)}, {int64(2)}, {int64(3)}}},
		{"compound predicate", "DELETE FROM accounts WHERE balance < 60 OR owner = 'ann' AND bonus > 1", 3, [][]any{}},
		{"null predicate", "DELETE FROM accounts WHERE email = NULL", 1, [][]any{{int64(1)}, {int64(2)}}},
		{"all rows", "DELETE FROM accounts", 3, [][]any{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			db := newAccountsDB(t)

			result := db.mustExec(t, tc.sql)
			assert.Equal(t, tc.affected, result.RowsAffected)
			assert.Equal(t, tc.remaining, values(db.mustExec(t, "SELECT id FROM accounts")))

			aTable, err := db.engine.GetTable("accounts")
			require.NoError(t, err)
			for _, idx := range aTable.Indexes {
				for i, aRow := range aTable.Rows {
					assert.Equal(t, []int{i}, idx.Lookup(aRow.Get(idx.ColumnName)))
				}
			}
		})
	}
}

func TestDeleteExecutor_NoMatchScenario(t *testing.T) {
	t.Parallel()

	db := newAccountsDB(t)

	result := db.mustExec(t, "DELETE FROM accounts WHERE id = 999")
	assert.True(t, result.Success)
	assert.Equal(t, 0, result.RowsAffected)
	assert.Equal(t, "0 row(s) deleted", result.Message)
	assert.Len(t, db.mustExec(t, "SELECT * FROM accounts").Rows, 3)

	result = db.exec(t, "DELETE FROM accounts WHERE nope = 1")
	assert.ErrorIs(t, result.Err, jsondb.ErrColumnNotFound)
}
