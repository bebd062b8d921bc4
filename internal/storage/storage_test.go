package storage

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

var (
	gen = newDataGen(uint64(time.Now().Unix()))

	testColumns = []jsondb.Column{
		{Name: "id", Type: jsondb.TypeInt, PrimaryKey: true},
		{Name: "email", Type: jsondb.TypeVarchar, MaxLength: 255, Unique: true},
		{Name: "name", Type: jsondb.TypeVarchar, MaxLength: 50, NotNull: true},
		{Name: "age", Type: jsondb.TypeInt},
		{Name: "verified", Type: jsondb.TypeBoolean},
		{Name: "balance", Type: jsondb.TypeDecimal},
		{Name: "created", Type: jsondb.TypeDatetime},
	}
)

type dataGen struct {
	*gofakeit.Faker
}

func newDataGen(seed uint64) *dataGen {
	g := dataGen{
		Faker: gofakeit.New(seed),
	}

	return &g
}

func (g *dataGen) Row(id int64) jsondb.Row {
	return jsondb.NewRow(
		[]string{"id", "email", "name", "age", "verified", "balance", "created"},
		[]jsondb.Value{
			jsondb.IntValue(id),
			jsondb.TextValue(g.Email()),
			jsondb.TextValue(g.FirstName()),
			jsondb.IntValue(int64(g.IntRange(18, 100))),
			jsondb.BoolValue(g.Bool()),
			jsondb.DecimalValue(decimal.NewFromInt(int64(g.IntRange(0, 100000))).Shift(-2)),
			jsondb.TimestampValue(g.PastDate().Truncate(time.Second)),
		},
	)
}

// Rows generates rows with ids 1..number and distinct emails.
func (g *dataGen) Rows(number int) []jsondb.Row {
	var (
		emails = map[string]struct{}{}
		rows   = make([]jsondb.Row, 0, number)
	)
	for i := range number {
		aRow := g.Row(int64(i + 1))
		_, ok := emails[aRow.Get("email").String()]
		for ok {
			aRow = g.Row(int64(i + 1))
			_, ok = emails[aRow.Get("email").String()]
		}
		emails[aRow.Get("email").String()] = struct{}{}
		rows = append(rows, aRow)
	}
	return rows
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	return New(zap.NewNop(), t.TempDir(), opts...)
}

func newTestTable(t *testing.T, e *Engine, name string) *jsondb.Table {
	t.Helper()

	columns := append([]jsondb.Column(nil), testColumns...)
	require.NoError(t, e.CreateTable(jsondb.NewTable(name, columns)))

	aTable, err := e.GetTable(name)
	require.NoError(t, err)
	return aTable
}

func row(names []string, values ...jsondb.Value) jsondb.Row {
	return jsondb.NewRow(names, values)
}

// assertIndexesConsistent checks that every position appears exactly once,
// under the key of the row's current value.
func assertIndexesConsistent(t *testing.T, aTable *jsondb.Table) {
	t.Helper()

	for _, idx := range aTable.Indexes {
		entries := idx.Entries()
		total := 0
		for _, positions := range entries {
			total += len(positions)
		}
		assert.Equal(t, len(aTable.Rows), total, "index %s", idx.Name)
		for i, aRow := range aTable.Rows {
			assert.Contains(t, entries[aRow.Get(idx.ColumnName).IndexKey()], i, "index %s position %d", idx.Name, i)
		}
	}
}
