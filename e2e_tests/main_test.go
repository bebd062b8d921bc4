package e2etests

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/suite"

	_ "github.com/RichardKnop/jsondb"
)

var gen = newDataGen(uint64(time.Now().Unix()))

type TestSuite struct {
	suite.Suite
	dir string
	db  *sql.DB
}

func TestEndToEnd(t *testing.T) {
	suite.Run(t, new(TestSuite))
}

func (s *TestSuite) SetupTest() {
	s.dir = s.T().TempDir()

	s.db = s.reopenPool()
}

func (s *TestSuite) reopenPool() *sql.DB {
	db, err := sql.Open("jsondb", s.dir+"?log_level=error")
	s.Require().NoError(err)
	return db
}

func (s *TestSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
}

func (s *TestSuite) execQuery(query string, expectedRowsAffected int) {
	aResult, err := s.db.ExecContext(context.Background(), query)
	s.Require().NoError(err, query)
	rowsAffected, err := aResult.RowsAffected()
	s.Require().NoError(err)
	s.Require().Equal(expectedRowsAffected, int(rowsAffected), query)
}

func (s *TestSuite) countRows(table string) int {
	rows, err := s.db.Query("SELECT * FROM " + table)
	s.Require().NoError(err)
	defer rows.Close()

	var count int
	for rows.Next() {
		count += 1
	}
	s.Require().NoError(rows.Err())
	return count
}

type dataGen struct {
	*gofakeit.Faker
}

func newDataGen(seed uint64) *dataGen {
	return &dataGen{gofakeit.New(seed)}
}

type fakeUser struct {
	ID    int64
	Name  string
	Email string
	Age   int64
}

// Users returns n users with ids 1..n and distinct emails.
func (g *dataGen) Users(n int) []fakeUser {
	var (
		users  = make([]fakeUser, 0, n)
		emails = make(map[string]struct{}, n)
	)
	for len(users) < n {
		email := g.Email()
		if _, ok := emails[email]; ok {
			continue
		}
		emails[email] = struct{}{}
		users = append(users, fakeUser{
			ID:    int64(len(users) + 1),
			Name:  g.FirstName(),
			Email: email,
			Age:   int64(g.IntRange(18, 90)),
		})
	}
	return users
}

// quote renders s as a SQL string literal.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
