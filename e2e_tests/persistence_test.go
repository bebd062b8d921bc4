package e2etests

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/RichardKnop/jsondb/internal/database"
)

func (s *TestSuite) insertUsers(users []fakeUser) {
	for _, aUser := range users {
		s.execQuery(fmt.Sprintf(
			`INSERT INTO users VALUES (%d, %s, %s, %d, '2024-01-02 15:30:27')`,
			aUser.ID,
			quote(aUser.Name),
			quote(aUser.Email),
			aUser.Age,
		), 1)
	}
}

func (s *TestSuite) TestPersistence() {
	s.execQuery(createUsersTableSQL, 0)
	s.execQuery(`CREATE INDEX idx_users_age ON users (age)`, 0)

	users := gen.Users(50)
	s.insertUsers(users)
	s.Require().NoError(s.db.Close())

	s.Run("Data file holds one object per row", func() {
		data, err := os.ReadFile(filepath.Join(s.dir, "users_data.json"))
		s.Require().NoError(err)

		var stored []map[string]any
		s.Require().NoError(json.Unmarshal(data, &stored))
		s.Require().Len(stored, len(users))
		s.Equal(users[0].Email, stored[0]["email"])
		s.Equal("2024-01-02 15:30:27", stored[0]["created"])
	})

	s.Run("A fresh database reads the same rows", func() {
		var (
			ctx = context.Background()
			db  = database.New(zap.NewNop(), s.dir)
		)

		schema, err := db.TableSchema(ctx, "users")
		s.Require().NoError(err)
		s.Equal(len(users), schema.RowCount)
		s.Len(schema.Indexes, 2)

		result := db.ExecuteSQL(ctx, fmt.Sprintf("SELECT id, email FROM users WHERE age = %d ORDER BY id", users[7].Age))
		s.Require().True(result.Success, result.Error)
		s.Require().NotEmpty(result.Rows)

		var found bool
		for _, aRow := range result.Rows {
			id, _ := aRow.Get("id").Int()
			if id == users[7].ID {
				email, _ := aRow.Get("email").Text()
				s.Equal(users[7].Email, email)
				found = true
			}
		}
		s.True(found)
	})

	// TearDownTest closes the pool again.
	s.db = s.reopenPool()
}

func (s *TestSuite) TestConcurrentQueries() {
	s.execQuery(createUsersTableSQL, 0)

	users := gen.Users(100)
	s.insertUsers(users)

	var (
		wg         sync.WaitGroup
		workerPool = make(chan struct{}, 10)
		errs       = make(chan error, len(users))
	)

	for _, aUser := range users {
		workerPool <- struct{}{}
		wg.Add(1)

		go func(expected fakeUser) {
			defer func() {
				<-workerPool
				wg.Done()
			}()

			stmt, err := s.db.Prepare(fmt.Sprintf(`SELECT name, created FROM users WHERE id = %d`, expected.ID))
			if err != nil {
				errs <- err
				return
			}
			defer stmt.Close()

			var (
				name    string
				created time.Time
			)
			if err := stmt.QueryRow().Scan(&name, &created); err != nil {
				errs <- err
				return
			}
			if name != expected.Name {
				errs <- fmt.Errorf("user %d: expected name %q, got %q", expected.ID, expected.Name, name)
			}
		}(aUser)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		s.NoError(err)
	}

	s.Run("Concurrent writers", func() {
		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				_, err := s.db.Exec(fmt.Sprintf(`UPDATE users SET age = %d WHERE id = %d`, n, n+1))
				s.NoError(err)
			}(i)
		}
		wg.Wait()

		var age int64
		s.Require().NoError(s.db.QueryRow(`SELECT age FROM users WHERE id = 20`).Scan(&age))
		s.Equal(int64(19), age)
	})
}

func (s *TestSuite) TestUnsupported() {
	s.execQuery(createPeopleTableSQL, 0)

	s.Run("Transactions", func() {
		_, err := s.db.Begin()
		s.Require().Error(err)
		s.Equal("transactions are not supported", err.Error())
	})

	s.Run("Arguments", func() {
		_, err := s.db.Exec(`INSERT INTO people VALUES (1, 'ann', 30)`, 1)
		s.Require().Error(err)
	})

	s.Run("Syntax error", func() {
		_, err := s.db.Exec(`INSERT people VALUES (1, 'ann', 30)`)
		s.Require().Error(err)
		s.Contains(err.Error(), "syntax error at position 7")
	})
}
