package e2etests

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

type person struct {
	ID   int64
	Name string
	Age  sql.NullInt64
}

func (s *TestSuite) collectPeople(query string) []person {
	rows, err := s.db.QueryContext(context.Background(), query)
	s.Require().NoError(err)
	defer rows.Close()

	var people []person
	for rows.Next() {
		var aPerson person
		err := rows.Scan(&aPerson.ID, &aPerson.Name, &aPerson.Age)
		s.Require().NoError(err)
		people = append(people, aPerson)
	}
	s.Require().NoError(rows.Err())
	return people
}

func (s *TestSuite) TestDuplicatePrimaryKey() {
	s.execQuery(createPeopleTableSQL, 0)
	s.execQuery(`INSERT INTO people VALUES (1, 'ann', 30)`, 1)

	aResult, err := s.db.Exec(`INSERT INTO people VALUES (1, 'bob', 40)`)
	s.Require().Error(err)
	s.ErrorIs(err, jsondb.ErrConstraintViolation)
	s.Equal(`PRIMARY KEY violation: duplicate value 1 for column "id" in table people`, err.Error())
	s.Nil(aResult)

	s.Equal([]person{{ID: 1, Name: "ann", Age: sql.NullInt64{Int64: 30, Valid: true}}}, s.collectPeople(`SELECT * FROM people`))
}

func (s *TestSuite) TestRangeFilter() {
	s.execQuery(createPeopleTableSQL, 0)
	s.execQuery(`INSERT INTO people VALUES (1, 'ann', 25), (2, 'bob', 30), (3, 'cid', 35), (4, 'dan', NULL)`, 4)

	people := s.collectPeople(`SELECT * FROM people WHERE age > 25 AND age < 35`)
	s.Equal([]person{{ID: 2, Name: "bob", Age: sql.NullInt64{Int64: 30, Valid: true}}}, people)

	s.Run("Null never satisfies an ordering comparison", func() {
		people := s.collectPeople(`SELECT * FROM people WHERE age <= 25 OR age >= 35 ORDER BY id DESC`)
		s.Require().Len(people, 2)
		s.Equal(int64(3), people[0].ID)
		s.Equal(int64(1), people[1].ID)
	})

	s.Run("Projection with alias", func() {
		rows, err := s.db.Query(`SELECT name AS who, age FROM people WHERE name = 'cid'`)
		s.Require().NoError(err)
		defer rows.Close()

		columns, err := rows.Columns()
		s.Require().NoError(err)
		s.Equal([]string{"who", "age"}, columns)

		s.Require().True(rows.Next())
		var (
			who string
			age int64
		)
		s.Require().NoError(rows.Scan(&who, &age))
		s.Equal("cid", who)
		s.Equal(int64(35), age)
		s.False(rows.Next())
	})
}

type userOrder struct {
	Name    string
	Product sql.NullString
	Total   decimal.NullDecimal
}

func (s *TestSuite) collectUserOrders(query string) []userOrder {
	rows, err := s.db.QueryContext(context.Background(), query)
	s.Require().NoError(err)
	defer rows.Close()

	var results []userOrder
	for rows.Next() {
		var aResult userOrder
		err := rows.Scan(&aResult.Name, &aResult.Product, &aResult.Total)
		s.Require().NoError(err)
		results = append(results, aResult)
	}
	s.Require().NoError(rows.Err())
	return results
}

func (s *TestSuite) TestJoins() {
	s.execQuery(createUsersTableSQL, 0)
	s.execQuery(createOrdersTableSQL, 0)
	s.execQuery(createOrdersUserIndexSQL, 0)

	s.execQuery(`INSERT INTO users (id, name, email) VALUES (1, 'ann', 'ann@example.com'), (2, 'bob', 'bob@example.com'), (3, 'cid', NULL)`, 3)
	s.execQuery(`INSERT INTO orders VALUES (10, 1, 'book', 12.50), (11, 2, 'pen', 1.99), (12, 1, 'lamp', 30)`, 3)

	s.Run("Left join keeps users without orders", func() {
		results := s.collectUserOrders(`SELECT users.name, orders.product, orders.total FROM users LEFT JOIN orders ON users.id = orders.user_id`)
		s.Require().Len(results, 4)
		s.Equal("ann", results[0].Name)
		s.Equal("book", results[0].Product.String)
		s.True(decimal.RequireFromString("12.5").Equal(results[0].Total.Decimal))
		s.Equal("ann", results[1].Name)
		s.Equal("lamp", results[1].Product.String)
		s.Equal("bob", results[2].Name)
		s.Equal("pen", results[2].Product.String)
		s.True(decimal.RequireFromString("1.99").Equal(results[2].Total.Decimal))

		s.Equal("cid", results[3].Name)
		s.False(results[3].Product.Valid)
		s.False(results[3].Total.Valid)
	})

	s.Run("Inner join omits users without orders", func() {
		results := s.collectUserOrders(`SELECT users.name, orders.product, orders.total FROM users INNER JOIN orders ON users.id = orders.user_id ORDER BY orders.product`)
		s.Require().Len(results, 3)
		s.Equal("pen", results[2].Product.String)
		for _, aResult := range results {
			s.NotEqual("cid", aResult.Name)
		}
	})

	s.Run("Wildcard join returns qualified columns", func() {
		rows, err := s.db.Query(`SELECT * FROM users JOIN orders ON users.id = orders.user_id WHERE orders.id = 11`)
		s.Require().NoError(err)
		defer rows.Close()

		columns, err := rows.Columns()
		s.Require().NoError(err)
		s.Equal([]string{
			"users.id", "users.name", "users.email", "users.age", "users.created",
			"orders.id", "orders.user_id", "orders.product", "orders.total",
		}, columns)
	})
}

func (s *TestSuite) TestUpdatePrimaryKey() {
	s.execQuery(createPeopleTableSQL, 0)
	s.execQuery(`INSERT INTO people VALUES (1, 'ann', 30), (2, 'bob', 40)`, 2)

	_, err := s.db.Exec(`UPDATE people SET id = 99 WHERE id = 1`)
	s.Require().Error(err)
	s.ErrorIs(err, jsondb.ErrConstraintViolation)
	s.Equal(`cannot update PRIMARY KEY column "id"`, err.Error())

	people := s.collectPeople(`SELECT * FROM people ORDER BY id`)
	s.Require().Len(people, 2)
	s.Equal(int64(1), people[0].ID)
	s.Equal("ann", people[0].Name)

	s.Run("Update other columns", func() {
		s.execQuery(`UPDATE people SET age = NULL, name = 'anna' WHERE id = 1`, 1)
		people := s.collectPeople(`SELECT * FROM people WHERE id = 1`)
		s.Equal([]person{{ID: 1, Name: "anna"}}, people)
	})
}

func (s *TestSuite) TestDeleteNoMatch() {
	s.execQuery(createPeopleTableSQL, 0)
	s.execQuery(`INSERT INTO people VALUES (1, 'ann', 30), (2, 'bob', 40)`, 2)

	s.execQuery(`DELETE FROM people WHERE id = 999`, 0)
	s.Equal(2, s.countRows("people"))

	s.execQuery(`DELETE FROM people WHERE age >= 40`, 1)
	s.Equal(1, s.countRows("people"))

	s.execQuery(`DELETE FROM people`, 1)
	s.Equal(0, s.countRows("people"))
}

func (s *TestSuite) TestVarcharLength() {
	s.execQuery(createPeopleTableSQL, 0)

	_, err := s.db.Exec(`INSERT INTO people VALUES (1, 'bartholomew', 30)`)
	s.Require().Error(err)
	s.ErrorIs(err, jsondb.ErrConstraintViolation)
	s.Equal(`value for column "name" exceeds maximum VARCHAR length of 10`, err.Error())
	s.Equal(0, s.countRows("people"))

	s.Run("A failing tuple rejects the whole batch", func() {
		_, err := s.db.Exec(`INSERT INTO people VALUES (1, 'ann', 30), (2, 'bartholomew', 30)`)
		s.Require().Error(err)
		s.Equal(`value for column "name" exceeds maximum VARCHAR length of 10`, err.Error())
		s.Equal(0, s.countRows("people"))
	})
}
