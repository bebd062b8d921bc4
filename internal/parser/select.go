package parser

import (
	"github.com/RichardKnop/jsondb/internal/jsondb"
)

func (s *stream) parseSelect() (jsondb.Statement, error) {
	if _, err := s.consume(TokenSelect, "SELECT"); err != nil {
		return nil, err
	}

	stmt := jsondb.SelectStatement{}
	if s.match(TokenAsterisk) {
		stmt.Wildcard = true
	} else {
		for {
			ref, err := s.parseColumnRef("SELECT")
			if err != nil {
				return nil, err
			}
			aColumn := jsondb.SelectColumn{Ref: ref}
			if s.match(TokenAs) {
				aColumn.Alias, err = s.identifier("SELECT alias")
				if err != nil {
					return nil, err
				}
			}
			stmt.Columns = append(stmt.Columns, aColumn)
			if !s.match(TokenComma) {
				break
			}
		}
	}

	if _, err := s.consume(TokenFrom, "SELECT"); err != nil {
		return nil, err
	}
	table, err := s.identifier("FROM")
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	for s.check(TokenJoin, TokenInner, TokenLeft, TokenRight, TokenOuter, TokenFull) {
		aJoin, err := s.parseJoin()
		if err != nil {
			return nil, err
		}
		stmt.Joins = append(stmt.Joins, aJoin)
	}

	if s.match(TokenWhere) {
		stmt.Where, err = s.parseWhere()
		if err != nil {
			return nil, err
		}
	}

	if s.match(TokenOrder) {
		stmt.OrderBy, err = s.parseOrderBy()
		if err != nil {
			return nil, err
		}
	}

	return stmt, nil
}

// parseJoin reads "[INNER | LEFT [OUTER] | RIGHT [OUTER] | [FULL] OUTER | FULL] JOIN
// table ON ref = ref".
func (s *stream) parseJoin() (jsondb.Join, error) {
	aJoin := jsondb.Join{Type: jsondb.InnerJoin}
	switch {
	case s.match(TokenInner):
	case s.match(TokenLeft):
		aJoin.Type = jsondb.LeftJoin
		s.match(TokenOuter)
	case s.match(TokenRight):
		aJoin.Type = jsondb.RightJoin
		s.match(TokenOuter)
	case s.match(TokenFull):
		aJoin.Type = jsondb.FullJoin
		s.match(TokenOuter)
	case s.match(TokenOuter):
		aJoin.Type = jsondb.FullJoin
	}
	if _, err := s.consume(TokenJoin, "JOIN"); err != nil {
		return jsondb.Join{}, err
	}

	var err error
	aJoin.Table, err = s.identifier("JOIN")
	if err != nil {
		return jsondb.Join{}, err
	}
	if _, err := s.consume(TokenOn, "JOIN"); err != nil {
		return jsondb.Join{}, err
	}
	aJoin.Left, err = s.parseColumnRef("JOIN ON")
	if err != nil {
		return jsondb.Join{}, err
	}
	if _, err := s.consume(TokenEquals, "JOIN ON"); err != nil {
		return jsondb.Join{}, err
	}
	aJoin.Right, err = s.parseColumnRef("JOIN ON")
	if err != nil {
		return jsondb.Join{}, err
	}
	return aJoin, nil
}

func (s *stream) parseOrderBy() ([]jsondb.OrderBy, error) {
	if _, err := s.consume(TokenBy, "ORDER BY"); err != nil {
		return nil, err
	}
	var orderBy []jsondb.OrderBy
	for {
		ref, err := s.parseColumnRef("ORDER BY")
		if err != nil {
			return nil, err
		}
		anOrder := jsondb.OrderBy{Ref: ref, Direction: jsondb.Asc}
		if s.match(TokenDesc) {
			anOrder.Direction = jsondb.Desc
		} else {
			s.match(TokenAsc)
		}
		orderBy = append(orderBy, anOrder)
		if !s.match(TokenComma) {
			return orderBy, nil
		}
	}
}
