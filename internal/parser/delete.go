package parser

import (
	"github.com/RichardKnop/jsondb/internal/jsondb"
)

func (s *stream) parseDelete() (jsondb.Statement, error) {
	if _, err := s.consume(TokenDelete, "DELETE"); err != nil {
		return nil, err
	}
	if _, err := s.consume(TokenFrom, "DELETE"); err != nil {
		return nil, err
	}
	table, err := s.identifier("DELETE FROM")
	if err != nil {
		return nil, err
	}
	stmt := jsondb.DeleteStatement{Table: table}
	if s.match(TokenWhere) {
		stmt.Where, err = s.parseWhere()
		if err != nil {
			return nil, err
		}
	}
	return stmt, nil
}
