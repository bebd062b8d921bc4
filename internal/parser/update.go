package parser

import (
	"github.com/RichardKnop/jsondb/internal/jsondb"
)

func (s *stream) parseUpdate() (jsondb.Statement, error) {
	if _, err := s.consume(TokenUpdate, "UPDATE"); err != nil {
		return nil, err
	}
	table, err := s.identifier("UPDATE")
	if err != nil {
		return nil, err
	}
	if _, err := s.consume(TokenSet, "UPDATE"); err != nil {
		return nil, err
	}

	stmt := jsondb.UpdateStatement{Table: table}
	for {
		name, err := s.identifier("SET")
		if err != nil {
			return nil, err
		}
		if _, err := s.consume(TokenEquals, "SET"); err != nil {
			return nil, err
		}
		value, err := s.parseOperand("SET")
		if err != nil {
			return nil, err
		}
		stmt.Assignments = append(stmt.Assignments, jsondb.Assignment{Column: name, Value: value})
		if !s.match(TokenComma) {
			break
		}
	}

	if s.match(TokenWhere) {
		stmt.Where, err = s.parseWhere()
		if err != nil {
			return nil, err
		}
	}
	return stmt, nil
}
