package parser

import (
	"github.com/RichardKnop/jsondb/internal/jsondb"
)

func (s *stream) parseCreateIndex() (jsondb.Statement, error) {
	if _, err := s.consume(TokenCreate, "CREATE INDEX"); err != nil {
		return nil, err
	}
	if _, err := s.consume(TokenIndex, "CREATE INDEX"); err != nil {
		return nil, err
	}
	name, err := s.identifier("CREATE INDEX")
	if err != nil {
		return nil, err
	}
	if _, err := s.consume(TokenOn, "CREATE INDEX"); err != nil {
		return nil, err
	}
	table, err := s.identifier("CREATE INDEX")
	if err != nil {
		return nil, err
	}
	if _, err := s.consume(TokenLeftParen, "CREATE INDEX"); err != nil {
		return nil, err
	}
	column, err := s.identifier("CREATE INDEX")
	if err != nil {
		return nil, err
	}
	if _, err := s.consume(TokenRightParen, "CREATE INDEX"); err != nil {
		return nil, err
	}
	return jsondb.CreateIndexStatement{Name: name, Table: table, Column: column}, nil
}

func (s *stream) parseDropIndex() (jsondb.Statement, error) {
	if _, err := s.consume(TokenDrop, "DROP INDEX"); err != nil {
		return nil, err
	}
	if _, err := s.consume(TokenIndex, "DROP INDEX"); err != nil {
		return nil, err
	}
	name, err := s.identifier("DROP INDEX")
	if err != nil {
		return nil, err
	}
	if _, err := s.consume(TokenOn, "DROP INDEX"); err != nil {
		return nil, err
	}
	table, err := s.identifier("DROP INDEX")
	if err != nil {
		return nil, err
	}
	return jsondb.DropIndexStatement{Name: name, Table: table}, nil
}
