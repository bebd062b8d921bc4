package parser

import (
	"github.com/RichardKnop/jsondb/internal/jsondb"
)

func (s *stream) parseInsert() (jsondb.Statement, error) {
	if _, err := s.consume(TokenInsert, "INSERT"); err != nil {
		return nil, err
	}
	if _, err := s.consume(TokenInto, "INSERT"); err != nil {
		return nil, err
	}
	table, err := s.identifier("INSERT INTO")
	if err != nil {
		return nil, err
	}
	stmt := jsondb.InsertStatement{Table: table}

	if s.match(TokenLeftParen) {
		for {
			name, err := s.identifier("INSERT INTO columns")
			if err != nil {
				return nil, err
			}
			stmt.Columns = append(stmt.Columns, name)
			if !s.match(TokenComma) {
				break
			}
		}
		if _, err := s.consume(TokenRightParen, "INSERT INTO columns"); err != nil {
			return nil, err
		}
	}

	if _, err := s.consume(TokenValues, "INSERT INTO"); err != nil {
		return nil, err
	}
	for {
		tuple, err := s.parseTuple()
		if err != nil {
			return nil, err
		}
		stmt.Values = append(stmt.Values, tuple)
		if !s.match(TokenComma) {
			break
		}
	}
	return stmt, nil
}

func (s *stream) parseTuple() ([]jsondb.Operand, error) {
	if _, err := s.consume(TokenLeftParen, "VALUES"); err != nil {
		return nil, err
	}
	var tuple []jsondb.Operand
	for {
		anOperand, err := s.parseOperand("VALUES")
		if err != nil {
			return nil, err
		}
		tuple = append(tuple, anOperand)
		if !s.match(TokenComma) {
			break
		}
	}
	if _, err := s.consume(TokenRightParen, "VALUES"); err != nil {
		return nil, err
	}
	return tuple, nil
}
