package parser

import (
	"fmt"
	"strconv"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

var columnTypes = map[TokenKind]jsondb.DataType{
	TokenInt:         jsondb.TypeInt,
	TokenVarchar:     jsondb.TypeVarchar,
	TokenBooleanType: jsondb.TypeBoolean,
	TokenDatetime:    jsondb.TypeDatetime,
	TokenDecimal:     jsondb.TypeDecimal,
}

func (s *stream) parseCreateTable() (jsondb.Statement, error) {
	if _, err := s.consume(TokenCreate, "CREATE TABLE"); err != nil {
		return nil, err
	}
	if _, err := s.consume(TokenTable, "CREATE TABLE"); err != nil {
		return nil, err
	}
	table, err := s.identifier("CREATE TABLE")
	if err != nil {
		return nil, err
	}
	if _, err := s.consume(TokenLeftParen, "CREATE TABLE"); err != nil {
		return nil, err
	}

	stmt := jsondb.CreateTableStatement{Table: table}
	for {
		aColumn, err := s.parseColumnDefinition()
		if err != nil {
			return nil, err
		}
		stmt.Columns = append(stmt.Columns, aColumn)
		if !s.match(TokenComma) {
			break
		}
	}
	if _, err := s.consume(TokenRightParen, "CREATE TABLE"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseColumnDefinition reads "name TYPE [(length)]" followed by PRIMARY KEY,
// UNIQUE and NOT NULL in any order.
func (s *stream) parseColumnDefinition() (jsondb.Column, error) {
	name, err := s.identifier("column definition")
	if err != nil {
		return jsondb.Column{}, err
	}
	dataType, ok := columnTypes[s.current().Kind]
	if !ok {
		return jsondb.Column{}, s.unexpected("data type (INT, VARCHAR, BOOLEAN, DATETIME or DECIMAL)", "column definition")
	}
	s.advance()
	aColumn := jsondb.Column{Name: name, Type: dataType}

	if dataType == jsondb.TypeVarchar && s.match(TokenLeftParen) {
		tok, err := s.consume(TokenNumber, "VARCHAR length")
		if err != nil {
			return jsondb.Column{}, err
		}
		length, err := strconv.Atoi(tok.Literal)
		if err != nil || length <= 0 {
			return jsondb.Column{}, &jsondb.SyntaxError{
				Pos: tok.Pos,
				Msg: fmt.Sprintf("at VARCHAR length: expected positive integer, got %s", tok),
			}
		}
		aColumn.MaxLength = length
		if _, err := s.consume(TokenRightParen, "VARCHAR length"); err != nil {
			return jsondb.Column{}, err
		}
	}

	for {
		switch {
		case s.match(TokenPrimary):
			if _, err := s.consume(TokenKey, "PRIMARY KEY"); err != nil {
				return jsondb.Column{}, err
			}
			aColumn.PrimaryKey = true
		case s.match(TokenUnique):
			aColumn.Unique = true
		case s.match(TokenNot):
			if _, err := s.consume(TokenNull, "NOT NULL"); err != nil {
				return jsondb.Column{}, err
			}
			aColumn.NotNull = true
		default:
			return aColumn, nil
		}
	}
}

func (s *stream) parseDropTable() (jsondb.Statement, error) {
	if _, err := s.consume(TokenDrop, "DROP TABLE"); err != nil {
		return nil, err
	}
	if _, err := s.consume(TokenTable, "DROP TABLE"); err != nil {
		return nil, err
	}
	table, err := s.identifier("DROP TABLE")
	if err != nil {
		return nil, err
	}
	return jsondb.DropTableStatement{Table: table}, nil
}
