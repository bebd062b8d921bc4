package parser

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

type parser struct{}

// New returns a parser turning SQL text into statements.
func New() *parser {
	return new(parser)
}

func (p *parser) Parse(ctx context.Context, sql string) (jsondb.Statement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tokens, err := Tokenize(sql)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// Parse builds a single statement from tokens. A trailing semicolon is
// allowed, anything after it is an error.
func Parse(tokens []Token) (jsondb.Statement, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TokenEOF {
		pos := 0
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			pos = last.Pos + len([]rune(last.Literal))
		}
		tokens = append(tokens, Token{Kind: TokenEOF, Pos: pos})
	}
	s := &stream{tokens: tokens}

	stmt, err := s.parseStatement()
	if err != nil {
		return nil, err
	}
	s.match(TokenSemicolon)
	if _, err := s.consume(TokenEOF, "end of statement"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// stream is a cursor over the tokens with one token of lookahead.
type stream struct {
	tokens []Token
	pos    int
}

func (s *stream) peek(offset int) Token {
	i := s.pos + offset
	if i >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[i]
}

func (s *stream) current() Token {
	return s.peek(0)
}

func (s *stream) advance() Token {
	tok := s.current()
	if tok.Kind != TokenEOF {
		s.pos++
	}
	return tok
}

func (s *stream) check(kinds ...TokenKind) bool {
	kind := s.current().Kind
	for _, k := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}

// match consumes the current token if it is any of kinds.
func (s *stream) match(kinds ...TokenKind) bool {
	if s.check(kinds...) {
		s.advance()
		return true
	}
	return false
}

// consume requires the current token to be of the given kind.
func (s *stream) consume(kind TokenKind, clause string) (Token, error) {
	if s.check(kind) {
		return s.advance(), nil
	}
	return Token{}, s.unexpected(kind.String(), clause)
}

func (s *stream) unexpected(expected, clause string) error {
	tok := s.current()
	return &jsondb.SyntaxError{
		Pos: tok.Pos,
		Msg: fmt.Sprintf("at %s: expected %s, got %s", clause, expected, tok),
	}
}

func (s *stream) identifier(clause string) (string, error) {
	tok, err := s.consume(TokenIdentifier, clause)
	if err != nil {
		return "", err
	}
	return tok.Literal, nil
}

func (s *stream) parseStatement() (jsondb.Statement, error) {
	switch s.current().Kind {
	case TokenSelect:
		return s.parseSelect()
	case TokenInsert:
		return s.parseInsert()
	case TokenUpdate:
		return s.parseUpdate()
	case TokenDelete:
		return s.parseDelete()
	case TokenCreate:
		switch s.peek(1).Kind {
		case TokenTable:
			return s.parseCreateTable()
		case TokenIndex:
			return s.parseCreateIndex()
		}
		s.advance()
		return nil, s.unexpected("TABLE or INDEX", "CREATE")
	case TokenDrop:
		switch s.peek(1).Kind {
		case TokenTable:
			return s.parseDropTable()
		case TokenIndex:
			return s.parseDropIndex()
		}
		s.advance()
		return nil, s.unexpected("TABLE or INDEX", "DROP")
	}
	return nil, s.unexpected("SELECT, INSERT, UPDATE, DELETE, CREATE or DROP", "start of statement")
}

// parseColumnRef reads "column" or "table.column".
func (s *stream) parseColumnRef(clause string) (jsondb.ColumnRef, error) {
	name, err := s.identifier(clause)
	if err != nil {
		return jsondb.ColumnRef{}, err
	}
	if !s.match(TokenDot) {
		return jsondb.ColumnRef{Name: name}, nil
	}
	column, err := s.identifier(clause)
	if err != nil {
		return jsondb.ColumnRef{}, err
	}
	return jsondb.ColumnRef{Table: name, Name: column}, nil
}

// parseOperand reads a literal or an identifier. Identifiers are resolved
// against the row when the statement runs.
func (s *stream) parseOperand(clause string) (jsondb.Operand, error) {
	tok := s.current()
	switch tok.Kind {
	case TokenString:
		s.advance()
		return jsondb.ValueOperand(jsondb.TextValue(tok.Literal)), nil
	case TokenNumber:
		s.advance()
		return jsondb.ValueOperand(parseNumber(tok.Literal)), nil
	case TokenMinus:
		if s.peek(1).Kind == TokenNumber {
			s.advance()
			return jsondb.ValueOperand(parseNumber("-" + s.advance().Literal)), nil
		}
	case TokenBoolean:
		s.advance()
		return jsondb.ValueOperand(jsondb.BoolValue(strings.EqualFold(tok.Literal, "TRUE"))), nil
	case TokenNull:
		s.advance()
		return jsondb.ValueOperand(jsondb.NullValue()), nil
	case TokenIdentifier:
		ref, err := s.parseColumnRef(clause)
		if err != nil {
			return jsondb.Operand{}, err
		}
		return jsondb.ColumnOperand(ref), nil
	}
	return jsondb.Operand{}, s.unexpected("value", clause)
}

// parseNumber prefers an integer, then a decimal, then keeps the raw text.
func parseNumber(literal string) jsondb.Value {
	if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return jsondb.IntValue(i)
	}
	if d, err := decimal.NewFromString(literal); err == nil {
		return jsondb.DecimalValue(d)
	}
	return jsondb.TextValue(literal)
}
