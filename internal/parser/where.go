package parser

import (
	"github.com/RichardKnop/jsondb/internal/jsondb"
)

var comparisonOperators = map[TokenKind]jsondb.Operator{
	TokenEquals:        jsondb.Eq,
	TokenNotEquals:     jsondb.Ne,
	TokenGreater:       jsondb.Gt,
	TokenLess:          jsondb.Lt,
	TokenGreaterEquals: jsondb.Gte,
	TokenLessEquals:    jsondb.Lte,
}

// parseWhere reads an OR of ANDs of comparisons. Both operators are left
// associative and AND binds tighter.
func (s *stream) parseWhere() (*jsondb.Where, error) {
	return s.parseOr()
}

func (s *stream) parseOr() (*jsondb.Where, error) {
	left, err := s.parseAnd()
	if err != nil {
		return nil, err
	}
	for s.match(TokenOr) {
		right, err := s.parseAnd()
		if err != nil {
			return nil, err
		}
		left = jsondb.OrWhere(left, right)
	}
	return left, nil
}

func (s *stream) parseAnd() (*jsondb.Where, error) {
	left, err := s.parseCondition()
	if err != nil {
		return nil, err
	}
	for s.match(TokenAnd) {
		right, err := s.parseCondition()
		if err != nil {
			return nil, err
		}
		left = jsondb.AndWhere(left, right)
	}
	return left, nil
}

func (s *stream) parseCondition() (*jsondb.Where, error) {
	left, err := s.parseColumnRef("WHERE")
	if err != nil {
		return nil, err
	}
	operator, ok := comparisonOperators[s.current().Kind]
	if !ok {
		return nil, s.unexpected("comparison operator", "WHERE")
	}
	s.advance()
	right, err := s.parseOperand("WHERE")
	if err != nil {
		return nil, err
	}
	return jsondb.Leaf(jsondb.Condition{Left: left, Operator: operator, Right: right}), nil
}
