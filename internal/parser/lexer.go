package parser

import (
	"strings"
	"unicode"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

type lexer struct {
	input  []rune
	pos    int
	tokens []Token
}

// Tokenize splits SQL text into tokens terminated by a single EOF token. It
// only fails on an unterminated string literal or a number with more than one
// decimal point. Unrecognised characters become TokenUnknown.
func Tokenize(sql string) ([]Token, error) {
	l := &lexer{input: []rune(sql)}
	for {
		l.skipWhitespaceAndComments()
		if l.pos >= len(l.input) {
			break
		}
		if err := l.next(); err != nil {
			return nil, err
		}
	}
	l.tokens = append(l.tokens, Token{Kind: TokenEOF, Pos: len(l.input)})
	return l.tokens, nil
}

func (l *lexer) peekRune(offset int) rune {
	i := l.pos + offset
	if i >= len(l.input) {
		return 0
	}
	return l.input[i]
}

func (l *lexer) emit(kind TokenKind, literal string, pos int) {
	l.tokens = append(l.tokens, Token{Kind: kind, Literal: literal, Pos: pos})
}

func (l *lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.input) {
		r := l.input[l.pos]
		switch {
		case unicode.IsSpace(r):
			l.pos++
		case r == '-' && l.peekRune(1) == '-':
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.pos++
			}
		case r == '/' && l.peekRune(1) == '*':
			l.pos += 2
			for l.pos < len(l.input) && !(l.input[l.pos] == '*' && l.peekRune(1) == '/') {
				l.pos++
			}
			// an unterminated comment runs to the end of input
			l.pos = min(l.pos+2, len(l.input))
		default:
			return
		}
	}
}

func (l *lexer) next() error {
	r := l.input[l.pos]
	switch {
	case r == '\'' || r == '"':
		return l.readString(r)
	case isDigit(r):
		return l.readNumber()
	case unicode.IsLetter(r) || r == '_':
		l.readWord()
		return nil
	}
	l.readOperator()
	return nil
}

func (l *lexer) readString(quote rune) error {
	start := l.pos
	l.pos++

	var b strings.Builder
	for l.pos < len(l.input) {
		r := l.input[l.pos]
		switch {
		case r == quote && l.peekRune(1) == quote:
			b.WriteRune(quote)
			l.pos += 2
		case r == quote:
			l.pos++
			l.emit(TokenString, b.String(), start)
			return nil
		case r == '\\' && l.pos+1 < len(l.input):
			b.WriteRune(unescape(l.input[l.pos+1]))
			l.pos += 2
		default:
			b.WriteRune(r)
			l.pos++
		}
	}
	return &jsondb.SyntaxError{Pos: start, Msg: "unterminated string literal"}
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	}
	return r
}

func (l *lexer) readNumber() error {
	start := l.pos
	dots := 0
	for l.pos < len(l.input) {
		r := l.input[l.pos]
		if r == '.' {
			dots++
			if dots > 1 {
				return &jsondb.SyntaxError{Pos: l.pos, Msg: "invalid number literal: more than one decimal point"}
			}
		} else if !isDigit(r) {
			break
		}
		l.pos++
	}
	l.emit(TokenNumber, string(l.input[start:l.pos]), start)
	return nil
}

func (l *lexer) readWord() {
	start := l.pos
	for l.pos < len(l.input) {
		r := l.input[l.pos]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		l.pos++
	}
	word := string(l.input[start:l.pos])
	if kind, ok := keywords[strings.ToUpper(word)]; ok {
		l.emit(kind, word, start)
		return
	}
	l.emit(TokenIdentifier, word, start)
}

var twoCharOperators = map[string]TokenKind{
	"!=": TokenNotEquals,
	"<>": TokenNotEquals,
	">=": TokenGreaterEquals,
	"<=": TokenLessEquals,
}

var oneCharOperators = map[rune]TokenKind{
	'=': TokenEquals,
	'>': TokenGreater,
	'<': TokenLess,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenAsterisk,
	'/': TokenSlash,
	'(': TokenLeftParen,
	')': TokenRightParen,
	',': TokenComma,
	';': TokenSemicolon,
	'.': TokenDot,
}

func (l *lexer) readOperator() {
	start := l.pos
	if l.pos+1 < len(l.input) {
		op := string(l.input[l.pos : l.pos+2])
		if kind, ok := twoCharOperators[op]; ok {
			l.pos += 2
			l.emit(kind, op, start)
			return
		}
	}
	r := l.input[l.pos]
	l.pos++
	if kind, ok := oneCharOperators[r]; ok {
		l.emit(kind, string(r), start)
		return
	}
	l.emit(TokenUnknown, string(r), start)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
