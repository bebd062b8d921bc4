package parser

import "fmt"

type TokenKind int

const (
	TokenEOF TokenKind = iota + 1
	TokenUnknown
	TokenIdentifier
	TokenString
	TokenNumber
	TokenBoolean
	TokenNull

	// keywords
	TokenSelect
	TokenFrom
	TokenWhere
	TokenInsert
	TokenInto
	TokenValues
	TokenUpdate
	TokenSet
	TokenDelete
	TokenCreate
	TokenDrop
	TokenTable
	TokenIndex
	TokenOn
	TokenJoin
	TokenInner
	TokenLeft
	TokenRight
	TokenOuter
	TokenFull
	TokenAnd
	TokenOr
	TokenAs
	TokenOrder
	TokenBy
	TokenAsc
	TokenDesc
	TokenPrimary
	TokenKey
	TokenUnique
	TokenNot

	// column types
	TokenInt
	TokenVarchar
	TokenBooleanType
	TokenDatetime
	TokenDecimal

	// operators and delimiters
	TokenEquals
	TokenNotEquals
	TokenLess
	TokenGreater
	TokenLessEquals
	TokenGreaterEquals
	TokenPlus
	TokenMinus
	TokenAsterisk
	TokenSlash
	TokenLeftParen
	TokenRightParen
	TokenComma
	TokenSemicolon
	TokenDot
)

var keywords = map[string]TokenKind{
	"SELECT":   TokenSelect,
	"FROM":     TokenFrom,
	"WHERE":    TokenWhere,
	"INSERT":   TokenInsert,
	"INTO":     TokenInto,
	"VALUES":   TokenValues,
	"UPDATE":   TokenUpdate,
	"SET":      TokenSet,
	"DELETE":   TokenDelete,
	"CREATE":   TokenCreate,
	"DROP":     TokenDrop,
	"TABLE":    TokenTable,
	"INDEX":    TokenIndex,
	"ON":       TokenOn,
	"JOIN":     TokenJoin,
	"INNER":    TokenInner,
	"LEFT":     TokenLeft,
	"RIGHT":    TokenRight,
	"OUTER":    TokenOuter,
	"FULL":     TokenFull,
	"AND":      TokenAnd,
	"OR":       TokenOr,
	"AS":       TokenAs,
	"ORDER":    TokenOrder,
	"BY":       TokenBy,
	"ASC":      TokenAsc,
	"DESC":     TokenDesc,
	"PRIMARY":  TokenPrimary,
	"KEY":      TokenKey,
	"UNIQUE":   TokenUnique,
	"NOT":      TokenNot,
	"INT":      TokenInt,
	"VARCHAR":  TokenVarchar,
	"BOOLEAN":  TokenBooleanType,
	"DATETIME": TokenDatetime,
	"DECIMAL":  TokenDecimal,
	"TRUE":     TokenBoolean,
	"FALSE":    TokenBoolean,
	"NULL":     TokenNull,
}

var tokenNames = map[TokenKind]string{
	TokenEOF:           "end of input",
	TokenUnknown:       "UNKNOWN",
	TokenIdentifier:    "IDENTIFIER",
	TokenString:        "STRING_LITERAL",
	TokenNumber:        "NUMBER_LITERAL",
	TokenBoolean:       "BOOLEAN_LITERAL",
	TokenNull:          "NULL_LITERAL",
	TokenBooleanType:   "BOOLEAN",
	TokenEquals:        "'='",
	TokenNotEquals:     "'!='",
	TokenLess:          "'<'",
	TokenGreater:       "'>'",
	TokenLessEquals:    "'<='",
	TokenGreaterEquals: "'>='",
	TokenPlus:          "'+'",
	TokenMinus:         "'-'",
	TokenAsterisk:      "'*'",
	TokenSlash:         "'/'",
	TokenLeftParen:     "'('",
	TokenRightParen:    "')'",
	TokenComma:         "','",
	TokenSemicolon:     "';'",
	TokenDot:           "'.'",
}

func init() {
	for word, kind := range keywords {
		if _, ok := tokenNames[kind]; !ok {
			tokenNames[kind] = word
		}
	}
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a lexical unit. Pos is the character offset of its first rune.
type Token struct {
	Kind    TokenKind
	Literal string
	Pos     int
}

func (t Token) String() string {
	if t.Kind == TokenEOF {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Literal)
}
