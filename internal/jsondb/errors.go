package jsondb

import (
	"errors"
	"fmt"
)

var (
	ErrTableNotFound       = fmt.Errorf("table not found")
	ErrTableAlreadyExists  = fmt.Errorf("table already exists")
	ErrIndexNotFound       = fmt.Errorf("index not found")
	ErrIndexAlreadyExists  = fmt.Errorf("index already exists")
	ErrColumnNotFound      = fmt.Errorf("column not found")
	ErrStorage             = fmt.Errorf("storage error")
	ErrConstraintViolation = fmt.Errorf("constraint violation")
	ErrUnsupported         = fmt.Errorf("unsupported operation")
)

// SyntaxError is returned by the tokenizer and the parser. Pos is a
// character offset into the SQL text.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Msg)
}

// ConstraintError is a storage error caused by a PRIMARY KEY, UNIQUE,
// NOT NULL, type or length violation.
type ConstraintError struct {
	Msg string
}

func ConstraintErrorf(format string, args ...any) *ConstraintError {
	return &ConstraintError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ConstraintError) Error() string {
	return e.Msg
}

func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraintViolation || target == ErrStorage
}

// IsSyntaxError reports whether err is or wraps a *SyntaxError.
func IsSyntaxError(err error) bool {
	var syntaxErr *SyntaxError
	return errors.As(err, &syntaxErr)
}
