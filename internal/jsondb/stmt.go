package jsondb

import (
	"fmt"
	"strings"
)

type StatementKind int

const (
	Select StatementKind = iota + 1
	Insert
	Update
	Delete
	CreateTable
	DropTable
	CreateIndex
	DropIndex
)

func (s StatementKind) String() string {
	switch s {
	case Select:
		return "SELECT"
	case Insert:
		return "INSERT"
	case Update:
		return "UPDATE"
	case Delete:
		return "DELETE"
	case CreateTable:
		return "CREATE TABLE"
	case DropTable:
		return "DROP TABLE"
	case CreateIndex:
		return "CREATE INDEX"
	case DropIndex:
		return "DROP INDEX"
	default:
		return "UNKNOWN"
	}
}

// Statement is a parsed SQL statement. Statements are built once by the
// parser and never modified afterwards. String renders SQL that parses back
// to an equal statement.
type Statement interface {
	Kind() StatementKind
	String() string
}

type Direction int

const (
	Asc Direction = iota + 1
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

type JoinType int

const (
	InnerJoin JoinType = iota + 1
	LeftJoin
	RightJoin
	FullJoin
)

func (j JoinType) String() string {
	switch j {
	case LeftJoin:
		return "LEFT JOIN"
	case RightJoin:
		return "RIGHT JOIN"
	case FullJoin:
		return "FULL OUTER JOIN"
	default:
		return "INNER JOIN"
	}
}

type SelectColumn struct {
	Ref   ColumnRef
	Alias string
}

// OutputName is the alias if one was given, the reference as written otherwise.
func (c SelectColumn) OutputName() string {
	if c.Alias != "" {
		return c.Alias
	}
	return c.Ref.String()
}

type Join struct {
	Type  JoinType
	Table string
	Left  ColumnRef
	Right ColumnRef
}

type OrderBy struct {
	Ref       ColumnRef
	Direction Direction
}

type SelectStatement struct {
	Wildcard bool
	Columns  []SelectColumn
	Table    string
	Joins    []Join
	Where    *Where
	OrderBy  []OrderBy
}

func (s SelectStatement) Kind() StatementKind { return Select }

func (s SelectStatement) String() string {
	var b strings.Builder
	b.WriteString("SELECT ")
	if s.Wildcard {
		b.WriteString("*")
	} else {
		for i, aColumn := range s.Columns {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(aColumn.Ref.String())
			if aColumn.Alias != "" {
				b.WriteString(" AS " + aColumn.Alias)
			}
		}
	}
	b.WriteString(" FROM " + s.Table)
	for _, aJoin := range s.Joins {
		fmt.Fprintf(&b, " %s %s ON %s = %s", aJoin.Type, aJoin.Table, aJoin.Left, aJoin.Right)
	}
	if s.Where != nil {
		b.WriteString(" WHERE " + s.Where.String())
	}
	for i, anOrder := range s.OrderBy {
		if i == 0 {
			b.WriteString(" ORDER BY ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(anOrder.Ref.String() + " " + anOrder.Direction.String())
	}
	return b.String()
}

type InsertStatement struct {
	Table   string
	Columns []string
	Values  [][]Operand
}

func (s InsertStatement) Kind() StatementKind { return Insert }

func (s InsertStatement) String() string {
	var b strings.Builder
	b.WriteString("INSERT INTO " + s.Table)
	if len(s.Columns) > 0 {
		b.WriteString(" (" + strings.Join(s.Columns, ", ") + ")")
	}
	b.WriteString(" VALUES ")
	for i, tuple := range s.Values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(" + joinOperands(tuple) + ")")
	}
	return b.String()
}

type Assignment struct {
	Column string
	Value  Operand
}

type UpdateStatement struct {
	Table       string
	Assignments []Assignment
	Where       *Where
}

func (s UpdateStatement) Kind() StatementKind { return Update }

func (s UpdateStatement) String() string {
	parts := make([]string, 0, len(s.Assignments))
	for _, anAssignment := range s.Assignments {
		parts = append(parts, anAssignment.Column+" = "+anAssignment.Value.String())
	}
	sql := "UPDATE " + s.Table + " SET " + strings.Join(parts, ", ")
	if s.Where != nil {
		sql += " WHERE " + s.Where.String()
	}
	return sql
}

type DeleteStatement struct {
	Table string
	Where *Where
}

func (s DeleteStatement) Kind() StatementKind { return Delete }

func (s DeleteStatement) String() string {
	sql := "DELETE FROM " + s.Table
	if s.Where != nil {
		sql += " WHERE " + s.Where.String()
	}
	return sql
}

type CreateTableStatement struct {
	Table   string
	Columns []Column
}

func (s CreateTableStatement) Kind() StatementKind { return CreateTable }

func (s CreateTableStatement) String() string {
	defs := make([]string, 0, len(s.Columns))
	for _, aColumn := range s.Columns {
		defs = append(defs, aColumn.Definition())
	}
	return "CREATE TABLE " + s.Table + " (" + strings.Join(defs, ", ") + ")"
}

type DropTableStatement struct {
	Table string
}

func (s DropTableStatement) Kind() StatementKind { return DropTable }

func (s DropTableStatement) String() string {
	return "DROP TABLE " + s.Table
}

type CreateIndexStatement struct {
	Name   string
	Table  string
	Column string
}

func (s CreateIndexStatement) Kind() StatementKind { return CreateIndex }

func (s CreateIndexStatement) String() string {
	return fmt.Sprintf("CREATE INDEX %s ON %s (%s)", s.Name, s.Table, s.Column)
}

type DropIndexStatement struct {
	Name  string
	Table string
}

func (s DropIndexStatement) Kind() StatementKind { return DropIndex }

func (s DropIndexStatement) String() string {
	return fmt.Sprintf("DROP INDEX %s ON %s", s.Name, s.Table)
}

func joinOperands(operands []Operand) string {
	parts := make([]string, 0, len(operands))
	for _, anOperand := range operands {
		parts = append(parts, anOperand.String())
	}
	return strings.Join(parts, ", ")
}
