package jsondb

import "strings"

type Operator int

const (
	Eq Operator = iota + 1
	Ne
	Gt
	Lt
	Gte
	Lte
)

func (o Operator) String() string {
	switch o {
	case Eq:
		return "="
	case Ne:
		return "!="
	case Gt:
		return ">"
	case Lt:
		return "<"
	case Gte:
		return ">="
	case Lte:
		return "<="
	default:
		return "?"
	}
}

type LogicalOperator int

const (
	And LogicalOperator = iota + 1
	Or
)

func (o LogicalOperator) String() string {
	if o == Or {
		return "OR"
	}
	return "AND"
}

// ColumnRef names a column, optionally qualified by its table.
type ColumnRef struct {
	Table string
	Name  string
}

func (r ColumnRef) String() string {
	if r.Table == "" {
		return r.Name
	}
	return r.Table + "." + r.Name
}

func (r ColumnRef) EqualFold(other ColumnRef) bool {
	return strings.EqualFold(r.Table, other.Table) && strings.EqualFold(r.Name, other.Name)
}

type OperandType int

const (
	OperandValue OperandType = iota + 1
	OperandColumn
)

// Operand is the right-hand side of a comparison or an assignment: either a
// literal value or an identifier resolved against the row at execution time.
type Operand struct {
	Type   OperandType
	Value  Value
	Column ColumnRef
}

func ValueOperand(v Value) Operand {
	return Operand{Type: OperandValue, Value: v}
}

func ColumnOperand(ref ColumnRef) Operand {
	return Operand{Type: OperandColumn, Column: ref}
}

func (o Operand) String() string {
	if o.Type == OperandColumn {
		return o.Column.String()
	}
	return o.Value.SQL()
}

func (o Operand) Equal(other Operand) bool {
	if o.Type != other.Type {
		return false
	}
	if o.Type == OperandColumn {
		return o.Column == other.Column
	}
	return o.Value.Equal(other.Value)
}

// Condition is a single comparison.
type Condition struct {
	Left     ColumnRef
	Operator Operator
	Right    Operand
}

func (c Condition) String() string {
	return c.Left.String() + " " + c.Operator.String() + " " + c.Right.String()
}

// Where is a predicate tree. A leaf holds a Condition, an inner node joins
// Left and Right with a logical operator.
type Where struct {
	Condition *Condition
	Operator  LogicalOperator
	Left      *Where
	Right     *Where
}

func Leaf(c Condition) *Where {
	return &Where{Condition: &c}
}

func AndWhere(left, right *Where) *Where {
	return &Where{Operator: And, Left: left, Right: right}
}

func OrWhere(left, right *Where) *Where {
	return &Where{Operator: Or, Left: left, Right: right}
}

func (w *Where) IsLeaf() bool {
	return w.Condition != nil
}

// String renders the tree without parentheses. Trees built by the parser
// never nest OR below AND, so precedence alone reproduces the shape.
func (w *Where) String() string {
	if w == nil {
		return ""
	}
	if w.IsLeaf() {
		return w.Condition.String()
	}
	return w.Left.String() + " " + w.Operator.String() + " " + w.Right.String()
}

// Conditions returns the leaves in left to right order.
func (w *Where) Conditions() []Condition {
	if w == nil {
		return nil
	}
	if w.IsLeaf() {
		return []Condition{*w.Condition}
	}
	return append(w.Left.Conditions(), w.Right.Conditions()...)
}

func (w *Where) Equal(other *Where) bool {
	if w == nil || other == nil {
		return w == nil && other == nil
	}
	if w.IsLeaf() != other.IsLeaf() {
		return false
	}
	if w.IsLeaf() {
		return w.Condition.Left == other.Condition.Left &&
			w.Condition.Operator == other.Condition.Operator &&
			w.Condition.Right.Equal(other.Condition.Right)
	}
	return w.Operator == other.Operator && w.Left.Equal(other.Left) && w.Right.Equal(other.Right)
}
