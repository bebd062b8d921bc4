package jsondb

import "strings"

// Row maps column names to values. Names keep their original case and
// insertion order, lookups ignore case. Lookup of an unknown name yields null.
type Row struct {
	names  []string
	values []Value
	index  map[string]int
}

// NewRow builds a row from parallel name and value slices.
func NewRow(names []string, values []Value) Row {
	r := Row{
		names:  make([]string, 0, len(names)),
		values: make([]Value, 0, len(names)),
		index:  make(map[string]int, len(names)),
	}
	for i, name := range names {
		var v Value
		if i < len(values) {
			v = values[i]
		}
		r.Set(name, v)
	}
	return r
}

func (r Row) Len() int {
	return len(r.names)
}

// Names returns a copy of the column names in order.
func (r Row) Names() []string {
	return append([]string(nil), r.names...)
}

// Values returns a copy of the values in column order.
func (r Row) Values() []Value {
	return append([]Value(nil), r.values...)
}

func (r Row) Has(name string) bool {
	_, ok := r.index[strings.ToLower(name)]
	return ok
}

func (r Row) Lookup(name string) (Value, bool) {
	i, ok := r.index[strings.ToLower(name)]
	if !ok {
		return Value{}, false
	}
	return r.values[i], true
}

func (r Row) Get(name string) Value {
	v, _ := r.Lookup(name)
	return v
}

// Set overwrites an existing column, keeping its original name, or appends
// a new one.
func (r *Row) Set(name string, v Value) {
	key := strings.ToLower(name)
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[key]; ok {
		r.values[i] = v
		return
	}
	r.index[key] = len(r.names)
	r.names = append(r.names, name)
	r.values = append(r.values, v)
}

// Clone returns a deep copy sharing nothing with r.
func (r Row) Clone() Row {
	clone := Row{
		names:  append([]string(nil), r.names...),
		values: append([]Value(nil), r.values...),
		index:  make(map[string]int, len(r.index)),
	}
	for k, v := range r.index {
		clone.index[k] = v
	}
	return clone
}

// Equal reports whether both rows hold the same names, in the same order,
// with equal values.
func (r Row) Equal(other Row) bool {
	if len(r.names) != len(other.names) {
		return false
	}
	for i, name := range r.names {
		if !strings.EqualFold(name, other.names[i]) || !r.values[i].Equal(other.values[i]) {
			return false
		}
	}
	return true
}

func (r Row) String() string {
	parts := make([]string, 0, len(r.names))
	for i, name := range r.names {
		parts = append(parts, name+"="+r.values[i].SQL())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
