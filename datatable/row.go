package datatable

import (
	"fmt"
	"reflect"
)

// Row is a fixed-length record. Its length always equals the owning
// table's column count.
type Row interface {
	// Len returns the number of cells.
	Len() int

	// At returns the cell at position i. i must be in [0, Len()).
	At(i int) Value

	// Values returns a copy of the cells in order.
	Values() []Value

	// Kind reports how the row is materialized.
	Kind() RowKind

	// with returns a row of the same kind holding vals.
	with(vals []Value) Row
}

// Array is a mutable row. Any cell may be replaced with a value of any type.
type Array []Value

// Len implements Row.
func (a Array) Len() int { return len(a) }

// At implements Row.
func (a Array) At(i int) Value { return a[i] }

// Values implements Row.
func (a Array) Values() []Value { return append([]Value(nil), a...) }

// Kind implements Row.
func (a Array) Kind() RowKind { return ArrayRows }

// Set replaces the cell at position i.
func (a Array) Set(i int, v Value) {
	a[i] = v
}

func (a Array) with(vals []Value) Row { return Array(vals) }

// Record is an immutable fixed-shape row. The dynamic type of each field is
// fixed when the record is created.
type Record struct {
	vals  []Value
	types []reflect.Type
}

// NewRecord creates a record whose field types are taken from vals.
func NewRecord(vals ...Value) Record {
	types := make([]reflect.Type, len(vals))
	for i, v := range vals {
		types[i] = reflect.TypeOf(v)
	}
	return Record{vals: append([]Value(nil), vals...), types: types}
}

// Len implements Row.
func (r Record) Len() int { return len(r.vals) }

// At implements Row.
func (r Record) At(i int) Value { return r.vals[i] }

// Values implements Row.
func (r Record) Values() []Value { return append([]Value(nil), r.vals...) }

// Kind implements Row.
func (r Record) Kind() RowKind { return RecordRows }

// FieldType returns the fixed type of field i, nil for a nil field.
func (r Record) FieldType(i int) reflect.Type { return r.types[i] }

// Replace returns a copy of r with field i set to v.
// Returns ErrTypeMismatch if v's type differs from the field type.
func (r Record) Replace(i int, v Value) (Record, error) {
	if got := reflect.TypeOf(v); got != r.types[i] {
		return Record{}, fmt.Errorf("%w: field %d is %v, got %v", ErrTypeMismatch, i, r.types[i], got)
	}
	vals := append([]Value(nil), r.vals...)
	vals[i] = v
	return Record{vals: vals, types: r.types}, nil
}

func (r Record) with(vals []Value) Row { return NewRecord(vals...) }

// makeRow materializes vals as the requested kind. vals is owned by the row.
func makeRow(kind RowKind, vals []Value) Row {
	if kind == RecordRows {
		return NewRecord(vals...)
	}
	return Array(vals)
}

func rowsEqual(a, b Row) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if !valueEqual(a.At(i), b.At(i)) {
			return false
		}
	}
	return true
}
