package datatable

import (
	"context"
	"reflect"
)

// Column is a column-major container.
//
// Untyped columns (from ToColumns) leave Type nil and may hold mixed values.
// Typed columns (from ToTypedColumns) fix Type and Kind from the first
// non-nil value; nil cells are nulls.
type Column struct {
	Kind   DataType
	Type   reflect.Type
	Values []Value
}

// Len returns the number of values.
func (c Column) Len() int { return len(c.Values) }

// Typed reports whether the column's element type is fixed.
func (c Column) Typed() bool { return c.Type != nil }

// ToColumns transposes the table into one untyped column per label.
func (t *Table) ToColumns() []Column {
	cols := make([]Column, t.index.Len())
	for j := range cols {
		cols[j] = Column{Kind: TypeAny, Values: make([]Value, len(t.rows))}
	}
	for i, r := range t.rows {
		for j := range cols {
			cols[j].Values[i] = r.At(j)
		}
	}
	t.logger.LogConvert(context.Background(), false, len(t.rows), len(cols), nil)
	return cols
}

// ToTypedColumns transposes the table into homogeneously typed columns.
// A column's type is taken from its first non-nil value, so leading nils
// do not fix it. Returns a *TypeMismatchError if a later value's type
// differs. A column holding only nils stays untyped with Kind TypeNull.
func (t *Table) ToTypedColumns() ([]Column, error) {
	cols := make([]Column, t.index.Len())
	for j := range cols {
		cols[j] = Column{Kind: TypeNull, Values: make([]Value, len(t.rows))}
	}
	for i, r := range t.rows {
		for j := range cols {
			v := r.At(j)
			cols[j].Values[i] = v
			if v == nil {
				continue
			}
			vt := reflect.TypeOf(v)
			if cols[j].Type == nil {
				cols[j].Type = vt
				cols[j].Kind = TypeOf(v)
				continue
			}
			if vt != cols[j].Type {
				err := &TypeMismatchError{
					Column:   t.index.labels[j],
					Row:      i,
					Expected: cols[j].Type,
					Actual:   vt,
				}
				t.logger.LogConvert(context.Background(), true, 0, 0, err)
				return nil, err
			}
		}
	}
	t.logger.LogConvert(context.Background(), true, len(t.rows), len(cols), nil)
	return cols, nil
}

// ColumnValues returns the raw values of each column, ready for FromColumns.
func ColumnValues(cols []Column) [][]Value {
	out := make([][]Value, len(cols))
	for j, c := range cols {
		out[j] = c.Values
	}
	return out
}
