package datatable

import (
	"context"
	"fmt"
)

// Source provides read-only access to an external column-oriented table.
// All methods should return errors rather than panic.
type Source interface {
	// RowCount returns the total number of rows in the source.
	RowCount() int

	// ColumnCount returns the total number of columns in the source.
	ColumnCount() int

	// ColumnLabels returns the column labels in order.
	ColumnLabels() []Label

	// Cell returns the value at the specified row and column.
	Cell(row, col int) (Value, error)
}

// BuildFunc constructs an external table from column containers and labels.
type BuildFunc[T any] func(columns []Column, labels []Label) (T, error)

// Filter decides whether a row is selected by Table.Where.
type Filter interface {
	// Evaluate reports whether row passes. index resolves column labels.
	Evaluate(row Row, index *ColumnIndex) (bool, error)

	// Description returns a human-readable form of the filter.
	Description() string
}

// FromSource copies an external table into row-major storage, pulling one
// row at a time in column order. Labels are copied from the source.
func FromSource(src Source, opts ...Option) (*Table, error) {
	o := applyOptions(opts)
	nrows, ncols := src.RowCount(), src.ColumnCount()
	labels := src.ColumnLabels()
	if len(labels) != ncols {
		return nil, fmt.Errorf("%w: source reports %d columns, %d labels", ErrDimensionMismatch, ncols, len(labels))
	}
	index, err := NewColumnIndex(labels...)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, nrows)
	for i := range rows {
		vals := make([]Value, ncols)
		for j := range vals {
			v, err := src.Cell(i, j)
			if err != nil {
				o.logger.LogBuild(context.Background(), "source", 0, 0, err)
				return nil, fmt.Errorf("read cell (%d, %d): %w", i, j, err)
			}
			vals[j] = v
		}
		rows[i] = makeRow(o.kind, vals)
	}
	o.logger.LogBuild(context.Background(), "source", nrows, ncols, nil)
	return &Table{rows: rows, index: index, logger: o.logger}, nil
}

// ToExternal converts t to columns, typed or untyped, and hands them with
// the labels to build.
func ToExternal[T any](t *Table, typed bool, build BuildFunc[T]) (T, error) {
	var (
		cols []Column
		zero T
	)
	if typed {
		var err error
		if cols, err = t.ToTypedColumns(); err != nil {
			return zero, err
		}
	} else {
		cols = t.ToColumns()
	}
	return build(cols, t.Names())
}

// AsSource exposes t through the Source interface by position.
func (t *Table) AsSource() Source {
	return tableSource{t}
}

type tableSource struct{ t *Table }

func (s tableSource) RowCount() int         { return len(s.t.rows) }
func (s tableSource) ColumnCount() int      { return s.t.index.Len() }
func (s tableSource) ColumnLabels() []Label { return s.t.index.Names() }

func (s tableSource) Cell(row, col int) (Value, error) {
	return s.t.cellAt(row, Pos(col))
}
