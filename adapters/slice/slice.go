// Package sliceadapter provides an in-memory column store built from Go
// slices and maps. Columns may hold values of mixed types.
package sliceadapter

import (
	"errors"
	"fmt"
	"sort"

	"github.com/magpierre/rowtable/datatable"
)

// ErrEmptyData is returned when data is empty where it shouldn't be.
var ErrEmptyData = errors.New("data is empty")

// Table is a column-major table. It implements datatable.Source.
type Table struct {
	columns [][]datatable.Value
	labels  []datatable.Label
	nrows   int
}

// NewFromColumns creates a table from equal-length columns and their labels.
func NewFromColumns(columns [][]datatable.Value, labels []datatable.Label) (*Table, error) {
	if len(columns) != len(labels) {
		return nil, fmt.Errorf("%w: %d columns, %d labels", datatable.ErrDimensionMismatch, len(columns), len(labels))
	}
	nrows := 0
	if len(columns) > 0 {
		nrows = len(columns[0])
	}
	for j, col := range columns {
		if len(col) != nrows {
			return nil, fmt.Errorf("%w: column %q has %d values, expected %d",
				datatable.ErrDimensionMismatch, labels[j], len(col), nrows)
		}
	}
	return &Table{
		columns: columns,
		labels:  append([]datatable.Label(nil), labels...),
		nrows:   nrows,
	}, nil
}

// NewFromMaps creates a table from a list of records, such as decoded JSON
// objects. Columns are the union of all keys in sorted order; a record
// without a key holds nil in that column.
func NewFromMaps(data []map[string]any) (*Table, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	seen := make(map[string]struct{})
	var labels []datatable.Label
	for _, rec := range data {
		for k := range rec {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				labels = append(labels, k)
			}
		}
	}
	sort.Strings(labels)

	columns := make([][]datatable.Value, len(labels))
	for j, l := range labels {
		col := make([]datatable.Value, len(data))
		for i, rec := range data {
			col[i] = rec[l]
		}
		columns[j] = col
	}
	return NewFromColumns(columns, labels)
}

// Build implements datatable.BuildFunc for in-memory tables.
func Build(columns []datatable.Column, labels []datatable.Label) (*Table, error) {
	return NewFromColumns(datatable.ColumnValues(columns), labels)
}

// RowCount implements datatable.Source.
func (t *Table) RowCount() int { return t.nrows }

// ColumnCount implements datatable.Source.
func (t *Table) ColumnCount() int { return len(t.columns) }

// ColumnLabels implements datatable.Source.
func (t *Table) ColumnLabels() []datatable.Label {
	return append([]datatable.Label(nil), t.labels...)
}

// Cell implements datatable.Source.
func (t *Table) Cell(row, col int) (datatable.Value, error) {
	if col < 0 || col >= len(t.columns) {
		return nil, fmt.Errorf("%w: column %d not in [0, %d)", datatable.ErrIndexOutOfRange, col, len(t.columns))
	}
	if row < 0 || row >= t.nrows {
		return nil, fmt.Errorf("%w: row %d not in [0, %d)", datatable.ErrIndexOutOfRange, row, t.nrows)
	}
	return t.columns[col][row], nil
}

// Column returns the values of column j.
func (t *Table) Column(j int) []datatable.Value {
	return t.columns[j]
}
