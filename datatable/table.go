// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package datatable

import (
	"context"
	"fmt"
	"strings"
)

// Table is a row-major table: an ordered sequence of rows sharing one
// ColumnIndex. Every row has exactly one value per column.
//
// A Table is not safe for concurrent use. Callers that share a table across
// goroutines must provide their own mutual exclusion.
type Table struct {
	rows   []Row
	index  *ColumnIndex
	logger *Logger
}

// New creates a table that stores rows directly under index.
// No rows yields an empty table with the given columns.
func New(index *ColumnIndex, rows ...Row) (*Table, error) {
	if index == nil {
		return nil, fmt.Errorf("%w: nil column index", ErrDimensionMismatch)
	}
	t := &Table{index: index, logger: NoopLogger()}
	if err := t.checkRows(rows); err != nil {
		return nil, err
	}
	t.rows = append([]Row(nil), rows...)
	return t, nil
}

// FromRows creates a table from row value slices and labels. Each slice is
// owned by the table afterwards.
func FromRows(labels []Label, rows [][]Value, opts ...Option) (*Table, error) {
	o := applyOptions(opts)
	index, err := NewColumnIndex(labels...)
	if err != nil {
		return nil, err
	}

	t := &Table{index: index, logger: o.logger, rows: make([]Row, len(rows))}
	for i, vals := range rows {
		if len(vals) != index.Len() {
			err = rowLengthMismatch(i, len(vals), index.Len())
			t.logger.LogBuild(context.Background(), "rows", 0, 0, err)
			return nil, err
		}
		t.rows[i] = makeRow(o.kind, vals)
	}
	t.logger.LogBuild(context.Background(), "rows", len(t.rows), index.Len(), nil)
	return t, nil
}

// FromMaps creates a table with one row per map, projecting keys in order.
// All maps must have the same size. An empty records slice yields a zero-row
// table with keys as columns.
func FromMaps(records []map[Label]Value, keys []Label, opts ...Option) (*Table, error) {
	o := applyOptions(opts)
	index, err := NewColumnIndex(keys...)
	if err != nil {
		return nil, err
	}

	t := &Table{index: index, logger: o.logger, rows: make([]Row, 0, len(records))}
	for i, rec := range records {
		if len(rec) != len(records[0]) {
			err = fmt.Errorf("%w: record %d has %d keys, record 0 has %d",
				ErrDimensionMismatch, i, len(rec), len(records[0]))
			t.logger.LogBuild(context.Background(), "maps", 0, 0, err)
			return nil, err
		}
		vals := make([]Value, len(keys))
		for j, k := range keys {
			v, ok := rec[k]
			if !ok {
				err = fmt.Errorf("%w: record %d has no key %q", ErrKeyNotFound, i, k)
				t.logger.LogBuild(context.Background(), "maps", 0, 0, err)
				return nil, err
			}
			vals[j] = v
		}
		t.rows = append(t.rows, makeRow(o.kind, vals))
	}
	t.logger.LogBuild(context.Background(), "maps", len(t.rows), index.Len(), nil)
	return t, nil
}

// FromColumns transposes equal-length columns into row-major storage.
// Tables cannot be built from an empty first column.
func FromColumns(columns [][]Value, labels []Label, opts ...Option) (*Table, error) {
	o := applyOptions(opts)
	if len(columns) != len(labels) {
		return nil, fmt.Errorf("%w: %d columns, %d labels", ErrDimensionMismatch, len(columns), len(labels))
	}
	if len(columns) == 0 || len(columns[0]) == 0 {
		return nil, ErrUnsupportedEmptyColumn
	}
	nrows := len(columns[0])
	for j, col := range columns {
		if len(col) != nrows {
			return nil, fmt.Errorf("%w: column %q has %d values, expected %d",
				ErrDimensionMismatch, labels[j], len(col), nrows)
		}
	}
	index, err := NewColumnIndex(labels...)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, nrows)
	for i := range rows {
		vals := make([]Value, len(columns))
		for j, col := range columns {
			vals[j] = col[i]
		}
		rows[i] = makeRow(o.kind, vals)
	}
	o.logger.LogBuild(context.Background(), "columns", nrows, len(columns), nil)
	return &Table{rows: rows, index: index, logger: o.logger}, nil
}

// derive returns a table that shares t's logger.
func (t *Table) derive(index *ColumnIndex, rows []Row) *Table {
	return &Table{rows: rows, index: index, logger: t.logger}
}

func (t *Table) checkRows(rows []Row) error {
	for i, r := range rows {
		if r == nil {
			return fmt.Errorf("%w: row %d is nil", ErrDimensionMismatch, i)
		}
		if r.Len() != t.index.Len() {
			return rowLengthMismatch(i, r.Len(), t.index.Len())
		}
	}
	return nil
}

// ColumnIndex returns the column index. It may be shared with
// tables sliced from this one; use Rename rather than mutating it.
func (t *Table) ColumnIndex() *ColumnIndex {
	return t.index
}

// Names returns the column labels in order.
func (t *Table) Names() []Label {
	return t.index.Names()
}

// Rows returns the row sequence. The slice is a copy; the rows are not.
func (t *Table) Rows() []Row {
	return append([]Row(nil), t.rows...)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return len(t.rows) }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return t.index.Len() }

// Size returns (rows, columns).
func (t *Table) Size() (int, int) {
	return len(t.rows), t.index.Len()
}

// Dim returns the row count for d == 1 and the column count for d == 2.
func (t *Table) Dim(d int) (int, error) {
	switch d {
	case 1:
		return len(t.rows), nil
	case 2:
		return t.index.Len(), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidDimension, d)
	}
}

// String renders the table as a tab-separated grid.
func (t *Table) String() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(t.index.labels, "\t"))
	for _, r := range t.rows {
		sb.WriteByte('\n')
		for j := 0; j < r.Len(); j++ {
			if j > 0 {
				sb.WriteByte('\t')
			}
			fmt.Fprint(&sb, r.At(j))
		}
	}
	return sb.String()
}
