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

// Package arrowadapter connects datatable tables to Apache Arrow tables.
package arrowadapter

import (
	"errors"
	"fmt"
	"sort"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/magpierre/rowtable/datatable"
)

// ErrNilTable is returned when a nil Arrow table is given.
var ErrNilTable = errors.New("arrow table is nil")

// Source reads cells out of an Arrow table. It implements datatable.Source.
type Source struct {
	tbl    arrow.Table
	labels []datatable.Label
	cols   []chunkedColumn
}

type chunkedColumn struct {
	chunks []arrow.Array
	starts []int // first row of each chunk
	dec    *decoder
}

// NewFromArrowTable wraps tbl. The table is retained until Release.
func NewFromArrowTable(tbl arrow.Table) (*Source, error) {
	if tbl == nil {
		return nil, ErrNilTable
	}
	tbl.Retain()

	schema := tbl.Schema()
	ncols := int(tbl.NumCols())
	s := &Source{
		tbl:    tbl,
		labels: make([]datatable.Label, ncols),
		cols:   make([]chunkedColumn, ncols),
	}
	for j := 0; j < ncols; j++ {
		field := schema.Field(j)
		s.labels[j] = field.Name

		chunks := tbl.Column(j).Data().Chunks()
		starts := make([]int, len(chunks))
		offset := 0
		for k, c := range chunks {
			starts[k] = offset
			offset += c.Len()
		}
		s.cols[j] = chunkedColumn{chunks: chunks, starts: starts, dec: newDecoder(field)}
	}
	return s, nil
}

// Release releases the wrapped table.
func (s *Source) Release() {
	if s.tbl != nil {
		s.tbl.Release()
		s.tbl = nil
	}
}

// RowCount implements datatable.Source.
func (s *Source) RowCount() int { return int(s.tbl.NumRows()) }

// ColumnCount implements datatable.Source.
func (s *Source) ColumnCount() int { return len(s.cols) }

// ColumnLabels implements datatable.Source.
func (s *Source) ColumnLabels() []datatable.Label {
	return append([]datatable.Label(nil), s.labels...)
}

// Cell implements datatable.Source.
func (s *Source) Cell(row, col int) (datatable.Value, error) {
	if col < 0 || col >= len(s.cols) {
		return nil, fmt.Errorf("%w: column %d not in [0, %d)", datatable.ErrIndexOutOfRange, col, len(s.cols))
	}
	if row < 0 || row >= s.RowCount() {
		return nil, fmt.Errorf("%w: row %d not in [0, %d)", datatable.ErrIndexOutOfRange, row, s.RowCount())
	}

	c := s.cols[col]
	k := sort.Search(len(c.starts), func(k int) bool { return c.starts[k] > row }) - 1
	return c.dec.value(c.chunks[k], row-c.starts[k]), nil
}

// decoder mirrors an Arrow field's nesting with the Go type classes found
// in its metadata.
type decoder struct {
	kind     datatable.DataType
	hasKind  bool
	elem     *decoder
	children []*decoder // by union child id
}

func newDecoder(f arrow.Field) *decoder {
	d := &decoder{}
	if i := f.Metadata.FindKey(TypeMetadataKey); i >= 0 {
		d.kind, d.hasKind = datatable.ParseDataType(f.Metadata.Values()[i])
	}
	switch t := f.Type.(type) {
	case *arrow.ListType:
		d.elem = newDecoder(t.ElemField())
	case *arrow.DenseUnionType:
		for _, cf := range t.Fields() {
			d.children = append(d.children, newDecoder(cf))
		}
	}
	return d
}

// value returns the Go value at pos. Lists come back as []any and union
// cells as the value of their member.
func (d *decoder) value(arr arrow.Array, pos int) datatable.Value {
	switch a := arr.(type) {
	case *array.DenseUnion:
		id := a.ChildID(pos)
		return d.children[id].value(a.Field(id), int(a.ValueOffset(pos)))

	case *array.List:
		if a.IsNull(pos) {
			return nil
		}
		start, end := a.ValueOffsets(pos)
		values := a.ListValues()
		out := make([]any, 0, end-start)
		for k := start; k < end; k++ {
			out = append(out, d.elem.value(values, int(k)))
		}
		return out
	}

	v := typedValue(arr, pos)
	if d.hasKind {
		v = restoreKind(v, d.kind)
	}
	return v
}

// restoreKind converts widened Arrow values back to the Go type recorded
// in the field metadata.
func restoreKind(v datatable.Value, kind datatable.DataType) datatable.Value {
	switch kind {
	case datatable.TypeInt:
		if x, ok := v.(int64); ok {
			return int(x)
		}
	case datatable.TypeUint:
		if x, ok := v.(uint64); ok {
			return uint(x)
		}
	}
	return v
}

// typedValue returns the Go value at pos, nil for nulls.
func typedValue(col arrow.Array, pos int) datatable.Value {
	if col.IsNull(pos) {
		return nil
	}

	switch col.DataType().ID() {
	case arrow.STRING:
		return col.(*array.String).Value(pos)

	case arrow.LARGE_STRING:
		return col.(*array.LargeString).Value(pos)

	case arrow.BINARY:
		b := col.(*array.Binary).Value(pos)
		return append([]byte(nil), b...)

	case arrow.BOOL:
		return col.(*array.Boolean).Value(pos)

	case arrow.INT8:
		return col.(*array.Int8).Value(pos)

	case arrow.INT16:
		return col.(*array.Int16).Value(pos)

	case arrow.INT32:
		return col.(*array.Int32).Value(pos)

	case arrow.INT64:
		return col.(*array.Int64).Value(pos)

	case arrow.UINT8:
		return col.(*array.Uint8).Value(pos)

	case arrow.UINT16:
		return col.(*array.Uint16).Value(pos)

	case arrow.UINT32:
		return col.(*array.Uint32).Value(pos)

	case arrow.UINT64:
		return col.(*array.Uint64).Value(pos)

	case arrow.FLOAT16:
		return col.(*array.Float16).Value(pos).Float32()

	case arrow.FLOAT32:
		return col.(*array.Float32).Value(pos)

	case arrow.FLOAT64:
		return col.(*array.Float64).Value(pos)

	case arrow.DATE32:
		return col.(*array.Date32).Value(pos).ToTime()

	case arrow.DATE64:
		return col.(*array.Date64).Value(pos).ToTime()

	case arrow.TIMESTAMP:
		unit := col.DataType().(*arrow.TimestampType).Unit
		return col.(*array.Timestamp).Value(pos).ToTime(unit)

	case arrow.DECIMAL128:
		return col.(*array.Decimal128).Value(pos).BigInt().String()

	default:
		return col.ValueStr(pos)
	}
}
