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

package arrowadapter

import (
	"context"
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/magpierre/rowtable/datatable"
)

// TypeMetadataKey is the field metadata key recording the Go type class of
// a column, list element or union member, so that reading the table back
// restores int and uint cells.
const TypeMetadataKey = "datatable.type"

// ToArrowTable converts t into an Arrow table. With typed set, every column
// must be homogeneous. Without it, mixed columns are stored as dense unions
// with one member per type class. []any cells become Arrow lists.
// The caller must Release the returned table.
func ToArrowTable(t *datatable.Table, typed bool, opts ...Option) (arrow.Table, error) {
	return datatable.ToExternal(t, typed, Build(opts...))
}

// FromArrowTable copies an Arrow table into a row-major table. With tuples
// set, rows are fixed-shape Records; otherwise mutable Arrays.
func FromArrowTable(tbl arrow.Table, tuples bool, opts ...datatable.Option) (*datatable.Table, error) {
	src, err := NewFromArrowTable(tbl)
	if err != nil {
		return nil, err
	}
	defer src.Release()

	kind := datatable.ArrayRows
	if tuples {
		kind = datatable.RecordRows
	}
	return datatable.FromSource(src, append(opts[:len(opts):len(opts)], datatable.WithRowKind(kind))...)
}

// Build returns the construction call that turns column containers and
// labels into an Arrow table.
func Build(opts ...Option) datatable.BuildFunc[arrow.Table] {
	o := applyOptions(opts)
	return func(columns []datatable.Column, labels []datatable.Label) (arrow.Table, error) {
		if len(columns) != len(labels) {
			return nil, fmt.Errorf("%w: %d columns, %d labels", datatable.ErrDimensionMismatch, len(columns), len(labels))
		}

		nrows := 0
		if len(columns) > 0 {
			nrows = columns[0].Len()
		}

		fields := make([]arrow.Field, len(columns))
		cols := make([]arrow.Column, len(columns))
		for j, c := range columns {
			if c.Len() != nrows {
				releaseColumns(cols[:j])
				return nil, fmt.Errorf("%w: column %q has %d values, expected %d",
					datatable.ErrDimensionMismatch, labels[j], c.Len(), nrows)
			}

			arr, enc, err := buildColumn(o, c, labels[j])
			if err != nil {
				releaseColumns(cols[:j])
				o.logger.LogConvert(context.Background(), c.Typed(), 0, 0, err)
				return nil, err
			}
			if enc.children != nil {
				o.logger.Debug("column stored as dense union", "column", labels[j], "members", len(enc.children))
			}
			fields[j] = enc.field(labels[j])
			chunked := arrow.NewChunked(enc.dtype, []arrow.Array{arr})
			arr.Release()
			col := arrow.NewColumn(fields[j], chunked)
			chunked.Release()
			cols[j] = *col
		}

		schema := arrow.NewSchema(fields, nil)
		tbl := array.NewTable(schema, cols, int64(nrows))
		releaseColumns(cols)
		o.logger.Debug("arrow table built", "rows", nrows, "cols", len(cols))
		return tbl, nil
	}
}

func releaseColumns(cols []arrow.Column) {
	for j := range cols {
		cols[j].Release()
	}
}

// buildColumn plans the Arrow type of c and fills an array with its values.
// Typed columns keep their kind, so a stray value is a mismatch rather than
// a new union member.
func buildColumn(o *options, c datatable.Column, label datatable.Label) (arrow.Array, *encoder, error) {
	var (
		enc *encoder
		err error
	)
	if c.Typed() {
		enc, err = planKind(c.Kind, c.Values)
	} else {
		enc, err = planColumn(c.Values)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("column %q: %w", label, err)
	}

	builder := array.NewBuilder(o.mem, enc.dtype)
	defer builder.Release()
	builder.Reserve(len(c.Values))

	for i, v := range c.Values {
		if err := enc.append(builder, v); err != nil {
			return nil, nil, fmt.Errorf("column %q row %d: %w", label, i, err)
		}
	}
	return builder.NewArray(), enc, nil
}

// encoder maps Go values of one column, list element or union member onto
// an Arrow type. Exactly one of elem and children is set for lists and
// unions.
type encoder struct {
	kind     datatable.DataType
	dtype    arrow.DataType
	elem     *encoder
	children []*encoder
	codes    map[datatable.DataType]arrow.UnionTypeCode
}

// planColumn picks the Arrow type for a set of values. Values sharing one
// type class map directly; several classes become a dense union whose
// members appear in first-seen order.
func planColumn(vals []datatable.Value) (*encoder, error) {
	var kinds []datatable.DataType
	groups := make(map[datatable.DataType][]datatable.Value)
	for _, v := range vals {
		if v == nil {
			continue
		}
		k := datatable.TypeOf(v)
		if _, seen := groups[k]; !seen {
			kinds = append(kinds, k)
		}
		groups[k] = append(groups[k], v)
	}

	switch len(kinds) {
	case 0:
		return planKind(datatable.TypeNull, nil)
	case 1:
		return planKind(kinds[0], groups[kinds[0]])
	}

	enc := &encoder{
		kind:     datatable.TypeAny,
		children: make([]*encoder, len(kinds)),
		codes:    make(map[datatable.DataType]arrow.UnionTypeCode, len(kinds)),
	}
	fields := make([]arrow.Field, len(kinds))
	codes := make([]arrow.UnionTypeCode, len(kinds))
	for i, k := range kinds {
		child, err := planKind(k, groups[k])
		if err != nil {
			return nil, err
		}
		code := arrow.UnionTypeCode(i)
		enc.children[i] = child
		enc.codes[k] = code
		fields[i] = child.field(k.String())
		codes[i] = code
	}
	enc.dtype = arrow.DenseUnionOf(fields, codes)
	return enc, nil
}

// planKind returns the encoder for values of a single type class. List
// elements are planned together across every list in vals.
func planKind(kind datatable.DataType, vals []datatable.Value) (*encoder, error) {
	switch kind {
	case datatable.TypeList:
		var elems []datatable.Value
		for _, v := range vals {
			if l, ok := v.([]any); ok {
				elems = append(elems, l...)
			}
		}
		elem, err := planColumn(elems)
		if err != nil {
			return nil, err
		}
		return &encoder{kind: kind, dtype: arrow.ListOfField(elem.field("item")), elem: elem}, nil

	case datatable.TypeAny:
		for _, v := range vals {
			if v != nil {
				return nil, fmt.Errorf("%w: %T has no Arrow type", datatable.ErrUnsupportedElementType, v)
			}
		}
	}
	return &encoder{kind: kind, dtype: arrowType(kind)}, nil
}

func (e *encoder) field(name string) arrow.Field {
	return arrow.Field{
		Name:     name,
		Type:     e.dtype,
		Nullable: true,
		Metadata: arrow.NewMetadata([]string{TypeMetadataKey}, []string{e.kind.String()}),
	}
}

// append writes v into a builder created for e.dtype.
func (e *encoder) append(builder array.Builder, v datatable.Value) error {
	if v == nil {
		builder.AppendNull()
		return nil
	}

	switch {
	case e.children != nil:
		code, ok := e.codes[datatable.TypeOf(v)]
		if !ok {
			return fmt.Errorf("%w: %T is not a member of the union", datatable.ErrTypeMismatch, v)
		}
		ub := builder.(*array.DenseUnionBuilder)
		ub.Append(code)
		return e.children[code].append(ub.Child(int(code)), v)

	case e.elem != nil:
		l, ok := v.([]any)
		if !ok {
			return fmt.Errorf("%w: %T in %v column", datatable.ErrTypeMismatch, v, e.kind)
		}
		lb := builder.(*array.ListBuilder)
		lb.Append(true)
		for _, x := range l {
			if err := e.elem.append(lb.ValueBuilder(), x); err != nil {
				return err
			}
		}
		return nil
	}
	return appendValue(builder, e.kind, v)
}

func arrowType(kind datatable.DataType) arrow.DataType {
	switch kind {
	case datatable.TypeNull:
		return arrow.Null
	case datatable.TypeBool:
		return arrow.FixedWidthTypes.Boolean
	case datatable.TypeInt, datatable.TypeInt64:
		return arrow.PrimitiveTypes.Int64
	case datatable.TypeInt8:
		return arrow.PrimitiveTypes.Int8
	case datatable.TypeInt16:
		return arrow.PrimitiveTypes.Int16
	case datatable.TypeInt32:
		return arrow.PrimitiveTypes.Int32
	case datatable.TypeUint, datatable.TypeUint64:
		return arrow.PrimitiveTypes.Uint64
	case datatable.TypeUint8:
		return arrow.PrimitiveTypes.Uint8
	case datatable.TypeUint16:
		return arrow.PrimitiveTypes.Uint16
	case datatable.TypeUint32:
		return arrow.PrimitiveTypes.Uint32
	case datatable.TypeFloat32:
		return arrow.PrimitiveTypes.Float32
	case datatable.TypeFloat64:
		return arrow.PrimitiveTypes.Float64
	case datatable.TypeBinary:
		return arrow.BinaryTypes.Binary
	case datatable.TypeTimestamp:
		return arrow.FixedWidthTypes.Timestamp_ns
	default:
		return arrow.BinaryTypes.String
	}
}

// appendValue appends a Go value to a builder created for kind.
func appendValue(builder array.Builder, kind datatable.DataType, v datatable.Value) error {
	if v == nil {
		builder.AppendNull()
		return nil
	}

	ok := true
	switch kind {
	case datatable.TypeBool:
		var x bool
		if x, ok = v.(bool); ok {
			builder.(*array.BooleanBuilder).Append(x)
		}
	case datatable.TypeInt:
		var x int
		if x, ok = v.(int); ok {
			builder.(*array.Int64Builder).Append(int64(x))
		}
	case datatable.TypeInt8:
		var x int8
		if x, ok = v.(int8); ok {
			builder.(*array.Int8Builder).Append(x)
		}
	case datatable.TypeInt16:
		var x int16
		if x, ok = v.(int16); ok {
			builder.(*array.Int16Builder).Append(x)
		}
	case datatable.TypeInt32:
		var x int32
		if x, ok = v.(int32); ok {
			builder.(*array.Int32Builder).Append(x)
		}
	case datatable.TypeInt64:
		var x int64
		if x, ok = v.(int64); ok {
			builder.(*array.Int64Builder).Append(x)
		}
	case datatable.TypeUint:
		var x uint
		if x, ok = v.(uint); ok {
			builder.(*array.Uint64Builder).Append(uint64(x))
		}
	case datatable.TypeUint8:
		var x uint8
		if x, ok = v.(uint8); ok {
			builder.(*array.Uint8Builder).Append(x)
		}
	case datatable.TypeUint16:
		var x uint16
		if x, ok = v.(uint16); ok {
			builder.(*array.Uint16Builder).Append(x)
		}
	case datatable.TypeUint32:
		var x uint32
		if x, ok = v.(uint32); ok {
			builder.(*array.Uint32Builder).Append(x)
		}
	case datatable.TypeUint64:
		var x uint64
		if x, ok = v.(uint64); ok {
			builder.(*array.Uint64Builder).Append(x)
		}
	case datatable.TypeFloat32:
		var x float32
		if x, ok = v.(float32); ok {
			builder.(*array.Float32Builder).Append(x)
		}
	case datatable.TypeFloat64:
		var x float64
		if x, ok = v.(float64); ok {
			builder.(*array.Float64Builder).Append(x)
		}
	case datatable.TypeString:
		var x string
		if x, ok = v.(string); ok {
			builder.(*array.StringBuilder).Append(x)
		}
	case datatable.TypeBinary:
		var x []byte
		if x, ok = v.([]byte); ok {
			builder.(*array.BinaryBuilder).Append(x)
		}
	case datatable.TypeTimestamp:
		var x time.Time
		if x, ok = v.(time.Time); ok {
			builder.(*array.TimestampBuilder).Append(arrow.Timestamp(x.UnixNano()))
		}
	default:
		ok = false
	}

	if !ok {
		return fmt.Errorf("%w: %T in %v column", datatable.ErrTypeMismatch, v, kind)
	}
	return nil
}
