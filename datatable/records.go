package datatable

import (
	"context"
	"fmt"
	"reflect"
	"sort"
)

type shapeClass int

const (
	shapeMap shapeClass = iota
	shapeColumn
	shapeStruct
	shapeRow
)

func (s shapeClass) String() string {
	switch s {
	case shapeMap:
		return "map"
	case shapeColumn:
		return "column"
	case shapeStruct:
		return "struct"
	default:
		return "row"
	}
}

// classify returns the shape class of v and, for structs, the struct type.
func classify(v any) (shapeClass, reflect.Type, error) {
	switch v.(type) {
	case map[string]any:
		return shapeMap, nil, nil
	case Row:
		return shapeRow, nil, nil
	case []any:
		return shapeColumn, nil, nil
	}
	rt := reflect.TypeOf(v)
	if rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt != nil && rt.Kind() == reflect.Struct {
		return shapeStruct, rt, nil
	}
	return 0, nil, fmt.Errorf("%w: %T", ErrUnsupportedElementType, v)
}

// FromRecords builds a table from a sequence whose shape is decided by its
// first element:
//
//   - map[string]any: one row per map. Keys come from WithKeys, or are the
//     first map's keys in sorted order.
//   - []any: one column per element. Labels come from WithLabels, or are
//     x1..xn.
//   - struct or pointer to struct: one Record row per element. Labels are the
//     exported field names, overridden by a `datatable:"name"` tag; "-" skips
//     a field.
//   - Row: stored as given. Labels come from WithLabels, or are x1..xn.
//
// Every later element must have the same shape as the first, otherwise
// ErrInconsistentElementType is returned.
func FromRecords(records []any, opts ...Option) (*Table, error) {
	o := applyOptions(opts)
	if len(records) == 0 {
		switch {
		case o.keys != nil:
			return FromMaps(nil, o.keys, opts...)
		case o.labels != nil:
			return FromRows(o.labels, nil, opts...)
		default:
			return nil, fmt.Errorf("%w: no records to infer columns from", ErrUnsupportedEmptyColumn)
		}
	}

	class, structType, err := classify(records[0])
	if err != nil {
		o.logger.LogBuild(context.Background(), "records", 0, 0, err)
		return nil, err
	}

	switch class {
	case shapeMap:
		return fromMapRecords(records, o, opts)
	case shapeColumn:
		return fromColumnRecords(records, o, opts)
	case shapeStruct:
		return fromStructRecords(records, structType, o)
	default:
		return fromRowRecords(records, o)
	}
}

func checkShape(i int, v any, want shapeClass, wantType reflect.Type) error {
	class, rt, err := classify(v)
	if err != nil || class != want || rt != wantType {
		return fmt.Errorf("%w: element %d is %T, element 0 is a %v", ErrInconsistentElementType, i, v, want)
	}
	return nil
}

func fromMapRecords(records []any, o *options, opts []Option) (*Table, error) {
	maps := make([]map[Label]Value, len(records))
	for i, rec := range records {
		if err := checkShape(i, rec, shapeMap, nil); err != nil {
			return nil, err
		}
		maps[i] = rec.(map[string]any)
	}
	keys := o.keys
	if keys == nil {
		keys = make([]Label, 0, len(maps[0]))
		for k := range maps[0] {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}
	return FromMaps(maps, keys, opts...)
}

func fromColumnRecords(records []any, o *options, opts []Option) (*Table, error) {
	cols := make([][]Value, len(records))
	for i, rec := range records {
		if err := checkShape(i, rec, shapeColumn, nil); err != nil {
			return nil, err
		}
		cols[i] = rec.([]any)
	}
	labels := o.labels
	if labels == nil {
		labels = defaultLabels(len(cols))
	}
	return FromColumns(cols, labels, opts...)
}

func fromStructRecords(records []any, st reflect.Type, o *options) (*Table, error) {
	var (
		fields []int
		labels []Label
	)
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("datatable"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		fields = append(fields, i)
		labels = append(labels, name)
	}
	index, err := NewColumnIndex(labels...)
	if err != nil {
		return nil, err
	}

	kind := RecordRows
	if o.kindSet {
		kind = o.kind
	}
	rows := make([]Row, len(records))
	for i, rec := range records {
		if err := checkShape(i, rec, shapeStruct, st); err != nil {
			return nil, err
		}
		rv := reflect.ValueOf(rec)
		if rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return nil, fmt.Errorf("%w: element %d is a nil pointer", ErrInconsistentElementType, i)
			}
			rv = rv.Elem()
		}
		vals := make([]Value, len(fields))
		for j, fi := range fields {
			vals[j] = rv.Field(fi).Interface()
		}
		rows[i] = makeRow(kind, vals)
	}
	o.logger.LogBuild(context.Background(), "structs", len(rows), len(labels), nil)
	return &Table{rows: rows, index: index, logger: o.logger}, nil
}

func fromRowRecords(records []any, o *options) (*Table, error) {
	rows := make([]Row, len(records))
	for i, rec := range records {
		if err := checkShape(i, rec, shapeRow, nil); err != nil {
			return nil, err
		}
		rows[i] = rec.(Row)
	}
	labels := o.labels
	if labels == nil {
		labels = defaultLabels(rows[0].Len())
	}
	index, err := NewColumnIndex(labels...)
	if err != nil {
		return nil, err
	}
	t, err := New(index, rows...)
	if err != nil {
		return nil, err
	}
	t.logger = o.logger
	t.logger.LogBuild(context.Background(), "rows", len(rows), index.Len(), nil)
	return t, nil
}

func defaultLabels(n int) []Label {
	labels := make([]Label, n)
	for i := range labels {
		labels[i] = "x" + IntLabel(i+1)
	}
	return labels
}
