package arrowadapter

import (
	"reflect"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/rowtable/datatable"
)

func mixedTable(t *testing.T) *datatable.Table {
	t.Helper()
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tbl, err := datatable.FromRows(
		[]datatable.Label{"id", "name", "score", "ok", "count", "at", "raw", "small"},
		[][]datatable.Value{
			{1, "ada", 9.5, true, uint(3), ts, []byte("x"), int8(-1)},
			{2, nil, 7.25, false, uint(4), ts.Add(time.Hour), nil, int8(2)},
			{3, "grace", nil, nil, uint(5), nil, []byte("yz"), nil},
		})
	require.NoError(t, err)
	return tbl
}

func TestToArrowTable_RoundTrip(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	orig := mixedTable(t)
	for _, typed := range []bool{false, true} {
		tbl, err := ToArrowTable(orig, typed, WithAllocator(mem))
		require.NoError(t, err)
		require.Equal(t, int64(3), tbl.NumRows())
		require.Equal(t, int64(8), tbl.NumCols())

		back, err := FromArrowTable(tbl, false)
		tbl.Release()
		require.NoError(t, err)
		require.True(t, back.Equal(orig), "typed=%v:\n%v", typed, back)
	}
}

func TestToArrowTable_Schema(t *testing.T) {
	tbl, err := ToArrowTable(mixedTable(t), true)
	require.NoError(t, err)
	defer tbl.Release()

	schema := tbl.Schema()
	want := []arrow.DataType{
		arrow.PrimitiveTypes.Int64,
		arrow.BinaryTypes.String,
		arrow.PrimitiveTypes.Float64,
		arrow.FixedWidthTypes.Boolean,
		arrow.PrimitiveTypes.Uint64,
		arrow.FixedWidthTypes.Timestamp_ns,
		arrow.BinaryTypes.Binary,
		arrow.PrimitiveTypes.Int8,
	}
	for j, dt := range want {
		field := schema.Field(j)
		require.True(t, arrow.TypeEqual(dt, field.Type), "field %s is %v", field.Name, field.Type)
		require.True(t, field.Nullable)
	}

	idField := schema.Field(0)
	i := idField.Metadata.FindKey(TypeMetadataKey)
	require.GreaterOrEqual(t, i, 0)
	require.Equal(t, "Int", idField.Metadata.Values()[i])
}

func TestToArrowTable_TypedMismatch(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	tbl, err := datatable.FromRows([]datatable.Label{"a", "b"}, [][]datatable.Value{
		{1, "x"},
		{2, 3},
	})
	require.NoError(t, err)

	_, err = ToArrowTable(tbl, true, WithAllocator(mem))
	require.ErrorIs(t, err, datatable.ErrTypeMismatch)
}

func TestToArrowTable_UntypedMixedColumn(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	tbl, err := datatable.FromRows([]datatable.Label{"v", "list"}, [][]datatable.Value{
		{1, []any{1, 2}},
		{"one", nil},
		{nil, []any{"x", nil, int64(3)}},
		{2.5, []any{}},
		{int64(7), []any{[]any{uint(1)}, true}},
		{[]any{1, "two"}, []any{[]byte("b")}},
	})
	require.NoError(t, err)

	at, err := ToArrowTable(tbl, false, WithAllocator(mem))
	require.NoError(t, err)

	field := at.Schema().Field(0)
	require.Equal(t, arrow.DENSE_UNION, field.Type.ID())
	union := field.Type.(*arrow.DenseUnionType)
	require.Len(t, union.Fields(), 5)
	require.Equal(t, "Int", union.Fields()[0].Name)
	require.Equal(t, arrow.LIST, at.Schema().Field(1).Type.ID())

	back, err := FromArrowTable(at, false)
	at.Release()
	require.NoError(t, err)
	require.True(t, back.Equal(tbl), "%v", back)

	col, err := back.Column(datatable.Name("v"))
	require.NoError(t, err)
	require.Equal(t, []datatable.Value{1, "one", nil, 2.5, int64(7), []any{1, "two"}}, col)
}

func TestToArrowTable_TypedListColumn(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	tbl, err := datatable.FromRows([]datatable.Label{"tags"}, [][]datatable.Value{
		{[]any{"a", "b"}}, {nil}, {[]any{}},
	})
	require.NoError(t, err)

	at, err := ToArrowTable(tbl, true, WithAllocator(mem))
	require.NoError(t, err)
	elem := at.Schema().Field(0).Type.(*arrow.ListType).Elem()
	require.True(t, arrow.TypeEqual(arrow.BinaryTypes.String, elem))

	back, err := FromArrowTable(at, true)
	at.Release()
	require.NoError(t, err)
	require.True(t, back.Equal(tbl), "%v", back)
}

func TestToArrowTable_Unsupported(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	type point struct{ X, Y int }
	for _, typed := range []bool{false, true} {
		for _, v := range []datatable.Value{point{1, 2}, map[string]any{"k": 1}, []any{point{}}} {
			tbl, err := datatable.FromRows([]datatable.Label{"ok", "v"}, [][]datatable.Value{
				{1, v}, {2, nil},
			})
			require.NoError(t, err)

			_, err = ToArrowTable(tbl, typed, WithAllocator(mem))
			require.ErrorIs(t, err, datatable.ErrUnsupportedElementType, "typed=%v %T", typed, v)
		}
	}
}

func TestBuild_Errors(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	build := Build(WithAllocator(mem))

	_, err := build([]datatable.Column{{Values: []datatable.Value{1}}}, nil)
	require.ErrorIs(t, err, datatable.ErrDimensionMismatch)

	_, err = build([]datatable.Column{
		{Values: []datatable.Value{1, 2}},
		{Values: []datatable.Value{1}},
	}, []datatable.Label{"a", "b"})
	require.ErrorIs(t, err, datatable.ErrDimensionMismatch)

	_, err = build([]datatable.Column{
		{Values: []datatable.Value{1, 2}},
		{Kind: datatable.TypeString, Type: reflect.TypeOf(""), Values: []datatable.Value{"a", 2}},
	}, []datatable.Label{"a", "b"})
	require.ErrorIs(t, err, datatable.ErrTypeMismatch)
}

func TestToArrowTable_Empty(t *testing.T) {
	tbl, err := datatable.FromRows([]datatable.Label{"a", "b"}, nil)
	require.NoError(t, err)

	at, err := ToArrowTable(tbl, true)
	require.NoError(t, err)
	defer at.Release()
	require.Equal(t, int64(0), at.NumRows())
	require.Equal(t, int64(2), at.NumCols())

	back, err := FromArrowTable(at, true)
	require.NoError(t, err)
	require.True(t, back.Equal(tbl))
}

func TestFromArrowTable_Tuples(t *testing.T) {
	at, err := ToArrowTable(mixedTable(t), false)
	require.NoError(t, err)
	defer at.Release()

	back, err := FromArrowTable(at, true)
	require.NoError(t, err)
	require.Equal(t, datatable.RecordRows, back.Rows()[0].Kind())

	err = back.SetIndex("one", 0, datatable.Name("id"))
	require.ErrorIs(t, err, datatable.ErrTypeMismatch)
}

func TestFromArrowTable_KeepsCallerOptions(t *testing.T) {
	at, err := ToArrowTable(mixedTable(t), false)
	require.NoError(t, err)
	defer at.Release()

	opts := make([]datatable.Option, 1, 2)
	opts[0] = datatable.WithLogger(datatable.NoopLogger())

	_, err = FromArrowTable(at, true, opts...)
	require.NoError(t, err)
	require.Nil(t, opts[:2][1], "spare capacity was written")
}
