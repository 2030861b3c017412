package datatable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type person struct {
	Name   string `datatable:"name"`
	Age    int
	Secret string `datatable:"-"`
	hidden bool
}

func TestFromRecords_Maps(t *testing.T) {
	records := []any{
		map[string]any{"b": 2, "a": 1},
		map[string]any{"a": 3, "b": 4},
	}

	tbl, err := FromRecords(records)
	require.NoError(t, err)
	require.Equal(t, []Label{"a", "b"}, tbl.Names())
	require.Equal(t, [][]Value{{1, 2}, {3, 4}}, rowValues(tbl))

	tbl, err = FromRecords(records, WithKeys("b", "a"))
	require.NoError(t, err)
	require.Equal(t, []Label{"b", "a"}, tbl.Names())
	require.Equal(t, [][]Value{{2, 1}, {4, 3}}, rowValues(tbl))
}

func TestFromRecords_Columns(t *testing.T) {
	tbl, err := FromRecords([]any{
		[]any{1, 2, 3},
		[]any{"a", "b", "c"},
	})
	require.NoError(t, err)
	require.Equal(t, []Label{"x1", "x2"}, tbl.Names())
	require.Equal(t, [][]Value{{1, "a"}, {2, "b"}, {3, "c"}}, rowValues(tbl))

	tbl, err = FromRecords([]any{[]any{1}, []any{2}}, WithLabels("p", "q"))
	require.NoError(t, err)
	require.Equal(t, []Label{"p", "q"}, tbl.Names())
}

func TestFromRecords_Structs(t *testing.T) {
	tbl, err := FromRecords([]any{
		person{Name: "ada", Age: 36, Secret: "s"},
		&person{Name: "alan", Age: 41},
	})
	require.NoError(t, err)
	require.Equal(t, []Label{"name", "Age"}, tbl.Names())
	require.Equal(t, [][]Value{{"ada", 36}, {"alan", 41}}, rowValues(tbl))
	require.Equal(t, RecordRows, tbl.Rows()[0].Kind())

	tbl, err = FromRecords([]any{person{Name: "ada"}}, WithRowKind(ArrayRows))
	require.NoError(t, err)
	require.Equal(t, ArrayRows, tbl.Rows()[0].Kind())
}

func TestFromRecords_Rows(t *testing.T) {
	tbl, err := FromRecords([]any{Array{1, 2}, NewRecord(3, 4)})
	require.NoError(t, err)
	require.Equal(t, []Label{"x1", "x2"}, tbl.Names())
	require.Equal(t, [][]Value{{1, 2}, {3, 4}}, rowValues(tbl))

	_, err = FromRecords([]any{Array{1, 2}, Array{3}})
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestFromRecords_Errors(t *testing.T) {
	tests := []struct {
		name    string
		records []any
		wantErr error
	}{
		{"Unsupported", []any{42}, ErrUnsupportedElementType},
		{"MapThenColumn", []any{map[string]any{"a": 1}, []any{1}}, ErrInconsistentElementType},
		{"ColumnThenRow", []any{[]any{1}, Array{1}}, ErrInconsistentElementType},
		{"DifferentStructs", []any{person{}, struct{ A int }{}}, ErrInconsistentElementType},
		{"NilStructPointer", []any{&person{}, (*person)(nil)}, ErrInconsistentElementType},
		{"Empty", nil, ErrUnsupportedEmptyColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromRecords(tt.records)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFromRecords_EmptyWithLabels(t *testing.T) {
	tbl, err := FromRecords(nil, WithKeys("a", "b"))
	require.NoError(t, err)
	require.Equal(t, []Label{"a", "b"}, tbl.Names())
	require.Equal(t, 0, tbl.NumRows())

	tbl, err = FromRecords(nil, WithLabels("c"))
	require.NoError(t, err)
	require.Equal(t, []Label{"c"}, tbl.Names())
}
