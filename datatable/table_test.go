package datatable

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T, opts ...Option) *Table {
	t.Helper()
	tbl, err := FromRows([]Label{"x", "y"}, [][]Value{
		{1, "a"},
		{2, "b"},
	}, opts...)
	require.NoError(t, err)
	return tbl
}

func rowValues(tbl *Table) [][]Value {
	out := make([][]Value, 0, tbl.NumRows())
	for _, r := range tbl.Rows() {
		out = append(out, r.Values())
	}
	return out
}

func TestFromRows(t *testing.T) {
	tbl := sampleTable(t)

	rows, cols := tbl.Size()
	require.Equal(t, 2, rows)
	require.Equal(t, 2, cols)
	require.Equal(t, []Label{"x", "y"}, tbl.Names())
	require.Equal(t, [][]Value{{1, "a"}, {2, "b"}}, rowValues(tbl))
	require.Equal(t, ArrayRows, tbl.Rows()[0].Kind())
}

func TestFromRows_RecordKind(t *testing.T) {
	tbl := sampleTable(t, WithRowKind(RecordRows))
	require.Equal(t, RecordRows, tbl.Rows()[0].Kind())
	require.Equal(t, [][]Value{{1, "a"}, {2, "b"}}, rowValues(tbl))
}

func TestFromRows_Errors(t *testing.T) {
	_, err := FromRows([]Label{"x", "y"}, [][]Value{{1, "a"}, {2}})
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = FromRows([]Label{"x", "x"}, nil)
	require.ErrorIs(t, err, ErrDuplicateLabel)
}

func TestFromRows_Empty(t *testing.T) {
	tbl, err := FromRows([]Label{"x", "y"}, nil)
	require.NoError(t, err)

	rows, cols := tbl.Size()
	require.Equal(t, 0, rows)
	require.Equal(t, 2, cols)

	col, err := tbl.Column(Name("x"))
	require.NoError(t, err)
	require.Empty(t, col)
}

func TestNew(t *testing.T) {
	ci, err := NewColumnIndex("a", "b")
	require.NoError(t, err)

	tbl, err := New(ci, Array{1, 2}, NewRecord(3, 4))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.NumRows())
	require.Same(t, ci, tbl.ColumnIndex())

	_, err = New(ci, Array{1})
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = New(nil)
	require.Error(t, err)

	empty, err := New(ci)
	require.NoError(t, err)
	require.Equal(t, 0, empty.NumRows())
}

func TestFromMaps(t *testing.T) {
	records := []map[Label]Value{
		{"name": "ada", "age": 36},
		{"age": 41, "name": "alan"},
	}

	tbl, err := FromMaps(records, []Label{"name", "age"})
	require.NoError(t, err)
	require.Equal(t, []Label{"name", "age"}, tbl.Names())
	require.Equal(t, [][]Value{{"ada", 36}, {"alan", 41}}, rowValues(tbl))
}

func TestFromMaps_Errors(t *testing.T) {
	_, err := FromMaps([]map[Label]Value{
		{"a": 1, "b": 2},
		{"a": 1},
	}, []Label{"a", "b"})
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = FromMaps([]map[Label]Value{{"a": 1, "c": 2}}, []Label{"a", "b"})
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestFromMaps_Empty(t *testing.T) {
	tbl, err := FromMaps(nil, []Label{"a", "b"}, WithRowKind(RecordRows))
	require.NoError(t, err)

	rows, cols := tbl.Size()
	require.Equal(t, 0, rows)
	require.Equal(t, 2, cols)
}

func TestFromColumns(t *testing.T) {
	tbl, err := FromColumns([][]Value{{1, 2}, {3, 4}}, []Label{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, [][]Value{{1, 3}, {2, 4}}, rowValues(tbl))
}

func TestFromColumns_Errors(t *testing.T) {
	tests := []struct {
		name    string
		columns [][]Value
		labels  []Label
		wantErr error
	}{
		{"LabelCount", [][]Value{{1}, {2}}, []Label{"a"}, ErrDimensionMismatch},
		{"RaggedColumns", [][]Value{{1, 2}, {3}}, []Label{"a", "b"}, ErrDimensionMismatch},
		{"EmptyFirstColumn", [][]Value{{}, {}}, []Label{"a", "b"}, ErrUnsupportedEmptyColumn},
		{"NoColumns", nil, nil, ErrUnsupportedEmptyColumn},
		{"DuplicateLabel", [][]Value{{1}, {2}}, []Label{"a", "a"}, ErrDuplicateLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromColumns(tt.columns, tt.labels)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDim(t *testing.T) {
	tbl := sampleTable(t)

	n, err := tbl.Dim(1)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = tbl.Dim(2)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	for _, d := range []int{0, 3, -1} {
		_, err = tbl.Dim(d)
		require.ErrorIs(t, err, ErrInvalidDimension)
	}
}

func TestString(t *testing.T) {
	tbl := sampleTable(t)
	require.Equal(t, "x\ty\n1\ta\n2\tb", tbl.String())
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tbl := sampleTable(t, WithLogger(logger))
	_ = tbl.ToColumns()

	out := buf.String()
	assert.Contains(t, out, "build completed")
	assert.Contains(t, out, "convert completed")
}
