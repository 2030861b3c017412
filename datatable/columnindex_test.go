package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewColumnIndex(t *testing.T) {
	ci, err := NewColumnIndex("x", "y", "z")
	require.NoError(t, err)
	require.Equal(t, 3, ci.Len())
	require.Equal(t, []Label{"x", "y", "z"}, ci.Names())

	pos, err := ci.Position("y")
	require.NoError(t, err)
	require.Equal(t, 1, pos)

	l, err := ci.Label(2)
	require.NoError(t, err)
	require.Equal(t, "z", l)
}

func TestNewColumnIndex_Duplicate(t *testing.T) {
	_, err := NewColumnIndex("x", "y", "x")
	require.ErrorIs(t, err, ErrDuplicateLabel)
}

func TestColumnIndex_Lookups(t *testing.T) {
	ci, err := NewColumnIndex("a", "b")
	require.NoError(t, err)

	_, err = ci.Position("missing")
	require.ErrorIs(t, err, ErrKeyNotFound)

	_, err = ci.Label(2)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = ci.Label(-1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	assert.True(t, ci.Contains("a"))
	assert.False(t, ci.Contains("c"))
}

func TestColumnIndex_NamesIsCopy(t *testing.T) {
	ci, err := NewColumnIndex("a", "b")
	require.NoError(t, err)

	names := ci.Names()
	names[0] = "changed"
	require.Equal(t, []Label{"a", "b"}, ci.Names())
}

func TestColumnIndex_Rename(t *testing.T) {
	tests := []struct {
		name    string
		mapping map[Label]Label
		want    []Label
		wantErr error
	}{
		{"Single", map[Label]Label{"b": "B"}, []Label{"a", "B", "c"}, nil},
		{"Swap", map[Label]Label{"a": "c", "c": "a"}, []Label{"c", "b", "a"}, nil},
		{"Identity", map[Label]Label{"a": "a"}, []Label{"a", "b", "c"}, nil},
		{"MissingKey", map[Label]Label{"z": "q"}, nil, ErrKeyNotFound},
		{"Collision", map[Label]Label{"a": "b"}, nil, ErrDuplicateLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ci, err := NewColumnIndex("a", "b", "c")
			require.NoError(t, err)

			err = ci.Rename(tt.mapping)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Equal(t, []Label{"a", "b", "c"}, ci.Names(), "failed rename must not change the index")
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, ci.Names())
			for i, l := range tt.want {
				pos, err := ci.Position(l)
				require.NoError(t, err)
				require.Equal(t, i, pos)
			}
		})
	}
}

func TestColumnIndex_EqualAndClone(t *testing.T) {
	a, _ := NewColumnIndex("x", "y")
	b, _ := NewColumnIndex("x", "y")
	c, _ := NewColumnIndex("y", "x")

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.False(t, a.Equal(c), "equality is position-sensitive")
	assert.False(t, a.Equal(nil))

	clone := a.Clone()
	require.True(t, clone.Equal(a))
	require.NoError(t, clone.Rename(map[Label]Label{"x": "q"}))
	assert.Equal(t, []Label{"x", "y"}, a.Names())
	assert.Equal(t, "[q, y]", clone.String())
}
