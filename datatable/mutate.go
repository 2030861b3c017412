package datatable

import (
	"context"
	"fmt"
	"math/rand/v2"
)

// Append adds rows at the end and returns t.
func (t *Table) Append(rows ...Row) (*Table, error) {
	if err := t.checkRows(rows); err != nil {
		return t, err
	}
	t.rows = append(t.rows, rows...)
	t.logger.LogMutate(context.Background(), "append", len(rows))
	return t, nil
}

// Prepend adds rows at the start, keeping their order, and returns t.
func (t *Table) Prepend(rows ...Row) (*Table, error) {
	return t.Insert(0, rows...)
}

// Insert places rows before position i and returns t. i may equal NumRows.
func (t *Table) Insert(i int, rows ...Row) (*Table, error) {
	if i < 0 || i > len(t.rows) {
		return t, rowOutOfRange(i, len(t.rows)+1)
	}
	if err := t.checkRows(rows); err != nil {
		return t, err
	}
	next := make([]Row, 0, len(t.rows)+len(rows))
	next = append(next, t.rows[:i]...)
	next = append(next, rows...)
	t.rows = append(next, t.rows[i:]...)
	t.logger.LogMutate(context.Background(), "insert", len(rows))
	return t, nil
}

// Delete removes the rows at the given positions and returns t.
// Positions may be given in any order; repeats are removed once.
func (t *Table) Delete(is ...int) (*Table, error) {
	drop := make(map[int]struct{}, len(is))
	for _, i := range is {
		if err := t.checkRow(i); err != nil {
			return t, err
		}
		drop[i] = struct{}{}
	}
	kept := t.rows[:0]
	for i, r := range t.rows {
		if _, ok := drop[i]; !ok {
			kept = append(kept, r)
		}
	}
	clear(t.rows[len(kept):])
	t.rows = kept
	t.logger.LogMutate(context.Background(), "delete", len(drop))
	return t, nil
}

// Splice removes n rows starting at start, inserts rows in their place and
// returns t.
func (t *Table) Splice(start, n int, rows ...Row) (*Table, error) {
	if start < 0 || start > len(t.rows) {
		return t, rowOutOfRange(start, len(t.rows)+1)
	}
	if n < 0 || start+n > len(t.rows) {
		return t, fmt.Errorf("%w: cannot remove %d rows at %d of %d", ErrIndexOutOfRange, n, start, len(t.rows))
	}
	if err := t.checkRows(rows); err != nil {
		return t, err
	}
	next := make([]Row, 0, len(t.rows)-n+len(rows))
	next = append(next, t.rows[:start]...)
	next = append(next, rows...)
	t.rows = append(next, t.rows[start+n:]...)
	t.logger.LogMutate(context.Background(), "splice", len(rows)-n)
	return t, nil
}

// RemoveLast removes and returns the last row.
func (t *Table) RemoveLast() (Row, error) {
	if len(t.rows) == 0 {
		return nil, rowOutOfRange(0, 0)
	}
	last := len(t.rows) - 1
	r := t.rows[last]
	t.rows[last] = nil
	t.rows = t.rows[:last]
	return r, nil
}

// RemoveFirst removes and returns the first row.
func (t *Table) RemoveFirst() (Row, error) {
	if len(t.rows) == 0 {
		return nil, rowOutOfRange(0, 0)
	}
	r := t.rows[0]
	t.rows[0] = nil
	t.rows = t.rows[1:]
	return r, nil
}

// Permute reorders rows in place so that row k becomes the old row
// order[k], and returns t. order must be a permutation of 0..NumRows-1.
func (t *Table) Permute(order []int) (*Table, error) {
	if err := checkPermutation(order, len(t.rows)); err != nil {
		return t, err
	}
	next := make([]Row, len(order))
	for k, i := range order {
		next[k] = t.rows[i]
	}
	copy(t.rows, next)
	t.logger.LogMutate(context.Background(), "permute", len(order))
	return t, nil
}

// Permuted returns a permuted copy of t, leaving t unchanged.
func (t *Table) Permuted(order []int) (*Table, error) {
	return t.Copy().Permute(order)
}

// InversePermutation returns inv such that inv[order[k]] == k.
func InversePermutation(order []int) ([]int, error) {
	if err := checkPermutation(order, len(order)); err != nil {
		return nil, err
	}
	inv := make([]int, len(order))
	for k, i := range order {
		inv[i] = k
	}
	return inv, nil
}

func checkPermutation(order []int, n int) error {
	if len(order) != n {
		return fmt.Errorf("%w: permutation of length %d for %d rows", ErrDimensionMismatch, len(order), n)
	}
	seen := make([]bool, n)
	for _, i := range order {
		if i < 0 || i >= n {
			return rowOutOfRange(i, n)
		}
		if seen[i] {
			return fmt.Errorf("%w: row %d repeated in permutation", ErrDimensionMismatch, i)
		}
		seen[i] = true
	}
	return nil
}

// Shuffle reorders rows uniformly at random in place and returns t.
// If r is nil, the package-level source is used.
func (t *Table) Shuffle(r *rand.Rand) *Table {
	swap := func(i, j int) { t.rows[i], t.rows[j] = t.rows[j], t.rows[i] }
	if r == nil {
		rand.Shuffle(len(t.rows), swap)
	} else {
		r.Shuffle(len(t.rows), swap)
	}
	t.logger.LogMutate(context.Background(), "shuffle", len(t.rows))
	return t
}

// Shuffled returns a shuffled copy of t, leaving t unchanged.
func (t *Table) Shuffled(r *rand.Rand) *Table {
	return t.Copy().Shuffle(r)
}

// Rename substitutes column labels. Only labels change; rows are untouched.
// The index is copied before renaming, so tables sliced from t keep their
// labels.
func (t *Table) Rename(mapping map[Label]Label) error {
	index := t.index.Clone()
	if err := index.Rename(mapping); err != nil {
		return err
	}
	t.index = index
	return nil
}

// Equal reports whether both tables have equal column indexes and equal
// rows in the same order. Row kinds are not compared.
func (t *Table) Equal(other *Table) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if !t.index.Equal(other.index) || len(t.rows) != len(other.rows) {
		return false
	}
	for i := range t.rows {
		if !rowsEqual(t.rows[i], other.rows[i]) {
			return false
		}
	}
	return true
}

// Copy returns a table with its own row sequence and row storage. The
// column index is shared until either table is renamed. Cell values are
// not cloned.
func (t *Table) Copy() *Table {
	rows := make([]Row, len(t.rows))
	for i, r := range t.rows {
		if a, ok := r.(Array); ok {
			rows[i] = Array(a.Values())
			continue
		}
		rows[i] = r
	}
	return t.derive(t.index, rows)
}

// DeepCopy is like Copy but also clones byte slices, lists and maps held in
// cells, and gives the copy its own column index.
func (t *Table) DeepCopy() *Table {
	rows := make([]Row, len(t.rows))
	for i, r := range t.rows {
		vals := make([]Value, r.Len())
		for j := range vals {
			vals[j] = deepCopyValue(r.At(j))
		}
		rows[i] = r.with(vals)
	}
	return t.derive(t.index.Clone(), rows)
}
