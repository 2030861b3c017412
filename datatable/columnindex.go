package datatable

import (
	"fmt"
	"strings"
)

// ColumnIndex maps column labels to zero-based positions and back.
type ColumnIndex struct {
	labels    []Label
	positions map[Label]int
}

// NewColumnIndex builds an index from an ordered sequence of labels.
// Returns ErrDuplicateLabel if any label repeats.
func NewColumnIndex(labels ...Label) (*ColumnIndex, error) {
	positions := make(map[Label]int, len(labels))
	for i, l := range labels {
		if _, dup := positions[l]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, l)
		}
		positions[l] = i
	}
	return &ColumnIndex{
		labels:    append([]Label(nil), labels...),
		positions: positions,
	}, nil
}

// Len returns the number of columns.
func (ci *ColumnIndex) Len() int {
	return len(ci.labels)
}

// Position returns the position of label.
// Returns ErrKeyNotFound if the label is absent.
func (ci *ColumnIndex) Position(label Label) (int, error) {
	pos, ok := ci.positions[label]
	if !ok {
		return -1, fmt.Errorf("%w: column %q", ErrKeyNotFound, label)
	}
	return pos, nil
}

// Contains reports whether label is in the index.
func (ci *ColumnIndex) Contains(label Label) bool {
	_, ok := ci.positions[label]
	return ok
}

// Label returns the label at pos.
// Returns ErrIndexOutOfRange if pos is outside [0, Len()).
func (ci *ColumnIndex) Label(pos int) (Label, error) {
	if pos < 0 || pos >= len(ci.labels) {
		return "", colOutOfRange(pos, len(ci.labels))
	}
	return ci.labels[pos], nil
}

// Names returns the labels in position order.
func (ci *ColumnIndex) Names() []Label {
	return append([]Label(nil), ci.labels...)
}

// Rename substitutes labels in place, keeping every position.
// The index is left untouched when an error is returned.
func (ci *ColumnIndex) Rename(mapping map[Label]Label) error {
	next := append([]Label(nil), ci.labels...)
	for old, renamed := range mapping {
		pos, ok := ci.positions[old]
		if !ok {
			return fmt.Errorf("%w: column %q", ErrKeyNotFound, old)
		}
		next[pos] = renamed
	}

	positions := make(map[Label]int, len(next))
	for i, l := range next {
		if _, dup := positions[l]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateLabel, l)
		}
		positions[l] = i
	}

	ci.labels = next
	ci.positions = positions
	return nil
}

// Equal reports whether both indexes hold the same labels in the same order.
func (ci *ColumnIndex) Equal(other *ColumnIndex) bool {
	if ci == other {
		return true
	}
	if ci == nil || other == nil || len(ci.labels) != len(other.labels) {
		return false
	}
	for i, l := range ci.labels {
		if other.labels[i] != l {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (ci *ColumnIndex) Clone() *ColumnIndex {
	positions := make(map[Label]int, len(ci.positions))
	for k, v := range ci.positions {
		positions[k] = v
	}
	return &ColumnIndex{
		labels:    append([]Label(nil), ci.labels...),
		positions: positions,
	}
}

func (ci *ColumnIndex) String() string {
	return "[" + strings.Join(ci.labels, ", ") + "]"
}
