package datatable

import (
	"errors"
	"fmt"
	"reflect"
)

// Common errors returned by the datatable package.
var (
	// ErrDuplicateLabel is returned when a column label appears more than once.
	ErrDuplicateLabel = errors.New("duplicate column label")

	// ErrKeyNotFound is returned when a column label is not in the index.
	ErrKeyNotFound = errors.New("key not found")

	// ErrIndexOutOfRange is returned when a row or column position is out of range.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidDimension is returned by Dim for anything but 1 or 2.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrDimensionMismatch is returned when lengths or counts disagree.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrUnsupportedEmptyColumn is returned when a table cannot be built from empty columns.
	ErrUnsupportedEmptyColumn = errors.New("cannot construct from empty column")

	// ErrUnsupportedElementType is returned when a record or value has no known shape.
	ErrUnsupportedElementType = errors.New("unsupported element type")

	// ErrInconsistentElementType is returned when a record's shape differs from the first one.
	ErrInconsistentElementType = errors.New("inconsistent element type")

	// ErrTypeMismatch is returned when a value does not match a fixed column or field type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNilFilter is returned by Where when no filter is given.
	ErrNilFilter = errors.New("filter is nil")
)

// TypeMismatchError reports a value whose dynamic type differs from the
// type fixed for its column.
//
// It unwraps to ErrTypeMismatch.
type TypeMismatchError struct {
	Column   Label
	Row      int
	Expected reflect.Type
	Actual   reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch in column %q at row %d: expected %v, got %v",
		e.Column, e.Row, e.Expected, e.Actual)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

func rowOutOfRange(i, n int) error {
	return fmt.Errorf("%w: row %d not in [0, %d)", ErrIndexOutOfRange, i, n)
}

func colOutOfRange(i, n int) error {
	return fmt.Errorf("%w: column %d not in [0, %d)", ErrIndexOutOfRange, i, n)
}

func rowLengthMismatch(row, got, want int) error {
	return fmt.Errorf("%w: row %d has %d values, table has %d columns", ErrDimensionMismatch, row, got, want)
}
