package filter

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/magpierre/rowtable/datatable"
)

// ErrInvalidFilter is returned when a filter expression is invalid.
var ErrInvalidFilter = errors.New("invalid filter expression")

// Operator compares a cell against a predicate value.
type Operator int

const (
	// OpEqual matches cells equal to the value.
	OpEqual Operator = iota
	// OpNotEqual matches cells not equal to the value.
	OpNotEqual
	// OpLess matches cells ordered before the value.
	OpLess
	// OpLessOrEqual matches cells ordered before or equal to the value.
	OpLessOrEqual
	// OpGreater matches cells ordered after the value.
	OpGreater
	// OpGreaterOrEqual matches cells ordered after or equal to the value.
	OpGreaterOrEqual
	// OpContains matches string cells holding the value as a substring.
	OpContains
	// OpIsNull matches nil cells.
	OpIsNull
	// OpNotNull matches non-nil cells.
	OpNotNull
)

var operatorSymbols = [...]string{
	OpEqual:          "=",
	OpNotEqual:       "!=",
	OpLess:           "<",
	OpLessOrEqual:    "<=",
	OpGreater:        ">",
	OpGreaterOrEqual: ">=",
	OpContains:       "contains",
	OpIsNull:         "is null",
	OpNotNull:        "is not null",
}

// String returns the operator's symbol, as used in descriptions.
func (op Operator) String() string {
	if op >= 0 && int(op) < len(operatorSymbols) {
		return operatorSymbols[op]
	}
	return fmt.Sprintf("unknown(%d)", op)
}

// Predicate tests one column of a row.
type Predicate struct {
	Column datatable.Label
	Op     Operator
	Value  datatable.Value
}

// Eq returns a predicate matching rows whose column equals v.
func Eq(column datatable.Label, v datatable.Value) *Predicate {
	return &Predicate{Column: column, Op: OpEqual, Value: v}
}

// Compare returns a predicate applying op between the column and v.
func Compare(column datatable.Label, op Operator, v datatable.Value) *Predicate {
	return &Predicate{Column: column, Op: op, Value: v}
}

// IsNull returns a predicate matching nil cells.
func IsNull(column datatable.Label) *Predicate {
	return &Predicate{Column: column, Op: OpIsNull}
}

// Evaluate implements the datatable.Filter interface.
func (p *Predicate) Evaluate(row datatable.Row, index *datatable.ColumnIndex) (bool, error) {
	pos, err := index.Position(p.Column)
	if err != nil {
		return false, err
	}
	cell := row.At(pos)

	switch p.Op {
	case OpIsNull:
		return cell == nil, nil
	case OpNotNull:
		return cell != nil, nil
	case OpEqual:
		return equalValues(cell, p.Value), nil
	case OpNotEqual:
		return !equalValues(cell, p.Value), nil
	case OpContains:
		s, ok := cell.(string)
		sub, ok2 := p.Value.(string)
		if !ok || !ok2 {
			return false, nil
		}
		return strings.Contains(s, sub), nil
	case OpLess, OpLessOrEqual, OpGreater, OpGreaterOrEqual:
		if cell == nil {
			return false, nil
		}
		c, err := compare(cell, p.Value)
		if err != nil {
			return false, fmt.Errorf("column %q: %w", p.Column, err)
		}
		switch p.Op {
		case OpLess:
			return c < 0, nil
		case OpLessOrEqual:
			return c <= 0, nil
		case OpGreater:
			return c > 0, nil
		default:
			return c >= 0, nil
		}
	default:
		return false, fmt.Errorf("%w: unknown operator %d", ErrInvalidFilter, p.Op)
	}
}

// Description implements the datatable.Filter interface.
func (p *Predicate) Description() string {
	if p.Op == OpIsNull || p.Op == OpNotNull {
		return fmt.Sprintf("%s %s", p.Column, p.Op)
	}
	return fmt.Sprintf("%s %s %v", p.Column, p.Op, p.Value)
}

// Func adapts a function over a row's values to a filter.
type Func struct {
	Name string
	Fn   func(row datatable.Row, index *datatable.ColumnIndex) (bool, error)
}

// Evaluate implements the datatable.Filter interface.
func (f Func) Evaluate(row datatable.Row, index *datatable.ColumnIndex) (bool, error) {
	return f.Fn(row, index)
}

// Description implements the datatable.Filter interface.
func (f Func) Description() string {
	if f.Name == "" {
		return "func"
	}
	return f.Name
}

func equalValues(a, b datatable.Value) bool {
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	if okA && okB {
		return fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func compare(a, b datatable.Value) (int, error) {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		if !ok {
			return 0, fmt.Errorf("%w: cannot compare %T with %T", datatable.ErrTypeMismatch, a, b)
		}
		switch {
		case fa < fb:
			return -1, nil
		case fa > fb:
			return 1, nil
		default:
			return 0, nil
		}
	}
	sa, okA := a.(string)
	sb, okB := b.(string)
	if okA && okB {
		return strings.Compare(sa, sb), nil
	}
	return 0, fmt.Errorf("%w: cannot compare %T with %T", datatable.ErrTypeMismatch, a, b)
}

func toFloat(v datatable.Value) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
