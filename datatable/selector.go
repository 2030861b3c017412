package datatable

import "fmt"

type selKind int

const (
	selOne selKind = iota
	selList
	selAll
)

// RowSelector picks rows: a single index, an ordered list of indices, or all rows.
type RowSelector struct {
	kind selKind
	one  int
	list []int
}

// At selects the single row i.
func At(i int) RowSelector { return RowSelector{kind: selOne, one: i} }

// RowList selects rows in the given order. Indices may repeat.
func RowList(is ...int) RowSelector { return RowSelector{kind: selList, list: is} }

// AllRows selects every row in order.
func AllRows() RowSelector { return RowSelector{kind: selAll} }

func (s RowSelector) String() string {
	switch s.kind {
	case selOne:
		return fmt.Sprintf("At(%d)", s.one)
	case selList:
		return fmt.Sprintf("RowList%v", s.list)
	default:
		return "AllRows"
	}
}

// ColRef names one column either by label or by position.
type ColRef struct {
	byPos bool
	label Label
	pos   int
}

// Name refers to a column by label.
func Name(l Label) ColRef { return ColRef{label: l} }

// Pos refers to a column by zero-based position.
func Pos(i int) ColRef { return ColRef{byPos: true, pos: i} }

func (r ColRef) String() string {
	if r.byPos {
		return fmt.Sprintf("Pos(%d)", r.pos)
	}
	return fmt.Sprintf("Name(%q)", r.label)
}

// ColSelector picks columns: a single reference, an ordered list, or all columns.
type ColSelector struct {
	kind selKind
	one  ColRef
	list []ColRef
}

// Col selects a single column.
func Col(ref ColRef) ColSelector { return ColSelector{kind: selOne, one: ref} }

// ColList selects columns in the given order.
func ColList(refs ...ColRef) ColSelector { return ColSelector{kind: selList, list: refs} }

// AllCols selects every column in order.
func AllCols() ColSelector { return ColSelector{kind: selAll} }

// Names selects columns by label, in order.
func Names(labels ...Label) ColSelector {
	refs := make([]ColRef, len(labels))
	for i, l := range labels {
		refs[i] = Name(l)
	}
	return ColList(refs...)
}

// Positions selects columns by position, in order.
func Positions(ps ...int) ColSelector {
	refs := make([]ColRef, len(ps))
	for i, p := range ps {
		refs[i] = Pos(p)
	}
	return ColList(refs...)
}

// ResultKind tells which field of a Result is populated.
type ResultKind int

const (
	// ResultCell holds a single cell in Result.Cell.
	ResultCell ResultKind = iota
	// ResultRow holds a row in Result.Row.
	ResultRow
	// ResultValues holds one value per selected row in Result.Values.
	ResultValues
	// ResultTable holds a new table in Result.Table.
	ResultTable
)

func (k ResultKind) String() string {
	switch k {
	case ResultCell:
		return "Cell"
	case ResultRow:
		return "Row"
	case ResultValues:
		return "Values"
	case ResultTable:
		return "Table"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Result is the outcome of Index. Its shape depends on the selector pair.
type Result struct {
	Kind   ResultKind
	Cell   Value
	Row    Row
	Values []Value
	Table  *Table
}
