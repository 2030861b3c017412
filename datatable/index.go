package datatable

import "fmt"

// Index selects from the table. The shape of the result depends on the
// combination of selectors:
//
//	At       Col      -> ResultCell
//	At       ColList  -> ResultRow, a new row holding the listed values
//	At       AllCols  -> ResultRow, the stored row itself
//	RowList  Col      -> ResultValues, one value per selected row
//	RowList  AllCols  -> ResultTable sharing this table's ColumnIndex
//	RowList  ColList  -> ResultTable with a ColumnIndex of the listed labels
//
// AllRows behaves as RowList over every row in order.
func (t *Table) Index(rs RowSelector, cs ColSelector) (Result, error) {
	if rs.kind == selOne {
		switch cs.kind {
		case selOne:
			v, err := t.cellAt(rs.one, cs.one)
			if err != nil {
				return Result{}, err
			}
			return Result{Kind: ResultCell, Cell: v}, nil
		case selList:
			r, err := t.rowProject(rs.one, cs.list)
			if err != nil {
				return Result{}, err
			}
			return Result{Kind: ResultRow, Row: r}, nil
		default:
			r, err := t.rowRaw(rs.one)
			if err != nil {
				return Result{}, err
			}
			return Result{Kind: ResultRow, Row: r}, nil
		}
	}

	rows, err := t.resolveRows(rs)
	if err != nil {
		return Result{}, err
	}
	switch cs.kind {
	case selOne:
		vals, err := t.columnValues(rows, cs.one)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: ResultValues, Values: vals}, nil
	case selList:
		sub, err := t.rowsColsTable(rows, cs.list)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: ResultTable, Table: sub}, nil
	default:
		return Result{Kind: ResultTable, Table: t.rowsTable(rows)}, nil
	}
}

// IndexRow returns the stored row i, as Index(At(i), AllCols()).
func (t *Table) IndexRow(i int) (Row, error) {
	return t.rowRaw(i)
}

// IndexCols selects columns over all rows, as Index(AllRows(), cs).
func (t *Table) IndexCols(cs ColSelector) (Result, error) {
	return t.Index(AllRows(), cs)
}

// Cell returns the value at row i in column ref.
func (t *Table) Cell(i int, ref ColRef) (Value, error) {
	return t.cellAt(i, ref)
}

// Column returns the values of one column in row order.
func (t *Table) Column(ref ColRef) ([]Value, error) {
	rows, err := t.resolveRows(AllRows())
	if err != nil {
		return nil, err
	}
	return t.columnValues(rows, ref)
}

// SetIndex replaces the value at row i in column ref. Record rows accept
// only a value of the field's existing type.
func (t *Table) SetIndex(v Value, i int, ref ColRef) error {
	if err := t.checkRow(i); err != nil {
		return err
	}
	pos, err := t.resolveCol(ref)
	if err != nil {
		return err
	}
	switch r := t.rows[i].(type) {
	case Array:
		r.Set(pos, v)
	case Record:
		replaced, err := r.Replace(pos, v)
		if err != nil {
			return err
		}
		t.rows[i] = replaced
	default:
		return fmt.Errorf("%w: row %d has kind %v", ErrUnsupportedElementType, i, r.Kind())
	}
	return nil
}

// Where returns a selector for the rows accepted by f, in table order.
// A nil f returns ErrNilFilter.
func (t *Table) Where(f Filter) (RowSelector, error) {
	if f == nil {
		return RowSelector{}, ErrNilFilter
	}
	var matched []int
	for i, r := range t.rows {
		ok, err := f.Evaluate(r, t.index)
		if err != nil {
			return RowSelector{}, fmt.Errorf("row %d: %w", i, err)
		}
		if ok {
			matched = append(matched, i)
		}
	}
	return RowList(matched...), nil
}

func (t *Table) checkRow(i int) error {
	if i < 0 || i >= len(t.rows) {
		return rowOutOfRange(i, len(t.rows))
	}
	return nil
}

func (t *Table) resolveRows(rs RowSelector) ([]int, error) {
	switch rs.kind {
	case selOne:
		if err := t.checkRow(rs.one); err != nil {
			return nil, err
		}
		return []int{rs.one}, nil
	case selList:
		for _, i := range rs.list {
			if err := t.checkRow(i); err != nil {
				return nil, err
			}
		}
		return rs.list, nil
	default:
		all := make([]int, len(t.rows))
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
}

func (t *Table) resolveCol(ref ColRef) (int, error) {
	if ref.byPos {
		if ref.pos < 0 || ref.pos >= t.index.Len() {
			return -1, colOutOfRange(ref.pos, t.index.Len())
		}
		return ref.pos, nil
	}
	return t.index.Position(ref.label)
}

// resolveCols looks each distinct label up once.
func (t *Table) resolveCols(refs []ColRef) ([]int, error) {
	seen := make(map[Label]int)
	out := make([]int, len(refs))
	for i, ref := range refs {
		if !ref.byPos {
			if pos, ok := seen[ref.label]; ok {
				out[i] = pos
				continue
			}
		}
		pos, err := t.resolveCol(ref)
		if err != nil {
			return nil, err
		}
		if !ref.byPos {
			seen[ref.label] = pos
		}
		out[i] = pos
	}
	return out, nil
}

func (t *Table) cellAt(i int, ref ColRef) (Value, error) {
	if err := t.checkRow(i); err != nil {
		return nil, err
	}
	pos, err := t.resolveCol(ref)
	if err != nil {
		return nil, err
	}
	return t.rows[i].At(pos), nil
}

func (t *Table) rowRaw(i int) (Row, error) {
	if err := t.checkRow(i); err != nil {
		return nil, err
	}
	return t.rows[i], nil
}

func (t *Table) rowProject(i int, refs []ColRef) (Row, error) {
	if err := t.checkRow(i); err != nil {
		return nil, err
	}
	positions, err := t.resolveCols(refs)
	if err != nil {
		return nil, err
	}
	return project(t.rows[i], positions), nil
}

func (t *Table) columnValues(rows []int, ref ColRef) ([]Value, error) {
	pos, err := t.resolveCol(ref)
	if err != nil {
		return nil, err
	}
	vals := make([]Value, len(rows))
	for k, i := range rows {
		vals[k] = t.rows[i].At(pos)
	}
	return vals, nil
}

func (t *Table) rowsTable(rows []int) *Table {
	out := make([]Row, len(rows))
	for k, i := range rows {
		out[k] = t.rows[i]
	}
	return t.derive(t.index, out)
}

func (t *Table) rowsColsTable(rows []int, refs []ColRef) (*Table, error) {
	positions, err := t.resolveCols(refs)
	if err != nil {
		return nil, err
	}
	labels := make([]Label, len(positions))
	for k, p := range positions {
		labels[k] = t.index.labels[p]
	}
	index, err := NewColumnIndex(labels...)
	if err != nil {
		return nil, err
	}
	out := make([]Row, len(rows))
	for k, i := range rows {
		out[k] = project(t.rows[i], positions)
	}
	return t.derive(index, out), nil
}

func project(r Row, positions []int) Row {
	vals := make([]Value, len(positions))
	for k, p := range positions {
		vals[k] = r.At(p)
	}
	return r.with(vals)
}
