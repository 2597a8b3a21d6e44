package table

import (
	"fmt"
)

// Table holds one survey export in memory: an ordered list of unique
// column names and the rows beneath them. Every row always has exactly
// one cell per column, in column order - the loaders pad short rows so
// this invariant holds from construction onward.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New creates an empty table with the given header. Column names must be
// unique; loaders surface duplicate headers as load failures.
func New(columns []string) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		index[name] = i
	}
	return &Table{
		columns: append([]string(nil), columns...),
		index:   index,
	}, nil
}

// Columns returns a copy of the header in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// AppendRow adds a data row. Short rows are padded with empty cells and
// long rows are truncated so the row always matches the header width.
func (t *Table) AppendRow(cells []string) {
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Row returns the i-th row. The returned slice is the table's own
// backing storage; callers must not hold it across mutations.
func (t *Table) Row(i int) []string {
	return t.rows[i]
}

// Cell returns the value at (row, column name) and whether the column
// exists. An existing-but-empty cell returns ("", true).
func (t *Table) Cell(row int, column string) (string, bool) {
	i, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return "", false
	}
	return t.rows[row][i], true
}

// SetCell sets the value at (row, column name).
func (t *Table) SetCell(row int, column, value string) error {
	i, ok := t.index[column]
	if !ok {
		return fmt.Errorf("no column %q", column)
	}
	if row < 0 || row >= len(t.rows) {
		return fmt.Errorf("row %d out of range", row)
	}
	t.rows[row][i] = value
	return nil
}

// Drop removes the named column and its cells from every row. Returns
// false if the column does not exist.
func (t *Table) Drop(name string) bool {
	i, ok := t.index[name]
	if !ok {
		return false
	}
	t.columns = append(t.columns[:i], t.columns[i+1:]...)
	for r := range t.rows {
		t.rows[r] = append(t.rows[r][:i], t.rows[r][i+1:]...)
	}
	t.reindex()
	return true
}

// MoveToFront moves the named column to position 0, shifting the columns
// before it one place right. Relative order of all other columns is
// preserved. Returns false if the column does not exist.
func (t *Table) MoveToFront(name string) bool {
	i, ok := t.index[name]
	if !ok {
		return false
	}
	if i == 0 {
		return true
	}
	t.columns = moveFront(t.columns, i)
	for r := range t.rows {
		t.rows[r] = moveFront(t.rows[r], i)
	}
	t.reindex()
	return true
}

// Rename changes a column's name in place without moving it. Renaming a
// missing column is an error, as is renaming onto an existing name.
func (t *Table) Rename(old, new string) error {
	i, ok := t.index[old]
	if !ok {
		return fmt.Errorf("no column %q", old)
	}
	if old == new {
		return nil
	}
	if _, clash := t.index[new]; clash {
		return fmt.Errorf("column %q already exists", new)
	}
	t.columns[i] = new
	delete(t.index, old)
	t.index[new] = i
	return nil
}

// AppendColumn adds a new column at the last position. values shorter
// than the row count are padded with empty cells.
func (t *Table) AppendColumn(name string, values []string) error {
	if _, clash := t.index[name]; clash {
		return fmt.Errorf("column %q already exists", name)
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
	for r := range t.rows {
		v := ""
		if r < len(values) {
			v = values[r]
		}
		t.rows[r] = append(t.rows[r], v)
	}
	return nil
}

// Column returns all values of the named column in row order, or nil if
// the column does not exist.
func (t *Table) Column(name string) []string {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	out := make([]string, len(t.rows))
	for r := range t.rows {
		out[r] = t.rows[r][i]
	}
	return out
}

// Clone returns a deep copy. The pipeline clones its input so callers
// keep their loaded table untouched on failure.
func (t *Table) Clone() *Table {
	c, _ := New(t.columns)
	c.rows = make([][]string, len(t.rows))
	for r := range t.rows {
		c.rows[r] = append([]string(nil), t.rows[r]...)
	}
	return c
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.columns))
	for i, name := range t.columns {
		t.index[name] = i
	}
}

func moveFront(s []string, i int) []string {
	v := s[i]
	copy(s[1:i+1], s[:i])
	s[0] = v
	return s
}
