// Package models defines data structures shared by the overlay pipeline.
package models

// Column is a named, ordered sequence of cells.
type Column struct {
	// Name is the header text of the column.
	Name string `json:"name"`
	// Cells holds one value per data row: int64, float64, string, or nil for missing.
	Cells []interface{} `json:"cells"`
}

// Table represents one parsed input dataset.
type Table struct {
	// Name is the source file name (no path).
	Name string `json:"name"`
	// Range is the detected data region including the header (e.g. "A1:D10").
	Range string `json:"range,omitempty"`
	// Columns are kept in header order.
	Columns []Column `json:"columns"`
}

// ColumnNames returns the column names in header order.
func (t *Table) ColumnNames() []string {
	if t == nil {
		return nil
	}
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by exact name.
func (t *Table) Column(name string) (*Column, bool) {
	if t == nil {
		return nil, false
	}
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// NumRows returns the number of data rows (the longest column).
func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, c := range t.Columns {
		if len(c.Cells) > n {
			n = len(c.Cells)
		}
	}
	return n
}

// Head returns the first n rows as row-major cell slices.
// Short columns are padded with nil.
func (t *Table) Head(n int) [][]interface{} {
	rows := t.NumRows()
	if n < 0 || n > rows {
		n = rows
	}
	out := make([][]interface{}, n)
	for r := 0; r < n; r++ {
		row := make([]interface{}, len(t.Columns))
		for c, col := range t.Columns {
			if r < len(col.Cells) {
				row[c] = col.Cells[r]
			}
		}
		out[r] = row
	}
	return out
}
