package models

// TableRef identifies which of the two input tables a column belongs to.
type TableRef int

const (
	// First is the File-1 table.
	First TableRef = 1
	// Second is the File-2 table.
	Second TableRef = 2
)

// String returns "file1" or "file2".
func (r TableRef) String() string {
	switch r {
	case First:
		return "file1"
	case Second:
		return "file2"
	default:
		return "unknown"
	}
}

// Side is the X/Y column selection against a single table.
// Keeping X and Y together guarantees both reference the same table.
type Side struct {
	// Table is the table both columns are read from.
	Table TableRef `json:"table"`
	// X is the X-axis column name.
	X string `json:"x"`
	// Y is the Y-axis column name.
	Y string `json:"y"`
}

// Complete reports whether both columns are set.
func (s Side) Complete() bool {
	return s.X != "" && s.Y != ""
}

// Pairing is one subplot's worth of column selection across both tables.
type Pairing struct {
	// Left reads from the File-1 table and is drawn solid.
	Left Side `json:"left"`
	// Right reads from the File-2 table and is drawn dashed.
	Right Side `json:"right"`
	// Title is the panel title.
	Title string `json:"title"`
}

// AlignedSeries holds equal-length numeric sequences ready for plotting.
type AlignedSeries struct {
	// X holds the coerced X values.
	X []float64 `json:"x"`
	// Y holds the coerced Y values.
	Y []float64 `json:"y"`
	// Rows holds the 0-based data-row index each point came from.
	Rows []int `json:"rows"`
	// Dropped is the number of rows removed because X or Y was not numeric.
	Dropped int `json:"dropped"`
}

// Len returns the number of points.
func (s AlignedSeries) Len() int {
	return len(s.X)
}
