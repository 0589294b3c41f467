package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Region is the bounding box of non-empty cells in a grid (0-based, inclusive).
type Region struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// String renders the region in spreadsheet range notation (e.g. "A1:D10").
func (r Region) String() string {
	start, _ := excelize.CoordinatesToCellName(r.MinCol+1, r.MinRow+1)
	end, _ := excelize.CoordinatesToCellName(r.MaxCol+1, r.MaxRow+1)
	return fmt.Sprintf("%s:%s", start, end)
}

// Width returns the number of columns spanned.
func (r Region) Width() int {
	return r.MaxCol - r.MinCol + 1
}

// DetectRegion finds the bounding box of non-empty cells.
// The second return value is false when every cell is empty.
func DetectRegion(rows [][]string) (Region, bool) {
	r := Region{MinRow: -1, MaxRow: -1, MinCol: -1, MaxCol: -1}

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if isBlank(cell) {
				continue
			}
			if r.MinRow < 0 || rowIdx < r.MinRow {
				r.MinRow = rowIdx
			}
			if r.MaxRow < 0 || rowIdx > r.MaxRow {
				r.MaxRow = rowIdx
			}
			if r.MinCol < 0 || colIdx < r.MinCol {
				r.MinCol = colIdx
			}
			if r.MaxCol < 0 || colIdx > r.MaxCol {
				r.MaxCol = colIdx
			}
		}
	}

	return r, r.MinRow >= 0
}
