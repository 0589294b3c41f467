package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/overlay-go/pkg/overlay/models"
)

// ErrEmptyTable indicates the input has no non-empty cells to use as a header.
var ErrEmptyTable = errors.New("no header row found")

// BuildTable converts a row-major grid of raw cell strings into a Table.
// The first row of the detected data region is the header; the rows below
// it are data. Cells outside the region are ignored.
func BuildTable(name string, rows [][]string) (*models.Table, error) {
	region, ok := DetectRegion(rows)
	if !ok {
		return nil, ErrEmptyTable
	}

	header := headerNames(rows[region.MinRow], region)
	table := &models.Table{
		Name:    name,
		Range:   region.String(),
		Columns: make([]models.Column, len(header)),
	}

	nData := region.MaxRow - region.MinRow
	for i, h := range header {
		table.Columns[i] = models.Column{
			Name:  h,
			Cells: make([]interface{}, nData),
		}
	}

	for r := 0; r < nData; r++ {
		row := rows[region.MinRow+1+r]
		for c := range header {
			colIdx := region.MinCol + c
			if colIdx < len(row) {
				table.Columns[c].Cells[r] = parseValue(row[colIdx])
			}
		}
	}

	return table, nil
}

// headerNames extracts unique column names from the header row.
// Blank headers become "Unnamed: <i>"; repeats get ".1", ".2", ... suffixes.
func headerNames(row []string, region Region) []string {
	names := make([]string, region.Width())
	seen := make(map[string]int, len(names))

	for i := range names {
		colIdx := region.MinCol + i
		name := ""
		if colIdx < len(row) {
			name = strings.TrimSpace(row[colIdx])
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}

		base := name
		for {
			n, dup := seen[name]
			if !dup {
				break
			}
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", base, n+1)
		}
		seen[name] = 0
		names[i] = name
	}

	return names
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
