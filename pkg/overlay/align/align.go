// Package align turns table columns into plot-ready numeric series.
//
// Alignment follows a coerce-or-drop policy: every cell of the X and Y
// columns is coerced to a number, cells that cannot be coerced become
// missing, and any row with a missing X or Y is dropped. Coercion failures
// are never errors, and a series in which every row was dropped is a valid,
// empty result.
package align

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/overlay-go/pkg/overlay/models"
)

// ErrColumnNotFound indicates a selected column is absent from the table.
var ErrColumnNotFound = errors.New("column not found")

// Align coerces the x and y columns of t and returns the rows where both
// are numeric, in original row order.
func Align(t *models.Table, x, y string) (models.AlignedSeries, error) {
	xCol, ok := t.Column(x)
	if !ok {
		return models.AlignedSeries{}, fmt.Errorf("%w: %q in %s", ErrColumnNotFound, x, tableName(t))
	}
	yCol, ok := t.Column(y)
	if !ok {
		return models.AlignedSeries{}, fmt.Errorf("%w: %q in %s", ErrColumnNotFound, y, tableName(t))
	}

	n := t.NumRows()
	out := models.AlignedSeries{
		X:    make([]float64, 0, n),
		Y:    make([]float64, 0, n),
		Rows: make([]int, 0, n),
	}
	for r := 0; r < n; r++ {
		xv, xok := Coerce(cellAt(xCol, r))
		yv, yok := Coerce(cellAt(yCol, r))
		if !xok || !yok {
			out.Dropped++
			continue
		}
		out.X = append(out.X, xv)
		out.Y = append(out.Y, yv)
		out.Rows = append(out.Rows, r)
	}
	return out, nil
}

// Pairing aligns both sides of p, each against its own table. The two
// results may differ in length from each other.
func Pairing(left, right *models.Table, p models.Pairing) (models.AlignedSeries, models.AlignedSeries, error) {
	l, err := Align(left, p.Left.X, p.Left.Y)
	if err != nil {
		return models.AlignedSeries{}, models.AlignedSeries{}, err
	}
	r, err := Align(right, p.Right.X, p.Right.Y)
	if err != nil {
		return models.AlignedSeries{}, models.AlignedSeries{}, err
	}
	return l, r, nil
}

// Coerce converts a cell to a float64. The second return value is false
// when the cell is missing, not numeric, NaN or infinite.
func Coerce(cell interface{}) (float64, bool) {
	var v float64
	switch c := cell.(type) {
	case nil:
		return 0, false
	case float64:
		v = c
	case float32:
		v = float64(c)
	case int64:
		v = float64(c)
	case int:
		v = float64(c)
	case int32:
		v = float64(c)
	case uint64:
		v = float64(c)
	case string:
		s := strings.TrimSpace(c)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func cellAt(c *models.Column, row int) interface{} {
	if row < len(c.Cells) {
		return c.Cells[row]
	}
	return nil
}

func tableName(t *models.Table) string {
	if t == nil || t.Name == "" {
		return "table"
	}
	return t.Name
}
