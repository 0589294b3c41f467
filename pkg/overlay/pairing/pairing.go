// Package pairing assembles the ordered list of subplot selections.
package pairing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/ukaji3/overlay-go/pkg/overlay/align"
	"github.com/ukaji3/overlay-go/pkg/overlay/match"
	"github.com/ukaji3/overlay-go/pkg/overlay/models"
)

// DefaultMaxPlots bounds the plot count in independent mode.
const DefaultMaxPlots = 16

var (
	// ErrNoCommonColumns indicates shared-name mode with no column present in both tables.
	ErrNoCommonColumns = errors.New("no common columns")
	// ErrInvalidPlotCount indicates an independent-mode count outside 1..MaxPlots.
	ErrInvalidPlotCount = errors.New("invalid plot count")
	// ErrColumnNotFound is shared with the aligner so callers match one sentinel.
	ErrColumnNotFound = align.ErrColumnNotFound
)

// SharedSelection is the shared-name mode input.
type SharedSelection struct {
	// X is the shared X column; empty selects the default.
	X string
	// Y lists the shared Y columns, one pairing each, in order.
	Y []string
}

// Slot is one independent-mode plot request.
type Slot struct {
	// Y1 is the File-1 Y column.
	Y1 string
	// Y2 is the File-2 Y column.
	Y2 string
	// Title overrides the panel title; empty uses Y1.
	Title string
}

// IndependentSelection is the independent mode input.
type IndependentSelection struct {
	// X1 is the File-1 X column; empty selects the default.
	X1 string
	// X2 is the File-2 X column; empty selects the default.
	X2 string
	// Count is the number of requested plots.
	Count int
	// Slots holds per-plot choices; entries past Count are ignored.
	Slots []Slot
}

// Builder produces pairings from the column lists of the two tables.
type Builder struct {
	// Left holds the File-1 column names.
	Left []string
	// Right holds the File-2 column names.
	Right []string
	// TimeSuffixes drive default X selection; empty uses match.DefaultTimeSuffix.
	TimeSuffixes []string
	// MaxPlots bounds IndependentSelection.Count; zero uses DefaultMaxPlots.
	MaxPlots int
}

// Shared emits one pairing per Y column, reusing the same X for both tables.
func (b Builder) Shared(sel SharedSelection) ([]models.Pairing, error) {
	common := match.CommonColumns(b.Left, b.Right)
	if len(common) == 0 {
		return nil, ErrNoCommonColumns
	}

	x := strings.TrimSpace(sel.X)
	if x == "" {
		x = match.DefaultX(common, b.TimeSuffixes...)
	}
	if !lo.Contains(common, x) {
		return nil, fmt.Errorf("%w: X column %q is not common to both files", ErrColumnNotFound, x)
	}

	var out []models.Pairing
	seen := make(map[string]bool, len(sel.Y))
	for _, y := range sel.Y {
		y = strings.TrimSpace(y)
		if y == "" || seen[y] {
			continue
		}
		if !lo.Contains(common, y) {
			return nil, fmt.Errorf("%w: Y column %q is not common to both files", ErrColumnNotFound, y)
		}
		seen[y] = true
		out = append(out, models.Pairing{
			Left:  models.Side{Table: models.First, X: x, Y: y},
			Right: models.Side{Table: models.Second, X: x, Y: y},
			Title: y,
		})
	}
	return out, nil
}

// Independent emits up to Count pairings built slot by slot. Slots with
// neither Y chosen are omitted. A slot with one Y chosen takes the other
// table's non-X column at the slot position, clamped to the last one.
func (b Builder) Independent(sel IndependentSelection) ([]models.Pairing, error) {
	maxPlots := b.MaxPlots
	if maxPlots <= 0 {
		maxPlots = DefaultMaxPlots
	}
	if sel.Count < 1 || sel.Count > maxPlots {
		return nil, fmt.Errorf("%w: %d (must be 1..%d)", ErrInvalidPlotCount, sel.Count, maxPlots)
	}

	x1, err := b.pickX(b.Left, sel.X1, models.First)
	if err != nil {
		return nil, err
	}
	x2, err := b.pickX(b.Right, sel.X2, models.Second)
	if err != nil {
		return nil, err
	}
	cand1 := lo.Without(b.Left, x1)
	cand2 := lo.Without(b.Right, x2)

	var out []models.Pairing
	for i := 0; i < sel.Count && i < len(sel.Slots); i++ {
		slot := sel.Slots[i]
		y1 := strings.TrimSpace(slot.Y1)
		y2 := strings.TrimSpace(slot.Y2)
		if y1 == "" && y2 == "" {
			continue
		}
		if y1 == "" {
			y1 = defaultAt(cand1, i)
		}
		if y2 == "" {
			y2 = defaultAt(cand2, i)
		}
		left := models.Side{Table: models.First, X: x1, Y: y1}
		right := models.Side{Table: models.Second, X: x2, Y: y2}
		if !left.Complete() || !right.Complete() {
			// No candidate column to fall back on
			continue
		}
		if !lo.Contains(b.Left, y1) {
			return nil, fmt.Errorf("%w: File-1 Y column %q", ErrColumnNotFound, y1)
		}
		if !lo.Contains(b.Right, y2) {
			return nil, fmt.Errorf("%w: File-2 Y column %q", ErrColumnNotFound, y2)
		}

		title := strings.TrimSpace(slot.Title)
		if title == "" {
			title = y1
		}
		out = append(out, models.Pairing{Left: left, Right: right, Title: title})
	}
	return out, nil
}

func (b Builder) pickX(names []string, chosen string, ref models.TableRef) (string, error) {
	x := strings.TrimSpace(chosen)
	if x == "" {
		x = match.DefaultX(names, b.TimeSuffixes...)
	}
	if x == "" || !lo.Contains(names, x) {
		return "", fmt.Errorf("%w: %s X column %q", ErrColumnNotFound, ref, x)
	}
	return x, nil
}

func defaultAt(candidates []string, i int) string {
	if len(candidates) == 0 {
		return ""
	}
	if i >= len(candidates) {
		i = len(candidates) - 1
	}
	return candidates[i]
}
