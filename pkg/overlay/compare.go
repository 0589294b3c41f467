package overlay

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/ukaji3/overlay-go/pkg/overlay/align"
	"github.com/ukaji3/overlay-go/pkg/overlay/models"
	"github.com/ukaji3/overlay-go/pkg/overlay/pairing"
	"github.com/ukaji3/overlay-go/pkg/overlay/render"
)

// Plot is one pairing with both sides aligned.
type Plot struct {
	Pairing models.Pairing
	Left    models.AlignedSeries
	Right   models.AlignedSeries
}

// Result holds everything needed to draw one comparison figure.
type Result struct {
	// Files are the table names, File-1 first.
	Files [2]string
	// Labels are the legend labels, File-1 first.
	Labels [2]string
	// Plots are in layout order.
	Plots []Plot
	// Slots is the requested plot count in independent mode, zero in
	// shared mode. The grid keeps a cell for every slot even when a slot
	// emitted no plot.
	Slots int
}

// BuildPairings runs the Pairing Builder for the mode selected in opts.
func BuildPairings(left, right []string, opts Options) ([]models.Pairing, error) {
	b := pairing.Builder{
		Left:         left,
		Right:        right,
		TimeSuffixes: opts.TimeSuffixes,
		MaxPlots:     opts.MaxPlots,
	}
	switch opts.Mode {
	case ModeShared, "":
		return b.Shared(opts.Shared)
	case ModeIndependent:
		return b.Independent(opts.Independent)
	default:
		return nil, fmt.Errorf("invalid mode: %s (must be %s or %s)", opts.Mode, ModeShared, ModeIndependent)
	}
}

// Compare builds pairings from opts and aligns each of them against the
// two tables. It fails without a partial result when the selection yields
// no pairing or a selected column is missing.
func Compare(t1, t2 *models.Table, opts Options) (*Result, error) {
	pairings, err := BuildPairings(t1.ColumnNames(), t2.ColumnNames(), opts)
	if err != nil {
		return nil, err
	}
	if len(pairings) == 0 {
		return nil, ErrNoSelection
	}

	l1, l2 := opts.labels()
	res := &Result{
		Files:  [2]string{t1.Name, t2.Name},
		Labels: [2]string{l1, l2},
		Plots:  make([]Plot, 0, len(pairings)),
	}
	if opts.Mode == ModeIndependent {
		res.Slots = opts.Independent.Count
	}
	for i, p := range pairings {
		left, right, err := align.Pairing(t1, t2, p)
		if err != nil {
			return nil, &PairingError{Index: i, Title: p.Title, Err: err}
		}
		res.Plots = append(res.Plots, Plot{Pairing: p, Left: left, Right: right})
	}
	return res, nil
}

// Panels converts the plots into renderer input. The X label is the File-1
// X column name.
func (r *Result) Panels() []render.Panel {
	panels := make([]render.Panel, len(r.Plots))
	for i, p := range r.Plots {
		panels[i] = render.Panel{
			Title:      p.Pairing.Title,
			XLabel:     p.Pairing.Left.X,
			Left:       p.Left,
			Right:      p.Right,
			LeftLabel:  r.Labels[0],
			RightLabel: r.Labels[1],
		}
	}
	return panels
}

// Cells returns the number of grid cells of the figure: one per plot, or
// one per requested slot when that is more.
func (r *Result) Cells() int {
	return max(len(r.Plots), r.Slots)
}

// Image renders the figure. Cells without a plot are left blank.
func (r *Result) Image(rd *render.Renderer) (*image.RGBA, error) {
	if len(r.Plots) == 0 {
		return nil, ErrNoSelection
	}
	return rd.RenderGrid(r.Panels(), r.Cells())
}

// WritePNG renders the figure and writes it as PNG.
func (r *Result) WritePNG(w io.Writer, rd *render.Renderer) error {
	img, err := r.Image(rd)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Figure describes the figure rd would draw for this result.
func (r *Result) Figure(rd *render.Renderer) *models.Figure {
	rows, cols := render.Layout(r.Cells())
	w, h := rd.Size(r.Cells())
	yLabel := rd.Options().YAxisLabel

	fig := &models.Figure{
		Files:  []string{r.Files[0], r.Files[1]},
		Rows:   rows,
		Cols:   cols,
		W:      w,
		H:      h,
		Panels: make([]models.FigurePanel, len(r.Plots)),
	}
	for i, p := range r.Plots {
		fig.Panels[i] = models.FigurePanel{
			Index:      i,
			Row:        i / cols,
			Col:        i % cols,
			Title:      p.Pairing.Title,
			XAxisTitle: p.Pairing.Left.X,
			YAxisTitle: yLabel,
			Series: []models.FigureSeries{
				figureSeries(r.Labels[0], p.Pairing.Left, p.Left, models.LineSolid),
				figureSeries(r.Labels[1], p.Pairing.Right, p.Right, models.LineDashed),
			},
		}
	}
	return fig
}

func figureSeries(label string, side models.Side, s models.AlignedSeries, style models.LineStyle) models.FigureSeries {
	return models.FigureSeries{
		Name:    label,
		Table:   side.Table.String(),
		XColumn: side.X,
		YColumn: side.Y,
		Points:  s.Len(),
		Dropped: s.Dropped,
		Style:   style,
	}
}
