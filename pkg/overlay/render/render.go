// Package render draws comparison panels into a single raster figure.
package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/ukaji3/overlay-go/pkg/overlay/models"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoPanels indicates a render request without any panel.
var ErrNoPanels = errors.New("no panels to render")

// Options controls figure geometry and styling.
type Options struct {
	// PanelWidth is the width of one grid cell in pixels.
	PanelWidth int
	// PanelHeight is the height of one grid cell in pixels.
	PanelHeight int
	// YAxisLabel is used for panels without their own Y label.
	YAxisLabel string
	// LeftColor strokes the File-1 series.
	LeftColor drawing.Color
	// RightColor strokes the File-2 series.
	RightColor drawing.Color
	// StrokeWidth is the line width of both series.
	StrokeWidth float64
}

// DefaultOptions returns the default figure options.
func DefaultOptions() Options {
	return Options{
		PanelWidth:  700,
		PanelHeight: 340,
		YAxisLabel:  "p.u.",
		LeftColor:   drawing.ColorFromHex("1f77b4"),
		RightColor:  drawing.ColorFromHex("ff7f0e"),
		StrokeWidth: 1.5,
	}
}

// dashArray is the stroke pattern of the File-2 series.
var dashArray = []float64{6.0, 4.0}

// Panel is one subplot: two overlaid series.
type Panel struct {
	Title      string
	XLabel     string
	YLabel     string
	Left       models.AlignedSeries
	Right      models.AlignedSeries
	LeftLabel  string
	RightLabel string
}

// Layout returns the grid shape for n panels: two columns when there is
// more than one panel, and as many rows as needed.
func Layout(n int) (rows, cols int) {
	if n <= 0 {
		return 0, 0
	}
	cols = 1
	if n > 1 {
		cols = 2
	}
	return (n + cols - 1) / cols, cols
}

// Renderer draws panels with fixed options.
type Renderer struct {
	opts Options
}

// New creates a Renderer; zero-valued options fall back to DefaultOptions.
func New(opts Options) *Renderer {
	def := DefaultOptions()
	if opts.PanelWidth <= 0 {
		opts.PanelWidth = def.PanelWidth
	}
	if opts.PanelHeight <= 0 {
		opts.PanelHeight = def.PanelHeight
	}
	if opts.YAxisLabel == "" {
		opts.YAxisLabel = def.YAxisLabel
	}
	if opts.LeftColor.IsZero() {
		opts.LeftColor = def.LeftColor
	}
	if opts.RightColor.IsZero() {
		opts.RightColor = def.RightColor
	}
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = def.StrokeWidth
	}
	return &Renderer{opts: opts}
}

// Options returns the effective options.
func (r *Renderer) Options() Options {
	return r.opts
}

// Size returns the figure size in pixels for a grid of n cells.
func (r *Renderer) Size(n int) (w, h int) {
	rows, cols := Layout(n)
	return cols * r.opts.PanelWidth, rows * r.opts.PanelHeight
}

// Render draws all panels in row-major order on a grid sized for the
// panels. A trailing grid cell is left blank.
func (r *Renderer) Render(panels []Panel) (*image.RGBA, error) {
	return r.RenderGrid(panels, len(panels))
}

// RenderGrid draws panels in row-major order on a grid of cells cells,
// never fewer than len(panels). Cells without a panel are left blank.
func (r *Renderer) RenderGrid(panels []Panel, cells int) (*image.RGBA, error) {
	if len(panels) == 0 {
		return nil, ErrNoPanels
	}
	cells = max(cells, len(panels))
	_, cols := Layout(cells)
	w, h := r.Size(cells)

	fig := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(fig, fig.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for i, p := range panels {
		img, err := r.RenderPanel(p)
		if err != nil {
			return nil, &PanelError{Index: i, Title: p.Title, Err: err}
		}
		x := (i % cols) * r.opts.PanelWidth
		y := (i / cols) * r.opts.PanelHeight
		cell := image.Rect(x, y, x+r.opts.PanelWidth, y+r.opts.PanelHeight)
		draw.Draw(fig, cell, img, img.Bounds().Min, draw.Over)
	}
	return fig, nil
}

// WritePNG renders panels and encodes the figure as PNG.
func (r *Renderer) WritePNG(w io.Writer, panels []Panel) error {
	fig, err := r.Render(panels)
	if err != nil {
		return err
	}
	return png.Encode(w, fig)
}

// RenderPanel draws a single panel: File-1 solid, File-2 dashed.
func (r *Renderer) RenderPanel(p Panel) (image.Image, error) {
	var series []chart.Series
	if p.Left.Len() > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    p.LeftLabel,
			XValues: p.Left.X,
			YValues: p.Left.Y,
			Style: chart.Style{
				StrokeColor: r.opts.LeftColor,
				StrokeWidth: r.opts.StrokeWidth,
			},
		})
	}
	if p.Right.Len() > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    p.RightLabel,
			XValues: p.Right.X,
			YValues: p.Right.Y,
			Style: chart.Style{
				StrokeColor:     r.opts.RightColor,
				StrokeWidth:     r.opts.StrokeWidth,
				StrokeDashArray: dashArray,
			},
		})
	}
	if len(series) == 0 {
		// go-chart rejects series without values; keep the grid slot titled
		return placeholder(r.opts.PanelWidth, r.opts.PanelHeight, p.Title), nil
	}

	xMin, xMax := bounds(p.Left.X, p.Right.X)
	yMin, yMax := bounds(p.Left.Y, p.Right.Y)
	yLabel := p.YLabel
	if yLabel == "" {
		yLabel = r.opts.YAxisLabel
	}

	ch := chart.Chart{
		Title:      p.Title,
		Width:      r.opts.PanelWidth,
		Height:     r.opts.PanelHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           p.XLabel,
			Range:          &chart.ContinuousRange{Min: xMin, Max: xMax},
			GridMajorStyle: gridStyle(),
		},
		YAxis: chart.YAxis{
			Name:           yLabel,
			Range:          &chart.ContinuousRange{Min: yMin, Max: yMax},
			GridMajorStyle: gridStyle(),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

func gridStyle() chart.Style {
	return chart.Style{
		StrokeColor: drawing.ColorFromHex("dddddd"),
		StrokeWidth: 1.0,
	}
}

// bounds returns the combined min and max of the value slices, widened so
// the range is never empty.
func bounds(values ...[]float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, vs := range values {
		for _, v := range vs {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if hi == lo {
		pad := math.Abs(lo) * 0.05
		if pad == 0 {
			pad = 1
		}
		return lo - pad, hi + pad
	}
	return lo, hi
}
