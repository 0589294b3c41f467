package models

// LineStyle names how a series is stroked.
type LineStyle string

const (
	// LineSolid is used for the File-1 series.
	LineSolid LineStyle = "solid"
	// LineDashed is used for the File-2 series.
	LineDashed LineStyle = "dashed"
)

// FigureSeries describes one drawn series of a panel.
type FigureSeries struct {
	// Name is the legend label.
	Name string `json:"name"`
	// Table is the source table ("file1" or "file2").
	Table string `json:"table"`
	// XColumn is the column used for X values.
	XColumn string `json:"x_column"`
	// YColumn is the column used for Y values.
	YColumn string `json:"y_column"`
	// Points is the number of plotted points.
	Points int `json:"points"`
	// Dropped is the number of rows dropped by numeric coercion.
	Dropped int `json:"dropped"`
	// Style is the stroke style.
	Style LineStyle `json:"style"`
}

// FigurePanel describes one subplot.
type FigurePanel struct {
	// Index is the 0-based position in layout order.
	Index int `json:"index"`
	// Row is the 0-based grid row.
	Row int `json:"row"`
	// Col is the 0-based grid column.
	Col int `json:"col"`
	// Title is the panel title.
	Title string `json:"title"`
	// XAxisTitle is the X-axis label.
	XAxisTitle string `json:"x_axis_title,omitempty"`
	// YAxisTitle is the Y-axis label.
	YAxisTitle string `json:"y_axis_title,omitempty"`
	// Series lists the two overlaid series.
	Series []FigureSeries `json:"series"`
}

// Figure describes a rendered comparison figure.
type Figure struct {
	// Files are the input file names, File-1 first.
	Files []string `json:"files"`
	// Rows is the number of grid rows.
	Rows int `json:"rows"`
	// Cols is the number of grid columns.
	Cols int `json:"cols"`
	// W is the image width in pixels.
	W int `json:"w"`
	// H is the image height in pixels.
	H int `json:"h"`
	// Panels are listed in layout order.
	Panels []FigurePanel `json:"panels"`
}
