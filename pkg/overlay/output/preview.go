package output

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/ukaji3/overlay-go/pkg/overlay/models"
)

// DefaultPreviewRows is the number of rows shown by Preview.
const DefaultPreviewRows = 5

// Preview writes the first n rows of t as a text table.
// n <= 0 uses DefaultPreviewRows.
func Preview(w io.Writer, t *models.Table, n int) error {
	if n <= 0 {
		n = DefaultPreviewRows
	}

	tw := table.NewWriter()
	style := table.StyleLight
	// Column names are case-sensitive; show them as-is
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)
	if t.Name != "" {
		tw.SetTitle(t.Name)
	}

	header := make(table.Row, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Name
	}
	tw.AppendHeader(header)

	for _, r := range t.Head(n) {
		row := make(table.Row, len(r))
		for i, v := range r {
			row[i] = formatCell(v)
		}
		tw.AppendRow(row)
	}

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}

func formatCell(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case float64:
		return fmt.Sprintf("%g", c)
	default:
		return fmt.Sprint(c)
	}
}
