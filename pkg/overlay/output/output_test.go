package output

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/overlay-go/pkg/overlay/models"
)

func TestToJSON(t *testing.T) {
	fig := &models.Figure{
		Files: []string{"a.xlsx", "b.xlsx"},
		Rows:  1,
		Cols:  1,
		Panels: []models.FigurePanel{{
			Title: "P",
			Series: []models.FigureSeries{
				{Name: "Actual", Table: "file1", XColumn: "t_time", YColumn: "P", Points: 5, Style: models.LineSolid},
				{Name: "PSCAD", Table: "file2", XColumn: "t_time", YColumn: "P", Points: 4, Dropped: 1, Style: models.LineDashed},
			},
		}},
	}

	data, err := ToJSON(fig, false)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	panels := decoded["panels"].([]interface{})
	require.Len(t, panels, 1)
	s := panels[0].(map[string]interface{})["series"].([]interface{})
	assert.Equal(t, "dashed", s[1].(map[string]interface{})["style"])
	assert.Equal(t, float64(1), s[1].(map[string]interface{})["dropped"])

	pretty, err := ToJSON(fig, true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  ")
}

func TestPreview(t *testing.T) {
	tb := &models.Table{
		Name: "run.csv",
		Columns: []models.Column{
			{Name: "t_time", Cells: []interface{}{int64(0), 0.5, 1.0, 1.5, 2.0, 2.5, 3.0}},
			{Name: "P", Cells: []interface{}{"bad", nil, 3.25}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Preview(&buf, tb, 0))
	out := buf.String()

	assert.Contains(t, out, "run.csv")
	assert.Contains(t, out, "t_time")
	assert.Contains(t, out, "bad")
	assert.Contains(t, out, "3.25")
	assert.NotContains(t, out, "2.5", "rows past the preview limit must not be shown")
	assert.True(t, strings.HasSuffix(out, "\n"))
}
