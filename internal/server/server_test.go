package server

import (
	"bytes"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/overlay-go/internal/testutil"
	"github.com/ukaji3/overlay-go/pkg/overlay"
	"github.com/ukaji3/overlay-go/pkg/overlay/cache"
	"github.com/ukaji3/overlay-go/pkg/overlay/match"
	"github.com/ukaji3/overlay-go/pkg/overlay/render"
)

const (
	csv1 = "t_time,P,Q\n0,1,5\n1,2,bad\n2,3,7\n"
	csv2 = "t_time,P,Q\n0,1.1,5\n1,2.1,6\n2,2.9,7\n3,4,8\n"
)

type upload struct {
	field, name, content string
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := testutil.NewTestLogger(t)
	return New(Config{
		Loader:   overlay.NewLoader(cache.New(4), logger),
		Options:  overlay.DefaultOptions(),
		Renderer: render.New(render.Options{PanelWidth: 320, PanelHeight: 200}),
		Logger:   logger,
	})
}

func multipartRequest(t *testing.T, path string, files []upload, fields map[string][]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(f.content))
		require.NoError(t, err)
	}
	for k, vs := range fields {
		for _, v := range vs {
			require.NoError(t, mw.WriteField(k, v))
		}
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func bothFiles() []upload {
	return []upload{
		{"file1", "actual.csv", csv1},
		{"file2", "pscad.csv", csv2},
	}
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestColumns(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t).Handler().ServeHTTP(rec, multipartRequest(t, "/columns", bothFiles(), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var report match.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, []string{"P", "Q", "t_time"}, report.Common)
	assert.Equal(t, "t_time", report.DefaultX)
	assert.Equal(t, []string{"P", "Q"}, report.YCandidates)
}

func TestRenderShared(t *testing.T) {
	rec := httptest.NewRecorder()
	req := multipartRequest(t, "/render", bothFiles(), map[string][]string{
		"x": {"t_time"},
		"y": {"P", "Q"},
	})
	newTestServer(t).Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestRenderIndependent(t *testing.T) {
	rec := httptest.NewRecorder()
	req := multipartRequest(t, "/render", bothFiles(), map[string][]string{
		"same_names": {"false"},
		"count":      {"3"},
		"y1_1":       {"P"},
		"y2_1":       {"Q"},
		"y1_2":       {"Q"},
		"y2_2":       {"P"},
		"title_2":    {"Crossed"},
	})
	newTestServer(t).Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	// Two plots on a grid sized for three slots
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name   string
		files  []upload
		fields map[string][]string
		status int
	}{
		{
			name:   "no selection",
			files:  bothFiles(),
			status: http.StatusUnprocessableEntity,
		},
		{
			name: "no common columns",
			files: []upload{
				{"file1", "a.csv", "a,b\n1,2\n"},
				{"file2", "b.csv", "c,d\n1,2\n"},
			},
			fields: map[string][]string{"y": {"a"}},
			status: http.StatusUnprocessableEntity,
		},
		{
			name: "unsupported file type",
			files: []upload{
				{"file1", "a.json", "{}"},
				{"file2", "b.csv", csv2},
			},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "missing upload",
			files:  []upload{{"file1", "a.csv", csv1}},
			status: http.StatusBadRequest,
		},
		{
			name:   "bad count",
			files:  bothFiles(),
			fields: map[string][]string{"same_names": {"false"}, "count": {"many"}},
			status: http.StatusBadRequest,
		},
		{
			name:   "count out of range",
			files:  bothFiles(),
			fields: map[string][]string{"same_names": {"false"}, "count": {"17"}},
			status: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newTestServer(t).Handler().ServeHTTP(rec, multipartRequest(t, "/render", tt.files, tt.fields))
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"P", "Q", "R"}, splitList([]string{"P, Q", "", "R"}))
	assert.Nil(t, splitList(nil))
}
