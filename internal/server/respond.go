package server

import (
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"

	"github.com/ukaji3/overlay-go/pkg/overlay"
	"github.com/ukaji3/overlay-go/pkg/overlay/output"
)

// requestError is a malformed request, reported as 400.
type requestError struct {
	msg string
}

func (e *requestError) Error() string {
	return e.msg
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps the error taxonomy onto status codes: user-facing
// selection and file errors are 422, malformed requests 400, the rest 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var reqErr *requestError
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &reqErr):
		status = http.StatusBadRequest
	case overlay.IsUserError(err):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	} else {
		s.logger.Debug("request rejected", "status", status, "error", err)
	}
	s.writeJSON(w, status, errorBody{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := output.Marshal(v, false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func encodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
