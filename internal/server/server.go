// Package server exposes the overlay pipeline over HTTP: two multipart
// uploads in, one PNG figure out.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ukaji3/overlay-go/pkg/overlay"
	"github.com/ukaji3/overlay-go/pkg/overlay/match"
	"github.com/ukaji3/overlay-go/pkg/overlay/models"
	"github.com/ukaji3/overlay-go/pkg/overlay/pairing"
	"github.com/ukaji3/overlay-go/pkg/overlay/render"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for the HTTP server.
type Config struct {
	Addr           string
	Loader         *overlay.Loader
	Options        overlay.Options
	Renderer       *render.Renderer
	MaxUploadBytes int64
	Logger         *slog.Logger
}

// Server serves comparison figures.
type Server struct {
	addr      string
	loader    *overlay.Loader
	opts      overlay.Options
	renderer  *render.Renderer
	maxUpload int64
	logger    *slog.Logger
}

// New creates a server instance.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Loader == nil {
		cfg.Loader = overlay.NewLoader(nil, cfg.Logger)
	}
	if cfg.Renderer == nil {
		cfg.Renderer = render.New(render.Options{})
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 32 << 20
	}
	return &Server{
		addr:      cfg.Addr,
		loader:    cfg.Loader,
		opts:      cfg.Options,
		renderer:  cfg.Renderer,
		maxUpload: cfg.MaxUploadBytes,
		logger:    cfg.Logger,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	r.Post("/columns", s.handleColumns)
	r.Post("/render", s.handleRender)
	return r
}

// Serve listens on the configured address until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting server", "addr", s.addr)

	eg, egctx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	t1, t2, err := s.readTables(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	report := match.NewReport(t1.ColumnNames(), t2.ColumnNames(), s.opts.TimeSuffixes...)
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	t1, t2, err := s.readTables(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts, err := s.formOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := overlay.Compare(t1, t2, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	img, err := res.Image(s.renderer)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Debug("rendered figure", "plots", len(res.Plots), "files", res.Files)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="overlay.png"`)
	if err := encodePNG(w, img); err != nil {
		s.logger.Error("failed to write png", "error", err)
	}
}

// readTables parses the file1 and file2 multipart uploads.
func (s *Server) readTables(w http.ResponseWriter, r *http.Request) (*models.Table, *models.Table, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		return nil, nil, &requestError{msg: fmt.Sprintf("invalid multipart form: %v", err)}
	}

	var tables [2]*models.Table
	for i, field := range []string{"file1", "file2"} {
		f, hdr, err := r.FormFile(field)
		if err != nil {
			return nil, nil, &requestError{msg: fmt.Sprintf("missing upload %q", field)}
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, nil, err
		}
		t, err := s.loader.Load(hdr.Filename, data)
		if err != nil {
			return nil, nil, err
		}
		tables[i] = t
	}
	return tables[0], tables[1], nil
}

// formOptions maps form fields onto pipeline options. Field names follow
// the CLI flags: label1, label2, same_names, x, y (repeatable), x1, x2,
// count, and y1_<i>, y2_<i>, title_<i> for independent slots (1-based).
func (s *Server) formOptions(r *http.Request) (overlay.Options, error) {
	opts := s.opts
	if v := r.FormValue("label1"); v != "" {
		opts.Label1 = v
	}
	if v := r.FormValue("label2"); v != "" {
		opts.Label2 = v
	}

	sameNames := true
	if v := r.FormValue("same_names"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, &requestError{msg: fmt.Sprintf("invalid same_names %q", v)}
		}
		sameNames = b
	}

	if sameNames {
		opts.Mode = overlay.ModeShared
		opts.Shared = pairing.SharedSelection{
			X: r.FormValue("x"),
			Y: splitList(r.Form["y"]),
		}
		return opts, nil
	}

	opts.Mode = overlay.ModeIndependent
	count := 1
	if v := r.FormValue("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, &requestError{msg: fmt.Sprintf("invalid count %q", v)}
		}
		count = n
	}
	sel := pairing.IndependentSelection{
		X1:    r.FormValue("x1"),
		X2:    r.FormValue("x2"),
		Count: count,
	}
	limit := opts.MaxPlots
	if limit <= 0 {
		limit = pairing.DefaultMaxPlots
	}
	for i := 1; i <= count && i <= limit; i++ {
		sel.Slots = append(sel.Slots, pairing.Slot{
			Y1:    r.FormValue(fmt.Sprintf("y1_%d", i)),
			Y2:    r.FormValue(fmt.Sprintf("y2_%d", i)),
			Title: r.FormValue(fmt.Sprintf("title_%d", i)),
		})
	}
	opts.Independent = sel
	return opts, nil
}

// splitList accepts both repeated fields and comma-separated values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
