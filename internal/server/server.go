// Package server exposes the renderer over HTTP.
//
//	GET  /healthz     liveness probe
//	POST /v1/render   puzzle JSON in, PDF (or layout JSON) out
//
// Render options are query parameters named like the CLI flags
// (fontSize, layoutStyle, clueColumns, ...) plus format=pdf|json.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gridpress/pkg/buildinfo"
	"github.com/matzehuels/gridpress/pkg/errors"
	"github.com/matzehuels/gridpress/pkg/pipeline"
	"github.com/matzehuels/gridpress/pkg/render"
)

// MaxBodySize bounds the request body of POST /v1/render.
const MaxBodySize = 5 << 20

var contentTypes = map[string]string{
	render.FormatPDF:  "application/pdf",
	render.FormatJSON: "application/json",
}

// Server is the HTTP render service.
type Server struct {
	router   chi.Router
	runner   *pipeline.Runner
	defaults render.Options
	logger   *log.Logger
}

// New creates a server. defaults are the render options requests start
// from before query parameters are applied.
func New(runner *pipeline.Runner, defaults render.Options, logger *log.Logger) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		router:   chi.NewRouter(),
		runner:   runner,
		defaults: defaults,
		logger:   logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(requestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.observe)
	s.router.Use(middleware.Recoverer)
	s.router.Use(securityHeaders)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/v1/render", s.handleRender)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then drains
// in-flight requests for up to ten seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// --- Handlers ---

// GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// POST /v1/render
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, format, err := parseQuery(r.URL.Query(), s.defaults)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", MaxBodySize))
			return
		}
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}

	logger := s.logger.With("request", requestIDFrom(r.Context()))
	result, err := s.runner.Convert(r.Context(), body, "request", pipeline.Options{
		Render:  opts,
		Formats: []string{format},
		Logger:  logger,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, errors.ErrCodeMalformedPuzzle) {
			status = http.StatusUnprocessableEntity
		} else {
			logger.Error("render failed", "err", err)
		}
		writeError(w, status, err)
		return
	}

	for _, warn := range result.Warnings {
		w.Header().Add("X-Gridpress-Warning", errors.UserMessage(warn))
	}
	cacheStatus := "miss"
	if result.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set("X-Cache", cacheStatus)
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Disposition", `inline; filename="puzzle.`+format+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// --- Responses ---

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorBody{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
