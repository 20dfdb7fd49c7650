// Package server exposes the street operations of [pipeline.Runner] as a
// JSON HTTP API.
//
// Routes live under /api:
//
//	GET    /api/streets                                 list street names
//	POST   /api/streets                                 create {name, length}
//	GET    /api/streets/{name}                          street contents
//	DELETE /api/streets/{name}                          delete a street
//	GET    /api/streets/{name}/report                   aggregate statistics
//	GET    /api/streets/{name}/silhouette?format=svg    rendered silhouette
//	GET    /api/streets/{name}/plan?format=svg          Graphviz street plan
//	POST   /api/streets/{name}/rows/{row}/buildings     add a building
//	DELETE /api/streets/{name}/rows/{row}/buildings/{id}
//	GET    /api/healthz                                 build info
//
// Failures are returned as {"code": ..., "message": ...} with a status taken
// from the error code: validation errors are 422, state errors 409, missing
// streets 404, malformed input 400 and everything else 500.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/buildinfo"
	"github.com/matzehuels/skyline/pkg/errors"
	streetio "github.com/matzehuels/skyline/pkg/io"
	"github.com/matzehuels/skyline/pkg/observability"
	"github.com/matzehuels/skyline/pkg/pipeline"
	"github.com/matzehuels/skyline/pkg/render/silhouette/sink"
	"github.com/matzehuels/skyline/pkg/street"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Server handles API requests with a shared runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a Server over r.
func New(r *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = r.Logger
	}
	return &Server{runner: r, logger: logger}
}

// Handler returns the routed API handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", s.health)
		r.Route("/streets", func(r chi.Router) {
			r.Get("/", s.listStreets)
			r.Post("/", s.createStreet)
			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", s.getStreet)
				r.Delete("/", s.deleteStreet)
				r.Get("/report", s.report)
				r.Get("/silhouette", s.silhouette)
				r.Get("/plan", s.plan)
				r.Post("/rows/{row}/buildings", s.addBuilding)
				r.Delete("/rows/{row}/buildings/{id}", s.removeBuilding)
			})
		})
	})
	return r
}

// ListenAndServe serves the API on addr until ctx is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr, "version", buildinfo.Version)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

// observe reports requests to the HTTP hooks and sets the Server header.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		w.Header().Set("Server", buildinfo.UserAgent())

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Get(),
	})
}

func (s *Server) listStreets(w http.ResponseWriter, r *http.Request) {
	names, err := s.runner.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	respondJSON(w, http.StatusOK, map[string][]string{"streets": names})
}

type createRequest struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
}

func (s *Server) createStreet(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decode(w, r, &req); err != nil {
		s.respondError(w, err)
		return
	}
	st, err := s.runner.Create(r.Context(), req.Name, req.Length)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondStreet(w, http.StatusCreated, req.Name, st)
}

func (s *Server) getStreet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	st, err := s.runner.Load(r.Context(), name)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondStreet(w, http.StatusOK, name, st)
}

func (s *Server) deleteStreet(w http.ResponseWriter, r *http.Request) {
	if err := s.runner.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reportResponse struct {
	Name            string         `json:"name"`
	Length          int            `json:"length"`
	Row1            int            `json:"row1"`
	Row2            int            `json:"row2"`
	RemainingLand   int            `json:"remaining_land"`
	PlaygroundCount int            `json:"playground_count"`
	PlaygroundRatio float64        `json:"playground_ratio"`
	Occupied        map[string]int `json:"occupied"`
	MaxHeight       int            `json:"max_height"`
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	rep, err := s.runner.Report(r.Context(), name)
	if err != nil {
		s.respondError(w, err)
		return
	}
	occupied := make(map[string]int, len(rep.Occupied))
	for c, n := range rep.Occupied {
		occupied[c.String()] = n
	}
	respondJSON(w, http.StatusOK, reportResponse{
		Name:            name,
		Length:          rep.Length,
		Row1:            rep.Row1,
		Row2:            rep.Row2,
		RemainingLand:   rep.RemainingLand,
		PlaygroundCount: rep.PlaygroundCount,
		PlaygroundRatio: rep.PlaygroundRatio,
		Occupied:        occupied,
		MaxHeight:       rep.MaxHeight,
	})
}

func (s *Server) silhouette(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	f, err := queryFormat(r, sink.FormatSVG)
	if err != nil {
		s.respondError(w, err)
		return
	}
	opts := pipeline.Options{
		Formats:  []sink.Format{f},
		Name:     name,
		NoHeader: r.URL.Query().Get("header") == "false",
		Detailed: r.URL.Query().Get("detailed") == "true",
	}
	if v := r.URL.Query().Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.respondError(w, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v))
			return
		}
		opts.Scale = scale
	}

	st, err := s.runner.Load(r.Context(), name)
	if err != nil {
		s.respondError(w, err)
		return
	}
	artifacts, cached, err := s.runner.Render(r.Context(), st, opts)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondArtifact(w, f, artifacts[f], cached)
}

func (s *Server) plan(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	f, err := queryFormat(r, sink.FormatSVG)
	if err != nil {
		s.respondError(w, err)
		return
	}
	st, err := s.runner.Load(r.Context(), name)
	if err != nil {
		s.respondError(w, err)
		return
	}
	data, cached, err := s.runner.Plan(r.Context(), st, f, pipeline.Options{
		Name:     name,
		Detailed: r.URL.Query().Get("detailed") == "true",
	})
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondArtifact(w, f, data, cached)
}

func (s *Server) addBuilding(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	row, err := street.ParseRow(chi.URLParam(r, "row"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	var b building.Building
	if err := decode(w, r, &b); err != nil {
		s.respondError(w, err)
		return
	}
	if b.ID == "" {
		b.ID = building.NewID()
	}
	st, err := s.runner.Add(r.Context(), name, row, b)
	if err != nil {
		s.respondError(w, err)
		return
	}
	w.Header().Set("Location", "/api/streets/"+name+"/rows/"+row.String()+"/buildings/"+b.ID)
	s.respondStreet(w, http.StatusCreated, name, st)
}

func (s *Server) removeBuilding(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	row, err := street.ParseRow(chi.URLParam(r, "row"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	st, err := s.runner.Remove(r.Context(), name, row, chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondStreet(w, http.StatusOK, name, st)
}

// =============================================================================
// Responses
// =============================================================================

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.GetCode(err) != "" {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func queryFormat(r *http.Request, def sink.Format) (sink.Format, error) {
	v := r.URL.Query().Get("format")
	if v == "" {
		return def, nil
	}
	return sink.ParseFormat(v)
}

func (s *Server) respondStreet(w http.ResponseWriter, status int, name string, st *street.Street) {
	data, err := streetio.Marshal(st, name, streetio.FormatJSON)
	if err != nil {
		s.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func respondArtifact(w http.ResponseWriter, f sink.Format, data []byte, cached bool) {
	w.Header().Set("Content-Type", f.ContentType())
	if cached {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Kind    string      `json:"kind"`
	Message string      `json:"message"`
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	respondJSON(w, status, errorResponse{
		Code:    code,
		Kind:    errors.KindOf(err).String(),
		Message: errors.UserMessage(err),
	})
}

// StatusOf maps an error to its HTTP status.
func StatusOf(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusUnprocessableEntity
	case errors.IsState(err):
		return http.StatusConflict
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidRow,
		errors.ErrCodeInvalidCategory, errors.ErrCodeInvalidName, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeNetwork:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
