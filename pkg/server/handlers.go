package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/lineage/pkg/buildinfo"
	"github.com/matzehuels/lineage/pkg/core/family"
	"github.com/matzehuels/lineage/pkg/errors"
	"github.com/matzehuels/lineage/pkg/graph"
	"github.com/matzehuels/lineage/pkg/pipeline"
	"github.com/matzehuels/lineage/pkg/store"
)

// maxListLimit bounds the limit query parameter.
const maxListLimit = 500

// contentTypes maps output formats to their media types.
var contentTypes = map[string]string{
	graph.FormatJSON: "application/json",
	graph.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	graph.FormatSVG:  "image/svg+xml",
	graph.FormatPNG:  "image/png",
	graph.FormatPDF:  "application/pdf",
}

// =============================================================================
// Request and Response Types
// =============================================================================

// CreateRequest is the body of POST /v1/layouts.
type CreateRequest struct {
	Chart   family.Data      `json:"chart"`
	Options pipeline.Options `json:"options"`
}

// CreateResponse is the body returned by POST /v1/layouts.
type CreateResponse struct {
	*store.Record
	Cached bool `json:"cached"`
}

// ListResponse is the body of GET /v1/layouts.
type ListResponse struct {
	Layouts []store.Summary `json:"layouts"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes one error.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeStatusError(w, r, http.StatusRequestEntityTooLarge,
				errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if len(req.Chart.Nodes) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "chart has no nodes"))
		return
	}

	opts := s.options(req.Options)
	l, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), req.Chart, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	hash, err := pipeline.ChartHash(req.Chart)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rec := store.NewRecord(l, hash)
	if err := s.store.Save(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info("stored layout",
		"id", rec.ID,
		"family", rec.Family,
		"people", rec.People,
		"generations", rec.Generations,
		"cached", hit)

	w.Header().Set("Location", "/v1/layouts/"+rec.ID)
	writeJSON(w, http.StatusCreated, CreateResponse{Record: rec, Cached: hit})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	opts := store.ListOptions{Family: r.URL.Query().Get("family")}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxListLimit {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "limit must be between 1 and %d", maxListLimit))
			return
		}
		opts.Limit = n
	}

	summaries, err := s.store.List(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Layouts: summaries})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.options(pipeline.Options{})
	opts.Formats = []string{format}
	q := r.URL.Query()
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v))
			return
		}
		opts.Scale = scale
	}
	if v := q.Get("portraits"); v != "" {
		portraits, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid portraits %q", v))
			return
		}
		opts.Portraits = portraits
	}

	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	artifacts, err := s.runner.Render(r.Context(), rec.Layout, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// =============================================================================
// Helpers
// =============================================================================

// options fills the fields a request left unset from the server defaults.
func (s *Server) options(req pipeline.Options) pipeline.Options {
	d := s.defaults
	opts := req
	sp, dsp := &opts.Spacing, d.Spacing
	if sp.RowSpacing == 0 {
		sp.RowSpacing = dsp.RowSpacing
	}
	if sp.ColumnSpacing == 0 {
		sp.ColumnSpacing = dsp.ColumnSpacing
	}
	if sp.CoupleGap == 0 {
		sp.CoupleGap = dsp.CoupleGap
	}
	if sp.Baseline == 0 {
		sp.Baseline = dsp.Baseline
	}
	if sp.StartX == 0 {
		sp.StartX = dsp.StartX
	}
	if sp.LinkOffset == 0 {
		sp.LinkOffset = dsp.LinkOffset
	}
	if opts.MaxPasses == 0 {
		opts.MaxPasses = d.MaxPasses
	}
	if opts.ViewportWidth == 0 {
		opts.ViewportWidth = d.ViewportWidth
	}
	if opts.Scale == 0 {
		opts.Scale = d.Scale
	}
	opts.Strict = opts.Strict || d.Strict
	opts.Portraits = opts.Portraits || d.Portraits
	opts.Logger = s.logger
	return opts
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeStatusError(w, r, errors.HTTPStatus(err), err)
}

func (s *Server) writeStatusError(w http.ResponseWriter, r *http.Request, status int, err error) {
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err, "request_id", RequestID(r.Context()))
		msg = "internal error"
	}
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{
		Code:      code,
		Message:   msg,
		RequestID: RequestID(r.Context()),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
