package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/splitgrid/pkg/buildinfo"
	"github.com/matzehuels/splitgrid/pkg/errors"
	"github.com/matzehuels/splitgrid/pkg/grid"
	sgio "github.com/matzehuels/splitgrid/pkg/io"
	"github.com/matzehuels/splitgrid/pkg/pipeline"
)

// createRequest is the body of POST /v1/grids.
type createRequest struct {
	Matrix    [][]int `json:"matrix"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	Thickness float64 `json:"thickness,omitempty"`
}

// gridResponse is returned by every endpoint that reads or mutates a grid.
type gridResponse struct {
	ID     string      `json:"id"`
	Layout sgio.Layout `json:"layout"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Grids  int            `json:"grids"`
	Build  buildinfo.Info `json:"build"`
}

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatTOML: "application/toml",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatSVG:  "image/svg+xml",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Grids: s.store.Len(), Build: buildinfo.Current()})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		Matrix:    req.Matrix,
		Width:     req.Width,
		Height:    req.Height,
		Thickness: req.Thickness,
		Logger:    s.logger,
	}
	g, err := pipeline.NewRunner(nil, nil, s.logger).Build(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	e := s.store.Create(g)
	s.logger.Debug("grid created", "id", e.id, "regions", len(g.Regions()), "dividers", len(g.Dividers()))
	writeJSON(w, http.StatusCreated, s.snapshot(e))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.snapshot(e))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.store.Delete(id) {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "grid %s not found", id))
		return
	}
	s.logger.Debug("grid deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDrag(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var ev grid.DragEvent
	if err := s.decode(w, r, &ev); err != nil {
		s.writeError(w, r, err)
		return
	}

	e.mu.Lock()
	err := e.g.Drag(ev)
	e.mu.Unlock()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.snapshot(e))
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(w, r)
	if !ok {
		return
	}
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	detailed, _ := strconv.ParseBool(r.URL.Query().Get("detailed"))

	opts := pipeline.Options{Formats: []string{format}, Detailed: detailed, Logger: s.logger}
	e.mu.Lock()
	artifacts, hits, err := s.runner(e).RenderWithCacheInfo(r.Context(), e.g, opts)
	e.mu.Unlock()
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format))
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache-Hit", strconv.FormatBool(hits > 0))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// lookup resolves the {id} URL parameter, writing a 404 when it is unknown.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*entry, bool) {
	id := chi.URLParam(r, "id")
	e, ok := s.store.Get(id)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "grid %s not found", id))
		return nil, false
	}
	return e, true
}

func (s *Server) snapshot(e *entry) gridResponse {
	e.mu.Lock()
	defer e.mu.Unlock()
	return gridResponse{ID: e.id, Layout: sgio.FromGrid(e.g)}
}

// decode reads a JSON body into v, rejecting unknown fields and trailing data.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body")
	}
	var rest bytes.Buffer
	if n, _ := rest.ReadFrom(dec.Buffered()); n > 0 && len(bytes.TrimSpace(rest.Bytes())) > 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "unexpected data after request body")
	}
	return nil
}
