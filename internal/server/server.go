// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes search, suggestions, and citation graphs as a JSON
// HTTP API, plus health and Prometheus metrics endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pdiddy/litmap/internal/network"
	"github.com/pdiddy/litmap/internal/search"
	"github.com/pdiddy/litmap/pkg/types"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = ":8080"

// Messages returned in {"error": ...} bodies.
const (
	msgEmptyCriteria = "Iltimos qidiruv mezoni kiriting"
	msgUpstream      = "Failed to fetch data from OpenAlex"
	msgNotFound      = "Paper not found"
)

// Searcher runs searches and autocomplete lookups.
type Searcher interface {
	Search(ctx context.Context, req search.Request) (*types.SearchOutput, error)
	Autocomplete(ctx context.Context, q string) json.RawMessage
}

// GraphBuilder builds a citation graph for one paper.
type GraphBuilder interface {
	Build(ctx context.Context, paperID string) (*types.CitationGraph, error)
}

// Server is the litmap HTTP API.
type Server struct {
	searcher Searcher
	graphs   GraphBuilder
	logger   *zap.Logger
	handler  http.Handler
	server   *http.Server
}

// New returns a Server listening on addr (DefaultAddr when empty).
func New(searcher Searcher, graphs GraphBuilder, addr string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if addr == "" {
		addr = DefaultAddr
	}
	s := &Server{searcher: searcher, graphs: graphs, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /api/search", s.instrument("search", s.handleSearch))
	mux.Handle("GET /api/suggest", s.instrument("suggest", s.handleSuggest))
	mux.Handle("GET /api/paper/{rest...}", s.instrument("network", s.handleNetwork))

	s.handler = s.withRecovery(mux)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler { return s.handler }

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.server.Addr }

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("server starting", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving on %s: %w", s.server.Addr, err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for active ones to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server stopping")
	return s.server.Shutdown(ctx)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	req, err := parseSearchRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := s.searcher.Search(r.Context(), req)
	switch {
	case errors.Is(err, search.ErrEmptyCriteria):
		writeError(w, http.StatusBadRequest, msgEmptyCriteria)
		return
	case search.IsUserInput(err):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.logger.Warn("search failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgUpstream)
		return
	}

	counts := map[types.Source]int{types.SourceOpenAlex: 0, types.SourceCyberLeninka: 0}
	for _, rec := range out.Results {
		counts[rec.Source]++
	}
	for src, n := range counts {
		searchResults.WithLabelValues(string(src)).Observe(float64(n))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	raw := s.searcher.Autocomplete(r.Context(), r.URL.Query().Get("q"))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// handleNetwork serves /api/paper/{id}/network. The id may itself contain
// slashes, as full OpenAlex URIs do.
func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	id, ok := strings.CutSuffix(r.PathValue("rest"), "/network")
	if !ok || id == "" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	g, err := s.graphs.Build(r.Context(), id)
	if err != nil {
		if errors.Is(err, network.ErrNotFound) {
			s.logger.Debug("paper not found", zap.String("id", id), zap.Error(err))
			writeError(w, http.StatusNotFound, msgNotFound)
			return
		}
		s.logger.Warn("graph build failed", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgUpstream)
		return
	}
	graphNodes.Observe(float64(len(g.Nodes)))
	writeJSON(w, http.StatusOK, g)
}

// parseSearchRequest reads search criteria from query parameters. Blank
// numeric parameters leave that bound open.
func parseSearchRequest(r *http.Request) (search.Request, error) {
	q := r.URL.Query()
	req := search.Request{
		Query: strings.TrimSpace(q.Get("q")),
		Filter: search.Filter{
			Language: strings.TrimSpace(q.Get("lang")),
			Authors:  strings.TrimSpace(q.Get("authors")),
			Journals: strings.TrimSpace(q.Get("journals")),
		},
	}

	var err error
	if req.Filter.YearStart, err = intParam(q.Get("year_start"), "year_start"); err != nil {
		return req, err
	}
	if req.Filter.YearEnd, err = intParam(q.Get("year_end"), "year_end"); err != nil {
		return req, err
	}
	if req.Filter.MinCitations, err = optionalIntParam(q.Get("min_cites"), "min_cites"); err != nil {
		return req, err
	}
	if req.Filter.MaxCitations, err = optionalIntParam(q.Get("max_cites"), "max_cites"); err != nil {
		return req, err
	}
	return req, nil
}

func intParam(raw, name string) (int, error) {
	p, err := optionalIntParam(raw, name)
	if p == nil {
		return 0, err
	}
	return *p, err
}

func optionalIntParam(raw, name string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return &n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
