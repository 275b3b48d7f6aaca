// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search aggregates bibliographic records from the primary and
// secondary metadata sources, enriches them with translated titles, and
// formats the merged result set.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/litmap/internal/openalex"
	"github.com/pdiddy/litmap/pkg/types"
)

// emptySuggestions is returned by Autocomplete whenever there is nothing to
// pass through.
var emptySuggestions = json.RawMessage(`{"results":[]}`)

// Expander rewrites a free-text query into a boolean disjunction and
// optionally an author profile.
type Expander interface {
	Expand(ctx context.Context, query string) (string, *types.AuthorProfile)
}

// PrimarySource fetches raw works for an expanded query.
type PrimarySource interface {
	Works(ctx context.Context, expanded string, filter Filter) ([]openalex.Work, error)
}

// SecondarySource returns at most max records for a raw query and never
// fails.
type SecondarySource interface {
	Search(ctx context.Context, query string, max int) []types.Record
}

// Autocompleter returns raw suggestion JSON for a prefix.
type Autocompleter interface {
	Autocomplete(ctx context.Context, q string) (json.RawMessage, error)
}

// Request holds the search criteria.
type Request struct {
	Query  string
	Filter Filter
}

// IsEmpty reports whether the request has no query text, no filter tokens,
// and no author or journal text.
func (r Request) IsEmpty() bool {
	return strings.TrimSpace(r.Query) == "" &&
		strings.TrimSpace(r.Filter.Authors) == "" &&
		strings.TrimSpace(r.Filter.Journals) == "" &&
		r.Filter.IsEmpty()
}

// Service runs searches end to end.
type Service struct {
	Expander      Expander
	Primary       PrimarySource
	Secondary     SecondarySource
	Enricher      *Enricher
	Autocompleter Autocompleter

	// SecondaryMax caps secondary records (DefaultSecondaryMax when zero).
	SecondaryMax int

	Logger *zap.Logger
}

// Search expands the query, fetches and enriches primary records, then
// appends enriched secondary records. Only the primary source can fail the
// search; every enrichment degrades silently.
func (s *Service) Search(ctx context.Context, req Request) (*types.SearchOutput, error) {
	if req.IsEmpty() {
		return nil, ErrEmptyCriteria
	}
	if err := req.Filter.Validate(); err != nil {
		return nil, err
	}
	log := s.logger()

	query := strings.TrimSpace(req.Query)
	expanded, profile := s.expand(ctx, query)
	log.Debug("query expanded", zap.String("query", query), zap.String("expanded", expanded))

	works, err := s.Primary.Works(ctx, expanded, req.Filter)
	if err != nil {
		log.Warn("primary source failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	results := s.enricher().Primary(ctx, works)

	if query != "" && s.Secondary != nil {
		max := s.SecondaryMax
		if max <= 0 {
			max = DefaultSecondaryMax
		}
		secondary := s.Secondary.Search(ctx, query, max)
		results = append(results, s.enricher().Secondary(ctx, secondary)...)
	}

	log.Info("search complete",
		zap.String("query", query),
		zap.Int("primary", len(works)),
		zap.Int("results", len(results)),
	)
	return &types.SearchOutput{Results: results, AuthorProfile: profile}, nil
}

// Autocomplete passes through upstream suggestions for q. An empty q or any
// upstream failure yields an empty result list.
func (s *Service) Autocomplete(ctx context.Context, q string) json.RawMessage {
	if strings.TrimSpace(q) == "" || s.Autocompleter == nil {
		return emptySuggestions
	}
	raw, err := s.Autocompleter.Autocomplete(ctx, q)
	if err != nil {
		s.logger().Debug("autocomplete failed", zap.String("q", q), zap.Error(err))
		return emptySuggestions
	}
	return raw
}

func (s *Service) expand(ctx context.Context, query string) (string, *types.AuthorProfile) {
	if query == "" || s.Expander == nil {
		return query, nil
	}
	return s.Expander.Expand(ctx, query)
}

func (s *Service) enricher() *Enricher {
	if s.Enricher == nil {
		return &Enricher{}
	}
	return s.Enricher
}

func (s *Service) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
