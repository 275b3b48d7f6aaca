// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/litmap/internal/openalex"
	"github.com/pdiddy/litmap/pkg/types"
)

// DefaultWorkers bounds concurrent title translations.
const DefaultWorkers = 10

// untitled replaces a missing work title.
const untitled = "Untitled"

// Translator translates text, never failing.
type Translator interface {
	Translate(ctx context.Context, text, target string) string
}

// Enricher normalizes records and translates their titles into Target.
// Translations run on a bounded pool; output order always equals input
// order because each task writes only its own slot.
type Enricher struct {
	Translator Translator
	Target     string
	Workers    int
}

// Primary normalizes OpenAlex works into records with translated titles.
func (e *Enricher) Primary(ctx context.Context, works []openalex.Work) []types.Record {
	out := make([]types.Record, len(works))
	e.each(len(works), func(i int) {
		out[i] = e.normalize(ctx, &works[i])
	})
	return out
}

// Secondary returns copies of recs with Title set to the translation of
// OriginalTitle.
func (e *Enricher) Secondary(ctx context.Context, recs []types.Record) []types.Record {
	out := make([]types.Record, len(recs))
	e.each(len(recs), func(i int) {
		r := recs[i]
		r.Title = e.translate(ctx, r.OriginalTitle)
		out[i] = r
	})
	return out
}

func (e *Enricher) normalize(ctx context.Context, w *openalex.Work) types.Record {
	original := w.TitleOr(untitled)
	r := types.Record{
		Title:           e.translate(ctx, original),
		OriginalTitle:   original,
		PublicationYear: types.Year(w.PublicationYear),
		CitedByCount:    max(w.CitedByCount, 0),
		Authors:         w.AuthorNames(),
		Source:          types.SourceOpenAlex,
	}
	if w.ID != "" {
		r.ID = types.StringPtr(w.ID)
	}
	if u, ok := w.DownloadURL(); ok {
		r.DownloadURL = types.StringPtr(u)
	}
	return r
}

func (e *Enricher) translate(ctx context.Context, text string) string {
	if e.Translator == nil {
		return text
	}
	return e.Translator.Translate(ctx, text, e.Target)
}

// each runs fn(0..n-1) on at most Workers goroutines and waits for all.
func (e *Enricher) each(n int, fn func(i int)) {
	workers := e.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	g.Wait()
}
