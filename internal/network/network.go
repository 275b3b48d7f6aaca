// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package network builds the one-hop citation graph of a single paper: the
// paper itself plus the works it references.
package network

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/pdiddy/litmap/internal/openalex"
	"github.com/pdiddy/litmap/pkg/types"
)

// MaxReferences is the most reference nodes a graph carries.
const MaxReferences = 15

// ErrNotFound reports that the requested paper could not be fetched.
var ErrNotFound = errors.New("paper not found")

// WorkGetter fetches a single work by id.
type WorkGetter interface {
	GetWork(ctx context.Context, id string) (*openalex.Work, error)
}

// Builder assembles citation graphs from OpenAlex works.
type Builder struct {
	Works WorkGetter

	// MaxReferences caps reference nodes; values outside 1..MaxReferences
	// fall back to MaxReferences.
	MaxReferences int

	Logger *zap.Logger
}

// Build fetches paperID and up to MaxReferences of its referenced works in
// list order, one at a time. A reference that cannot be fetched is left
// out of the graph; only failure to fetch the paper itself is an error.
func (b *Builder) Build(ctx context.Context, paperID string) (*types.CitationGraph, error) {
	key := openalex.NormalizeID(paperID)
	if key == "" {
		return nil, fmt.Errorf("%w: empty paper id", ErrNotFound)
	}

	main, err := b.Works.GetWork(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, key, err)
	}

	mainID := main.ID
	if mainID == "" {
		mainID = key
	}
	g := &types.CitationGraph{
		Nodes: []types.GraphNode{node(main, mainID, types.GroupMain)},
		Edges: []types.GraphEdge{},
	}

	refs := main.ReferencedWorks
	if limit := b.limit(); len(refs) > limit {
		refs = refs[:limit]
	}

	log := b.logger()
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			log.Debug("graph build canceled", zap.String("paper", key), zap.Error(err))
			break
		}
		w, err := b.Works.GetWork(ctx, ref)
		if err != nil {
			log.Debug("skipping reference", zap.String("ref", ref), zap.Error(err))
			continue
		}
		id := w.ID
		if id == "" {
			id = ref
		}
		if g.HasNode(id) {
			continue
		}
		g.Nodes = append(g.Nodes, node(w, id, types.GroupReference))
		g.Edges = append(g.Edges, types.GraphEdge{From: mainID, To: id, Arrows: "to"})
	}

	log.Debug("graph built",
		zap.String("paper", key),
		zap.Int("references", len(refs)),
		zap.Int("nodes", len(g.Nodes)),
	)
	return g, nil
}

func node(w *openalex.Work, id string, group types.NodeGroup) types.GraphNode {
	return types.GraphNode{
		ID:    id,
		Label: Label(w),
		Title: w.TitleOr("Untitled"),
		Group: group,
		Value: max(w.CitedByCount, 0) + 1,
	}
}

// Label returns "<first author's surname>, <year>", using "Unknown" for a
// missing author and "YYYY" for a missing year.
func Label(w *openalex.Work) string {
	surname := w.FirstAuthorSurname()
	if surname == "" {
		surname = "Unknown"
	}
	year := "YYYY"
	if w.PublicationYear > 0 {
		year = strconv.Itoa(w.PublicationYear)
	}
	return surname + ", " + year
}

func (b *Builder) limit() int {
	if b.MaxReferences <= 0 || b.MaxReferences > MaxReferences {
		return MaxReferences
	}
	return b.MaxReferences
}

func (b *Builder) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}
