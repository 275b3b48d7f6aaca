// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"

	"github.com/pdiddy/litmap/internal/openalex"
)

// PrimaryAdapter fetches raw works from OpenAlex for an expanded query and
// filter.
type PrimaryAdapter struct {
	Client *openalex.Client

	// PerPage is the page size (openalex.DefaultPerPage when zero).
	PerPage int
}

// Works returns the first page of works matching expanded and filter. A
// non-success status surfaces as an *openalex.APIError.
func (a *PrimaryAdapter) Works(ctx context.Context, expanded string, filter Filter) ([]openalex.Work, error) {
	works, err := a.Client.SearchWorks(ctx, openalex.SearchParams{
		Search:  expanded,
		Filter:  filter.String(),
		PerPage: a.PerPage,
	})
	if err != nil {
		return nil, fmt.Errorf("searching works: %w", err)
	}
	return works, nil
}
