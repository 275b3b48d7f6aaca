// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import "errors"

var (
	// ErrEmptyCriteria rejects a search with no query, no filter, and no
	// author or journal text.
	ErrEmptyCriteria = errors.New("empty search criteria: provide a query or at least one filter")

	// ErrInvalidCriteria rejects a search with contradictory or negative
	// range bounds.
	ErrInvalidCriteria = errors.New("invalid search criteria")

	// ErrUpstream reports that the primary metadata source could not serve
	// the search.
	ErrUpstream = errors.New("failed to fetch data from OpenAlex")
)

// IsUserInput reports whether err was caused by the request itself rather
// than by an upstream failure.
func IsUserInput(err error) bool {
	return errors.Is(err, ErrEmptyCriteria) || errors.Is(err, ErrInvalidCriteria)
}
