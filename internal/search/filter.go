// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"strconv"
	"strings"
)

// Filter narrows a primary-source search. Zero years and nil citation
// bounds leave that end of the range open.
type Filter struct {
	YearStart int
	YearEnd   int

	// Language is an ISO 639-1 code such as "uz".
	Language string

	// Authors is matched as a substring of author display names.
	Authors string

	// Journals is matched as a substring of the venue name.
	Journals string

	MinCitations *int
	MaxCitations *int
}

// Validate rejects negative bounds and ranges whose start exceeds their end.
func (f Filter) Validate() error {
	if f.YearStart < 0 || f.YearEnd < 0 {
		return fmt.Errorf("%w: publication year must not be negative", ErrInvalidCriteria)
	}
	if f.YearStart > 0 && f.YearEnd > 0 && f.YearStart > f.YearEnd {
		return fmt.Errorf("%w: year_start %d is after year_end %d", ErrInvalidCriteria, f.YearStart, f.YearEnd)
	}
	if (f.MinCitations != nil && *f.MinCitations < 0) || (f.MaxCitations != nil && *f.MaxCitations < 0) {
		return fmt.Errorf("%w: citation counts must not be negative", ErrInvalidCriteria)
	}
	if f.MinCitations != nil && f.MaxCitations != nil && *f.MinCitations > *f.MaxCitations {
		return fmt.Errorf("%w: min_cites %d exceeds max_cites %d", ErrInvalidCriteria, *f.MinCitations, *f.MaxCitations)
	}
	return nil
}

// Tokens returns the OpenAlex filter tokens in a fixed order: year range,
// language, author, venue, citation range.
func (f Filter) Tokens() []string {
	var tokens []string

	switch {
	case f.YearStart > 0 && f.YearEnd > 0:
		tokens = append(tokens, fmt.Sprintf("publication_year:%d-%d", f.YearStart, f.YearEnd))
	case f.YearStart > 0:
		tokens = append(tokens, fmt.Sprintf("publication_year:%d-", f.YearStart))
	case f.YearEnd > 0:
		tokens = append(tokens, fmt.Sprintf("publication_year:-%d", f.YearEnd))
	}

	if lang := strings.TrimSpace(f.Language); lang != "" {
		tokens = append(tokens, "language:"+lang)
	}
	if a := strings.TrimSpace(f.Authors); a != "" {
		tokens = append(tokens, "authorships.author.display_name.search:"+a)
	}
	if j := strings.TrimSpace(f.Journals); j != "" {
		tokens = append(tokens, "primary_location.source.display_name.search:"+j)
	}

	switch {
	case f.MinCitations != nil && f.MaxCitations != nil:
		tokens = append(tokens, fmt.Sprintf("cited_by_count:%d-%d", *f.MinCitations, *f.MaxCitations))
	case f.MinCitations != nil:
		tokens = append(tokens, "cited_by_count:>"+strconv.Itoa(*f.MinCitations))
	case f.MaxCitations != nil:
		tokens = append(tokens, "cited_by_count:<"+strconv.Itoa(*f.MaxCitations))
	}
	return tokens
}

// String returns the comma-joined filter expression.
func (f Filter) String() string {
	return strings.Join(f.Tokens(), ",")
}

// IsEmpty reports whether the filter constrains nothing.
func (f Filter) IsEmpty() bool {
	return len(f.Tokens()) == 0
}

// Int returns a pointer to n, for citation bounds.
func Int(n int) *int { return &n }
