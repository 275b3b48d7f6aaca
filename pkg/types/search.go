// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for litmap: normalized search
// records, author profiles, citation graphs, and configuration.
package types

import (
	"encoding/json"
	"strconv"

	"go.yaml.in/yaml/v3"
)

// Source identifies which upstream produced a Record.
type Source string

const (
	// SourceOpenAlex is the primary structured metadata API.
	SourceOpenAlex Source = "openalex"
	// SourceCyberLeninka is the secondary HTML-scraped repository.
	SourceCyberLeninka Source = "cyberleninka"
)

// Year is a publication year. The zero value means the year is unknown and
// serializes as "N/A".
type Year int

// String returns the year as decimal text, or "N/A" when unknown.
func (y Year) String() string {
	if y <= 0 {
		return "N/A"
	}
	return strconv.Itoa(int(y))
}

// MarshalJSON encodes a known year as a number and an unknown year as "N/A".
func (y Year) MarshalJSON() ([]byte, error) {
	if y <= 0 {
		return []byte(`"N/A"`), nil
	}
	return []byte(strconv.Itoa(int(y))), nil
}

// UnmarshalJSON accepts a number, a numeric string, "N/A", or null.
func (y *Year) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*y = Year(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*y = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		*y = 0
		return nil
	}
	*y = Year(n)
	return nil
}

// MarshalYAML mirrors MarshalJSON for saved query files.
func (y Year) MarshalYAML() (any, error) {
	if y <= 0 {
		return "N/A", nil
	}
	return int(y), nil
}

// UnmarshalYAML accepts the forms MarshalYAML produces.
func (y *Year) UnmarshalYAML(value *yaml.Node) error {
	n, err := strconv.Atoi(value.Value)
	if err != nil {
		*y = 0
		return nil
	}
	*y = Year(n)
	return nil
}

// Record is a normalized bibliographic record produced by a search. Records
// carry no identity beyond their position in the result list.
type Record struct {
	// ID is the upstream identifier; nil when the source has none.
	ID *string `json:"id" yaml:"id"`

	// Title is the title translated into the primary language.
	Title string `json:"title" yaml:"title"`

	// OriginalTitle is the title as returned by the source.
	OriginalTitle string `json:"original_title" yaml:"original_title"`

	PublicationYear Year `json:"publication_year" yaml:"publication_year"`

	CitedByCount int `json:"cited_by_count" yaml:"cited_by_count"`

	// Authors lists author display names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// DownloadURL is set only when the source reports an open-access copy.
	DownloadURL *string `json:"download_url" yaml:"download_url"`

	Source Source `json:"source" yaml:"source"`
}

// AuthorProfile is the knowledge card shown alongside results when a query
// names a known person.
type AuthorProfile struct {
	Name    string   `json:"name" yaml:"name"`
	Aliases []string `json:"aliases" yaml:"aliases"`
	Bio     string   `json:"bio" yaml:"bio"`
}

// SearchOutput is the merged result set returned by a search: primary
// records first, then secondary records.
type SearchOutput struct {
	Results       []Record       `json:"results" yaml:"results"`
	AuthorProfile *AuthorProfile `json:"author_profile" yaml:"author_profile"`
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }
