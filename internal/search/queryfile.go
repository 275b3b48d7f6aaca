// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/litmap/pkg/types"
)

// QueryFile is the on-disk representation of a search and its results. A
// saved search can be reloaded later without re-querying any source.
type QueryFile struct {
	Query         QueryParams          `yaml:"query"`
	Results       []types.Record       `yaml:"results"`
	AuthorProfile *types.AuthorProfile `yaml:"author_profile,omitempty"`
	Summary       QuerySummary         `yaml:"summary"`
}

// QueryParams stores the search criteria in a serializable form.
type QueryParams struct {
	Query        string `yaml:"query,omitempty"`
	YearStart    int    `yaml:"year_start,omitempty"`
	YearEnd      int    `yaml:"year_end,omitempty"`
	Authors      string `yaml:"authors,omitempty"`
	Journals     string `yaml:"journals,omitempty"`
	Language     string `yaml:"lang,omitempty"`
	MinCitations *int   `yaml:"min_cites,omitempty"`
	MaxCitations *int   `yaml:"max_cites,omitempty"`
}

// QuerySummary stores per-source counts and a timestamp.
type QuerySummary struct {
	Total     int                  `yaml:"total"`
	BySource  map[types.Source]int `yaml:"by_source,omitempty"`
	Timestamp time.Time            `yaml:"timestamp"`
}

// WriteQueryFile saves the request and its output to a YAML file.
func WriteQueryFile(path string, req Request, out *types.SearchOutput) error {
	qf := QueryFile{
		Query:         paramsFromRequest(req),
		Results:       out.Results,
		AuthorProfile: out.AuthorProfile,
		Summary: QuerySummary{
			Total:     len(out.Results),
			BySource:  countBySource(out.Results),
			Timestamp: time.Now().UTC(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// Output returns the saved results in the shape a live search produces.
func (qf *QueryFile) Output() *types.SearchOutput {
	results := qf.Results
	if results == nil {
		results = []types.Record{}
	}
	return &types.SearchOutput{Results: results, AuthorProfile: qf.AuthorProfile}
}

// ToRequest converts stored QueryParams back into a Request.
func (p QueryParams) ToRequest() Request {
	return Request{
		Query: p.Query,
		Filter: Filter{
			YearStart:    p.YearStart,
			YearEnd:      p.YearEnd,
			Language:     p.Language,
			Authors:      p.Authors,
			Journals:     p.Journals,
			MinCitations: p.MinCitations,
			MaxCitations: p.MaxCitations,
		},
	}
}

func paramsFromRequest(req Request) QueryParams {
	f := req.Filter
	return QueryParams{
		Query:        req.Query,
		YearStart:    f.YearStart,
		YearEnd:      f.YearEnd,
		Authors:      f.Authors,
		Journals:     f.Journals,
		Language:     f.Language,
		MinCitations: f.MinCitations,
		MaxCitations: f.MaxCitations,
	}
}

func countBySource(recs []types.Record) map[types.Source]int {
	if len(recs) == 0 {
		return nil
	}
	m := make(map[types.Source]int)
	for _, r := range recs {
		m[r.Source]++
	}
	return m
}
