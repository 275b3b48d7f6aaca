// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import "strings"

// Work is the subset of an OpenAlex work record litmap uses.
type Work struct {
	ID              string       `json:"id"`
	DOI             string       `json:"doi"`
	Title           *string      `json:"title"`
	PublicationYear int          `json:"publication_year"`
	CitedByCount    int          `json:"cited_by_count"`
	Authorships     []Authorship `json:"authorships"`
	OpenAccess      OpenAccess   `json:"open_access"`
	ReferencedWorks []string     `json:"referenced_works"`
}

// Authorship links a work to one author.
type Authorship struct {
	Author Author `json:"author"`
}

// Author is an OpenAlex author reference.
type Author struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// OpenAccess describes whether a free copy exists.
type OpenAccess struct {
	IsOA     bool   `json:"is_oa"`
	OAStatus string `json:"oa_status"`
	OAURL    string `json:"oa_url"`
}

type worksResponse struct {
	Meta    worksMeta `json:"meta"`
	Results []Work    `json:"results"`
}

type worksMeta struct {
	Count   int `json:"count"`
	PerPage int `json:"per_page"`
	Page    int `json:"page"`
}

// TitleOr returns the work title, or fallback when it is missing.
func (w *Work) TitleOr(fallback string) string {
	if w.Title == nil || *w.Title == "" {
		return fallback
	}
	return *w.Title
}

// AuthorNames returns author display names in authorship order.
func (w *Work) AuthorNames() []string {
	names := make([]string, 0, len(w.Authorships))
	for _, a := range w.Authorships {
		names = append(names, a.Author.DisplayName)
	}
	return names
}

// FirstAuthorSurname returns the last whitespace-separated token of the
// first author's display name, or "" when there is none.
func (w *Work) FirstAuthorSurname() string {
	if len(w.Authorships) == 0 {
		return ""
	}
	fields := strings.Fields(w.Authorships[0].Author.DisplayName)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// DownloadURL returns the open-access URL when the work is flagged open
// access and a URL is present.
func (w *Work) DownloadURL() (string, bool) {
	if !w.OpenAccess.IsOA || w.OpenAccess.OAURL == "" {
		return "", false
	}
	return w.OpenAccess.OAURL, true
}
