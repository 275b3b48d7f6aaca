// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/litmap/pkg/types"
)

// CSLItem is a bibliographic entry in CSL (Citation Style Language) form.
// Field names follow the CSL-JSON/CSL-YAML schema so output is consumable by
// Pandoc and reference managers.
type CSLItem struct {
	ID            string    `yaml:"id"`
	Type          string    `yaml:"type"`
	Title         string    `yaml:"title"`
	OriginalTitle string    `yaml:"original-title,omitempty"`
	Author        []CSLName `yaml:"author,omitempty"`
	Issued        *CSLDate  `yaml:"issued,omitempty"`
	URL           string    `yaml:"URL,omitempty"`
	Source        string    `yaml:"source,omitempty"`
}

// CSLName is a person's name in CSL form.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate is a CSL date using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes search results as a CSL-YAML list to w.
func FormatCSL(out *types.SearchOutput, w io.Writer) error {
	items := make([]CSLItem, len(out.Results))
	for i, r := range out.Results {
		items[i] = toCSLItem(r, i)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a Record to a CSLItem. Records without an id get a
// positional one so every item stays citable.
func toCSLItem(r types.Record, pos int) CSLItem {
	item := CSLItem{
		ID:     fmt.Sprintf("item%d", pos+1),
		Type:   "article-journal",
		Title:  r.Title,
		Source: string(r.Source),
	}
	if r.ID != nil && *r.ID != "" {
		item.ID = cslKey(*r.ID)
	}
	if r.OriginalTitle != "" && r.OriginalTitle != r.Title {
		item.OriginalTitle = r.OriginalTitle
	}
	if r.DownloadURL != nil {
		item.URL = *r.DownloadURL
	}
	if r.Source == types.SourceCyberLeninka {
		item.Type = "article"
	} else {
		for _, a := range r.Authors {
			item.Author = append(item.Author, parseAuthorName(a))
		}
	}
	if r.PublicationYear > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{int(r.PublicationYear)}}}
	}
	return item
}

// cslKey reduces an OpenAlex URL id such as https://openalex.org/W123 to its
// last path segment.
func cslKey(id string) string {
	if i := strings.LastIndex(strings.TrimRight(id, "/"), "/"); i >= 0 {
		return strings.TrimRight(id, "/")[i+1:]
	}
	return id
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
