// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/litmap/pkg/types"
)

// FormatTable writes results as a human-readable table to w, preceded by
// the author profile when there is one.
func FormatTable(out *types.SearchOutput, w io.Writer) {
	if p := out.AuthorProfile; p != nil {
		fmt.Fprintf(w, "%s\n", p.Name)
		if len(p.Aliases) > 0 {
			fmt.Fprintf(w, "  aliases: %s\n", strings.Join(p.Aliases, ", "))
		}
		fmt.Fprintf(w, "  %s\n\n", truncate(p.Bio, 200))
	}

	if len(out.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-4s  %-6s  %s\n",
		"#", "Title", "Authors", "Year", "Cites", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 112))

	for i, r := range out.Results {
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-4s  %-6d  %s\n",
			i+1, truncate(r.Title, 60), formatAuthors(r.Authors), r.PublicationYear, r.CitedByCount, r.Source)
	}

	fmt.Fprintf(w, "\n%d results\n", len(out.Results))
}

// FormatJSON writes the output as indented JSON to w, in the same shape the
// HTTP API returns.
func FormatJSON(out *types.SearchOutput, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}
