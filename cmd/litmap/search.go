// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/litmap/internal/search"
	"github.com/pdiddy/litmap/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search OpenAlex and CyberLeninka for works",
	Long: `Search expands the query (author aliases, or English and Russian
translations), fetches up to one page of works from OpenAlex, appends a few
CyberLeninka results, and translates every title into the primary language.

A query may be omitted when at least one filter is given. Use --load to
print a search saved earlier with --save without querying any source.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("year-start", 0, "earliest publication year")
	searchCmd.Flags().Int("year-end", 0, "latest publication year")
	searchCmd.Flags().String("authors", "", "filter by author name")
	searchCmd.Flags().String("journals", "", "filter by journal or venue name")
	searchCmd.Flags().String("lang", "", "filter by language code (e.g. uz, ru, en)")
	searchCmd.Flags().Int("min-cites", 0, "minimum citation count")
	searchCmd.Flags().Int("max-cites", 0, "maximum citation count")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("csl", false, "output results as CSL-YAML")
	searchCmd.Flags().String("save", "", "save the query and results to a YAML file")
	searchCmd.Flags().String("load", "", "print results from a saved query file")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	jsonOut, _ := cmd.Flags().GetBool("json")
	cslOut, _ := cmd.Flags().GetBool("csl")
	if jsonOut && cslOut {
		return fmt.Errorf("--json and --csl are mutually exclusive")
	}

	if path, _ := cmd.Flags().GetString("load"); path != "" {
		qf, err := search.ReadQueryFile(path)
		if err != nil {
			return err
		}
		return printSearch(qf.Output(), jsonOut, cslOut)
	}

	req := requestFromFlags(cmd, args)

	a, err := appFromFlags()
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.search.Search(cmd.Context(), req)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := search.WriteQueryFile(path, req, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved %d results to %s\n", len(out.Results), path)
	}
	return printSearch(out, jsonOut, cslOut)
}

func printSearch(out *types.SearchOutput, jsonOut, cslOut bool) error {
	switch {
	case jsonOut:
		return search.FormatJSON(out, os.Stdout)
	case cslOut:
		return search.FormatCSL(out, os.Stdout)
	default:
		search.FormatTable(out, os.Stdout)
		return nil
	}
}

// requestFromFlags builds a search request. Citation bounds apply only when
// their flag was given, so --min-cites 0 is a real bound.
func requestFromFlags(cmd *cobra.Command, args []string) search.Request {
	f := cmd.Flags()
	yearStart, _ := f.GetInt("year-start")
	yearEnd, _ := f.GetInt("year-end")
	authors, _ := f.GetString("authors")
	journals, _ := f.GetString("journals")
	lang, _ := f.GetString("lang")

	req := search.Request{
		Query: strings.TrimSpace(strings.Join(args, " ")),
		Filter: search.Filter{
			YearStart: yearStart,
			YearEnd:   yearEnd,
			Language:  strings.TrimSpace(lang),
			Authors:   strings.TrimSpace(authors),
			Journals:  strings.TrimSpace(journals),
		},
	}
	if f.Changed("min-cites") {
		n, _ := f.GetInt("min-cites")
		req.Filter.MinCitations = search.Int(n)
	}
	if f.Changed("max-cites") {
		n, _ := f.GetInt("max-cites")
		req.Filter.MaxCitations = search.Int(n)
	}
	return req
}
