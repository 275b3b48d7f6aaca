// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openalex is a read-only client for the OpenAlex works API: filtered
// search, single-work lookup, and title autocomplete.
package openalex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/litmap/internal/httputil"
)

// DefaultBaseURL is the public OpenAlex API root.
const DefaultBaseURL = "https://api.openalex.org"

// DefaultPerPage is the search page size.
const DefaultPerPage = 20

// APIError reports a non-success response from OpenAlex.
type APIError struct {
	StatusCode int
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("OpenAlex %s returned HTTP %d", e.Endpoint, e.StatusCode)
}

// IsNotFound reports whether err is an OpenAlex 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to one OpenAlex deployment through a shared Fetcher.
type Client struct {
	Fetcher *httputil.Fetcher
	BaseURL string

	// Email is sent as the mailto parameter for polite pool access.
	Email string
}

// NewClient returns a Client for baseURL (DefaultBaseURL when empty).
func NewClient(fetcher *httputil.Fetcher, baseURL, email string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Fetcher: fetcher,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Email:   email,
	}
}

// SearchParams are the raw query parameters of a works search.
type SearchParams struct {
	// Search is the free-text search expression; empty omits it.
	Search string
	// Filter is the comma-joined filter expression; empty omits it.
	Filter  string
	PerPage int
}

// SearchURL builds the works search URL for p.
func (c *Client) SearchURL(p SearchParams) string {
	perPage := p.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	params := url.Values{"per-page": {strconv.Itoa(perPage)}}
	if p.Search != "" {
		params.Set("search", p.Search)
	}
	if p.Filter != "" {
		params.Set("filter", p.Filter)
	}
	if c.Email != "" {
		params.Set("mailto", c.Email)
	}
	return c.BaseURL + "/works?" + params.Encode()
}

// SearchWorks runs a works search and returns the first page of results.
func (c *Client) SearchWorks(ctx context.Context, p SearchParams) ([]Work, error) {
	var wr worksResponse
	if err := c.getJSON(ctx, "works search", c.SearchURL(p), &wr); err != nil {
		return nil, err
	}
	return wr.Results, nil
}

// GetWork fetches a single work by id. The id may be a bare OpenAlex key
// ("W2741809807") or a full work URI.
func (c *Client) GetWork(ctx context.Context, id string) (*Work, error) {
	key := NormalizeID(id)
	if key == "" {
		return nil, fmt.Errorf("empty work id")
	}
	reqURL := c.BaseURL + "/works/" + url.PathEscape(key)
	if c.Email != "" {
		reqURL += "?" + url.Values{"mailto": {c.Email}}.Encode()
	}

	var w Work
	if err := c.getJSON(ctx, "work "+key, reqURL, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Autocomplete returns the raw JSON body of the works autocomplete endpoint.
func (c *Client) Autocomplete(ctx context.Context, q string) (json.RawMessage, error) {
	reqURL := c.BaseURL + "/autocomplete/works?" + url.Values{"q": {q}}.Encode()

	resp, err := c.Fetcher.Get(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("OpenAlex autocomplete request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Endpoint: "autocomplete"}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading autocomplete response: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("autocomplete response is not JSON")
	}
	return json.RawMessage(body), nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, reqURL string, v any) error {
	err := c.Fetcher.GetJSON(ctx, reqURL, v)
	var se *httputil.StatusError
	if errors.As(err, &se) {
		return &APIError{StatusCode: se.StatusCode, Endpoint: endpoint}
	}
	if err != nil {
		return fmt.Errorf("OpenAlex %s request: %w", endpoint, err)
	}
	return nil
}

// NormalizeID strips any URI prefix up to and including "openalex.org/" and
// surrounding slashes, leaving the bare work key.
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	if i := strings.LastIndex(id, "openalex.org/"); i >= 0 {
		id = id[i+len("openalex.org/"):]
	}
	return strings.Trim(id, "/")
}
