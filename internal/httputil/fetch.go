// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP fetch primitive shared by the search
// adapters, the biography resolver, and the citation graph builder.
package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"
)

// StatusError reports a response whose status was not 200 OK.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned HTTP %d", e.URL, e.StatusCode)
}

// Fetcher issues GET requests. Each request is attempted exactly once; a
// failed attempt is final. When Limiter is set, every request first waits
// for a token, so callers sharing a Fetcher share one request budget.
type Fetcher struct {
	Client    *http.Client
	Limiter   *rate.Limiter
	UserAgent string

	// Header holds extra headers sent with every request.
	Header http.Header
}

// NewFetcher returns a Fetcher limited to rps requests per second. A
// non-positive rps disables limiting.
func NewFetcher(client *http.Client, rps float64, userAgent string) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	f := &Fetcher{Client: client, UserAgent: userAgent}
	if rps > 0 {
		f.Limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return f
}

// Get sends a single GET request for rawURL. The caller closes the body.
// Any status code is returned as a response, not an error.
func (f *Fetcher) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	if f.Limiter != nil {
		if err := f.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, vs := range f.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	return client.Do(req)
}

// GetJSON fetches rawURL and decodes a 200 response body into v. A non-200
// status yields a *StatusError.
func (f *Fetcher) GetJSON(ctx context.Context, rawURL string, v any) error {
	resp, err := f.Get(ctx, rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, URL: rawURL}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", rawURL, err)
	}
	return nil
}
