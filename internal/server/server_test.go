// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/litmap/internal/network"
	"github.com/pdiddy/litmap/internal/openalex"
	"github.com/pdiddy/litmap/internal/search"
	"github.com/pdiddy/litmap/pkg/types"
)

type fakeSearcher struct {
	got     search.Request
	out     *types.SearchOutput
	err     error
	suggest json.RawMessage
}

func (f *fakeSearcher) Search(_ context.Context, req search.Request) (*types.SearchOutput, error) {
	f.got = req
	if req.IsEmpty() {
		return nil, search.ErrEmptyCriteria
	}
	if err := req.Filter.Validate(); err != nil {
		return nil, err
	}
	return f.out, f.err
}

func (f *fakeSearcher) Autocomplete(_ context.Context, q string) json.RawMessage {
	if q == "" {
		return json.RawMessage(`{"results":[]}`)
	}
	return f.suggest
}

type fakeGraphs struct {
	got   string
	graph *types.CitationGraph
	err   error
}

func (f *fakeGraphs) Build(_ context.Context, id string) (*types.CitationGraph, error) {
	f.got = id
	return f.graph, f.err
}

func newTestServer(t *testing.T, s *fakeSearcher, g *fakeGraphs) *httptest.Server {
	srv := New(s, g, "", zaptest.NewLogger(t))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := ts.Client().Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestSearchEndpoint(t *testing.T) {
	fs := &fakeSearcher{out: &types.SearchOutput{
		Results: []types.Record{{
			ID:              types.StringPtr("https://openalex.org/W1"),
			Title:           "Boburnoma",
			OriginalTitle:   "Baburnama",
			PublicationYear: 1530,
			CitedByCount:    12,
			Authors:         []string{"Babur"},
			Source:          types.SourceOpenAlex,
		}},
		AuthorProfile: &types.AuthorProfile{Name: "Zahiriddin Muhammad Bobur", Aliases: []string{"Bobur"}, Bio: "bio"},
	}}
	ts := newTestServer(t, fs, &fakeGraphs{})

	code, body := get(t, ts, "/api/search?q=bobur&year_start=1500&year_end=1600&lang=uz&min_cites=0&authors=+Babur+")
	require.Equal(t, http.StatusOK, code, body)

	assert.Equal(t, "bobur", fs.got.Query)
	assert.Equal(t, 1500, fs.got.Filter.YearStart)
	assert.Equal(t, 1600, fs.got.Filter.YearEnd)
	assert.Equal(t, "uz", fs.got.Filter.Language)
	assert.Equal(t, "Babur", fs.got.Filter.Authors)
	require.NotNil(t, fs.got.Filter.MinCitations)
	assert.Equal(t, 0, *fs.got.Filter.MinCitations)
	assert.Nil(t, fs.got.Filter.MaxCitations)

	assert.JSONEq(t, `{
		"results": [{
			"id": "https://openalex.org/W1", "title": "Boburnoma", "original_title": "Baburnama",
			"publication_year": 1530, "cited_by_count": 12, "authors": ["Babur"],
			"download_url": null, "source": "openalex"
		}],
		"author_profile": {"name": "Zahiriddin Muhammad Bobur", "aliases": ["Bobur"], "bio": "bio"}
	}`, body)
}

func TestSearchEndpointErrors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		err      error
		wantCode int
		wantBody string
	}{
		{"empty criteria", "/api/search?q=+", nil, http.StatusBadRequest, `{"error":"Iltimos qidiruv mezoni kiriting"}`},
		{"bad integer", "/api/search?q=x&year_start=abc", nil, http.StatusBadRequest, `{"error":"year_start must be an integer, got \"abc\""}`},
		{
			"upstream failure", "/api/search?q=x",
			fmt.Errorf("%w: %w", search.ErrUpstream, &openalex.APIError{StatusCode: 503, Endpoint: "works search"}),
			http.StatusInternalServerError, `{"error":"Failed to fetch data from OpenAlex"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, &fakeSearcher{err: tt.err}, &fakeGraphs{})
			code, body := get(t, ts, tt.path)
			assert.Equal(t, tt.wantCode, code)
			assert.JSONEq(t, tt.wantBody, body)
		})
	}

	ts := newTestServer(t, &fakeSearcher{}, &fakeGraphs{})
	code, body := get(t, ts, "/api/search?q=x&min_cites=9&max_cites=1")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body, "invalid search criteria")
}

func TestSuggestEndpoint(t *testing.T) {
	raw := `{"meta":{"count":1},"results":[{"id":"https://openalex.org/W1","display_name":"Boburnoma"}]}`
	ts := newTestServer(t, &fakeSearcher{suggest: json.RawMessage(raw)}, &fakeGraphs{})

	code, body := get(t, ts, "/api/suggest?q=bob")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, raw, body)

	code, body = get(t, ts, "/api/suggest")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"results":[]}`, body)
}

func TestNetworkEndpoint(t *testing.T) {
	fg := &fakeGraphs{graph: &types.CitationGraph{
		Nodes: []types.GraphNode{{ID: "https://openalex.org/W1", Label: "Bobur, 1530", Title: "Boburnoma", Group: types.GroupMain, Value: 13}},
		Edges: []types.GraphEdge{},
	}}
	ts := newTestServer(t, &fakeSearcher{}, fg)

	code, body := get(t, ts, "/api/paper/W1/network")
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "W1", fg.got)
	assert.JSONEq(t, `{
		"nodes": [{"id": "https://openalex.org/W1", "label": "Bobur, 1530", "title": "Boburnoma", "group": "main", "value": 13}],
		"edges": []
	}`, body)

	_, _ = get(t, ts, "/api/paper/openalex.org/W2/network")
	assert.Equal(t, "openalex.org/W2", fg.got, "ids may contain slashes")
}

func TestNetworkEndpointNotFound(t *testing.T) {
	fg := &fakeGraphs{err: fmt.Errorf("%w: W9: %w", network.ErrNotFound, &openalex.APIError{StatusCode: 404, Endpoint: "work W9"})}
	ts := newTestServer(t, &fakeSearcher{}, fg)

	code, body := get(t, ts, "/api/paper/W9/network")
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"error":"Paper not found"}`, body)

	code, _ = get(t, ts, "/api/paper/W9/citations")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t, &fakeSearcher{suggest: json.RawMessage(`{"results":[]}`)}, &fakeGraphs{})

	code, body := get(t, ts, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	get(t, ts, "/api/suggest?q=x")
	code, body = get(t, ts, "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, strings.Contains(body, `litmap_http_requests_total{code="200",route="suggest"}`), body)
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t, &fakeSearcher{suggest: json.RawMessage(`{"results":[]}`)}, &fakeGraphs{})

	resp, err := ts.Client().Get(ts.URL + "/api/suggest?q=x")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Len(t, resp.Header.Get("X-Request-ID"), 36)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/suggest?q=x", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, &fakeSearcher{}, &fakeGraphs{})
	resp, err := ts.Client().Post(ts.URL+"/api/search", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
