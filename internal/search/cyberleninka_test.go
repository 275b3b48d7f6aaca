// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/litmap/pkg/types"
)

const sampleCyberLeninkaHTML = `<!DOCTYPE html>
<html><body>
<nav><ul><li><a href="/about">About</a></li></ul></nav>
<ul class="list">
  <li>
    <h2 class="title"><a href="/article/n/navoiy-ijodi">  Навои и его
      <b>время</b> </a></h2>
    <span>2019</span>
  </li>
  <li><a href="/article/n/bobur-nomasi">Бобурнома как источник</a></li>
  <li><h2>Heading without a link</h2></li>
  <li><h2><a href="https://elsewhere.example/paper">Absolute link</a></h2></li>
  <li><a href="/article/n/fourth">Fourth</a></li>
  <li><a href="/article/n/fifth">Fifth</a></li>
  <li><a href="/article/n/sixth">Sixth</a></li>
</ul>
</body></html>`

func TestParseCyberLeninka(t *testing.T) {
	recs, err := parseCyberLeninka(strings.NewReader(sampleCyberLeninkaHTML), "https://cyberleninka.ru", 10)
	require.NoError(t, err)

	// Nav item has no article link; the bare heading has no link.
	require.Len(t, recs, 6)

	first := recs[0]
	assert.Equal(t, "cyberleninka_0", *first.ID)
	assert.Equal(t, "Навои и его время", first.Title)
	assert.Equal(t, first.Title, first.OriginalTitle)
	assert.Equal(t, "https://cyberleninka.ru/article/n/navoiy-ijodi", *first.DownloadURL)
	assert.Equal(t, types.Year(0), first.PublicationYear)
	assert.Equal(t, 0, first.CitedByCount)
	assert.Equal(t, []string{"CyberLeninka Article"}, first.Authors)
	assert.Equal(t, types.SourceCyberLeninka, first.Source)

	assert.Equal(t, "Бобурнома как источник", recs[1].Title)
	assert.Equal(t, "https://cyberleninka.ru/article/n/bobur-nomasi", *recs[1].DownloadURL)

	assert.Equal(t, "https://elsewhere.example/paper", *recs[2].DownloadURL, "absolute hrefs kept as is")

	for i, r := range recs {
		assert.Equal(t, fmt.Sprintf("cyberleninka_%d", i), *r.ID)
	}
}

func TestParseCyberLeninkaCap(t *testing.T) {
	recs, err := parseCyberLeninka(strings.NewReader(sampleCyberLeninkaHTML), "https://cyberleninka.ru", 5)
	require.NoError(t, err)
	require.Len(t, recs, 5)
	assert.Equal(t, "Fifth", recs[4].Title)
}

func TestParseCyberLeninkaNoResults(t *testing.T) {
	recs, err := parseCyberLeninka(strings.NewReader("<html><body><p>Nothing</p></body></html>"), "https://cyberleninka.ru", 5)
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func withCyberLeninkaBase(t *testing.T, base string) {
	t.Helper()
	orig := cyberLeninkaBase
	cyberLeninkaBase = base
	t.Cleanup(func() { cyberLeninkaBase = orig })
}

func TestCyberLeninkaSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Alisher Navoiy", r.URL.Query().Get("q"))
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		w.Write([]byte(sampleCyberLeninkaHTML))
	}))
	defer ts.Close()
	withCyberLeninkaBase(t, ts.URL)

	c := &CyberLeninka{Client: ts.Client(), Logger: zaptest.NewLogger(t)}
	recs := c.Search(context.Background(), "Alisher Navoiy", 0)

	require.Len(t, recs, DefaultSecondaryMax)
	assert.Equal(t, ts.URL+"/article/n/navoiy-ijodi", *recs[0].DownloadURL)
}

func TestCyberLeninkaSearchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := &CyberLeninka{Client: ts.Client(), BaseURL: ts.URL}
	_, err := c.Fetch(context.Background(), "x", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")

	recs := c.Search(context.Background(), "x", 5)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestCyberLeninkaSearchTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	c := &CyberLeninka{Client: ts.Client(), BaseURL: ts.URL, Timeout: 50 * time.Millisecond}
	start := time.Now()
	recs := c.Search(context.Background(), "slow", 5)

	assert.Empty(t, recs)
	assert.Less(t, time.Since(start), time.Second)
}
