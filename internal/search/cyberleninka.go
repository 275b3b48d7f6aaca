// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/pdiddy/litmap/internal/httputil"
	"github.com/pdiddy/litmap/pkg/types"
)

// cyberLeninkaBase is the CyberLeninka origin. Declared as a var so tests
// can substitute an httptest server.
var cyberLeninkaBase = "https://cyberleninka.ru"

const (
	// DefaultSecondaryMax caps records taken from the secondary source.
	DefaultSecondaryMax = 5

	// DefaultSecondaryTimeout bounds the secondary search request.
	DefaultSecondaryTimeout = 5 * time.Second

	// cyberLeninkaAuthor stands in for authors, which the results page
	// does not list reliably.
	cyberLeninkaAuthor = "CyberLeninka Article"

	articlePathMarker = "/article/n/"

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// CyberLeninka scrapes the CyberLeninka search results page. It has no
// public JSON API, so parsing follows the page markup and is best effort.
type CyberLeninka struct {
	Client *http.Client

	// BaseURL overrides cyberLeninkaBase when set.
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Search returns up to max records for the raw query. Any network or parse
// failure yields an empty list.
func (c *CyberLeninka) Search(ctx context.Context, query string, max int) []types.Record {
	recs, err := c.Fetch(ctx, query, max)
	if err != nil {
		c.logger().Warn("cyberleninka search failed", zap.String("query", query), zap.Error(err))
	}
	return orEmpty(recs, err)
}

// Fetch performs the search and reports failures.
func (c *CyberLeninka) Fetch(ctx context.Context, query string, max int) ([]types.Record, error) {
	if max <= 0 {
		max = DefaultSecondaryMax
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultSecondaryTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	origin := strings.TrimRight(c.origin(), "/")
	f := httputil.NewFetcher(c.Client, 0, browserUserAgent)
	resp, err := f.Get(ctx, origin+"/search?"+url.Values{"q": {query}}.Encode())
	if err != nil {
		return nil, fmt.Errorf("CyberLeninka request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CyberLeninka returned HTTP %d", resp.StatusCode)
	}
	return parseCyberLeninka(resp.Body, origin, max)
}

func (c *CyberLeninka) origin() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return cyberLeninkaBase
}

func (c *CyberLeninka) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// orEmpty collapses a secondary-source result: on error the contribution is
// an empty list.
func orEmpty(recs []types.Record, err error) []types.Record {
	if err != nil || recs == nil {
		return []types.Record{}
	}
	return recs
}

// parseCyberLeninka walks every <li> in document order. The title element is
// the first <h2> inside it, or failing that the first anchor pointing at an
// article page. Items without a link are skipped.
func parseCyberLeninka(r io.Reader, origin string, max int) ([]types.Record, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing CyberLeninka page: %w", err)
	}

	recs := []types.Record{}
	for _, li := range findAll(doc, isElement("li")) {
		var titleNode, linkNode *html.Node
		if h2 := findFirst(li, isElement("h2")); h2 != nil {
			titleNode = h2
			linkNode = findFirst(h2, isElement("a"))
		} else if a := findFirst(li, isArticleLink); a != nil {
			titleNode, linkNode = a, a
		}
		if titleNode == nil || linkNode == nil {
			continue
		}
		href := attr(linkNode, "href")
		if href == "" {
			continue
		}
		if strings.HasPrefix(href, "/") {
			href = origin + href
		}

		title := strings.Join(strings.Fields(textContent(titleNode)), " ")
		recs = append(recs, types.Record{
			ID:              types.StringPtr(fmt.Sprintf("cyberleninka_%d", len(recs))),
			Title:           title,
			OriginalTitle:   title,
			PublicationYear: 0,
			CitedByCount:    0,
			Authors:         []string{cyberLeninkaAuthor},
			DownloadURL:     types.StringPtr(href),
			Source:          types.SourceCyberLeninka,
		})
		if len(recs) >= max {
			break
		}
	}
	return recs, nil
}

func isElement(name string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == name
	}
}

func isArticleLink(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == "a" && strings.Contains(attr(n, "href"), articlePathMarker)
}

// findAll returns every descendant of n matching match, in document order.
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			out = append(out, c)
		}
		out = append(out, findAll(c, match)...)
	}
	return out
}

// findFirst returns the first descendant of n matching match, or nil.
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			return c
		}
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
