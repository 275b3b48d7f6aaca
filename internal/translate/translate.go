// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package translate wraps an external machine translation service behind a
// gateway that never fails: when the service errors, callers get the
// original text back.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/litmap/internal/httputil"
)

// googleBase is the keyless Google translate endpoint. Declared as a var so
// tests can substitute an httptest server.
var googleBase = "https://translate.googleapis.com/translate_a/single"

// Backend translates text into a target language with auto-detected source.
type Backend interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// GoogleBackend calls the translate_a/single endpoint used by the Google
// web widget.
type GoogleBackend struct {
	Fetcher *httputil.Fetcher
	// BaseURL overrides googleBase when set.
	BaseURL string
}

// Translate sends text to the service and joins the translated segments.
func (b *GoogleBackend) Translate(ctx context.Context, text, target string) (string, error) {
	base := b.BaseURL
	if base == "" {
		base = googleBase
	}
	params := url.Values{
		"client": {"gtx"},
		"sl":     {"auto"},
		"tl":     {target},
		"dt":     {"t"},
		"q":      {text},
	}

	var raw []json.RawMessage
	if err := b.Fetcher.GetJSON(ctx, base+"?"+params.Encode(), &raw); err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	return joinSegments(raw)
}

// joinSegments extracts the translated text from the response, which is a
// nested array whose first element lists [translated, original, ...]
// segments.
func joinSegments(raw []json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("empty translate response")
	}
	var segments [][]any
	if err := json.Unmarshal(raw[0], &segments); err != nil {
		return "", fmt.Errorf("parsing translate segments: %w", err)
	}

	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			b.WriteString(s)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("translate response has no text")
	}
	return b.String(), nil
}

// Gateway is the translation entry point used by the rest of litmap.
type Gateway struct {
	Backend Backend
	Logger  *zap.Logger
}

// NewGateway returns a Gateway over backend. A nil logger discards logs.
func NewGateway(backend Backend, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{Backend: backend, Logger: logger}
}

// Translate returns text translated into target. Empty text returns "" with
// no remote call. Any backend failure returns text unchanged.
func (g *Gateway) Translate(ctx context.Context, text, target string) string {
	if text == "" {
		return ""
	}
	translated, err := g.Backend.Translate(ctx, text, target)
	if err != nil {
		g.logger().Debug("translation failed, keeping original",
			zap.String("target", target), zap.Error(err))
	}
	return OrOriginal(text, translated, err)
}

func (g *Gateway) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

// OrOriginal collapses a translation result to a value: the translation on
// success, otherwise the original text. An empty translation counts as a
// failure.
func OrOriginal(original, translated string, err error) string {
	if err != nil || translated == "" {
		return original
	}
	return translated
}

// Translator is the gateway surface consumed by the expansion engine, the
// biography resolver, and the result enricher.
type Translator interface {
	Translate(ctx context.Context, text, target string) string
}

// NewGoogleBackend returns a GoogleBackend using client with no rate limit.
func NewGoogleBackend(client *http.Client, baseURL string) *GoogleBackend {
	return &GoogleBackend{
		Fetcher: httputil.NewFetcher(client, 0, ""),
		BaseURL: baseURL,
	}
}
