// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package biography looks up short encyclopedic summaries for person names.
// It asks the primary-language Wikipedia first and falls back to the English
// Wikipedia plus translation. Lookups are best effort and never fail.
package biography

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/litmap/internal/alias"
	"github.com/pdiddy/litmap/internal/httputil"
	"github.com/pdiddy/litmap/internal/translate"
)

// DefaultTimeout bounds each individual summary request.
const DefaultTimeout = 3 * time.Second

// errNoExtract reports a summary response without usable text.
var errNoExtract = errors.New("summary has no extract")

// Resolver resolves a name to a summary.
type Resolver struct {
	Fetcher *httputil.Fetcher

	// PrimaryURL and SecondaryURL are summary-by-title endpoints ending in
	// "/page/summary/".
	PrimaryURL   string
	SecondaryURL string

	Translator translate.Translator
	// TargetLang is the language secondary extracts are translated into.
	TargetLang string

	Timeout time.Duration
	Logger  *zap.Logger
}

type summaryResponse struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// Summary returns the primary-language summary for name, or false when
// neither source has one.
func (r *Resolver) Summary(ctx context.Context, name string) (string, bool) {
	title := pageTitle(name)
	if title == "" {
		return "", false
	}

	extract, err := r.lookup(ctx, r.PrimaryURL, title)
	if s, ok := summaryOrNone(extract, err); ok {
		return s, true
	}
	r.logger().Debug("primary summary unavailable", zap.String("title", title), zap.Error(err))

	extract, err = r.lookup(ctx, r.SecondaryURL, title)
	s, ok := summaryOrNone(extract, err)
	if !ok {
		r.logger().Debug("secondary summary unavailable", zap.String("title", title), zap.Error(err))
		return "", false
	}
	if r.Translator != nil {
		s = r.Translator.Translate(ctx, s, r.targetLang())
	}
	return s, true
}

// lookup fetches one summary under its own timeout.
func (r *Resolver) lookup(ctx context.Context, base, title string) (string, error) {
	if base == "" {
		return "", fmt.Errorf("no endpoint configured")
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var sr summaryResponse
	if err := r.Fetcher.GetJSON(ctx, base+url.PathEscape(title), &sr); err != nil {
		return "", err
	}
	if strings.TrimSpace(sr.Extract) == "" {
		return "", errNoExtract
	}
	return sr.Extract, nil
}

// summaryOrNone collapses a lookup result: any error or empty extract means
// no summary.
func summaryOrNone(extract string, err error) (string, bool) {
	if err != nil || extract == "" {
		return "", false
	}
	return extract, true
}

// pageTitle converts a name to a Wikipedia page title: title-cased words
// joined by underscores.
func pageTitle(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}
	return strings.ReplaceAll(alias.TitleCase(strings.Join(words, " ")), " ", "_")
}

func (r *Resolver) targetLang() string {
	if r.TargetLang == "" {
		return "uz"
	}
	return r.TargetLang
}

func (r *Resolver) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
