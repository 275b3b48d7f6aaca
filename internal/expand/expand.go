// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package expand turns a user query into a disjunctive search expression and
// an optional author profile card.
//
// A query naming a known author (or one of their pseudonyms) expands to the
// canonical name plus every alias. Any other query expands to itself plus its
// distinct translations into the configured languages.
package expand

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/litmap/internal/alias"
	"github.com/pdiddy/litmap/pkg/types"
)

// BioNotFound is the profile bio used when no summary could be resolved for
// a known author.
const BioNotFound = "Ma'lumot topilmadi."

// AliasResolver maps a query to a canonical identity.
type AliasResolver interface {
	Resolve(query string) (canonical string, aliases []string, ok bool)
}

// Biographer returns a summary for a person's name.
type Biographer interface {
	Summary(ctx context.Context, name string) (string, bool)
}

// Translator translates text, never failing.
type Translator interface {
	Translate(ctx context.Context, text, target string) string
}

// Engine combines alias resolution, biography lookup, and translation.
type Engine struct {
	Aliases    AliasResolver
	Biographer Biographer
	Translator Translator

	// Languages are translation targets for queries that are not known
	// authors, in term order.
	Languages []string

	Logger *zap.Logger
}

// Expand returns the expanded query and, when the query names someone with a
// known biography or alias entry, a profile. An empty query returns ("", nil).
func (e *Engine) Expand(ctx context.Context, query string) (string, *types.AuthorProfile) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", nil
	}

	// Optimistic lookup before knowing whether the query is a pseudonym.
	bio, hasBio := e.summary(ctx, query)

	canonical, aliases, ok := e.Aliases.Resolve(query)
	if ok {
		if !hasBio {
			bio, hasBio = e.summary(ctx, canonical)
		}
		if !hasBio {
			bio = BioNotFound
		}
		e.logger().Debug("query resolved to known author",
			zap.String("query", query), zap.String("canonical", canonical), zap.Int("aliases", len(aliases)))
		return Disjunction(append([]string{canonical}, aliases...)), &types.AuthorProfile{
			Name:    alias.TitleCase(canonical),
			Aliases: alias.TitleCaseAll(aliases),
			Bio:     bio,
		}
	}

	terms := e.translations(ctx, query)
	var profile *types.AuthorProfile
	if hasBio {
		profile = &types.AuthorProfile{
			Name:    alias.TitleCase(query),
			Aliases: []string{},
			Bio:     bio,
		}
	}
	return Disjunction(terms), profile
}

// translations returns query followed by each translation that differs
// case-insensitively from every term already kept.
func (e *Engine) translations(ctx context.Context, query string) []string {
	terms := []string{query}
	seen := map[string]bool{strings.ToLower(query): true}
	for _, lang := range e.Languages {
		if e.Translator == nil {
			break
		}
		t := strings.TrimSpace(e.Translator.Translate(ctx, query, lang))
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		terms = append(terms, t)
	}
	return terms
}

func (e *Engine) summary(ctx context.Context, name string) (string, bool) {
	if e.Biographer == nil {
		return "", false
	}
	return e.Biographer.Summary(ctx, name)
}

func (e *Engine) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Disjunction quotes each term and joins them with OR, preserving order.
func Disjunction(terms []string) string {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = `"` + t + `"`
	}
	return strings.Join(quoted, " OR ")
}
