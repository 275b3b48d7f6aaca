// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package expand

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/litmap/internal/alias"
	"github.com/pdiddy/litmap/pkg/types"
)

type fakeBiographer struct {
	bios  map[string]string
	asked []string
}

func (f *fakeBiographer) Summary(_ context.Context, name string) (string, bool) {
	f.asked = append(f.asked, name)
	bio, ok := f.bios[strings.ToLower(name)]
	return bio, ok
}

type mapTranslator map[string]string // "lang:text" → translation

func (m mapTranslator) Translate(_ context.Context, text, target string) string {
	if out, ok := m[target+":"+text]; ok {
		return out
	}
	return text
}

func newEngine(bios map[string]string, tr mapTranslator) (*Engine, *fakeBiographer) {
	fb := &fakeBiographer{bios: bios}
	return &Engine{
		Aliases:    alias.NewResolver(alias.DefaultTable()),
		Biographer: fb,
		Translator: tr,
		Languages:  []string{"en", "ru"},
	}, fb
}

func TestExpandEmpty(t *testing.T) {
	e, fb := newEngine(nil, nil)
	expanded, profile := e.Expand(context.Background(), "   ")
	assert.Equal(t, "", expanded)
	assert.Nil(t, profile)
	assert.Empty(t, fb.asked)
}

func TestExpandKnownPseudonym(t *testing.T) {
	e, fb := newEngine(map[string]string{
		"zahiriddin muhammad bobur": "Bobur (1483-1530) - shoir va sarkarda.",
	}, nil)

	expanded, profile := e.Expand(context.Background(), "Bobur")

	assert.Equal(t, `"zahiriddin muhammad bobur" OR "bobur"`, expanded)
	require.NotNil(t, profile)
	assert.Equal(t, "Zahiriddin Muhammad Bobur", profile.Name)
	assert.Equal(t, []string{"Bobur"}, profile.Aliases)
	assert.Equal(t, "Bobur (1483-1530) - shoir va sarkarda.", profile.Bio)
	// Raw query first, then the canonical name after the miss.
	assert.Equal(t, []string{"Bobur", "zahiriddin muhammad bobur"}, fb.asked)
}

func TestExpandKnownAuthorOptimisticHit(t *testing.T) {
	e, fb := newEngine(map[string]string{"navoiy": "Navoiy bio"}, nil)

	expanded, profile := e.Expand(context.Background(), "navoiy")

	assert.Equal(t, `"alisher navoiy" OR "foniy" OR "navoiy"`, expanded)
	require.NotNil(t, profile)
	assert.Equal(t, "Navoiy bio", profile.Bio)
	assert.Equal(t, []string{"Foniy", "Navoiy"}, profile.Aliases)
	assert.Equal(t, []string{"navoiy"}, fb.asked, "no second lookup after a hit")
}

func TestExpandKnownAuthorNoBio(t *testing.T) {
	e, _ := newEngine(nil, nil)
	_, profile := e.Expand(context.Background(), "oybek")
	require.NotNil(t, profile)
	assert.Equal(t, BioNotFound, profile.Bio)
	assert.Equal(t, "Oybek", profile.Name)
}

func TestExpandTranslations(t *testing.T) {
	tests := []struct {
		name string
		tr   mapTranslator
		want string
	}{
		{
			name: "both distinct",
			tr:   mapTranslator{"en:sun'iy intellekt": "artificial intelligence", "ru:sun'iy intellekt": "искусственный интеллект"},
			want: `"sun'iy intellekt" OR "artificial intelligence" OR "искусственный интеллект"`,
		},
		{
			name: "translation equals original ignoring case",
			tr:   mapTranslator{"en:sun'iy intellekt": "Sun'iy Intellekt", "ru:sun'iy intellekt": "ИИ"},
			want: `"sun'iy intellekt" OR "ИИ"`,
		},
		{
			name: "translations equal each other",
			tr:   mapTranslator{"en:sun'iy intellekt": "AI", "ru:sun'iy intellekt": "ai"},
			want: `"sun'iy intellekt" OR "AI"`,
		},
		{
			name: "translator degraded to identity",
			tr:   mapTranslator{},
			want: `"sun'iy intellekt"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newEngine(nil, tt.tr)
			expanded, profile := e.Expand(context.Background(), "sun'iy intellekt")
			assert.Equal(t, tt.want, expanded)
			assert.Nil(t, profile)
		})
	}
}

func TestExpandUnknownWithBio(t *testing.T) {
	e, _ := newEngine(map[string]string{"albert einstein": "Fizik."}, mapTranslator{})
	expanded, profile := e.Expand(context.Background(), "albert einstein")

	assert.Equal(t, `"albert einstein"`, expanded)
	require.NotNil(t, profile)
	assert.Equal(t, types.AuthorProfile{Name: "Albert Einstein", Aliases: []string{}, Bio: "Fizik."}, *profile)
}

func TestExpandAlwaysContainsCanonicalForAliases(t *testing.T) {
	e, _ := newEngine(nil, mapTranslator{})
	for _, entry := range alias.DefaultTable() {
		for _, a := range entry.Aliases {
			expanded, _ := e.Expand(context.Background(), strings.ToUpper(a))
			assert.NotEmpty(t, expanded)
			assert.True(t, strings.HasPrefix(expanded, `"`+entry.Name+`"`), "%s → %s", a, expanded)
		}
	}
}

func TestDisjunction(t *testing.T) {
	assert.Equal(t, `"a"`, Disjunction([]string{"a"}))
	assert.Equal(t, `"a" OR "b c"`, Disjunction([]string{"a", "b c"}))
	assert.Equal(t, "", Disjunction(nil))
}
