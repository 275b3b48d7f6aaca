// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/litmap/internal/secrets"
	"github.com/pdiddy/litmap/pkg/types"
)

func newTestViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetEnvPrefix("LITMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if yaml != "" {
		path := filepath.Join(t.TempDir(), "litmap.yaml")
		require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
		v.SetConfigFile(path)
		require.NoError(t, v.ReadInConfig())
	}
	return v
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(newTestViper(t, ""))
	require.NoError(t, err)
	assert.Equal(t, types.DefaultConfig(), cfg)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	t.Setenv("LITMAP_SEARCH_WORKERS", "4")
	t.Setenv("LITMAP_OPENALEX_EMAIL", "env@example.com")

	cfg, err := loadConfig(newTestViper(t, `
openalex:
  rate_limit: 2.5
translate:
  primary_lang: en
  cache_path: /tmp/litmap-cache.db
biography:
  timeout: 1500ms
expand:
  languages: [ru]
network:
  max_references: 5
aliases_file: aliases.yaml
`))
	require.NoError(t, err)

	assert.Equal(t, 2.5, cfg.OpenAlex.RateLimit)
	assert.Equal(t, "https://api.openalex.org", cfg.OpenAlex.BaseURL, "unset keys keep defaults")
	assert.Equal(t, "env@example.com", cfg.OpenAlex.Email)
	assert.Equal(t, "en", cfg.Translate.PrimaryLang)
	assert.Equal(t, "/tmp/litmap-cache.db", cfg.Translate.CachePath)
	assert.Equal(t, 1500*time.Millisecond, cfg.Biography.Timeout)
	assert.Equal(t, []string{"ru"}, cfg.Expand.Languages)
	assert.Equal(t, 4, cfg.Search.Workers)
	assert.Equal(t, 5, cfg.Network.MaxReferences)
	assert.Equal(t, "aliases.yaml", cfg.AliasesFile)
}

func TestLoadConfigEmailFromSecrets(t *testing.T) {
	orig := loadedSecrets
	loadedSecrets = map[string]string{secrets.KeyOpenAlexEmail: "secret@example.com"}
	t.Cleanup(func() { loadedSecrets = orig })

	cfg, err := loadConfig(newTestViper(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "secret@example.com", cfg.OpenAlex.Email)

	cfg, err = loadConfig(newTestViper(t, "openalex:\n  email: file@example.com\n"))
	require.NoError(t, err)
	assert.Equal(t, "file@example.com", cfg.OpenAlex.Email, "configured value wins")
}

func TestNewApp(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.Translate.CachePath = filepath.Join(t.TempDir(), "cache", "translations.db")

	a, err := newApp(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	require.NotNil(t, a.search)
	require.NotNil(t, a.graphs)
	require.NotNil(t, a.cache)
	assert.Equal(t, 5, a.search.SecondaryMax)
	assert.Equal(t, 10, a.search.Enricher.Workers)
	assert.Equal(t, "uz", a.search.Enricher.Target)
	assert.Equal(t, 15, a.graphs.MaxReferences)
	assert.FileExists(t, cfg.Translate.CachePath)
}

func TestNewAppBadAliasFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- name: a
  aliases: [x]
- name: b
  aliases: [x]
`), 0o644))

	cfg := types.DefaultConfig()
	cfg.AliasesFile = path
	_, err := newApp(cfg, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "belongs to both")
}

func TestRequestFromFlags(t *testing.T) {
	require.NoError(t, searchCmd.ParseFlags([]string{"--year-start", "1900", "--min-cites", "0", "--lang", " uz "}))
	t.Cleanup(func() {
		for _, name := range []string{"year-start", "min-cites", "lang"} {
			fl := searchCmd.Flags().Lookup(name)
			fl.Value.Set(fl.DefValue)
			fl.Changed = false
		}
	})

	req := requestFromFlags(searchCmd, []string{"abdulla", "qodiriy"})
	assert.Equal(t, "abdulla qodiriy", req.Query)
	assert.Equal(t, 1900, req.Filter.YearStart)
	assert.Equal(t, "uz", req.Filter.Language)
	require.NotNil(t, req.Filter.MinCitations)
	assert.Equal(t, 0, *req.Filter.MinCitations)
	assert.Nil(t, req.Filter.MaxCitations)
}

func TestFormatGraph(t *testing.T) {
	g := &types.CitationGraph{
		Nodes: []types.GraphNode{
			{ID: "https://openalex.org/W1", Label: "Bobur, 1530", Title: "Boburnoma", Group: types.GroupMain, Value: 42},
			{ID: "https://openalex.org/W2", Label: "Navoiy, 1485", Title: "Xamsa", Group: types.GroupReference, Value: 1},
		},
		Edges: []types.GraphEdge{{From: "https://openalex.org/W1", To: "https://openalex.org/W2", Arrows: "to"}},
	}
	var buf bytes.Buffer
	formatGraph(g, &buf)
	s := buf.String()

	assert.Contains(t, s, "Boburnoma  [Bobur, 1530]  cited 41 times")
	assert.Contains(t, s, "References (1):")
	assert.Contains(t, s, "Navoiy, 1485")
}
