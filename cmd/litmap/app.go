// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/litmap/internal/alias"
	"github.com/pdiddy/litmap/internal/biography"
	"github.com/pdiddy/litmap/internal/expand"
	"github.com/pdiddy/litmap/internal/httputil"
	"github.com/pdiddy/litmap/internal/network"
	"github.com/pdiddy/litmap/internal/openalex"
	"github.com/pdiddy/litmap/internal/search"
	"github.com/pdiddy/litmap/internal/secrets"
	"github.com/pdiddy/litmap/internal/translate"
	"github.com/pdiddy/litmap/pkg/types"
)

// setDefaults registers every config key so environment variables can
// override keys absent from the config file.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("http.user_agent", d.HTTP.UserAgent)
	v.SetDefault("openalex.base_url", d.OpenAlex.BaseURL)
	v.SetDefault("openalex.email", d.OpenAlex.Email)
	v.SetDefault("openalex.rate_limit", d.OpenAlex.RateLimit)
	v.SetDefault("translate.base_url", d.Translate.BaseURL)
	v.SetDefault("translate.primary_lang", d.Translate.PrimaryLang)
	v.SetDefault("translate.cache_path", d.Translate.CachePath)
	v.SetDefault("biography.primary_url", d.Biography.PrimaryURL)
	v.SetDefault("biography.secondary_url", d.Biography.SecondaryURL)
	v.SetDefault("biography.timeout", d.Biography.Timeout)
	v.SetDefault("expand.languages", d.Expand.Languages)
	v.SetDefault("search.workers", d.Search.Workers)
	v.SetDefault("search.per_page", d.Search.PerPage)
	v.SetDefault("cyberleninka.base_url", d.CyberLeninka.BaseURL)
	v.SetDefault("cyberleninka.max_results", d.CyberLeninka.MaxResults)
	v.SetDefault("cyberleninka.timeout", d.CyberLeninka.Timeout)
	v.SetDefault("network.max_references", d.Network.MaxReferences)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("aliases_file", d.AliasesFile)
}

// loadConfig resolves the effective configuration from v. The OpenAlex
// contact address falls back to the openalex-email secret.
func loadConfig(v *viper.Viper) (types.Config, error) {
	setDefaults(v)
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	cfg.OpenAlex.Email = secretDefault(secrets.KeyOpenAlexEmail, cfg.OpenAlex.Email)
	return cfg, nil
}

// app holds the wired components shared by every subcommand.
type app struct {
	cfg      types.Config
	openalex *openalex.Client
	search   *search.Service
	graphs   *network.Builder
	cache    *translate.Cache
}

// newApp builds the component graph from cfg. Close releases the
// translation cache when one is configured.
func newApp(cfg types.Config, logger *zap.Logger) (*app, error) {
	client := &http.Client{Timeout: cfg.HTTP.Timeout}

	oa := openalex.NewClient(
		httputil.NewFetcher(client, cfg.OpenAlex.RateLimit, cfg.HTTP.UserAgent),
		cfg.OpenAlex.BaseURL,
		cfg.OpenAlex.Email,
	)

	a := &app{cfg: cfg, openalex: oa}

	var backend translate.Backend = translate.NewGoogleBackend(client, cfg.Translate.BaseURL)
	if cfg.Translate.CachePath != "" {
		cache, err := translate.OpenCache(cfg.Translate.CachePath, backend, logger)
		if err != nil {
			return nil, err
		}
		a.cache = cache
		backend = cache
	}
	gateway := translate.NewGateway(backend, logger)

	table := alias.DefaultTable()
	if cfg.AliasesFile != "" {
		t, err := alias.LoadFile(cfg.AliasesFile)
		if err != nil {
			a.Close()
			return nil, err
		}
		table = t
	}

	bio := &biography.Resolver{
		Fetcher:      httputil.NewFetcher(client, 0, cfg.HTTP.UserAgent),
		PrimaryURL:   cfg.Biography.PrimaryURL,
		SecondaryURL: cfg.Biography.SecondaryURL,
		Translator:   gateway,
		TargetLang:   cfg.Translate.PrimaryLang,
		Timeout:      cfg.Biography.Timeout,
		Logger:       logger,
	}

	a.search = &search.Service{
		Expander: &expand.Engine{
			Aliases:    alias.NewResolver(table),
			Biographer: bio,
			Translator: gateway,
			Languages:  cfg.Expand.Languages,
			Logger:     logger,
		},
		Primary: &search.PrimaryAdapter{Client: oa, PerPage: cfg.Search.PerPage},
		Secondary: &search.CyberLeninka{
			Client:  client,
			BaseURL: cfg.CyberLeninka.BaseURL,
			Timeout: cfg.CyberLeninka.Timeout,
			Logger:  logger,
		},
		Enricher: &search.Enricher{
			Translator: gateway,
			Target:     cfg.Translate.PrimaryLang,
			Workers:    cfg.Search.Workers,
		},
		Autocompleter: oa,
		SecondaryMax:  cfg.CyberLeninka.MaxResults,
		Logger:        logger,
	}

	a.graphs = &network.Builder{
		Works:         oa,
		MaxReferences: cfg.Network.MaxReferences,
		Logger:        logger,
	}
	return a, nil
}

// Close releases resources held by the app.
func (a *app) Close() error {
	if a.cache != nil {
		return a.cache.Close()
	}
	return nil
}

// appFromFlags loads configuration and wires the app for a subcommand.
func appFromFlags() (*app, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return newApp(cfg, logger)
}
