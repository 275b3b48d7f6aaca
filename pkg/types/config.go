package types

import "time"

// HTTPConfig holds shared HTTP settings used by every component that makes
// network requests.
type HTTPConfig struct {
	// Timeout is the overall HTTP client timeout. Zero means no client-level
	// timeout; OpenAlex calls then rely on the caller's context.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent to OpenAlex and Wikipedia.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// OpenAlexConfig configures the primary metadata source.
type OpenAlexConfig struct {
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Email is sent as the mailto parameter for polite pool access.
	Email string `json:"email,omitempty" yaml:"email,omitempty" mapstructure:"email"`

	// RateLimit caps requests per second across all OpenAlex calls.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit"`
}

// TranslateConfig configures the translator gateway.
type TranslateConfig struct {
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// PrimaryLang is the language results are translated into (default "uz").
	PrimaryLang string `json:"primary_lang" yaml:"primary_lang" mapstructure:"primary_lang"`

	// CachePath is a SQLite file used to memoize translations. Empty
	// disables the cache.
	CachePath string `json:"cache_path,omitempty" yaml:"cache_path,omitempty" mapstructure:"cache_path"`
}

// BiographyConfig configures the encyclopedic summary lookups.
type BiographyConfig struct {
	PrimaryURL   string        `json:"primary_url" yaml:"primary_url" mapstructure:"primary_url"`
	SecondaryURL string        `json:"secondary_url" yaml:"secondary_url" mapstructure:"secondary_url"`
	Timeout      time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// ExpandConfig configures query expansion.
type ExpandConfig struct {
	// Languages are the translation targets used when a query is not a
	// known author (default ["en", "ru"]).
	Languages []string `json:"languages" yaml:"languages" mapstructure:"languages"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	// Workers bounds the title translation pool (default 10).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// PerPage is the OpenAlex page size (default 20).
	PerPage int `json:"per_page" yaml:"per_page" mapstructure:"per_page"`
}

// CyberLeninkaConfig configures the secondary metadata source.
type CyberLeninkaConfig struct {
	BaseURL    string        `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	MaxResults int           `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
	Timeout    time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// NetworkConfig configures the citation graph builder.
type NetworkConfig struct {
	// MaxReferences is the number of listed references fetched (1..15).
	MaxReferences int `json:"max_references" yaml:"max_references" mapstructure:"max_references"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// Config groups every component's settings.
type Config struct {
	HTTP         HTTPConfig         `json:"http" yaml:"http" mapstructure:"http"`
	OpenAlex     OpenAlexConfig     `json:"openalex" yaml:"openalex" mapstructure:"openalex"`
	Translate    TranslateConfig    `json:"translate" yaml:"translate" mapstructure:"translate"`
	Biography    BiographyConfig    `json:"biography" yaml:"biography" mapstructure:"biography"`
	Expand       ExpandConfig       `json:"expand" yaml:"expand" mapstructure:"expand"`
	Search       SearchConfig       `json:"search" yaml:"search" mapstructure:"search"`
	CyberLeninka CyberLeninkaConfig `json:"cyberleninka" yaml:"cyberleninka" mapstructure:"cyberleninka"`
	Network      NetworkConfig      `json:"network" yaml:"network" mapstructure:"network"`
	Server       ServerConfig       `json:"server" yaml:"server" mapstructure:"server"`

	// AliasesFile optionally replaces the built-in author alias table.
	AliasesFile string `json:"aliases_file,omitempty" yaml:"aliases_file,omitempty" mapstructure:"aliases_file"`
}

// DefaultConfig returns the settings used when no config file overrides them.
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			UserAgent: "LitmapsClone/1.0 (contact@example.com)",
		},
		OpenAlex: OpenAlexConfig{
			BaseURL:   "https://api.openalex.org",
			RateLimit: 10,
		},
		Translate: TranslateConfig{
			BaseURL:     "https://translate.googleapis.com/translate_a/single",
			PrimaryLang: "uz",
		},
		Biography: BiographyConfig{
			PrimaryURL:   "https://uz.wikipedia.org/api/rest_v1/page/summary/",
			SecondaryURL: "https://en.wikipedia.org/api/rest_v1/page/summary/",
			Timeout:      3 * time.Second,
		},
		Expand: ExpandConfig{
			Languages: []string{"en", "ru"},
		},
		Search: SearchConfig{
			Workers: 10,
			PerPage: 20,
		},
		CyberLeninka: CyberLeninkaConfig{
			BaseURL:    "https://cyberleninka.ru",
			MaxResults: 5,
			Timeout:    5 * time.Second,
		},
		Network: NetworkConfig{
			MaxReferences: 15,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}
