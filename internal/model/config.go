package model

import "time"

// Config is the complete runtime configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Evidence    EvidenceConfig    `yaml:"evidence"`
	LLM         LLMConfig         `yaml:"llm"`
	History     HistoryConfig     `yaml:"history"`
	Server      ServerConfig      `yaml:"server"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// HTTPConfig controls outbound content fetching
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots"`
	RatePerDomain float64       `yaml:"rate_per_domain"` // requests/second
	InsecureTLS   bool          `yaml:"insecure_tls"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty"`
	NoProxy       string        `yaml:"no_proxy,omitempty"`
}

// CacheConfig controls caching of fetches and evidence lookups. A
// non-empty Dir adds a persistent disk layer under that directory.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
	Dir     string        `yaml:"dir,omitempty"`
	DiskTTL time.Duration `yaml:"disk_ttl,omitempty"`
}

// EvidenceConfig holds the fact-check and web-search lookup settings
type EvidenceConfig struct {
	FactCheckAPIKey   string        `yaml:"factcheck_api_key,omitempty"`
	FactCheckEndpoint string        `yaml:"factcheck_endpoint,omitempty"`
	SearchAPIKey      string        `yaml:"search_api_key,omitempty"`
	SearchEndpoint    string        `yaml:"search_endpoint,omitempty"`
	MaxSearchResults  int           `yaml:"max_search_results"`
	Timeout           time.Duration `yaml:"timeout"`
}

// LLMConfig holds classifier provider configuration
type LLMConfig struct {
	Provider  string `yaml:"provider"` // groq, openai, ollama, "" = disabled
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// HistoryConfig controls the local report log
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`  // sqlite database path
	Limit   int    `yaml:"limit"` // most-recent entries kept
}

// ServerConfig controls the HTTP API server
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// ConcurrencyConfig controls batch processing parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig controls CLI rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
	JSON    bool `yaml:"json"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "CredLens/0.1 (+https://github.com/credlens/credlens)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
			RatePerDomain: 2.0,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Evidence: EvidenceConfig{
			FactCheckEndpoint: "https://factchecktools.googleapis.com/v1alpha1/claims:search",
			SearchEndpoint:    "https://api.tavily.com/search",
			MaxSearchResults:  5,
			Timeout:           15 * time.Second,
		},
		LLM: LLMConfig{
			Provider:  "", // Disabled by default
			Model:     "",
			Timeout:   30,
			MaxTokens: 1000,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    "", // Resolved to ~/.credlens/history.db when empty
			Limit:   50,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
	}
}
