package model

import "time"

// Config is the full runtime configuration.
// Hierarchy (highest to lowest priority): CLI flags, TRIANGULATE_* env
// vars, ~/.triangulate/config.yaml, DefaultConfig.
type Config struct {
	Verify      VerifyConfig      `yaml:"verify" json:"verify"`
	Retrieval   RetrievalConfig   `yaml:"retrieval" json:"retrieval"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Embedding   EmbeddingConfig   `yaml:"embedding" json:"embedding"`
	Search      SearchConfig      `yaml:"search" json:"search"`
	HTTP        HTTPConfig        `yaml:"http" json:"http"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// VerifyConfig controls the corroboration engine
type VerifyConfig struct {
	// MaxScans bounds how many candidates are scanned per person
	MaxScans int `yaml:"max_scans" json:"max_scans"`
	// Quorum is the number of independent domains required to verify a value
	Quorum int `yaml:"quorum" json:"quorum"`
	// ExhaustBudget disables quorum early-stopping: the full budget is
	// always scanned and the outcome resolved afterwards
	ExhaustBudget bool `yaml:"exhaust_budget" json:"exhaust_budget"`
}

// RetrievalConfig controls embedding retrieval
type RetrievalConfig struct {
	TopN          int     `yaml:"top_n" json:"top_n"`
	MinSimilarity float64 `yaml:"min_similarity" json:"min_similarity"`
}

// LLMConfig configures the claim-extraction provider
type LLMConfig struct {
	// Provider name: "openai", "anthropic", "ollama", "gemini"
	Provider    string  `yaml:"provider" json:"provider"`
	Model       string  `yaml:"model" json:"model"`
	APIKey      string  `yaml:"api_key,omitempty" json:"-"`
	BaseURL     string  `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Timeout     int     `yaml:"timeout" json:"timeout"` // seconds, per extractor call
	MaxTokens   int     `yaml:"max_tokens" json:"max_tokens"`
	Temperature float32 `yaml:"temperature" json:"temperature"`

	HTTPProxy  string `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
	NoProxy    string `yaml:"no_proxy,omitempty" json:"no_proxy,omitempty"`
}

// EmbeddingConfig configures the query/chunk embedder
type EmbeddingConfig struct {
	// Provider name: "openai" or "gemini"
	Provider string `yaml:"provider" json:"provider"`
	Model    string `yaml:"model" json:"model"`
	APIKey   string `yaml:"api_key,omitempty" json:"-"`
}

// SearchConfig configures the web-search/crawl boundary
type SearchConfig struct {
	Endpoint     string  `yaml:"endpoint" json:"endpoint"`
	NumResults   int     `yaml:"num_results" json:"num_results"`
	ChunkWords   int     `yaml:"chunk_words" json:"chunk_words"`
	OverlapWords int     `yaml:"overlap_words" json:"overlap_words"`
	RatePerSec   float64 `yaml:"rate_per_sec" json:"rate_per_sec"`
	Burst        int     `yaml:"burst" json:"burst"`
}

// HTTPConfig configures outbound page fetching
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls" json:"insecure_tls"`

	HTTPProxy  string `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
	NoProxy    string `yaml:"no_proxy,omitempty" json:"no_proxy,omitempty"`
}

// CacheConfig configures the layered fetch/embedding cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// ConcurrencyConfig sizes the per-person worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers"`
}

// OutputConfig controls result emission
type OutputConfig struct {
	Dir     string `yaml:"dir" json:"dir"`
	Verbose bool   `yaml:"verbose" json:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Verify: VerifyConfig{
			MaxScans:      10,
			Quorum:        2,
			ExhaustBudget: false,
		},
		Retrieval: RetrievalConfig{
			TopN:          10,
			MinSimilarity: 0.2,
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "",
			Timeout:     30,
			MaxTokens:   400,
			Temperature: 0.3,
		},
		Embedding: EmbeddingConfig{
			Provider: "openai",
			Model:    "",
		},
		Search: SearchConfig{
			Endpoint:     "https://google.serper.dev/search",
			NumResults:   8,
			ChunkWords:   300,
			OverlapWords: 40,
			RatePerSec:   1,
			Burst:        3,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Triangulate/0.1 (+https://github.com/triangulate)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Dir: "outputs",
		},
	}
}
