package model

import "time"

// Config holds the complete runtime configuration
type Config struct {
	Chunking    ChunkingConfig    `yaml:"chunking"`
	Terms       TermsConfig       `yaml:"terms"`
	Glossary    GlossaryConfig    `yaml:"glossary"`
	LLM         LLMConfig         `yaml:"llm"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Output      OutputConfig      `yaml:"output"`
	Strict      bool              `yaml:"strict"` // Fail on degradable errors instead of warning
}

// ChunkingConfig controls transcript splitting
type ChunkingConfig struct {
	Size int `yaml:"size"` // Character budget per chunk
}

// TermsConfig controls glossary term suggestion
type TermsConfig struct {
	MaxTerms int `yaml:"max_terms"` // Cap on returned suggestions, 0 = unlimited
}

// GlossaryConfig controls glossary loading
type GlossaryConfig struct {
	Path string `yaml:"path"`
	Skip bool   `yaml:"skip"` // Skip glossary loading and term suggestion entirely
}

// LLMConfig configures the optional completion provider
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai", "anthropic", "ollama", "" = disabled
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // Never persisted; from environment
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // Seconds per completion call
	MaxTokens int    `yaml:"max_tokens"`
}

// CacheConfig controls the completion cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// ConcurrencyConfig controls batch-mode parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// RateLimitConfig throttles completion calls per provider
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	IncludeTranscript bool `yaml:"include_transcript"`
	NoExtractions     bool `yaml:"no_extractions"`
	NoGlossary        bool `yaml:"no_glossary"`
	Verbose           bool `yaml:"-"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Chunking: ChunkingConfig{Size: 3000},
		Terms:    TermsConfig{MaxTerms: 5},
		Glossary: GlossaryConfig{Path: "data/glossary.json"},
		LLM: LLMConfig{
			Provider:  "", // Disabled by default; rule-based classification
			Timeout:   60,
			MaxTokens: 2000,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     defaultCacheDir(),
			TTL:     7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{Workers: 4},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2,
			BurstSize:         4,
		},
	}
}
