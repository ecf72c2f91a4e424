package model

import "time"

// Config is the complete runtime configuration, assembled from defaults,
// the config file (~/.authlink/config.yaml), AUTHLINK_* environment
// variables, and CLI flags, in ascending priority.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Reconcile   ReconcileConfig   `yaml:"reconcile" mapstructure:"reconcile"`
	Sources     SourcesConfig     `yaml:"sources" mapstructure:"sources"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls outbound record fetches.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RatePerHost  float64       `yaml:"rate_per_host" mapstructure:"rate_per_host"`
	RateBurst    int           `yaml:"rate_burst" mapstructure:"rate_burst"`
	CheckRobots  bool          `yaml:"check_robots" mapstructure:"check_robots"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
}

// CacheConfig controls caching of fetched records and lookup responses.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls batch conversion parallelism.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// ReconcileConfig controls the optional knowledge-base lookup.
type ReconcileConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string        `yaml:"endpoint" mapstructure:"endpoint"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// SourcesConfig carries per-source overrides and extensions.
type SourcesConfig struct {
	// SchemaFile is an optional YAML file with additional source schemas.
	SchemaFile string `yaml:"schema_file" mapstructure:"schema_file"`

	// Endpoints overrides the built-in fetch endpoint per source type.
	// The URL template uses {id} for the external identifier.
	Endpoints map[string]EndpointConfig `yaml:"endpoints" mapstructure:"endpoints"`
}

// EndpointConfig is one fetch endpoint: a URL template and the declared
// serialization format of the response ("rdfxml" or "ntriples").
type EndpointConfig struct {
	URL    string `yaml:"url" mapstructure:"url"`
	Format string `yaml:"format" mapstructure:"format"`
}

// LLMConfig controls the optional reviewer-note generation.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai", "ollama", "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"-"` // env only, never written to disk
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	Pretty  bool `yaml:"pretty" mapstructure:"pretty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "authlink/0.3 (+https://github.com/ppiankov/authlink)",
			MaxBodyBytes: 4_000_000,
			RatePerHost:  2.0,
			RateBurst:    4,
			CheckRobots:  true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // resolved to ~/.authlink/cache at load time
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Reconcile: ReconcileConfig{
			Enabled:  false,
			Endpoint: "https://www.wikidata.org/w/api.php",
			Timeout:  15 * time.Second,
		},
		Sources: SourcesConfig{},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 600,
		},
		Output: OutputConfig{},
	}
}
