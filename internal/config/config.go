// Package config loads the newslens TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hoanghai1803/newslens/internal/models"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	NLP    NLPConfig    `toml:"nlp"`
	AI     AIConfig     `toml:"ai"`
	News   NewsConfig   `toml:"news"`
	Cache  CacheConfig  `toml:"cache"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port              int  `toml:"port"`
	AutoOpenBrowser   bool `toml:"auto_open_browser"`
	RequestsPerMinute int  `toml:"requests_per_minute"`
}

// NLPConfig holds entity extraction settings. An empty APIKey disables the
// remote extractor; APIURL empty means the default Hugging Face model.
type NLPConfig struct {
	APIKey         string  `toml:"api_key"`
	APIURL         string  `toml:"api_url"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	Fallback       string  `toml:"fallback"`
	Concurrency    int     `toml:"concurrency"`
	RatePerSecond  float64 `toml:"rate_per_second"`
}

// Timeout returns the per-call remote extraction timeout.
func (c NLPConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AIConfig holds AI provider settings for article summaries.
type AIConfig struct {
	Provider string `toml:"provider"`
	APIKey   string `toml:"api_key"`
	Model    string `toml:"model"`
}

// NewsConfig holds article source settings.
type NewsConfig struct {
	APIKey          string       `toml:"api_key"`
	DefaultRegion   string       `toml:"default_region"`
	DefaultCategory string       `toml:"default_category"`
	Feeds           []FeedConfig `toml:"feeds"`
}

// FeedConfig is an RSS or Atom feed served for one region and category.
type FeedConfig struct {
	URL      string `toml:"url"`
	Region   string `toml:"region"`
	Category string `toml:"category"`
}

// CacheConfig holds headline cache settings. An empty RedisAddr disables
// the cache.
type CacheConfig struct {
	RedisAddr  string `toml:"redis_addr"`
	TTLMinutes int    `toml:"ttl_minutes"`
}

// TTL returns how long cached headline batches live.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

const defaultConfigContent = `[server]
port = 8080
auto_open_browser = true
requests_per_minute = 120

[nlp]
api_key = ""                      # Hugging Face token (or set HUGGINGFACE_API_KEY env var)
api_url = ""                      # Empty uses the default NER model endpoint
timeout_seconds = 10
fallback = "pattern"              # "pattern" or "prose"
concurrency = 1                   # Parallel extraction calls per request
rate_per_second = 5               # Remote calls per second; 0 disables limiting

[ai]
provider = "anthropic"            # "anthropic" or "openai"
api_key = ""                      # Your API key (or set AI_API_KEY env var)
model = "claude-haiku-4-5"

[news]
api_key = ""                      # GNews token (or set GNEWS_API_KEY env var)
default_region = "in"             # "in" or "us"
default_category = "general"

# [[news.feeds]]
# url = "https://feeds.bbci.co.uk/news/world/rss.xml"
# region = "us"
# category = "general"

[cache]
redis_addr = ""                   # host:port or redis:// URL (or set REDIS_ADDR env var)
ttl_minutes = 15
`

// Load reads and parses the TOML config from the given path. If the file does
// not exist, it creates a default config file at that path. Environment
// variables override values from the file with highest priority.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Explicit zeros are rejected before defaults would replace them.
	if err := validateExplicit(&cfg, md); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// createDefault writes the default config content to the given path,
// creating any parent directories as needed.
func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// validateExplicit checks values that were explicitly set in the TOML file
// and would otherwise be silently replaced by their defaults.
func validateExplicit(cfg *Config, md toml.MetaData) error {
	positive := []struct {
		key   []string
		value int
	}{
		{[]string{"server", "port"}, cfg.Server.Port},
		{[]string{"server", "requests_per_minute"}, cfg.Server.RequestsPerMinute},
		{[]string{"nlp", "timeout_seconds"}, cfg.NLP.TimeoutSeconds},
		{[]string{"nlp", "concurrency"}, cfg.NLP.Concurrency},
		{[]string{"cache", "ttl_minutes"}, cfg.Cache.TTLMinutes},
	}
	for _, p := range positive {
		if md.IsDefined(p.key...) && p.value < 1 {
			return fmt.Errorf("invalid %s.%s %d: must be >= 1", p.key[0], p.key[1], p.value)
		}
	}
	if md.IsDefined("nlp", "rate_per_second") && cfg.NLP.RatePerSecond < 0 {
		return fmt.Errorf("invalid nlp.rate_per_second %g: must be >= 0", cfg.NLP.RatePerSecond)
	}
	return nil
}

// applyDefaults sets default values for any zero-valued fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RequestsPerMinute == 0 {
		cfg.Server.RequestsPerMinute = 120
	}
	if cfg.NLP.TimeoutSeconds == 0 {
		cfg.NLP.TimeoutSeconds = 10
	}
	if cfg.NLP.Fallback == "" {
		cfg.NLP.Fallback = "pattern"
	}
	if cfg.NLP.Concurrency == 0 {
		cfg.NLP.Concurrency = 1
	}
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "anthropic"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "claude-haiku-4-5"
	}
	if cfg.News.DefaultRegion == "" {
		cfg.News.DefaultRegion = string(models.RegionIndia)
	}
	if cfg.News.DefaultCategory == "" {
		cfg.News.DefaultCategory = string(models.CategoryGeneral)
	}
	for i := range cfg.News.Feeds {
		if cfg.News.Feeds[i].Region == "" {
			cfg.News.Feeds[i].Region = cfg.News.DefaultRegion
		}
		if cfg.News.Feeds[i].Category == "" {
			cfg.News.Feeds[i].Category = cfg.News.DefaultCategory
		}
	}
	if cfg.Cache.TTLMinutes == 0 {
		cfg.Cache.TTLMinutes = 15
	}
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables take highest priority over config file values.
//
// Priority for ai.api_key:
//  1. AI_API_KEY (generic, highest)
//  2. ANTHROPIC_API_KEY (when provider is "anthropic")
//  3. OPENAI_API_KEY (when provider is "openai")
func applyEnvOverrides(cfg *Config) {
	switch cfg.AI.Provider {
	case "anthropic":
		if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
			cfg.AI.APIKey = v
		}
	case "openai":
		if v := os.Getenv("OPENAI_API_KEY"); v != "" {
			cfg.AI.APIKey = v
		}
	}
	if v := os.Getenv("AI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}

	if v := os.Getenv("HUGGINGFACE_API_KEY"); v != "" {
		cfg.NLP.APIKey = v
	}
	if v := os.Getenv("GNEWS_API_KEY"); v != "" {
		cfg.News.APIKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
}

// validate checks that configuration values are within acceptable ranges.
// Missing credentials are not errors: they only disable the feature that
// needs them.
func validate(cfg *Config) error {
	switch cfg.AI.Provider {
	case "anthropic", "openai":
	default:
		return fmt.Errorf("invalid ai.provider %q: must be \"anthropic\" or \"openai\"", cfg.AI.Provider)
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
	}

	switch cfg.NLP.Fallback {
	case "pattern", "prose":
	default:
		return fmt.Errorf("invalid nlp.fallback %q: must be \"pattern\" or \"prose\"", cfg.NLP.Fallback)
	}

	if !models.Region(cfg.News.DefaultRegion).Valid() {
		return fmt.Errorf("invalid news.default_region %q: must be \"in\" or \"us\"", cfg.News.DefaultRegion)
	}
	if !models.Category(cfg.News.DefaultCategory).Valid() {
		return fmt.Errorf("invalid news.default_category %q", cfg.News.DefaultCategory)
	}

	for i, feed := range cfg.News.Feeds {
		if feed.URL == "" {
			return fmt.Errorf("news.feeds[%d]: url is required", i)
		}
		if !models.Region(feed.Region).Valid() {
			return fmt.Errorf("news.feeds[%d]: invalid region %q", i, feed.Region)
		}
		if !models.Category(feed.Category).Valid() {
			return fmt.Errorf("news.feeds[%d]: invalid category %q", i, feed.Category)
		}
	}

	if cfg.NLP.APIKey == "" {
		slog.Info("nlp.api_key is empty: entity extraction uses the local fallback only")
	}
	if cfg.News.APIKey == "" && len(cfg.News.Feeds) == 0 {
		slog.Warn("no article sources configured: set news.api_key (or GNEWS_API_KEY) or add [[news.feeds]]")
	}
	if cfg.AI.APIKey == "" {
		slog.Info("ai.api_key is empty: summaries fall back to the article description")
	}

	return nil
}
