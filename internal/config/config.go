package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for jobdigest.
type Config struct {
	PollingInterval time.Duration
	Storage         StorageConfig
	Feeds           []FeedConfig
	AI              AIConfig
	Email           EmailConfig
	Digest          DigestConfig
}

// StorageConfig locates the embedded database shared by the dedup ledger and
// the postings store.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// FeedConfig describes a single feed source to ingest. Name doubles as the
// ledger scope and the postings table name.
type FeedConfig struct {
	Name                 string   `yaml:"name"`
	URL                  string   `yaml:"url"`
	Enabled              bool     `yaml:"enabled"`
	TitleKeywords        []string `yaml:"title_keywords"`
	TitleExcludeKeywords []string `yaml:"title_exclude_keywords"`
}

// AIConfig controls the LLM enrichment layer.
type AIConfig struct {
	BaseURL       string        // defaults to https://api.openai.com/v1
	Model         string        // e.g. "gpt-5-nano"
	APIKey        string        // expanded from env var by Load
	VectorStoreID string        // resume corpus reference for fit scoring
	Timeout       time.Duration // per-request timeout
	Concurrency   int           // parallel enrichment workers
	MinDelay      time.Duration // minimum gap between LLM requests, 0 = none
}

// EmailConfig holds Mailgun delivery settings for the digest.
type EmailConfig struct {
	BaseURL string `yaml:"base_url"`
	Domain  string `yaml:"domain"`
	APIKey  string `yaml:"api_key"`
	From    string `yaml:"from"`
	To      string `yaml:"to"`
}

// DigestConfig controls digest selection.
type DigestConfig struct {
	TopN int `yaml:"top_n"`
}

const (
	defaultOpenAIBaseURL  = "https://api.openai.com/v1"
	defaultMailgunBaseURL = "https://api.mailgun.net"
	defaultStoragePath    = "jobdigest.db"
	defaultTopN           = 5
	defaultConcurrency    = 4
)

// rawConfig is used for YAML unmarshaling (snake_case fields and durations
// as strings).
type rawConfig struct {
	PollingInterval string        `yaml:"polling_interval"`
	Storage         StorageConfig `yaml:"storage"`
	Feeds           []FeedConfig  `yaml:"feeds"`
	AI              rawAIConfig   `yaml:"ai"`
	Email           EmailConfig   `yaml:"email"`
	Digest          DigestConfig  `yaml:"digest"`
}

type rawAIConfig struct {
	BaseURL       string `yaml:"base_url"`
	Model         string `yaml:"model"`
	APIKey        string `yaml:"api_key"`
	VectorStoreID string `yaml:"vector_store_id"`
	Timeout       string `yaml:"timeout"`
	Concurrency   int    `yaml:"concurrency"`
	MinDelay      string `yaml:"min_delay"`
}

// Load reads and parses the YAML config file at path, validates it, and
// returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables so secrets stay out of the file.
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	interval := 30 * time.Minute // default
	if raw.PollingInterval != "" {
		interval, err = time.ParseDuration(raw.PollingInterval)
		if err != nil {
			return nil, fmt.Errorf("parse polling_interval %q: %w", raw.PollingInterval, err)
		}
	}

	aiTimeout := 30 * time.Second // default
	if raw.AI.Timeout != "" {
		aiTimeout, err = time.ParseDuration(raw.AI.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse ai.timeout %q: %w", raw.AI.Timeout, err)
		}
	}

	var minDelay time.Duration
	if raw.AI.MinDelay != "" {
		minDelay, err = time.ParseDuration(raw.AI.MinDelay)
		if err != nil {
			return nil, fmt.Errorf("parse ai.min_delay %q: %w", raw.AI.MinDelay, err)
		}
	}

	aiBaseURL := raw.AI.BaseURL
	if aiBaseURL == "" {
		aiBaseURL = defaultOpenAIBaseURL
	}

	concurrency := raw.AI.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	storagePath := raw.Storage.Path
	if storagePath == "" {
		storagePath = defaultStoragePath
	}

	email := raw.Email
	if email.BaseURL == "" {
		email.BaseURL = defaultMailgunBaseURL
	}
	if email.From == "" && email.Domain != "" {
		email.From = fmt.Sprintf("Mailgun Sandbox <postmaster@%s>", email.Domain)
	}

	topN := raw.Digest.TopN
	if topN <= 0 {
		topN = defaultTopN
	}

	cfg := &Config{
		PollingInterval: interval,
		Storage:         StorageConfig{Path: storagePath},
		Feeds:           raw.Feeds,
		AI: AIConfig{
			BaseURL:       aiBaseURL,
			Model:         raw.AI.Model,
			APIKey:        raw.AI.APIKey,
			VectorStoreID: raw.AI.VectorStoreID,
			Timeout:       aiTimeout,
			Concurrency:   concurrency,
			MinDelay:      minDelay,
		},
		Email:  email,
		Digest: DigestConfig{TopN: topN},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.PollingInterval <= 0 {
		return fmt.Errorf("polling_interval must be positive, got %v", cfg.PollingInterval)
	}

	enabled := 0
	for i, f := range cfg.Feeds {
		if !f.Enabled {
			continue
		}
		if f.Name == "" {
			return fmt.Errorf("feeds[%d]: name is required", i)
		}
		if f.URL == "" {
			return fmt.Errorf("feed %q: url is required", f.Name)
		}
		enabled++
	}
	if enabled == 0 {
		return fmt.Errorf("at least one feed must be enabled")
	}

	if cfg.AI.APIKey == "" {
		return fmt.Errorf("ai.api_key is required")
	}
	if cfg.AI.Model == "" {
		return fmt.Errorf("ai.model is required")
	}
	if cfg.AI.VectorStoreID == "" {
		return fmt.Errorf("ai.vector_store_id is required")
	}

	return nil
}

// ValidateEmail checks the fields only the digest command needs. Ingestion
// runs without email credentials, so Load does not enforce these.
func (c *Config) ValidateEmail() error {
	if c.Email.Domain == "" {
		return fmt.Errorf("email.domain is required to send a digest")
	}
	if c.Email.APIKey == "" {
		return fmt.Errorf("email.api_key is required to send a digest")
	}
	if c.Email.To == "" {
		return fmt.Errorf("email.to is required to send a digest")
	}
	return nil
}
