package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string

	// Pathstore connection; publishing is disabled when PathstoreURL is empty.
	PathstoreURL    string
	PathstoreAPIKey string

	// Auth
	APIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Rendering
	HeadingLevel int
	StatsWindow  time.Duration

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

// fileConfig mirrors Config for the optional YAML overlay. Nil fields are
// left as loaded from the environment.
type fileConfig struct {
	Port                 *string `yaml:"port"`
	PathstoreURL         *string `yaml:"pathstore_url"`
	PathstoreAPIKey      *string `yaml:"pathstore_api_key"`
	APIKey               *string `yaml:"api_key"`
	WorkerCount          *int    `yaml:"worker_count"`
	MaxQueueSize         *int    `yaml:"max_queue_size"`
	MaxUploadBytes       *int64  `yaml:"max_upload_bytes"`
	HeadingLevel         *int    `yaml:"heading_level"`
	StatsWindow          *string `yaml:"stats_window"`
	JobTTL               *string `yaml:"job_ttl"`
	PDFFallbackPdftotext *bool   `yaml:"pdf_fallback_pdftotext"`
}

// Load reads configuration from the environment, then from the YAML file
// named by STXD_CONFIG if set.
func Load() (Config, error) {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		PathstoreURL:    os.Getenv("PATHSTORE_URL"),
		PathstoreAPIKey: os.Getenv("PATHSTORE_API_KEY"),

		APIKey: os.Getenv("STXD_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		HeadingLevel: envInt("HEADING_LEVEL", 1),
		StatsWindow:  envDuration("STATS_WINDOW", 1*time.Hour),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if path := os.Getenv("STXD_CONFIG"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return cfg, err
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&c.Port, f.Port)
	setString(&c.PathstoreURL, f.PathstoreURL)
	setString(&c.PathstoreAPIKey, f.PathstoreAPIKey)
	setString(&c.APIKey, f.APIKey)
	if f.WorkerCount != nil {
		c.WorkerCount = *f.WorkerCount
	}
	if f.MaxQueueSize != nil {
		c.MaxQueueSize = *f.MaxQueueSize
	}
	if f.MaxUploadBytes != nil {
		c.MaxUploadBytes = *f.MaxUploadBytes
	}
	if f.HeadingLevel != nil {
		c.HeadingLevel = *f.HeadingLevel
	}
	if f.PDFFallbackPdftotext != nil {
		c.PDFFallbackPdftotext = *f.PDFFallbackPdftotext
	}
	if err := setDuration(&c.StatsWindow, f.StatsWindow, "stats_window"); err != nil {
		return err
	}
	return setDuration(&c.JobTTL, f.JobTTL, "job_ttl")
}

func (c *Config) applyDefaults() {
	if c.WorkerCount <= 0 {
		c.WorkerCount = 4
	}
	if c.MaxQueueSize <= 0 {
		c.MaxQueueSize = 100
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 52428800
	}
	if c.HeadingLevel < 0 {
		c.HeadingLevel = 1
	}
	if c.StatsWindow <= 0 {
		c.StatsWindow = 1 * time.Hour
	}
	if c.JobTTL <= 0 {
		c.JobTTL = 1 * time.Hour
	}
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("STXD_API_KEY is required")
	}
	if c.PathstoreURL != "" && c.PathstoreAPIKey == "" {
		return errors.New("PATHSTORE_API_KEY is required when PATHSTORE_URL is set")
	}
	return nil
}

// PublishEnabled reports whether rendered documents can be published.
func (c Config) PublishEnabled() bool {
	return c.PathstoreURL != ""
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string, key string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return fmt.Errorf("config %s: %w", key, err)
	}
	*dst = d
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
