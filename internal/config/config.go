package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/citeshield/internal/chunker"
	"github.com/dgallion1/citeshield/internal/loader"
	"github.com/dgallion1/citeshield/internal/sections"
)

// EnvConfigFile names an optional YAML file read before the environment.
const EnvConfigFile = "CITESHIELD_CONFIG"

type Config struct {
	Port string `yaml:"port"`

	// Auth. Only read from the environment.
	APIKey string `yaml:"-"`

	// Chunking
	MaxLines int `yaml:"max_lines"`
	Overlap  int `yaml:"overlap"`

	// Section access
	PageSize            int `yaml:"page_size"`
	MaxResults          int `yaml:"max_results"`
	OverviewLimit       int `yaml:"overview_limit"`
	OverviewTokenBudget int `yaml:"overview_token_budget"`

	// Relevance scoring
	WeightFrequency float64 `yaml:"weight_frequency"`
	WeightCoverage  float64 `yaml:"weight_coverage"`
	WeightDensity   float64 `yaml:"weight_density"`
	MinTermLength   int     `yaml:"min_term_length"`
	CoverageFirst   bool    `yaml:"coverage_first"`

	// Worker pool
	WorkerCount  int `yaml:"worker_count"`
	MaxQueueSize int `yaml:"max_queue_size"`

	// Upload limits
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// Brief and job state
	BriefTTL time.Duration `yaml:"brief_ttl"`
	JobTTL   time.Duration `yaml:"job_ttl"`

	// Rate limiting
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`

	// PDF
	PDFFallbackPdftotext bool `yaml:"pdf_fallback_pdftotext"`
}

// Default returns the built-in configuration.
func Default() Config {
	chunk := chunker.DefaultConfig()
	weights := sections.DefaultWeights()
	return Config{
		Port: "8090",

		MaxLines: chunk.MaxLines,
		Overlap:  chunk.Overlap,

		PageSize:            sections.DefaultPageSize,
		MaxResults:          sections.DefaultMaxResults,
		OverviewLimit:       sections.DefaultOverviewLimit,
		OverviewTokenBudget: sections.DefaultOverviewBudget,

		WeightFrequency: weights.Frequency,
		WeightCoverage:  weights.Coverage,
		WeightDensity:   weights.Density,
		MinTermLength:   sections.DefaultScorer().MinTermLength,
		CoverageFirst:   sections.DefaultScorer().CoverageFirst,

		WorkerCount:  4,
		MaxQueueSize: 100,

		MaxUploadBytes: 52428800, // 50MB

		BriefTTL: 1 * time.Hour,
		JobTTL:   1 * time.Hour,

		RateLimitRPS:   20,
		RateLimitBurst: 40,

		PDFFallbackPdftotext: true,
	}
}

// Load reads the file named by CITESHIELD_CONFIG, if any, then the environment.
func Load() (Config, error) {
	return LoadFrom(os.Getenv(EnvConfigFile))
}

// LoadFrom layers defaults, the YAML file at path (skipped when empty) and
// environment variables, in that order.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		// Keys absent from the file keep their defaults.
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg = Config{
		Port: envOr("PORT", cfg.Port),

		APIKey: os.Getenv("CITESHIELD_API_KEY"),

		MaxLines: envInt("CHUNK_MAX_LINES", cfg.MaxLines),
		Overlap:  envInt("CHUNK_OVERLAP", cfg.Overlap),

		PageSize:            envInt("PAGE_SIZE", cfg.PageSize),
		MaxResults:          envInt("SEARCH_MAX_RESULTS", cfg.MaxResults),
		OverviewLimit:       envInt("OVERVIEW_LIMIT", cfg.OverviewLimit),
		OverviewTokenBudget: envInt("OVERVIEW_TOKEN_BUDGET", cfg.OverviewTokenBudget),

		WeightFrequency: envFloat("SCORE_WEIGHT_FREQUENCY", cfg.WeightFrequency),
		WeightCoverage:  envFloat("SCORE_WEIGHT_COVERAGE", cfg.WeightCoverage),
		WeightDensity:   envFloat("SCORE_WEIGHT_DENSITY", cfg.WeightDensity),
		MinTermLength:   envInt("SEARCH_MIN_TERM_LENGTH", cfg.MinTermLength),
		CoverageFirst:   envBool("SEARCH_COVERAGE_FIRST", cfg.CoverageFirst),

		WorkerCount:  envInt("WORKER_COUNT", cfg.WorkerCount),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", cfg.MaxQueueSize),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes),

		BriefTTL: envDuration("BRIEF_TTL", cfg.BriefTTL),
		JobTTL:   envDuration("JOB_TTL", cfg.JobTTL),

		RateLimitRPS:   envFloat("RATE_LIMIT_RPS", cfg.RateLimitRPS),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", cfg.RateLimitBurst),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", cfg.PDFFallbackPdftotext),
	}

	def := Default()
	if cfg.PageSize <= 0 {
		cfg.PageSize = def.PageSize
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = def.MaxResults
	}
	if cfg.OverviewLimit <= 0 {
		cfg.OverviewLimit = def.OverviewLimit
	}
	if cfg.OverviewTokenBudget <= 0 {
		cfg.OverviewTokenBudget = def.OverviewTokenBudget
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = def.WorkerCount
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = def.MaxQueueSize
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = def.MaxUploadBytes
	}
	if cfg.BriefTTL <= 0 {
		cfg.BriefTTL = def.BriefTTL
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = def.JobTTL
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = def.RateLimitBurst
	}

	return cfg, nil
}

// Validate checks settings shared by every entry point. Chunking settings
// are not defaulted, so a bad overlap fails here instead of being masked.
func (c Config) Validate() error {
	if err := c.ChunkConfig().Validate(); err != nil {
		return err
	}
	if c.WeightFrequency < 0 || c.WeightCoverage < 0 || c.WeightDensity < 0 {
		return fmt.Errorf("score weights must not be negative")
	}
	if c.WeightFrequency+c.WeightCoverage+c.WeightDensity == 0 {
		return fmt.Errorf("at least one score weight must be positive")
	}
	if c.MinTermLength < 1 {
		return fmt.Errorf("SEARCH_MIN_TERM_LENGTH must be at least 1")
	}
	return nil
}

// ValidateServer additionally checks settings the HTTP server needs.
func (c Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.APIKey == "" {
		return fmt.Errorf("CITESHIELD_API_KEY is required")
	}
	return nil
}

// ChunkConfig returns the chunker settings.
func (c Config) ChunkConfig() chunker.Config {
	return chunker.Config{MaxLines: c.MaxLines, Overlap: c.Overlap}
}

// Scorer returns the configured relevance scorer.
func (c Config) Scorer() sections.Scorer {
	return sections.Scorer{
		Weights: sections.Weights{
			Frequency: c.WeightFrequency,
			Coverage:  c.WeightCoverage,
			Density:   c.WeightDensity,
		},
		MinTermLength: c.MinTermLength,
		CoverageFirst: c.CoverageFirst,
	}
}

// StoreOptions returns the options every section store is built with.
func (c Config) StoreOptions() []sections.Option {
	return []sections.Option{
		sections.WithScorer(c.Scorer()),
		sections.WithPageSize(c.PageSize),
		sections.WithMaxResults(c.MaxResults),
		sections.WithOverviewLimit(c.OverviewLimit),
		sections.WithOverviewBudget(c.OverviewTokenBudget),
	}
}

// LoaderOptions returns the document loader settings.
func (c Config) LoaderOptions() loader.Options {
	return loader.Options{PDFFallbackPdftotext: c.PDFFallbackPdftotext}
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

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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
