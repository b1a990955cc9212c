package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Completion providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Default completion models per provider
const (
	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultOpenAIModel = "gpt-3.5-turbo"
)

// Config holds every setting read at process start
type Config struct {
	Env            string   `env:"ENV" envDefault:"development"`
	Port           int      `env:"PORT" envDefault:"8080"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string   `env:"LOG_FORMAT" envDefault:"json"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	CompletionProvider string `env:"COMPLETION_PROVIDER" envDefault:"gemini"`
	CompletionModel    string `env:"COMPLETION_MODEL"`
	GeminiAPIKey       string `env:"GEMINI_API_KEY"`
	OpenAIAPIKey       string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL      string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`

	BooksAPIKey  string `env:"GOOGLE_BOOKS_API_KEY"`
	BooksBaseURL string `env:"GOOGLE_BOOKS_BASE_URL" envDefault:"https://www.googleapis.com/books/v1"`

	RecommendationCount int           `env:"RECOMMENDATION_COUNT" envDefault:"4"`
	EnrichConcurrency   int           `env:"ENRICH_CONCURRENCY" envDefault:"1"`
	StrictParse         bool          `env:"STRICT_PARSE" envDefault:"false"`
	RequestTimeout      time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"1"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"3"`
	DailyQuota     int64   `env:"DAILY_QUOTA" envDefault:"500"`
}

// Validate checks required secrets and numeric ranges
func (c *Config) Validate() error {
	switch c.CompletionProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when COMPLETION_PROVIDER is %s", ProviderGemini)
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when COMPLETION_PROVIDER is %s", ProviderOpenAI)
		}
	default:
		return fmt.Errorf("COMPLETION_PROVIDER must be %s or %s, got %q", ProviderGemini, ProviderOpenAI, c.CompletionProvider)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if c.RecommendationCount < 1 {
		return fmt.Errorf("RECOMMENDATION_COUNT must be at least 1")
	}
	if c.EnrichConcurrency < 1 {
		return fmt.Errorf("ENRICH_CONCURRENCY must be at least 1")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// Model returns the configured completion model or the provider default
func (c *Config) Model() string {
	if c.CompletionModel != "" {
		return c.CompletionModel
	}
	if c.CompletionProvider == ProviderOpenAI {
		return DefaultOpenAIModel
	}
	return DefaultGeminiModel
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads .env files (if present) and the environment, then validates.
// A missing completion key fails here, at startup.
func Load() (*Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
