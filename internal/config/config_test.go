package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "dummy")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ProviderGemini, cfg.CompletionProvider)
	assert.Equal(t, DefaultGeminiModel, cfg.Model())
	assert.Equal(t, "https://www.googleapis.com/books/v1", cfg.BooksBaseURL)
	assert.Empty(t, cfg.BooksAPIKey)
	assert.Equal(t, 4, cfg.RecommendationCount)
	assert.Equal(t, 1, cfg.EnrichConcurrency)
	assert.False(t, cfg.StrictParse)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	t.Setenv("COMPLETION_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GOOGLE_BOOKS_API_KEY", "books-key")
	t.Setenv("ENRICH_CONCURRENCY", "4")
	t.Setenv("STRICT_PARSE", "true")
	t.Setenv("REQUEST_TIMEOUT", "15s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example,http://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultOpenAIModel, cfg.Model())
	assert.Equal(t, "books-key", cfg.BooksAPIKey)
	assert.Equal(t, 4, cfg.EnrichConcurrency)
	assert.True(t, cfg.StrictParse)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins)
}

func TestLoad_ModelOverride(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "dummy")
	t.Setenv("COMPLETION_MODEL", "gemini-2.5-pro")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model())
}

func TestLoad_MissingRequiredKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	assert.ErrorContains(t, err, "GEMINI_API_KEY is required")
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "dummy")
	t.Setenv("REQUEST_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			CompletionProvider:  ProviderGemini,
			GeminiAPIKey:        "key",
			Port:                8080,
			RecommendationCount: 4,
			EnrichConcurrency:   1,
			RequestTimeout:      time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown provider", mutate: func(c *Config) { c.CompletionProvider = "bard" }, wantErr: "COMPLETION_PROVIDER"},
		{name: "openai without key", mutate: func(c *Config) { c.CompletionProvider = ProviderOpenAI }, wantErr: "OPENAI_API_KEY"},
		{name: "bad port", mutate: func(c *Config) { c.Port = 0 }, wantErr: "PORT"},
		{name: "zero count", mutate: func(c *Config) { c.RecommendationCount = 0 }, wantErr: "RECOMMENDATION_COUNT"},
		{name: "zero concurrency", mutate: func(c *Config) { c.EnrichConcurrency = 0 }, wantErr: "ENRICH_CONCURRENCY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
