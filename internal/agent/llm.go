package agent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"whatshouldiread/internal/agent/deps"
	"whatshouldiread/internal/config"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NewLLMClient creates the completion client selected by configuration
func NewLLMClient(ctx context.Context, cfg *config.Config) (deps.LLMClient, error) {
	switch cfg.CompletionProvider {
	case config.ProviderOpenAI:
		return NewOpenAIChatClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.Model()), nil
	case config.ProviderGemini:
		return NewGeminiLLMClientFromKey(ctx, cfg.GeminiAPIKey, cfg.Model())
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.CompletionProvider)
	}
}

// IsRateLimitError checks if a completion error means the provider throttled us
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	var openAIErr *OpenAIStatusError
	if errors.As(err, &openAIErr) {
		return openAIErr.StatusCode == http.StatusTooManyRequests
	}

	// Check for gRPC ResourceExhausted status
	if s, ok := status.FromError(err); ok {
		return s.Code() == codes.ResourceExhausted
	}

	// genai reports HTTP errors as "Error 429, Message: ..., Status: RESOURCE_EXHAUSTED"
	errStr := err.Error()
	return strings.Contains(errStr, "ResourceExhausted") ||
		strings.Contains(errStr, "RESOURCE_EXHAUSTED") ||
		strings.Contains(errStr, "Error 429") ||
		strings.Contains(errStr, "rate limit")
}
