package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiLLMClient implements deps.LLMClient using the Gemini API
type GeminiLLMClient struct {
	client *genai.Client
	model  string
}

// NewGeminiLLMClient creates a new GeminiLLMClient
func NewGeminiLLMClient(client *genai.Client, model string) *GeminiLLMClient {
	return &GeminiLLMClient{
		client: client,
		model:  model,
	}
}

// NewGeminiLLMClientFromKey creates the underlying genai client from an API key
func NewGeminiLLMClientFromKey(ctx context.Context, apiKey, model string) (*GeminiLLMClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key must not be empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return NewGeminiLLMClient(client, model), nil
}

// GenerateContent sends one user-role message, without streaming or history
func (c *GeminiLLMClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}, nil)
	if err != nil {
		return "", err
	}

	// Extract text from response
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		var text string
		for _, part := range resp.Candidates[0].Content.Parts {
			text += part.Text
		}
		if text != "" {
			return text, nil
		}
	}

	return "", fmt.Errorf("no text in gemini response")
}

// Name identifies the backend in logs
func (c *GeminiLLMClient) Name() string {
	return "gemini/" + c.model
}
