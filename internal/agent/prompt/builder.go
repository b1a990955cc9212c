package prompt

import (
	"fmt"
	"strings"

	"whatshouldiread/internal/agent/sanitize"
	"whatshouldiread/internal/model"
)

// DefaultRecommendationCount matches the number of picks the UI was designed around
const DefaultRecommendationCount = 4

// Builder constructs completion prompts
type Builder struct {
	count int
}

// NewBuilder creates a builder asking for count recommendations
func NewBuilder(count int) *Builder {
	if count <= 0 {
		count = DefaultRecommendationCount
	}
	return &Builder{count: count}
}

// BuildRecommendationPrompt fills the instruction template with the user's tastes and genres.
// Both are passed through sanitize.Input first.
func (b *Builder) BuildRecommendationPrompt(req model.RecommendationRequest) string {
	var sb strings.Builder
	if genres := strings.TrimSpace(req.Genres); genres != "" {
		sb.WriteString(fmt.Sprintf(GenrePreferenceTemplate, sanitize.Input(genres)))
	}
	sb.WriteString(fmt.Sprintf(RecommendationTemplate, sanitize.Input(strings.TrimSpace(req.Tastes)), b.count))
	return sb.String()
}

// BuildCompletionMessage is the single user-role message sent to the completion service
func (b *Builder) BuildCompletionMessage(req model.RecommendationRequest) string {
	return AssistantPreface + b.BuildRecommendationPrompt(req)
}

// truncateString truncates a string to maxLen runes
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen]) + "..."
	}
	return s
}

// Summary is a short form of the request for logs
func Summary(req model.RecommendationRequest) string {
	return truncateString(strings.TrimSpace(req.Tastes), 60)
}
