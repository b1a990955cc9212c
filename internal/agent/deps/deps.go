package deps

import (
	"context"

	"whatshouldiread/internal/model"
)

// LLMClient abstracts a single-turn completion call
type LLMClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Name() string
}

// MetadataFetcher abstracts the enrichment lookup.
// A returned error never invalidates the returned metadata; it is for logging.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, title string) (model.BookMetadata, error)
}
