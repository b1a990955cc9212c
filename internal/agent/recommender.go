package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"whatshouldiread/internal/agent/deps"
	"whatshouldiread/internal/agent/prompt"
	"whatshouldiread/internal/agent/response"
	"whatshouldiread/internal/logging"
	"whatshouldiread/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrEmptyTastes is returned before any external call when the tastes text is blank
	ErrEmptyTastes = errors.New("reading tastes must not be empty")
	// ErrCompletionFailed wraps any completion service failure
	ErrCompletionFailed = errors.New("completion request failed")
	// ErrNoRecommendations is returned in strict mode when the reply has no parseable recommendation
	ErrNoRecommendations = errors.New("reply contained no recommendations in the expected format")
)

// Options tune the Recommender
type Options struct {
	// EnrichConcurrency bounds parallel metadata lookups; 1 means strictly sequential
	EnrichConcurrency int
	// StrictParse turns a zero-match reply into ErrNoRecommendations
	StrictParse bool
	// RecommendationCount is the number of picks asked for in the prompt
	RecommendationCount int
}

// Recommender runs one recommendation request end to end:
// prompt, completion, parse, enrich.
type Recommender struct {
	llm           deps.LLMClient
	metadata      deps.MetadataFetcher
	promptBuilder *prompt.Builder
	opts          Options
	log           zerolog.Logger
}

// NewRecommender creates a Recommender
func NewRecommender(llm deps.LLMClient, metadata deps.MetadataFetcher, opts Options) *Recommender {
	if opts.EnrichConcurrency < 1 {
		opts.EnrichConcurrency = 1
	}
	return &Recommender{
		llm:           llm,
		metadata:      metadata,
		promptBuilder: prompt.NewBuilder(opts.RecommendationCount),
		opts:          opts,
		log:           *logging.Component("Recommender"),
	}
}

// Normalize cleans user input before it reaches the prompt
func Normalize(req model.RecommendationRequest) model.RecommendationRequest {
	return model.RecommendationRequest{
		Tastes: strings.TrimSpace(norm.NFC.String(req.Tastes)),
		Genres: strings.TrimSpace(norm.NFC.String(req.Genres)),
	}
}

// Recommend turns a tastes description into enriched recommendations.
// Metadata failures never fail the request; completion failures do.
func (r *Recommender) Recommend(ctx context.Context, req model.RecommendationRequest) (*model.RecommendationResult, error) {
	req = Normalize(req)
	if req.Tastes == "" {
		return nil, ErrEmptyTastes
	}

	requestID := uuid.New().String()
	log := r.log.With().Str("request_id", requestID).Logger()
	log.Info().Str("tastes", prompt.Summary(req)).Bool("genres", req.Genres != "").Msg("recommendation requested")

	reply, err := r.complete(ctx, log, req)
	if err != nil {
		return nil, err
	}

	parsed := response.Parse(reply)
	diag := response.Diagnose(reply, parsed)
	r.logDiagnostics(log, diag)

	if r.opts.StrictParse && diag.ZeroMatch {
		return nil, ErrNoRecommendations
	}

	enrichStart := time.Now()
	recommendations, err := r.enrich(ctx, log, parsed.Recommendations)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("count", len(recommendations)).
		Dur("elapsed", time.Since(enrichStart)).
		Msg("enrichment complete")

	return &model.RecommendationResult{
		RequestID:       requestID,
		Preamble:        parsed.Preamble,
		Recommendations: recommendations,
		Postamble:       parsed.Postamble,
		Diagnostics:     diag,
	}, nil
}

func (r *Recommender) complete(ctx context.Context, log zerolog.Logger, req model.RecommendationRequest) (string, error) {
	start := time.Now()
	reply, err := r.llm.GenerateContent(ctx, r.promptBuilder.BuildCompletionMessage(req))
	if err != nil {
		log.Error().Err(err).Str("backend", r.llm.Name()).Dur("elapsed", time.Since(start)).Msg("completion failed")
		return "", fmt.Errorf("%w: %w", ErrCompletionFailed, err)
	}
	log.Info().Str("backend", r.llm.Name()).Dur("elapsed", time.Since(start)).Int("chars", len(reply)).Msg("completion received")
	log.Debug().Str("reply", reply).Msg("raw completion")
	return reply, nil
}

func (r *Recommender) logDiagnostics(log zerolog.Logger, diag model.Diagnostics) {
	switch {
	case diag.ZeroMatch:
		log.Warn().Int("numbered_lines", diag.NumberedLines).Msg("reply had no recommendation lines")
	case diag.Partial():
		log.Warn().
			Int("matched", diag.MatchedLines).
			Strs("partial_lines", diag.PartialLines).
			Msg("reply had numbered lines outside the expected format")
	default:
		log.Info().Int("matched", diag.MatchedLines).Msg("reply parsed")
	}
}

// enrich looks up every record. Results are written by index, so the output order
// is the recommendation order whatever the concurrency.
func (r *Recommender) enrich(ctx context.Context, log zerolog.Logger, records []model.RecommendationRecord) ([]model.Recommendation, error) {
	out := make([]model.Recommendation, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.EnrichConcurrency)

	for i, rec := range records {
		g.Go(func() error {
			md, err := r.metadata.FetchMetadata(gctx, rec.Title)
			if err != nil {
				log.Warn().Err(err).Int("index", i).Str("title", rec.Title).Msg("metadata degraded")
			}
			out[i] = model.Recommendation{Record: rec, Metadata: md}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
