package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"whatshouldiread/internal/agent"
	"whatshouldiread/internal/agent/prompt"
	"whatshouldiread/internal/logging"
	"whatshouldiread/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	// MaxTastesLength is the maximum allowed tastes length
	MaxTastesLength = 4000
	// MaxGenresLength is the maximum allowed genres length
	MaxGenresLength = 300
)

// RecommendationService is the orchestration entry point the handlers call
type RecommendationService interface {
	Recommend(ctx context.Context, req model.RecommendationRequest) (*model.RecommendationResult, error)
}

// Handler serves the recommendation endpoints
type Handler struct {
	service RecommendationService
	timeout time.Duration
}

// New creates a Handler; service may be nil when the completion client failed to initialize
func New(service RecommendationService, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Handler{service: service, timeout: timeout}
}

type RecommendRequest struct {
	Tastes string `json:"tastes" binding:"max=4000"`
	Genres string `json:"genres" binding:"max=300"`
}

type RecommendResponseDTO struct {
	RequestID       string                         `json:"requestId"`
	Preamble        string                         `json:"preamble"`
	Recommendations []model.RecommendationResponse `json:"recommendations"`
	Postamble       string                         `json:"postamble"`
	Diagnostics     model.Diagnostics              `json:"diagnostics"`
}

// HandleRecommend is the JSON API
func (h *Handler) HandleRecommend(c *gin.Context) {
	startTime := time.Now()

	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: tastes must be a string of at most 4000 characters",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	if h.service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "AI service is not available",
			"code":  "SERVICE_UNAVAILABLE",
		})
		return
	}

	result, err := h.recommend(c, model.RecommendationRequest{Tastes: req.Tastes, Genres: req.Genres})
	if err != nil {
		status, code, message := classifyError(err)
		c.JSON(status, gin.H{"error": message, "code": code})
		return
	}

	logging.Component("Handler").Info().
		Str("request_id", result.RequestID).
		Dur("elapsed", time.Since(startTime)).
		Msg("recommendations served")

	c.JSON(http.StatusOK, toDTO(result))
}

// recommend runs the service with the request timeout
func (h *Handler) recommend(c *gin.Context, req model.RecommendationRequest) (*model.RecommendationResult, error) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()
	return h.service.Recommend(ctx, req)
}

// classifyError maps service errors to HTTP status, code and user-facing message
func classifyError(err error) (int, string, string) {
	switch {
	case errors.Is(err, agent.ErrEmptyTastes):
		return http.StatusBadRequest, "EMPTY_TASTES", prompt.EmptyTastesWarning
	case errors.Is(err, agent.ErrNoRecommendations):
		return http.StatusUnprocessableEntity, "NO_RECOMMENDATIONS", prompt.NoRecommendationsEn
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT", "Request timed out. Please try again."
	case agent.IsRateLimitError(err):
		logging.Component("Handler").Warn().Err(err).Msg("completion rate limit exceeded")
		return http.StatusTooManyRequests, "COMPLETION_RATE_LIMITED", "The recommendation service is busy. Please come back in a bit."
	case errors.Is(err, agent.ErrCompletionFailed):
		logging.Component("Handler").Error().Err(err).Msg("completion failed")
		return http.StatusBadGateway, "COMPLETION_FAILED", "Failed to generate recommendations. Please try again."
	default:
		logging.Component("Handler").Error().Err(err).Msg("recommendation failed")
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate recommendations. Please try again."
	}
}

func toDTO(result *model.RecommendationResult) RecommendResponseDTO {
	recs := make([]model.RecommendationResponse, len(result.Recommendations))
	for i := range result.Recommendations {
		recs[i] = result.Recommendations[i].ToResponse()
	}
	return RecommendResponseDTO{
		RequestID:       result.RequestID,
		Preamble:        result.Preamble,
		Recommendations: recs,
		Postamble:       result.Postamble,
		Diagnostics:     result.Diagnostics,
	}
}
