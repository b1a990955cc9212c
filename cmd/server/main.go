package main

import (
	"context"
	"strconv"
	"time"

	"whatshouldiread/internal/agent"
	"whatshouldiread/internal/books"
	"whatshouldiread/internal/config"
	"whatshouldiread/internal/handler"
	"whatshouldiread/internal/logging"
	"whatshouldiread/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logging.Info().Str("env", cfg.Env).Msg("starting What Should I Read")

	h := handler.New(newRecommendationService(context.Background(), cfg), cfg.RequestTimeout)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	// Security headers (before CORS)
	r.Use(middleware.SecurityHeaders())

	allowedOrigins := []string{}
	if !cfg.IsProduction() {
		allowedOrigins = append(allowedOrigins, "http://localhost:"+strconv.Itoa(cfg.Port))
	}
	allowedOrigins = append(allowedOrigins, cfg.AllowedOrigins...)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Accept-Language"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	ipLimiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	dailyQuota := middleware.NewDailyQuota(cfg.DailyQuota)
	limited := middleware.RateLimitMiddleware(ipLimiter, dailyQuota)

	logging.Info().
		Float64("rps", cfg.RateLimitRPS).
		Int("burst", cfg.RateLimitBurst).
		Int64("daily_quota", cfg.DailyQuota).
		Msg("rate limiting enabled")

	// Health check endpoints (no rate limiting)
	r.GET("/health", h.HandleHealth)
	r.GET("/ready", h.HandleReadiness)

	r.GET("/", h.HandleIndex)
	r.POST("/", limited, h.HandleSubmit)

	api := r.Group("/api")
	{
		api.POST("/recommendations", limited, h.HandleRecommend)
	}

	addr := ":" + strconv.Itoa(cfg.Port)
	logging.Info().Str("addr", addr).Strs("allowed_origins", allowedOrigins).Msg("server ready")
	if err := r.Run(addr); err != nil {
		logging.Fatal().Err(err).Msg("failed to start server")
	}
}

// newRecommendationService wires the completion and Books clients into a recommender.
// It returns nil when the completion client cannot be created; the server then keeps
// serving pages and health checks while recommendations answer 503.
func newRecommendationService(ctx context.Context, cfg *config.Config) handler.RecommendationService {
	llm, err := agent.NewLLMClient(ctx, cfg)
	if err != nil {
		logging.Warn().Err(err).Str("provider", cfg.CompletionProvider).Msg("failed to initialize completion client")
		logging.Warn().Msg("recommendations will be unavailable")
		return nil
	}
	logging.Info().Str("backend", llm.Name()).Msg("completion client initialized")

	booksClient := books.NewClient(
		books.WithBaseURL(cfg.BooksBaseURL),
		books.WithAPIKey(cfg.BooksAPIKey),
	)

	return agent.NewRecommender(llm, booksClient, agent.Options{
		EnrichConcurrency:   cfg.EnrichConcurrency,
		StrictParse:         cfg.StrictParse,
		RecommendationCount: cfg.RecommendationCount,
	})
}
