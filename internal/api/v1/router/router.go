package router

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"app/internal/api/v1/handler"
	"app/internal/cache"
	"app/internal/config"
	"app/internal/inference"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/service"
	"app/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New wires the full request path: rate limiter -> CORS -> mux -> auth ->
// handlers. It returns the connection pool so the caller can close it on
// shutdown.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (http.Handler, *pgxpool.Pool, error) {
	// 1. Open DB connection pool
	pool, err := pgxpool.New(ctx, cfg.DBConnectionString)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open DB pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	logger.Info().Msg("Database connection successful")

	// 2. Object store
	store, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize object store: %w", err)
	}

	// 3. Inference clients. The API credential comes from the environment or
	// from Secret Manager, never from the client.
	apiKey := cfg.GeminiAPIKey
	if apiKey == "" && cfg.GeminiAPIKeySecret != "" {
		apiKey, err = service.FetchSecret(ctx, cfg.GeminiAPIKeySecret)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to fetch inference credential: %w", err)
		}
	}
	flashClient, err := inference.NewGeminiClient(ctx, apiKey, cfg.FlashModel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create flash model client: %w", err)
	}
	proClient, err := inference.NewGeminiClient(ctx, apiKey, cfg.ProModel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create pro model client: %w", err)
	}
	tierRouter := inference.NewTierRouter(flashClient, proClient)

	// 4. Validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 5. Repositories, cache & services
	userRepo := repository.NewUserRepo(pool)
	imageRepo := repository.NewImageRepo(pool)
	historyCache := cache.NewHistoryCache(time.Duration(cfg.HistoryCacheTTLSec) * time.Second)

	processSvc := service.NewProcessService(userRepo, imageRepo, store, tierRouter,
		time.Duration(cfg.SignedURLTTLSec)*time.Second, logger)
	historySvc := service.NewHistoryService(imageRepo, historyCache, logger)

	processHandler := handler.NewProcessHandler(processSvc, logger)
	historyHandler := handler.NewHistoryHandler(historySvc, validate, logger)

	// 6. Middleware
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret, logger)
	limiter := middleware.NewRateLimiter(time.Duration(cfg.RateLimitWindowSec)*time.Second, cfg.RateLimitMax)

	// 7. Routes
	mux := http.NewServeMux()
	processHandler.RegisterRoutes(mux, authMiddleware)
	historyHandler.RegisterRoutes(mux, authMiddleware)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// 8. CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(logger, limiter.Handler(c.Handler(mux))), pool, nil
}
