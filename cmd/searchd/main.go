package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/marketfleet/searchd/internal/config"
	dbRedis "github.com/marketfleet/searchd/internal/db/redis"
	logpkg "github.com/marketfleet/searchd/internal/logger"
	"github.com/marketfleet/searchd/internal/metrics"
	catalogrepo "github.com/marketfleet/searchd/internal/repository/catalog"
	chiTransport "github.com/marketfleet/searchd/internal/transport/chi"
	cataloguc "github.com/marketfleet/searchd/internal/usecase/catalog"
	healthuc "github.com/marketfleet/searchd/internal/usecase/health"
	searchuc "github.com/marketfleet/searchd/internal/usecase/search"
	"github.com/marketfleet/searchd/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting searchd API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Valkey and Redis speak the same protocol; one store serves both drivers.
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Create repositories (domain-native, no adapters)
	productRepo := catalogrepo.New(store, cfg.Storage.KeyPrefix).
		WithCandidateCap(cfg.Search.CandidateCap, cfg.Search.PageSize)

	// Create use case services
	catalogSvc := cataloguc.New(productRepo)
	searchSvc := searchuc.New(productRepo, buildPolicy(cfg.Ranking))
	healthSvc := healthuc.New(store)

	// The FT index must exist before the first search.
	if err := catalogSvc.Bootstrap(ctx); err != nil {
		logger.Fatal("Failed to bootstrap product index", zap.Error(err))
	}
	logger.Info("Product index ready", zap.String("key_prefix", cfg.Storage.KeyPrefix))

	// Create chi server
	server := chiTransport.NewServer(searchSvc, catalogSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildPolicy starts from the default ranking policy and applies any non-zero
// config overrides.
func buildPolicy(rc config.RankingConfig) searchuc.Policy {
	p := searchuc.DefaultPolicy()

	overrideF := func(dst *float64, v float64) {
		if v > 0 {
			*dst = v
		}
	}
	overrideF(&p.SecondaryFloor, rc.SecondaryFloor)
	if rc.SecondaryLimit > 0 {
		p.SecondaryLimit = rc.SecondaryLimit
	}
	overrideF(&p.PrimarySimilarity, rc.PrimarySimilarity)
	overrideF(&p.PrimaryPairSimilarity, rc.PrimaryPairSimilarity)
	overrideF(&p.PrimaryPairScore, rc.PrimaryPairScore)
	overrideF(&p.PrimaryScore, rc.PrimaryScore)
	overrideF(&p.StrongFieldSimilarity, rc.StrongFieldSimilarity)
	overrideF(&p.StrongFieldBoost, rc.StrongFieldBoost)
	overrideF(&p.OverlapSimilarity, rc.OverlapSimilarity)
	overrideF(&p.TagBoost, rc.TagBoost)
	overrideF(&p.CategoryBoost, rc.CategoryBoost)
	overrideF(&p.BrandBoost, rc.BrandBoost)
	overrideF(&p.VariantMatchSimilarity, rc.VariantMatchSimilarity)
	overrideF(&p.VariantBoostStep, rc.VariantBoostStep)
	overrideF(&p.VariantBoostCap, rc.VariantBoostCap)
	overrideF(&p.ExactTagBoost, rc.ExactTagBoost)

	return p
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
