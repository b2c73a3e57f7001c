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

	"github.com/moviemind/cinematch/internal/config"
	"github.com/moviemind/cinematch/internal/db"
	dbRedis "github.com/moviemind/cinematch/internal/db/redis"
	"github.com/moviemind/cinematch/internal/domain"
	"github.com/moviemind/cinematch/internal/index"
	logpkg "github.com/moviemind/cinematch/internal/logger"
	"github.com/moviemind/cinematch/internal/metrics"
	"github.com/moviemind/cinematch/internal/repository/embcache"
	"github.com/moviemind/cinematch/internal/transport/httpapi"
	openaiEmb "github.com/moviemind/cinematch/internal/transport/openai"
	"github.com/moviemind/cinematch/internal/usecase/recommend"
	"github.com/moviemind/cinematch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting cinematch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("index_host", cfg.Index.Host),
		zap.String("collection", cfg.Index.Collection),
	)

	// Register Prometheus collectors explicitly (no init())
	metrics.Register()

	// Vector index client — read-only view of the collection the offline
	// ingestion job maintains.
	idx, err := index.New(index.Config{
		Host:       cfg.Index.Host,
		Port:       cfg.Index.Port,
		APIKey:     cfg.Index.APIKey,
		UseTLS:     cfg.Index.UseTLS,
		Collection: cfg.Index.Collection,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create index client", zap.Error(err))
	}
	defer func() { _ = idx.Close() }()

	ctx := context.Background()
	if count, err := idx.Health(ctx); err != nil {
		// Startup proceeds; requests degrade to empty results until the
		// index comes up.
		logger.Warn("Vector index not reachable at startup", zap.Error(err))
	} else {
		logger.Info("Connected to vector index", zap.Uint64("movies", count))
	}

	// Optional Redis-backed embedding cache.
	var kv db.KV
	if len(cfg.Cache.RedisAddrs) > 0 {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.RedisAddrs,
			Password: cfg.Cache.RedisPassword,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, 10*time.Second); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		kv = store
		logger.Info("Connected to embedding cache", zap.Strings("addrs", cfg.Cache.RedisAddrs))
	}

	embedder := buildEmbedder(cfg, kv, logger)
	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
		zap.Bool("cached", kv != nil),
	)

	// Recommendation service, optionally memoized per-process.
	var rec recommend.Recommender = recommend.New(idx, embedder)
	rec = recommend.NewCached(rec, time.Duration(cfg.Cache.ResultTTLSec)*time.Second, metrics.ResultCacheTotal)

	server := httpapi.NewServer(rec, idx, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	r.Mount("/", server.Routes())

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

// buildEmbedder assembles the decorator chain: OpenAI -> Cached (when Redis
// is configured).
func buildEmbedder(cfg config.Config, kv db.KV, logger *zap.Logger) domain.Embedder {
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})

	if kv == nil {
		return base
	}

	ttl := time.Duration(cfg.Cache.EmbeddingTTLDays) * 24 * time.Hour
	return embcache.New(base, kv, ttl, metrics.EmbeddingCacheTotal, logger)
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

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
