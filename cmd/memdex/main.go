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

	"github.com/kailas-cloud/memdex/internal/config"
	"github.com/kailas-cloud/memdex/internal/db"
	dbFile "github.com/kailas-cloud/memdex/internal/db/file"
	dbRedis "github.com/kailas-cloud/memdex/internal/db/redis"
	logpkg "github.com/kailas-cloud/memdex/internal/logger"
	"github.com/kailas-cloud/memdex/internal/metrics"
	"github.com/kailas-cloud/memdex/internal/repository/corpus"
	staterepo "github.com/kailas-cloud/memdex/internal/repository/state"
	chiTransport "github.com/kailas-cloud/memdex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/memdex/internal/usecase/health"
	indexeruc "github.com/kailas-cloud/memdex/internal/usecase/indexer"
	ingestuc "github.com/kailas-cloud/memdex/internal/usecase/ingest"
	knowledgeuc "github.com/kailas-cloud/memdex/internal/usecase/knowledge"
	searchuc "github.com/kailas-cloud/memdex/internal/usecase/search"
	"github.com/kailas-cloud/memdex/internal/version"
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

	logger.Info("Starting memdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// Create blob store based on driver
	var store db.Store
	switch cfg.Database.Driver {
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Redis.Addrs,
			Username: cfg.Database.Redis.Username,
			Password: cfg.Database.Redis.Password,
			DB:       cfg.Database.Redis.DB,
		})
	case "file":
		store, err = dbFile.NewStore(dbFile.Config{
			Dir: cfg.Database.File.Dir,
		})
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create store", zap.Error(err))
	}
	defer store.Close()

	// Wait for the store to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Store not ready", zap.Error(err))
	}
	logger.Info("Connected to store")

	// Register engine metrics explicitly (no init())
	metrics.RegisterEngineMetrics()

	// Authoritative in-memory state plus its durable snapshot — composition root
	corpusRepo := corpus.New()
	stateRepo := staterepo.NewInstrumented(staterepo.New(store), metrics.PersistFailuresTotal)
	metrics.RegisterCorpusGauges(corpusRepo.EntryCount, corpusRepo.PostingCount)

	// Create use case services
	indexerSvc := indexeruc.New(corpusRepo, stateRepo, logger)
	if cfg.Index.PauseMS > 0 {
		pause := time.Duration(cfg.Index.PauseMS) * time.Millisecond
		indexerSvc.WithPause(func() { time.Sleep(pause) })
	}

	knowledgeSvc := knowledgeuc.New(corpusRepo, stateRepo, indexerSvc, logger).
		WithAutoIndex(cfg.Index.Auto)

	// Restore the persisted snapshot; a missing snapshot is a cold start.
	knowledgeSvc.Load(ctx)
	logger.Info("Corpus restored",
		zap.Int("entries", corpusRepo.EntryCount()),
		zap.Int("postings", corpusRepo.PostingCount()),
	)

	// Instrumented wrappers — all searches and indexing passes go through these
	searchSvc := searchuc.NewInstrumented(searchuc.New(corpusRepo), logger)
	indexSvc := indexeruc.NewInstrumented(indexerSvc, logger)

	importSvc := ingestuc.New(knowledgeSvc)
	if cfg.Import.MaxFileBytes > 0 {
		importSvc.WithMaxFileBytes(cfg.Import.MaxFileBytes)
	}

	// Health service
	healthSvc := healthuc.New(store, indexerSvc)

	// Create chi server
	server := chiTransport.NewServer(knowledgeSvc, searchSvc, indexSvc, importSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	// Background indexing jobs
	if cfg.Index.OnStart {
		go func() {
			// The decorator logs and counts the outcome.
			_, _, _ = indexSvc.IndexAll(ctx)
		}()
	}

	var sweepStop chan struct{}
	if cfg.Index.SweepSec > 0 {
		sweepStop = make(chan struct{})
		interval := time.Duration(cfg.Index.SweepSec) * time.Second
		go func() {
			t := time.NewTicker(interval)
			defer t.Stop()
			for {
				select {
				case <-sweepStop:
					return
				case <-t.C:
					_, _, _ = indexSvc.IndexAll(ctx)
				}
			}
		}()
		logger.Info("Background index sweep enabled", zap.Duration("interval", interval))
	}

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

	if sweepStop != nil {
		close(sweepStop)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	// Final snapshot after in-flight requests have drained.
	if err := knowledgeSvc.Save(shutdownCtx); err != nil {
		logger.Error("Failed to persist final snapshot", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
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

			// Set X-Request-ID in response header
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
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
