// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"obcms-chat-workers/internal/chat/catalogindex"
	"obcms-chat-workers/internal/chat/entity"
	"obcms-chat-workers/internal/chat/executor"
	"obcms-chat-workers/internal/chat/matcher"
	"obcms-chat-workers/internal/chat/pipeline"
	"obcms-chat-workers/internal/chat/templates"
	"obcms-chat-workers/internal/chat/templates/catalog"
	"obcms-chat-workers/internal/common/camunda"
	"obcms-chat-workers/internal/common/config"
	"obcms-chat-workers/internal/common/database"
	"obcms-chat-workers/internal/common/logger"
	"obcms-chat-workers/internal/common/observability"
	"obcms-chat-workers/internal/common/resilience"

	ans "obcms-chat-workers/internal/workers/chat/answer-chat-query"
	ecq "obcms-chat-workers/internal/workers/chat/execute-chat-query"
	ece "obcms-chat-workers/internal/workers/chat/extract-chat-entities"
	mqt "obcms-chat-workers/internal/workers/chat/match-query-template"
	sqt "obcms-chat-workers/internal/workers/chat/suggest-query-templates"
)

var connectRetry = &resilience.RetryConfig{
	MaxRetries: 10,
	BaseDelay:  2 * time.Second,
	MaxDelay:   30 * time.Second,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "console").Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting chat worker manager...", zap.String("version", cfg.App.Version))

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}
	defer obs.Shutdown(context.Background())

	ctx := context.Background()

	// --- Zeebe ---
	zeebe, err := camunda.NewClientWithConfig(&camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		RetryConfig:            connectRetry,
	})
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- PostgreSQL ---
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		zapLog.Fatal("postgres init failed", zap.Error(err))
	}
	defer pg.Close()
	if err := resilience.Retry(ctx, connectRetry, "postgres ping", pg.Ping); err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	zapLog.Info("PostgreSQL connected successfully")

	// --- Redis result cache ---
	var execOpts []executor.Option
	var redis *database.RedisClient
	if cfg.Chat.Executor.CacheEnabled {
		redis = database.NewRedis(cfg.Database.Redis)
		defer redis.Close()
		if err := resilience.Retry(ctx, connectRetry, "redis ping", redis.Ping); err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		ttl := time.Duration(cfg.Chat.Executor.CacheTTLSeconds) * time.Second
		execOpts = append(execOpts, executor.WithCache(executor.NewRedisCache(redis.Client), ttl))
		zapLog.Info("Redis connected successfully")
	}

	// --- Template catalog ---
	cat, reg, err := buildCatalog(cfg.Chat.Templates)
	if err != nil {
		zapLog.Fatal("template catalog failed to compile", zap.Error(err))
	}
	categories := catalog.Categories
	if reg != nil {
		categories = reg.Categories()
		stats := reg.Stats()
		zapLog.Info("template catalog loaded",
			zap.Int("templates", stats.Total),
			zap.Int("categories", len(stats.Categories)),
		)
	}

	// --- Elasticsearch catalog index ---
	var hints mqt.HintSearcher
	var esClient *database.ElasticsearchClient
	if cfg.Chat.Index.Enabled {
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			zapLog.Fatal("elasticsearch init failed", zap.Error(err))
		}
		idx := catalogindex.New(esClient.Client, cfg.Chat.Index.Name, log)
		hints = idx
		go syncIndex(idx, cat, log)
	}

	// --- Chat components ---
	extractor := entity.NewExtractor(
		entity.WithGazetteer(entity.NewPostgresGazetteer(pg.DB)),
		entity.WithLogger(log),
	)
	m := matcher.New(cat, log,
		matcher.WithMinPriority(cfg.Chat.Matcher.MinPriority),
		matcher.WithMaxSuggestions(cfg.Chat.Matcher.MaxSuggestions),
		matcher.WithObservability(obs),
	)
	execOpts = append(execOpts,
		executor.WithBreaker(resilience.NewBreaker(resilience.BreakerConfig{
			Name:             "chat-executor",
			MaxFailures:      cfg.Chat.Executor.BreakerMaxFailures,
			Timeout:          config.GetDuration(cfg.Chat.Executor.BreakerTimeoutMs),
			HalfOpenRequests: 1,
		})),
		executor.WithObservability(obs),
	)
	exec := executor.New(pg.DB, executor.Config{
		MaxResults: cfg.Chat.Executor.MaxResults,
		Timeout:    config.GetDuration(cfg.Chat.Executor.TimeoutMs),
		CacheTTL:   time.Duration(cfg.Chat.Executor.CacheTTLSeconds) * time.Second,
	}, log, execOpts...)
	svc := pipeline.New(extractor, m, exec, log)

	// --- Workers ---
	workers := camunda.NewWorkerSet(zeebe.GetClient(), log)
	workers.Instrument(obs)

	workers.Start(ece.TaskType, config.GetWorkerConfig(cfg, ece.TaskType), ece.NewHandler(
		&ece.Config{
			Timeout:       workerTimeout(cfg, ece.TaskType),
			MaxTextLength: ece.LoadConfig().MaxTextLength,
		},
		extractor, log,
	))

	workers.Start(mqt.TaskType, config.GetWorkerConfig(cfg, mqt.TaskType), mqt.NewHandler(
		&mqt.Config{
			Timeout:   workerTimeout(cfg, mqt.TaskType),
			HintCount: mqt.LoadConfig().HintCount,
		},
		m, hints, log,
	))

	workers.Start(sqt.TaskType, config.GetWorkerConfig(cfg, sqt.TaskType), sqt.NewHandler(
		&sqt.Config{
			Timeout:        workerTimeout(cfg, sqt.TaskType),
			MaxSuggestions: cfg.Chat.Matcher.MaxSuggestions,
		},
		m, categories, log,
	))

	workers.Start(ecq.TaskType, config.GetWorkerConfig(cfg, ecq.TaskType), ecq.NewHandler(
		&ecq.Config{
			Timeout:         workerTimeout(cfg, ecq.TaskType),
			RateLimitPerSec: cfg.Chat.Executor.RateLimitPerSec,
			RateBurst:       cfg.Chat.Executor.RateBurst,
			RateWait:        ecq.LoadConfig().RateWait,
		},
		exec, log,
	))

	workers.Start(ans.TaskType, config.GetWorkerConfig(cfg, ans.TaskType), ans.NewHandler(
		&ans.Config{
			Timeout:          workerTimeout(cfg, ans.TaskType),
			ExecuteByDefault: true,
		},
		svc, log,
	))
	zapLog.Info("chat workers registered", zap.Strings("running", workers.Running()))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "healthy",
			"workers": workers.Running(),
			"time":    time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{}
		ready := true
		record := func(name string, err error) {
			if err != nil {
				checks[name] = err.Error()
				ready = false
				return
			}
			checks[name] = "ok"
		}
		record("zeebe", zeebe.HealthCheck(checkCtx))
		record("postgres", pg.Ping(checkCtx))
		if redis != nil {
			record("redis", redis.Ping(checkCtx))
		}
		if esClient != nil {
			record("elasticsearch", esClient.Ping(checkCtx))
		}
		if lazy, ok := cat.(*templates.Lazy); ok {
			_, err := lazy.Get()
			record("catalog", err)
		}

		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not ready"
		}
		writeJSON(w, status, map[string]interface{}{
			"status":   state,
			"checks":   checks,
			"postgres": pg.Stats(),
			"time":     time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/debug/pprof/", http.DefaultServeMux)

	server := &http.Server{Addr: cfg.Server.Address, Handler: mux}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	workers.Close()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

// buildCatalog compiles the registry up front when eager loading is on, so a
// bad pack stops the process at startup. Otherwise the returned registry is nil
// and the catalog compiles on first use.
func buildCatalog(cfg config.TemplatesConfig) (templates.Catalog, *templates.Registry, error) {
	var paths []string
	if cfg.ExtraPackPath != "" {
		paths = append(paths, cfg.ExtraPackPath)
	}

	if !cfg.EagerLoad {
		if len(paths) == 0 {
			return catalog.Default(), nil, nil
		}
		return catalog.WithPacks(paths...), nil, nil
	}

	reg, err := catalog.WithPacks(paths...).Get()
	if err != nil {
		return nil, nil, err
	}
	return reg, reg, nil
}

// syncIndex pushes the catalog into Elasticsearch in the background; hints are
// best effort so failures are only logged.
func syncIndex(idx *catalogindex.Index, cat templates.Catalog, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var src catalogindex.Source
	switch c := cat.(type) {
	case *templates.Registry:
		src = c
	case *templates.Lazy:
		reg, err := c.Get()
		if err != nil {
			log.Error("catalog index skipped", map[string]interface{}{"error": err.Error()})
			return
		}
		src = reg
	default:
		return
	}

	err := resilience.Retry(ctx, connectRetry, "catalog index", func(ctx context.Context) error {
		if err := idx.EnsureIndex(ctx); err != nil {
			return err
		}
		n, err := idx.IndexAll(ctx, src)
		if err != nil {
			return err
		}
		log.Info("catalog indexed", map[string]interface{}{"index": idx.Name(), "templates": n})
		return nil
	})
	if err != nil {
		log.Error("catalog index failed", map[string]interface{}{"error": err.Error()})
	}
}

func workerTimeout(cfg *config.Config, taskType string) time.Duration {
	return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
