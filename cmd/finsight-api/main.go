package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finsight/finsight/internal/api"
	"github.com/finsight/finsight/internal/config"
	"github.com/finsight/finsight/internal/fewshot"
	"github.com/finsight/finsight/internal/insight"
	"github.com/finsight/finsight/internal/nl2sql"
	"github.com/finsight/finsight/internal/observability"
	"github.com/finsight/finsight/internal/pipeline"
	"github.com/finsight/finsight/internal/schema"
	"github.com/finsight/finsight/internal/store"
)

func main() {
	cfg, err := config.LoadFromEnv("finsight-api")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stdout)

	db, err := store.Open(context.Background(), store.Config{
		Driver:          cfg.Store.Driver,
		DSN:             cfg.Store.DSN,
		MaxOpenConns:    cfg.Store.MaxOpenConns,
		MaxIdleConns:    cfg.Store.MaxIdleConns,
		ConnMaxIdleTime: cfg.Store.ConnMaxIdleTime,
		ConnMaxLifetime: cfg.Store.ConnMaxLifetime,
	})
	if err != nil {
		logger.Error("failed to open store db", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	client, err := nl2sql.NewOpenAIClient(nl2sql.OpenAIConfig{
		BaseURL:     cfg.AI.BaseURL,
		APIKey:      cfg.AI.APIKey,
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		Timeout:     cfg.AI.Timeout,
	})
	if err != nil {
		logger.Error("failed to initialize model client", slog.Any("error", err))
		os.Exit(1)
	}

	examples := fewshot.Store()
	var selector fewshot.Selector
	switch cfg.Fewshot.Mode {
	case "semantic":
		embedder, err := fewshot.NewOpenAIEmbedder(fewshot.OpenAIEmbedderConfig{
			BaseURL: cfg.AI.BaseURL,
			APIKey:  cfg.AI.APIKey,
			Model:   cfg.AI.EmbeddingModel,
			Timeout: cfg.AI.Timeout,
		})
		if err != nil {
			logger.Error("failed to initialize embedder", slog.Any("error", err))
			os.Exit(1)
		}
		selector = fewshot.NewSemanticSelector(examples, embedder)
	default:
		selector = fewshot.NewStaticSelector(examples)
	}

	descriptor := schema.Default()
	builder := nl2sql.NewBuilder(descriptor)
	executor := store.NewExecutor(db)
	controller := pipeline.NewController(client, builder, selector, executor, logger, pipeline.Config{
		MaxRetries:  cfg.Pipeline.MaxRetries,
		MaxExamples: cfg.Fewshot.MaxExamples,
	})

	deps := api.Dependencies{
		Logger:     logger,
		Pipeline:   controller,
		Executor:   executor,
		Descriptor: descriptor,
		Examples:   examples,
		Readiness: api.CombineReadinessChecks(
			api.CheckStoreConfig(cfg),
			api.CheckAIConfig(cfg),
			db.PingContext,
		),
		DependencyTimeout: time.Second,
		QuestionTimeout:   cfg.Pipeline.QuestionTimeout,
	}
	if cfg.Insight.Enabled {
		deps.Summarizer = insight.NewSummarizer(client)
	}

	handler := api.NewHandler(cfg, deps)
	server := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting api server", slog.String("addr", cfg.HTTP.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down api server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		_ = server.Close()
		os.Exit(1)
	}
}
