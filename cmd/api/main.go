package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"alfredoptarigan/occupation-classifier/internal/config"
	"alfredoptarigan/occupation-classifier/internal/handlers"
	"alfredoptarigan/occupation-classifier/internal/repositories"
	"alfredoptarigan/occupation-classifier/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := config.NewLogger(cfg.Server.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("❌ Invalid configuration", zap.Error(err))
	}
	logger.Info("✅ Config loaded successfully", zap.String("env", cfg.Server.Env))

	// Load catalog
	catalog, err := services.LoadCatalog(cfg.Catalog.Path, logger)
	if err != nil {
		logger.Fatal("❌ Failed to load occupation catalog", zap.Error(err))
	}

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(services.GeminiOptions{
		APIKey:          cfg.Gemini.APIKey,
		EmbeddingModel:  cfg.Gemini.EmbeddingModel,
		GenerationModel: cfg.Gemini.GenerationModel,
		Timeout:         cfg.Gemini.Timeout,
	}, logger)
	if err != nil {
		logger.Fatal("❌ Failed to initialize Gemini AI", zap.Error(err))
	}
	logger.Info("✅ Gemini AI initialized successfully",
		zap.String("generation_model", cfg.Gemini.GenerationModel),
		zap.String("embedding_model", cfg.Gemini.EmbeddingModel))

	// Initialize classifier
	classifier := services.NewClassifierFromProviders(catalog, geminiService, geminiService, services.ClassifierOptions{
		TopK:             cfg.Classifier.TopK,
		Temperature:      cfg.Gemini.Temperature,
		EmbedConcurrency: cfg.Classifier.EmbedConcurrency,
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Classifier.PrebuildEmbeddings {
		if err := classifier.Warmup(ctx); err != nil {
			logger.Fatal("❌ Failed to build catalog embeddings", zap.Error(err))
		}
	}
	logger.Info("✅ Classifier initialized", zap.Int("entries", catalog.Len()))

	// Optional classification history
	var (
		history        services.HistoryRecorder
		historyHandler *handlers.HistoryHandler
	)
	if cfg.History.Enabled {
		db, err := config.InitDatabase(cfg, logger)
		if err != nil {
			logger.Fatal("❌ Failed to initialize database", zap.Error(err))
		}
		repo := repositories.NewClassificationRepository(db)
		history = services.NewHistoryRecorder(repo, cfg.History.Concurrency, cfg.History.QueueSize, logger)
		history.Start(ctx)
		historyHandler = handlers.NewHistoryHandler(repo)
		logger.Info("✅ Classification history enabled")
	}

	// Initialize Handlers
	classifyHandler := handlers.NewClassifyHandler(classifier, history, cfg.Classifier.MaxInputLength, logger)
	healthHandler := handlers.NewHealthHandler(classifier)

	app := handlers.NewApp(handlers.AppOptions{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AccessLog:    true,
	}, classifyHandler, healthHandler, historyHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			logger.Error("❌ Server forced to shutdown", zap.Error(err))
		}
		if history != nil {
			history.Stop()
		}
		cancel()
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		logger.Fatal("❌ Failed to start server", zap.Error(err))
	}
}
