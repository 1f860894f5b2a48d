package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/occupation-classifier/internal/config"
	"alfredoptarigan/occupation-classifier/internal/services"
)

var (
	verbose     bool
	catalogPath string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "occlass",
	Short: "Occupation classifier operator tool",
	Long: `occlass classifies free-text job descriptions into occupation codes
using the same retrieval + adjudication pipeline as the API server, and
bundles the catalog maintenance and Gemini diagnostic tasks.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if catalogPath != "" {
			cfg.Catalog.Path = catalogPath
		}

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		var err error
		logger, err = config.NewLogger(cfg.Server.Env, level)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog CSV path (overrides CATALOG_PATH)")

	rootCmd.AddCommand(classifyCmd, demoCmd, catalogCmd, convertEStatCmd, probeModelsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newGeminiService() (services.GeminiService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return services.NewGeminiService(services.GeminiOptions{
		APIKey:          cfg.Gemini.APIKey,
		EmbeddingModel:  cfg.Gemini.EmbeddingModel,
		GenerationModel: cfg.Gemini.GenerationModel,
		Timeout:         cfg.Gemini.Timeout,
	}, logger)
}

func newClassifier() (services.Classifier, error) {
	catalog, err := services.LoadCatalog(cfg.Catalog.Path, logger)
	if err != nil {
		return nil, err
	}

	gemini, err := newGeminiService()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini AI: %w", err)
	}

	return services.NewClassifierFromProviders(catalog, gemini, gemini, services.ClassifierOptions{
		TopK:             cfg.Classifier.TopK,
		Temperature:      cfg.Gemini.Temperature,
		EmbedConcurrency: cfg.Classifier.EmbedConcurrency,
	}, logger), nil
}
