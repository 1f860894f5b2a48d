package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/occupation-classifier/internal/services"
)

var (
	estatInput  string
	estatOutput string
	probeLimit  int
)

const probePrompt = "これは何ですか？: 消防車"

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the loaded occupation catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := services.LoadCatalog(cfg.Catalog.Path, logger)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "source: %s (%d entries)\n", catalog.Source(), catalog.Len())
		for _, e := range catalog.Entries() {
			fmt.Fprintf(out, "[%s] %s: %s\n", e.Code, e.Name, e.Description)
		}
		return nil
	},
}

var convertEStatCmd = &cobra.Command{
	Use:   "convert-estat",
	Short: "Convert an e-Stat occupation classification CSV to catalog format",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := convertEStatFile(estatInput, estatOutput)
		if err != nil {
			return err
		}

		logger.Info("✅ e-Stat catalog converted",
			zap.String("output", estatOutput),
			zap.Int("rows_read", stats.RowsRead),
			zap.Int("occupations", stats.RowsWritten),
			zap.Int("min_code_len", stats.MinCodeLen),
			zap.Int("max_code_len", stats.MaxCodeLen))
		return nil
	},
}

var probeModelsCmd = &cobra.Command{
	Use:   "probe-models",
	Short: "List Gemini models supporting generateContent and find one that answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		gemini, err := newGeminiService()
		if err != nil {
			return err
		}

		models, err := gemini.ListGenerativeModels(cmd.Context())
		if err != nil {
			return err
		}
		if len(models) == 0 {
			return fmt.Errorf("no models found that support generateContent")
		}

		out := cmd.OutOrStdout()
		for _, name := range models {
			fmt.Fprintf(out, "✓ %s\n", name)
		}

		recommended, err := probeModels(cmd, gemini, models)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n✅ Recommended model: %s\nSet GEMINI_GENERATION_MODEL=%s\n", recommended, recommended)
		return nil
	},
}

// convertEStatFile converts inPath into a catalog CSV at outPath, creating
// the output directory if needed.
func convertEStatFile(inPath, outPath string) (stats *services.ConversionStats, err error) {
	in, err := os.Open(filepath.Clean(inPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", inPath, err)
	}
	defer in.Close()

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	out, err := os.Create(filepath.Clean(outPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			stats, err = nil, fmt.Errorf("failed to close %s: %w", outPath, cerr)
		}
	}()

	return services.ConvertEStat(in, out)
}

// firstModels returns at most limit names from models.
func firstModels(models []string, limit int) ([]string, error) {
	if limit < 1 {
		return nil, fmt.Errorf("--limit must be at least 1, got %d", limit)
	}
	if len(models) > limit {
		models = models[:limit]
	}
	return models, nil
}

func probeModels(cmd *cobra.Command, gemini services.GeminiService, models []string) (string, error) {
	models, err := firstModels(models, probeLimit)
	if err != nil {
		return "", err
	}
	for _, name := range models {
		text, err := gemini.GenerateText(cmd.Context(), name, probePrompt)
		if err != nil {
			logger.Warn("✗ Model probe failed", zap.String("model", name), zap.Error(err))
			continue
		}
		logger.Info("✓ Model answered", zap.String("model", name), zap.Int("chars", len(text)))
		return name, nil
	}
	return "", fmt.Errorf("could not find a working model among %d candidates", len(models))
}

func init() {
	convertEStatCmd.Flags().StringVar(&estatInput, "in", "estat/FEK_download.csv", "e-Stat download CSV")
	convertEStatCmd.Flags().StringVar(&estatOutput, "out", "data/occupation.csv", "catalog CSV to write")
	probeModelsCmd.Flags().IntVar(&probeLimit, "limit", 3, "number of models to try")
}
