package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "LOG_LEVEL", "GEMINI_API_KEY", "GEMINI_EMBEDDING_MODEL",
		"GEMINI_GENERATION_MODEL", "GEMINI_TEMPERATURE", "GEMINI_TIMEOUT", "CATALOG_PATH",
		"CLASSIFIER_TOP_K", "MAX_INPUT_LENGTH", "EMBED_CONCURRENCY", "PREBUILD_EMBEDDINGS",
		"CORS_ALLOW_ORIGINS", "HISTORY_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "text-embedding-004", cfg.Gemini.EmbeddingModel)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.GenerationModel)
	assert.Equal(t, float32(0.3), cfg.Gemini.Temperature)
	assert.Equal(t, 30*time.Second, cfg.Gemini.Timeout)
	assert.Empty(t, cfg.Catalog.Path)
	assert.Equal(t, 5, cfg.Classifier.TopK)
	assert.Equal(t, 500, cfg.Classifier.MaxInputLength)
	assert.True(t, cfg.Classifier.PrebuildEmbeddings)
	assert.Len(t, cfg.CORS.AllowOrigins, 3)
	assert.False(t, cfg.History.Enabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_TEMPERATURE", "0.7")
	t.Setenv("GEMINI_TIMEOUT", "5s")
	t.Setenv("CATALOG_PATH", "data/occupation.csv")
	t.Setenv("CLASSIFIER_TOP_K", "8")
	t.Setenv("PREBUILD_EMBEDDINGS", "false")
	t.Setenv("CORS_ALLOW_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("HISTORY_ENABLED", "true")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
	assert.InDelta(t, 0.7, cfg.Gemini.Temperature, 1e-6)
	assert.Equal(t, 5*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, "data/occupation.csv", cfg.Catalog.Path)
	assert.Equal(t, 8, cfg.Classifier.TopK)
	assert.False(t, cfg.Classifier.PrebuildEmbeddings)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowOrigins)
	assert.True(t, cfg.History.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("CLASSIFIER_TOP_K", "five")
	t.Setenv("GEMINI_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 5, cfg.Classifier.TopK)
	assert.Equal(t, 30*time.Second, cfg.Gemini.Timeout)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Gemini:     GeminiConfig{APIKey: "key", Temperature: 0.3},
			Classifier: ClassifierConfig{TopK: 5, MaxInputLength: 500},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing key", func(c *Config) { c.Gemini.APIKey = "" }, "GEMINI_API_KEY"},
		{"placeholder key", func(c *Config) { c.Gemini.APIKey = placeholderAPIKey }, "GEMINI_API_KEY"},
		{"top_k", func(c *Config) { c.Classifier.TopK = 0 }, "CLASSIFIER_TOP_K"},
		{"max input", func(c *Config) { c.Classifier.MaxInputLength = -1 }, "MAX_INPUT_LENGTH"},
		{"temperature", func(c *Config) { c.Gemini.Temperature = 2.5 }, "GEMINI_TEMPERATURE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	assert.Contains(t, err.Error(), "CLASSIFIER_TOP_K")
	assert.Contains(t, err.Error(), "MAX_INPUT_LENGTH")
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", DBName: "occ",
	}}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=occ sslmode=disable", cfg.GetDatabaseDSN())
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("production", "warn")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	logger, err = NewLogger("development", "loud")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
