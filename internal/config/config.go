package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const placeholderAPIKey = "your_gemini_api_key_here"

type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Gemini     GeminiConfig
	Catalog    CatalogConfig
	Classifier ClassifierConfig
	CORS       CORSConfig
	Database   DatabaseConfig
	History    HistoryConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type LogConfig struct {
	Level string
}

type GeminiConfig struct {
	APIKey          string
	EmbeddingModel  string
	GenerationModel string
	Temperature     float32
	Timeout         time.Duration
}

type CatalogConfig struct {
	Path string
}

type ClassifierConfig struct {
	TopK               int
	MaxInputLength     int
	EmbedConcurrency   int
	PrebuildEmbeddings bool
}

type CORSConfig struct {
	AllowOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type HistoryConfig struct {
	Enabled     bool
	Concurrency int
	QueueSize   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8000"),
			Env:  getEnv("ENV", "development"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Gemini: GeminiConfig{
			APIKey:          getEnv("GEMINI_API_KEY", ""),
			EmbeddingModel:  getEnv("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
			GenerationModel: getEnv("GEMINI_GENERATION_MODEL", "gemini-2.0-flash"),
			Temperature:     getEnvAsFloat32("GEMINI_TEMPERATURE", 0.3),
			Timeout:         getEnvAsDuration("GEMINI_TIMEOUT", "30s"),
		},
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", ""),
		},
		Classifier: ClassifierConfig{
			TopK:               getEnvAsInt("CLASSIFIER_TOP_K", 5),
			MaxInputLength:     getEnvAsInt("MAX_INPUT_LENGTH", 500),
			EmbedConcurrency:   getEnvAsInt("EMBED_CONCURRENCY", 4),
			PrebuildEmbeddings: getEnvAsBool("PREBUILD_EMBEDDINGS", true),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS", []string{
				"http://localhost:3000",
				"http://frontend:3000",
				"http://127.0.0.1:3000",
			}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "occupation_classifier"),
		},
		History: HistoryConfig{
			Enabled:     getEnvAsBool("HISTORY_ENABLED", false),
			Concurrency: getEnvAsInt("HISTORY_WORKER_CONCURRENCY", 2),
			QueueSize:   getEnvAsInt("HISTORY_QUEUE_SIZE", 100),
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Gemini.APIKey == "" || c.Gemini.APIKey == placeholderAPIKey {
		errs = append(errs, errors.New("GEMINI_API_KEY is not set"))
	}
	if c.Classifier.TopK < 1 {
		errs = append(errs, fmt.Errorf("CLASSIFIER_TOP_K must be at least 1, got %d", c.Classifier.TopK))
	}
	if c.Classifier.MaxInputLength < 1 {
		errs = append(errs, fmt.Errorf("MAX_INPUT_LENGTH must be at least 1, got %d", c.Classifier.MaxInputLength))
	}
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		errs = append(errs, fmt.Errorf("GEMINI_TEMPERATURE must be within [0, 2], got %v", c.Gemini.Temperature))
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Env, "production")
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
