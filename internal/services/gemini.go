package services

import (
	"context"
	"fmt"
	"slices"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type EmbeddingMode string

const (
	EmbeddingModeDocument EmbeddingMode = "document"
	EmbeddingModeQuery    EmbeddingMode = "query"
)

// Embedder turns text into an embedding vector. Documents and queries are
// encoded asymmetrically, so callers must pass the right mode.
type Embedder interface {
	Embed(ctx context.Context, text string, mode EmbeddingMode) ([]float32, error)
}

// Generator produces schema-constrained JSON text for a prompt.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, temperature float32) (string, error)
}

type GeminiService interface {
	Embedder
	Generator
	GenerateText(ctx context.Context, model, prompt string) (string, error)
	ListGenerativeModels(ctx context.Context) ([]string, error)
	GenerationModel() string
}

type GeminiOptions struct {
	APIKey          string
	EmbeddingModel  string
	GenerationModel string
	Timeout         time.Duration
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
	timeout    time.Duration
	logger     *zap.Logger
}

const maxEmbeddingInput = 40000

func NewGeminiService(opts GeminiOptions, logger *zap.Logger) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	svc := &geminiService{
		client:     client,
		modelName:  opts.GenerationModel,
		embedModel: opts.EmbeddingModel,
		timeout:    opts.Timeout,
		logger:     logger,
	}
	if svc.modelName == "" {
		svc.modelName = "gemini-2.0-flash"
	}
	if svc.embedModel == "" {
		svc.embedModel = "text-embedding-004"
	}
	if svc.timeout <= 0 {
		svc.timeout = 30 * time.Second
	}

	return svc, nil
}

func (g *geminiService) GenerationModel() string {
	return g.modelName
}

// Embed implements Embedder.
func (g *geminiService) Embed(ctx context.Context, text string, mode EmbeddingMode) ([]float32, error) {
	if len(text) > maxEmbeddingInput {
		cut := maxEmbeddingInput
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), &genai.EmbedContentConfig{
		TaskType: taskType(mode),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

func taskType(mode EmbeddingMode) string {
	if mode == EmbeddingModeQuery {
		return "RETRIEVAL_QUERY"
	}
	return "RETRIEVAL_DOCUMENT"
}

// GenerateJSON implements Generator.
func (g *geminiService) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, temperature float32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  1024,
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		g.logger.Warn("❌ No text content in Gemini response",
			zap.String("model", g.modelName),
			zap.Int("candidates", len(resp.Candidates)))
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

// GenerateText sends a plain prompt to an explicit model. Used by the model probe.
func (g *geminiService) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate text with %s: %w", model, err)
	}
	if resp == nil || resp.Text() == "" {
		return "", fmt.Errorf("no text content from %s", model)
	}

	return resp.Text(), nil
}

// ListGenerativeModels returns the names of models that support generateContent.
func (g *geminiService) ListGenerativeModels(ctx context.Context) ([]string, error) {
	var names []string
	for model, err := range g.client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
		if slices.Contains(model.SupportedActions, "generateContent") {
			names = append(names, model.Name)
		}
	}
	return names, nil
}
