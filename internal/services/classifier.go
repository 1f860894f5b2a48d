package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/occupation-classifier/internal/models"
)

// DefaultTopK is the number of candidates handed to the adjudicator.
const DefaultTopK = 5

type ClassifierStatus struct {
	Initialized     bool
	Entries         int
	EmbeddingsReady bool
	CatalogSource   string
}

type Classifier interface {
	Classify(ctx context.Context, userInput string) (*models.ClassificationResult, error)
	Warmup(ctx context.Context) error
	Status() ClassifierStatus
}

type classifierService struct {
	catalog     *Catalog
	cache       *EmbeddingCache
	retriever   *CandidateRetriever
	adjudicator *DecisionAdjudicator
	topK        int
	logger      *zap.Logger
	now         func() time.Time
}

func NewClassifierService(
	catalog *Catalog,
	cache *EmbeddingCache,
	retriever *CandidateRetriever,
	adjudicator *DecisionAdjudicator,
	topK int,
	logger *zap.Logger,
) Classifier {
	if topK < 1 {
		topK = DefaultTopK
	}
	return &classifierService{
		catalog:     catalog,
		cache:       cache,
		retriever:   retriever,
		adjudicator: adjudicator,
		topK:        topK,
		logger:      logger,
		now:         time.Now,
	}
}

// NewClassifierFromProviders wires the full pipeline around one catalog and
// the two provider capabilities.
func NewClassifierFromProviders(
	catalog *Catalog,
	embedder Embedder,
	generator Generator,
	opts ClassifierOptions,
	logger *zap.Logger,
) Classifier {
	cache := NewEmbeddingCache(catalog, embedder, opts.EmbedConcurrency, logger)
	retriever := NewCandidateRetriever(catalog, cache, embedder)
	adjudicator := NewDecisionAdjudicator(generator, opts.Temperature, logger)
	return NewClassifierService(catalog, cache, retriever, adjudicator, opts.TopK, logger)
}

type ClassifierOptions struct {
	TopK             int
	Temperature      float32
	EmbedConcurrency int
}

// Classify runs retrieval and then adjudication for one input. Any failure
// aborts the whole request; no partial result is returned.
func (s *classifierService) Classify(ctx context.Context, userInput string) (*models.ClassificationResult, error) {
	if s.catalog == nil || s.catalog.Len() == 0 {
		return nil, &ClassificationError{Stage: StageValidation, Err: ErrNotInitialized}
	}

	if strings.TrimSpace(userInput) == "" {
		return nil, &ClassificationError{
			Stage: StageValidation,
			Err:   fmt.Errorf("%w: user_input must not be empty", ErrValidation),
		}
	}

	// Step 1: Retrieval
	candidates, err := s.retriever.Search(ctx, userInput, s.topK)
	if err != nil {
		s.logger.Error("❌ Candidate retrieval failed", zap.Error(err))
		return nil, &ClassificationError{Stage: StageRetrieval, Err: err}
	}

	// Step 2: Adjudication
	decision, err := s.adjudicator.Decide(ctx, userInput, candidates)
	if err != nil {
		s.logger.Error("❌ Adjudication failed", zap.Error(err))
		return nil, &ClassificationError{Stage: StageAdjudication, Err: err}
	}

	result := &models.ClassificationResult{
		ID:           uuid.New(),
		Code:         decision.Code,
		Name:         decision.Name,
		Reason:       decision.Reason,
		Candidates:   candidates,
		UserInput:    userInput,
		InCandidates: decision.InCandidates,
		ClassifiedAt: s.now(),
	}

	s.logger.Info("✅ Classification completed",
		zap.String("id", result.ID.String()),
		zap.String("code", result.Code),
		zap.String("name", result.Name),
		zap.Bool("in_candidates", result.InCandidates))

	return result, nil
}

// Warmup builds the embedding cache ahead of the first request.
func (s *classifierService) Warmup(ctx context.Context) error {
	if s.catalog == nil || s.catalog.Len() == 0 {
		return ErrNotInitialized
	}
	_, err := s.cache.EnsureBuilt(ctx)
	return err
}

func (s *classifierService) Status() ClassifierStatus {
	if s.catalog == nil {
		return ClassifierStatus{}
	}
	return ClassifierStatus{
		Initialized:     s.catalog.Len() > 0,
		Entries:         s.catalog.Len(),
		EmbeddingsReady: s.cache.Ready(),
		CatalogSource:   s.catalog.Source(),
	}
}
