package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassifier(catalog *Catalog, embedder Embedder, generator Generator) Classifier {
	return NewClassifierFromProviders(catalog, embedder, generator, ClassifierOptions{
		TopK:             DefaultTopK,
		Temperature:      DefaultTemperature,
		EmbedConcurrency: 4,
	}, nopLogger())
}

func TestClassifier_FireTruckEndToEnd(t *testing.T) {
	embedder := newKeywordEmbedder()
	generator := &fakeGenerator{pickFirst: true}
	classifier := newTestClassifier(FallbackCatalog(), embedder, generator)

	fixed := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	classifier.(*classifierService).now = func() time.Time { return fixed }

	input := "消防車に乗って火を消す仕事"
	result, err := classifier.Classify(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "32", result.Code)
	assert.Equal(t, "保安職業従事者", result.Name)
	assert.NotEmpty(t, result.Reason)
	assert.Equal(t, input, result.UserInput)
	assert.True(t, result.InCandidates)
	assert.NotEqual(t, uuid.Nil, result.ID)
	assert.Equal(t, fixed, result.ClassifiedAt)

	require.Len(t, result.Candidates, DefaultTopK)
	assert.Equal(t, "32", result.Candidates[0].Code)
	assert.Greater(t, result.Candidates[0].Similarity, result.Candidates[1].Similarity)
	for i := 1; i < len(result.Candidates); i++ {
		assert.GreaterOrEqual(t, result.Candidates[i-1].Similarity, result.Candidates[i].Similarity)
	}

	assert.Equal(t, 1, embedder.callCount(EmbeddingModeQuery))
	assert.Equal(t, 16, embedder.callCount(EmbeddingModeDocument))
	assert.Equal(t, 1, generator.callCount())
}

func TestClassifier_ReusesCacheAcrossRequests(t *testing.T) {
	embedder := newKeywordEmbedder()
	classifier := newTestClassifier(FallbackCatalog(), embedder, &fakeGenerator{pickFirst: true})

	for _, input := range []string{"介護施設で働いています", "農家です"} {
		_, err := classifier.Classify(context.Background(), input)
		require.NoError(t, err)
	}

	assert.Equal(t, 16, embedder.callCount(EmbeddingModeDocument))
	assert.Equal(t, 2, embedder.callCount(EmbeddingModeQuery))
	assert.True(t, classifier.Status().EmbeddingsReady)
}

func TestClassifier_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		embedder := newKeywordEmbedder()
		generator := &fakeGenerator{pickFirst: true}
		classifier := newTestClassifier(FallbackCatalog(), embedder, generator)

		result, err := classifier.Classify(context.Background(), input)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrValidation)

		var classErr *ClassificationError
		require.True(t, errors.As(err, &classErr))
		assert.Equal(t, StageValidation, classErr.Stage)

		assert.Zero(t, embedder.totalCalls())
		assert.Zero(t, generator.callCount())
	}
}

func TestClassifier_NotInitialized(t *testing.T) {
	classifier := newTestClassifier(testCatalog(), newKeywordEmbedder(), &fakeGenerator{pickFirst: true})

	_, err := classifier.Classify(context.Background(), "消防士")
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, classifier.Warmup(context.Background()), ErrNotInitialized)
	assert.False(t, classifier.Status().Initialized)
}

func TestClassifier_StageErrors(t *testing.T) {
	t.Run("embedding", func(t *testing.T) {
		embedder := newKeywordEmbedder()
		embedder.setFailOn("管理的職業従事者")
		classifier := newTestClassifier(FallbackCatalog(), embedder, &fakeGenerator{pickFirst: true})

		_, err := classifier.Classify(context.Background(), "消防士")
		var classErr *ClassificationError
		require.True(t, errors.As(err, &classErr))
		assert.Equal(t, StageRetrieval, classErr.Stage)
		assert.ErrorIs(t, err, ErrEmbedding)
		assert.True(t, IsProviderError(err))
		assert.False(t, classifier.Status().EmbeddingsReady)
	})

	t.Run("adjudication", func(t *testing.T) {
		classifier := newTestClassifier(FallbackCatalog(), newKeywordEmbedder(), &fakeGenerator{err: errProvider})

		result, err := classifier.Classify(context.Background(), "消防士")
		assert.Nil(t, result)
		var classErr *ClassificationError
		require.True(t, errors.As(err, &classErr))
		assert.Equal(t, StageAdjudication, classErr.Stage)
		assert.ErrorIs(t, err, ErrAdjudication)
		assert.False(t, IsProviderError(err))
		assert.False(t, IsClientError(err))
	})

	t.Run("malformed decision", func(t *testing.T) {
		classifier := newTestClassifier(FallbackCatalog(), newKeywordEmbedder(), &fakeGenerator{response: "not json"})

		_, err := classifier.Classify(context.Background(), "消防士")
		assert.ErrorIs(t, err, ErrAdjudication)
	})
}

func TestClassifier_WarmupAndStatus(t *testing.T) {
	embedder := newKeywordEmbedder()
	classifier := newTestClassifier(FallbackCatalog(), embedder, &fakeGenerator{pickFirst: true})

	status := classifier.Status()
	assert.True(t, status.Initialized)
	assert.Equal(t, 16, status.Entries)
	assert.False(t, status.EmbeddingsReady)
	assert.Equal(t, fallbackSource, status.CatalogSource)

	require.NoError(t, classifier.Warmup(context.Background()))
	require.NoError(t, classifier.Warmup(context.Background()))
	assert.True(t, classifier.Status().EmbeddingsReady)
	assert.Equal(t, 16, embedder.callCount(EmbeddingModeDocument))
}
