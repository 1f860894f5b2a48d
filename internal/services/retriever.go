package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"alfredoptarigan/occupation-classifier/internal/models"
)

// CandidateRetriever ranks catalog entries against a query by exact cosine
// similarity over the embedding cache.
type CandidateRetriever struct {
	catalog  *Catalog
	cache    *EmbeddingCache
	embedder Embedder
}

func NewCandidateRetriever(catalog *Catalog, cache *EmbeddingCache, embedder Embedder) *CandidateRetriever {
	return &CandidateRetriever{
		catalog:  catalog,
		cache:    cache,
		embedder: embedder,
	}
}

// Search returns the min(topK, catalog size) entries most similar to query,
// highest first. Equal scores keep catalog order. The cache is built on the
// first call.
func (r *CandidateRetriever) Search(ctx context.Context, query string, topK int) ([]models.Candidate, error) {
	if topK < 1 {
		return nil, fmt.Errorf("%w: top_k must be at least 1, got %d", ErrValidation, topK)
	}

	snapshot, err := r.cache.EnsureBuilt(ctx)
	if err != nil {
		return nil, err
	}

	queryVec, err := r.embedder.Embed(ctx, query, EmbeddingModeQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to embed query: %w", ErrRetrieval, err)
	}

	if dim := snapshot.Dimensions(); dim > 0 && len(queryVec) != dim {
		return nil, fmt.Errorf("%w: query embedding has %d dimensions, catalog has %d",
			ErrRetrieval, len(queryVec), dim)
	}

	type scored struct {
		index int
		score float64
	}

	scores := make([]scored, snapshot.Len())
	for i, vec := range snapshot.Vectors {
		scores[i] = scored{index: i, score: CosineSimilarity(queryVec, vec)}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	if len(scores) > topK {
		scores = scores[:topK]
	}

	candidates := make([]models.Candidate, 0, len(scores))
	for _, s := range scores {
		entry := r.catalog.Entry(s.index)
		candidates = append(candidates, models.Candidate{
			Code:        entry.Code,
			Name:        entry.Name,
			Description: entry.Description,
			Similarity:  s.score,
		})
	}

	return candidates, nil
}

// CosineSimilarity returns (a·b)/(|a||b|), or 0 when either vector has zero
// norm or the lengths differ.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, na, nb float64
	for i := range a {
		fa := float64(a[i])
		fb := float64(b[i])
		dot += fa * fb
		na += fa * fa
		nb += fb * fb
	}
	if na == 0 || nb == 0 {
		return 0
	}

	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
