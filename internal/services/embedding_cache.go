package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// EmbeddingSnapshot holds one vector per catalog entry, aligned by index.
// A published snapshot is never mutated.
type EmbeddingSnapshot struct {
	Texts   []string
	Vectors [][]float32
}

func (s *EmbeddingSnapshot) Len() int {
	return len(s.Vectors)
}

// Dimensions returns the vector length shared by every entry.
func (s *EmbeddingSnapshot) Dimensions() int {
	if len(s.Vectors) == 0 {
		return 0
	}
	return len(s.Vectors[0])
}

// EmbeddingCache lazily embeds the catalog once per process. Concurrent first
// callers share a single build; a failed build publishes nothing.
type EmbeddingCache struct {
	catalog     *Catalog
	embedder    Embedder
	concurrency int
	logger      *zap.Logger

	snapshot atomic.Pointer[EmbeddingSnapshot]
	group    singleflight.Group
	builds   atomic.Int64
}

func NewEmbeddingCache(catalog *Catalog, embedder Embedder, concurrency int, logger *zap.Logger) *EmbeddingCache {
	if concurrency < 1 {
		concurrency = 1
	}
	return &EmbeddingCache{
		catalog:     catalog,
		embedder:    embedder,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Ready reports whether the cache has been built.
func (c *EmbeddingCache) Ready() bool {
	return c.snapshot.Load() != nil
}

// BuildCount is the number of successful builds. It never exceeds one.
func (c *EmbeddingCache) BuildCount() int64 {
	return c.builds.Load()
}

// EnsureBuilt returns the cached snapshot, building it first if needed.
func (c *EmbeddingCache) EnsureBuilt(ctx context.Context) (*EmbeddingSnapshot, error) {
	if s := c.snapshot.Load(); s != nil {
		return s, nil
	}

	v, err, _ := c.group.Do("build", func() (interface{}, error) {
		if s := c.snapshot.Load(); s != nil {
			return s, nil
		}

		s, err := c.build(ctx)
		if err != nil {
			return nil, err
		}

		c.snapshot.Store(s)
		c.builds.Add(1)
		return s, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*EmbeddingSnapshot), nil
}

// build embeds every entry into a private buffer and returns it only when
// every call succeeded.
func (c *EmbeddingCache) build(ctx context.Context) (*EmbeddingSnapshot, error) {
	n := c.catalog.Len()
	started := time.Now()
	c.logger.Info("🔄 Building catalog embeddings", zap.Int("entries", n), zap.Int("concurrency", c.concurrency))

	texts := make([]string, n)
	vectors := make([][]float32, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i := 0; i < n; i++ {
		entry := c.catalog.Entry(i)
		texts[i] = entry.EmbeddingText()
		text := texts[i]

		g.Go(func() error {
			vec, err := c.embedder.Embed(gctx, text, EmbeddingModeDocument)
			if err != nil {
				return fmt.Errorf("%w: failed to embed catalog entry %s: %w", ErrEmbedding, entry.Code, err)
			}
			vectors[i] = vec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.logger.Error("❌ Catalog embedding build failed", zap.Error(err))
		return nil, err
	}

	if n > 0 {
		dim := len(vectors[0])
		for i, vec := range vectors {
			if len(vec) != dim {
				return nil, fmt.Errorf("%w: entry %s has %d dimensions, want %d",
					ErrEmbedding, c.catalog.Entry(i).Code, len(vec), dim)
			}
		}
	}

	c.logger.Info("✅ Catalog embeddings ready",
		zap.Int("entries", n),
		zap.Duration("elapsed", time.Since(started)))

	return &EmbeddingSnapshot{Texts: texts, Vectors: vectors}, nil
}
