package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"alfredoptarigan/occupation-classifier/internal/models"
)

var errProvider = errors.New("provider unavailable")

// occupationKeywords gives each vector dimension one keyword; the value is the
// keyword's occurrence count in the text.
var occupationKeywords = []string{
	"消防", "火", "警察", "調理", "プログラ", "介護", "教", "農", "看護",
	"医", "販売", "事務", "建築", "製造", "運転", "会計", "管理",
}

type fakeEmbedder struct {
	mu      sync.Mutex
	vectors map[string][]float32
	calls   map[EmbeddingMode]int
	texts   []string
	failOn  string
	delay   time.Duration
}

func newKeywordEmbedder() *fakeEmbedder {
	return &fakeEmbedder{calls: make(map[EmbeddingMode]int)}
}

func newMapEmbedder(vectors map[string][]float32) *fakeEmbedder {
	return &fakeEmbedder{vectors: vectors, calls: make(map[EmbeddingMode]int)}
}

func (e *fakeEmbedder) Embed(ctx context.Context, text string, mode EmbeddingMode) ([]float32, error) {
	e.mu.Lock()
	e.calls[mode]++
	e.texts = append(e.texts, text)
	failOn := e.failOn
	e.mu.Unlock()

	if e.delay > 0 {
		time.Sleep(e.delay)
	}
	if failOn != "" && strings.Contains(text, failOn) {
		return nil, errProvider
	}

	if e.vectors != nil {
		vec, ok := e.vectors[text]
		if !ok {
			return nil, errors.New("no vector for " + text)
		}
		return vec, nil
	}

	vec := make([]float32, len(occupationKeywords))
	for i, kw := range occupationKeywords {
		vec[i] = float32(strings.Count(text, kw))
	}
	return vec, nil
}

func (e *fakeEmbedder) setFailOn(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failOn = s
}

func (e *fakeEmbedder) callCount(mode EmbeddingMode) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls[mode]
}

func (e *fakeEmbedder) totalCalls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	total := 0
	for _, n := range e.calls {
		total += n
	}
	return total
}

var firstCandidateLine = regexp.MustCompile(`- コード: ([^,]+), 名称: ([^,]+),`)

// fakeGenerator returns response verbatim, or with pickFirst answers with the
// first candidate listed in the prompt.
type fakeGenerator struct {
	mu              sync.Mutex
	response        string
	err             error
	pickFirst       bool
	calls           int
	lastPrompt      string
	lastSchema      *genai.Schema
	lastTemperature float32
}

func (g *fakeGenerator) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, temperature float32) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.lastPrompt = prompt
	g.lastSchema = schema
	g.lastTemperature = temperature

	if g.err != nil {
		return "", g.err
	}
	if g.pickFirst {
		m := firstCandidateLine.FindStringSubmatch(prompt)
		if m == nil {
			return "{}", nil
		}
		return `{"code":"` + m[1] + `","name":"` + m[2] + `","reason":"候補の中で最も近い職業です"}`, nil
	}
	return g.response, nil
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func testCatalog(entries ...models.OccupationEntry) *Catalog {
	return NewCatalog(entries, "test")
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}
