package fewshot

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

// Selector picks up to k demonstration examples for a question. Returned
// slices are freshly allocated; implementations never mutate the store.
type Selector interface {
	Select(ctx context.Context, question string, k int) ([]Example, error)
}

// Embedder maps text to a fixed-dimension vector. Implementations are
// expected to be safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// StaticSelector returns the first k examples of its store, ignoring the
// question. Deterministic and stateless.
type StaticSelector struct {
	store []Example
}

func NewStaticSelector(store []Example) *StaticSelector {
	return &StaticSelector{store: store}
}

func (s *StaticSelector) Select(_ context.Context, _ string, k int) ([]Example, error) {
	if k < 0 {
		return nil, fmt.Errorf("negative example count %d", k)
	}
	if k > len(s.store) {
		k = len(s.store)
	}
	return append([]Example(nil), s.store[:k]...), nil
}

// SemanticSelector ranks examples by cosine similarity between the question
// embedding and each stored question's embedding. Store embeddings are
// cached after the first complete population; a failed population is not
// cached, so the next Select retries it.
type SemanticSelector struct {
	store    []Example
	embedder Embedder

	mu      sync.Mutex
	vectors [][]float64
}

func NewSemanticSelector(store []Example, embedder Embedder) *SemanticSelector {
	return &SemanticSelector{store: store, embedder: embedder}
}

func (s *SemanticSelector) Select(ctx context.Context, question string, k int) ([]Example, error) {
	if k < 0 {
		return nil, fmt.Errorf("negative example count %d", k)
	}
	if k == 0 || len(s.store) == 0 {
		return []Example{}, nil
	}
	vectors, err := s.ensureStoreVectors(ctx)
	if err != nil {
		return nil, err
	}

	questionVec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, len(s.store))
	for i := range s.store {
		ranked[i] = scored{index: i, score: cosineSimilarity(questionVec, vectors[i])}
	}
	// Stable sort keeps store order for equal scores.
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	selected := make([]Example, 0, k)
	for _, entry := range ranked[:k] {
		selected = append(selected, s.store[entry.index])
	}
	return selected, nil
}

// ensureStoreVectors returns the cached store embeddings, populating them
// on first use. Only a complete vector set is cached: a transient embedder
// failure surfaces to the caller and the next call starts over.
func (s *SemanticSelector) ensureStoreVectors(ctx context.Context) ([][]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.vectors != nil {
		return s.vectors, nil
	}
	vectors := make([][]float64, len(s.store))
	for i, example := range s.store {
		vec, err := s.embedder.Embed(ctx, example.Question)
		if err != nil {
			return nil, fmt.Errorf("embed example %d: %w", i, err)
		}
		vectors[i] = vec
	}
	s.vectors = vectors
	return s.vectors, nil
}

// cosineSimilarity is dot(a,b)/(|a||b|), 0 when either norm is 0 or the
// dimensions disagree.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
