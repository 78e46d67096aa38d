package vector

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/finchlabs/finchbot/internal/core"
	"github.com/finchlabs/finchbot/pkg/log"
	"github.com/finchlabs/finchbot/pkg/retry"
)

// minChunkRunes filters out chunks too short to carry meaning.
const minChunkRunes = 10

// ChunkRecord is an embedded retrieval unit. Immutable once stored.
type ChunkRecord struct {
	Text   string
	Vector []float32
}

// Store holds embedded chunks and answers brute-force top-k cosine queries.
// Ingestion builds a full record list off to the side and swaps it in
// atomically, so concurrent queries never observe a half-built store.
type Store struct {
	mu       sync.RWMutex
	records  []ChunkRecord
	embedder core.Embedder
	retrier  *retry.Retrier
}

func NewStore(embedder core.Embedder) *Store {
	return &Store{
		embedder: embedder,
		retrier:  retry.NewDefaultRetrier(),
	}
}

// Ingest embeds every chunk longer than minChunkRunes (after trimming) and
// replaces the store contents wholesale. On any embedding failure the previous
// contents stay visible; nothing partial is ever published.
func (s *Store) Ingest(ctx context.Context, chunks []string) error {
	logger := log.FromCtx(ctx)

	next := make([]ChunkRecord, 0, len(chunks))
	var dim int
	for _, chunk := range chunks {
		if utf8.RuneCountInString(strings.TrimSpace(chunk)) <= minChunkRunes {
			continue
		}

		var vec []float32
		err := s.retrier.Do(ctx, func() error {
			var embedErr error
			vec, embedErr = s.embedder.Embed(ctx, chunk)
			if errors.Is(embedErr, core.ErrUnauthorized) {
				return retry.Permanent(embedErr)
			}
			return embedErr
		})
		if err != nil {
			return fmt.Errorf("ingest chunk %d: %w", len(next), err)
		}

		if dim == 0 {
			dim = len(vec)
		} else if len(vec) != dim {
			return fmt.Errorf("ingest chunk %d: %w: %d vs %d", len(next), ErrDimensionMismatch, len(vec), dim)
		}

		next = append(next, ChunkRecord{Text: chunk, Vector: vec})
	}

	s.mu.Lock()
	s.records = next
	s.mu.Unlock()

	logger.Info().Int("chunks", len(next)).Int("skipped", len(chunks)-len(next)).Msg("knowledge base ingested")
	return nil
}

// Query returns the texts of the k most similar chunks, best first, ties kept
// in insertion order. Retrieval is optional enrichment: an empty store or a
// failed embedding yields an empty result, never an error.
func (s *Store) Query(ctx context.Context, text string, k int) []string {
	logger := log.FromCtx(ctx)

	// Records are immutable after the swap, so holding only the slice
	// header outside the lock is safe.
	s.mu.RLock()
	records := s.records
	s.mu.RUnlock()

	if len(records) == 0 || k <= 0 {
		return nil
	}

	queryVec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		logger.Warn().Err(err).Msg("query embedding failed, skipping retrieval")
		return nil
	}

	type scored struct {
		index int
		score float64
	}
	results := make([]scored, 0, len(records))
	for i, rec := range records {
		score, err := CosineSimilarity(queryVec, rec.Vector)
		if err != nil {
			logger.Error().Err(err).Int("chunk", i).Msg("similarity computation failed")
			return nil
		}
		results = append(results, scored{index: i, score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if k > len(results) {
		k = len(results)
	}
	texts := make([]string, 0, k)
	for _, r := range results[:k] {
		texts = append(texts, records[r.index].Text)
	}
	return texts
}

// Len reports the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
