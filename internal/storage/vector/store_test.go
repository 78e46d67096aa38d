package vector

import (
	"context"
	"errors"
	"testing"

	"github.com/finchlabs/finchbot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEmbedder maps known texts to fixed vectors.
type mockEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if vec, ok := m.vectors[text]; ok {
		return vec, nil
	}
	return []float32{1, 0, 0}, nil
}

const (
	chunkA = "alpha alpha alpha alpha"
	chunkB = "bravo bravo bravo bravo"
	chunkC = "charlie charlie charlie"
)

func newPopulatedStore(t *testing.T) (*Store, *mockEmbedder) {
	t.Helper()
	emb := &mockEmbedder{vectors: map[string][]float32{
		chunkA: {1, 0, 0},
		chunkB: {0, 1, 0},
		chunkC: {0.9, 0.1, 0},
	}}
	store := NewStore(emb)
	require.NoError(t, store.Ingest(context.Background(), []string{chunkA, chunkB, chunkC}))
	return store, emb
}

func TestStore_IngestSkipsShortChunks(t *testing.T) {
	emb := &mockEmbedder{vectors: map[string][]float32{chunkA: {1, 0, 0}}}
	store := NewStore(emb)

	err := store.Ingest(context.Background(), []string{"tiny", "   padded   ", chunkA})
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, emb.calls, "short chunks must not reach the embedder")
}

func TestStore_QueryRanking(t *testing.T) {
	store, emb := newPopulatedStore(t)
	emb.vectors["query"] = []float32{1, 0, 0}

	got := store.Query(context.Background(), "query", 2)
	assert.Equal(t, []string{chunkA, chunkC}, got)
}

func TestStore_QueryReturnsMinKN(t *testing.T) {
	store, emb := newPopulatedStore(t)
	emb.vectors["query"] = []float32{1, 0, 0}

	assert.Len(t, store.Query(context.Background(), "query", 10), 3)
	assert.Len(t, store.Query(context.Background(), "query", 1), 1)
	assert.Empty(t, store.Query(context.Background(), "query", 0))
}

func TestStore_QueryStableOnTies(t *testing.T) {
	emb := &mockEmbedder{vectors: map[string][]float32{
		chunkA:  {1, 0, 0},
		chunkB:  {1, 0, 0},
		chunkC:  {1, 0, 0},
		"query": {1, 0, 0},
	}}
	store := NewStore(emb)
	require.NoError(t, store.Ingest(context.Background(), []string{chunkA, chunkB, chunkC}))

	got := store.Query(context.Background(), "query", 3)
	assert.Equal(t, []string{chunkA, chunkB, chunkC}, got, "ties must keep insertion order")
}

func TestStore_QueryEmptyStore(t *testing.T) {
	store := NewStore(&mockEmbedder{})
	assert.Empty(t, store.Query(context.Background(), "anything", 3))
}

func TestStore_QueryEmbedFailureDegrades(t *testing.T) {
	store, emb := newPopulatedStore(t)
	emb.err = errors.New("network down")

	assert.Empty(t, store.Query(context.Background(), "query", 3))
}

func TestStore_QueryDimensionMismatchFailsLoudly(t *testing.T) {
	store, emb := newPopulatedStore(t)
	emb.vectors["query"] = []float32{1, 0}

	// Mismatched dimensions abort the query but never panic.
	assert.Empty(t, store.Query(context.Background(), "query", 3))
}

func TestStore_IngestFailureKeepsPreviousContents(t *testing.T) {
	store, emb := newPopulatedStore(t)
	require.Equal(t, 3, store.Len())

	// Unauthorized is permanent, so the retrier gives up immediately.
	emb.err = core.ErrUnauthorized
	err := store.Ingest(context.Background(), []string{chunkA, chunkB})
	require.Error(t, err)
	assert.Equal(t, 3, store.Len(), "failed ingest must not clobber the live store")
}

func TestStore_IngestRejectsMixedDimensions(t *testing.T) {
	emb := &mockEmbedder{vectors: map[string][]float32{
		chunkA: {1, 0, 0},
		chunkB: {0, 1},
	}}
	store := NewStore(emb)

	err := store.Ingest(context.Background(), []string{chunkA, chunkB})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Equal(t, 0, store.Len())
}
