package analysis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]string
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]string)}
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	switch v := value.(type) {
	case []byte:
		m.entries[key] = string(v)
	case string:
		m.entries[key] = v
	default:
		return errors.New("unsupported value")
	}
	return nil
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	if !ok {
		return "", errors.New("miss")
	}
	return v, nil
}

func openingRows() [][]int {
	g := domain.NewGameState(domain.DefaultBoardSize)
	_ = g.Play(7, 7)
	_ = g.Play(7, 8)
	return g.Snapshot()
}

func TestBestMove(t *testing.T) {
	ctx := context.Background()

	t.Run("caches complete results", func(t *testing.T) {
		cache := newMemoryCache()
		svc := NewService(cache, time.Minute, 2, 0)

		first, err := svc.BestMove(ctx, openingRows(), domain.Player1, 2)
		require.NoError(t, err)
		require.True(t, first.Found)
		require.False(t, first.Cached)
		require.Equal(t, 1, cache.sets)

		second, err := svc.BestMove(ctx, openingRows(), domain.Player1, 2)
		require.NoError(t, err)
		require.True(t, second.Cached)
		require.Equal(t, first.Move, second.Move)
		require.Equal(t, first.Score, second.Score)
		require.Equal(t, 1, cache.sets, "Cached result should not be stored again")
	})

	t.Run("depth is capped by configuration", func(t *testing.T) {
		svc := NewService(nil, 0, 1, 0)
		res, err := svc.BestMove(ctx, openingRows(), domain.Player1, 5)
		require.NoError(t, err)
		require.Equal(t, 1, res.Depth)
	})

	t.Run("works without a cache", func(t *testing.T) {
		svc := NewService(nil, 0, 2, 0)
		res, err := svc.BestMove(ctx, domain.NewGameState(domain.DefaultBoardSize).Snapshot(), domain.Player1, 0)
		require.NoError(t, err)
		require.Equal(t, domain.Move{Row: 7, Col: 7}, res.Move)
	})

	t.Run("corrupt cache entry is ignored", func(t *testing.T) {
		cache := newMemoryCache()
		svc := NewService(cache, time.Minute, 1, 0)
		state, err := domain.NewGameStateFromRows(openingRows(), domain.Player1)
		require.NoError(t, err)
		cache.entries[cacheKey(state, domain.Player1, 1)] = "{not json"

		res, err := svc.BestMove(ctx, openingRows(), domain.Player1, 1)
		require.NoError(t, err)
		require.False(t, res.Cached)
		require.True(t, res.Found)
	})

	t.Run("rejects bad boards", func(t *testing.T) {
		svc := NewService(nil, 0, 2, 0)
		_, err := svc.BestMove(ctx, [][]int{{0}}, domain.Player1, 1)
		require.ErrorIs(t, err, domain.ErrInvalidBoard)
	})
}

func TestCacheKey(t *testing.T) {
	state, err := domain.NewGameStateFromRows(openingRows(), domain.Player1)
	require.NoError(t, err)

	require.NotEqual(t, cacheKey(state, domain.Player1, 2), cacheKey(state, domain.Player2, 2))
	require.NotEqual(t, cacheKey(state, domain.Player1, 2), cacheKey(state, domain.Player1, 3))
}

func TestEvaluateMoveService(t *testing.T) {
	svc := NewService(nil, 0, 2, 0)

	t.Run("rates a legal move", func(t *testing.T) {
		ev, err := svc.EvaluateMove(openingRows(), 6, 7, domain.Player1)
		require.NoError(t, err)
		require.Equal(t, domain.Move{Row: 6, Col: 7}, ev.Move)
		require.Equal(t, domain.StatusActive, ev.Status)
		require.LessOrEqual(t, ev.Score, ev.BestScore)
	})

	t.Run("finished position", func(t *testing.T) {
		g := domain.NewGameState(domain.DefaultBoardSize)
		for col := 0; col < 5; col++ {
			require.NoError(t, g.ApplyMove(0, col, domain.Player1))
		}
		_, err := svc.EvaluateMove(g.Snapshot(), 5, 5, domain.Player2)
		require.ErrorIs(t, err, domain.ErrGameOver)
	})

	t.Run("occupied cell", func(t *testing.T) {
		_, err := svc.EvaluateMove(openingRows(), 7, 7, domain.Player1)
		require.ErrorIs(t, err, domain.ErrCellOccupied)
	})
}
