package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/bot"
	"github.com/rs/zerolog/log"
)

// Cache stores analysis results between requests.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

// BestMoveResult is the engine's answer for a submitted position.
type BestMoveResult struct {
	Move   domain.Move `json:"move"`
	Score  int         `json:"score"`
	Depth  int         `json:"depth"`
	Nodes  int64       `json:"nodes"`
	Found  bool        `json:"found"`
	Cached bool        `json:"cached"`
}

// Service answers stateless position queries.
type Service struct {
	cache      Cache
	cacheTTL   time.Duration
	maxDepth   int
	timeBudget time.Duration
}

// NewService creates the analysis service. cache may be nil.
func NewService(cache Cache, cacheTTL time.Duration, maxDepth int, timeBudget time.Duration) *Service {
	return &Service{
		cache:      cache,
		cacheTTL:   cacheTTL,
		maxDepth:   maxDepth,
		timeBudget: timeBudget,
	}
}

// BestMove searches rows for player at depth (capped by the configured depth).
func (s *Service) BestMove(ctx context.Context, rows [][]int, player domain.PlayerID, depth int) (BestMoveResult, error) {
	state, err := domain.NewGameStateFromRows(rows, player)
	if err != nil {
		return BestMoveResult{}, err
	}
	if depth <= 0 || depth > s.maxDepth {
		depth = s.maxDepth
	}

	key := cacheKey(state, player, depth)
	if cached, ok := s.lookup(ctx, key); ok {
		return cached, nil
	}

	agent := bot.NewAgent(player, depth, bot.WithTimeBudget(s.timeBudget))
	res, err := agent.Search(ctx, state)
	if err != nil {
		return BestMoveResult{}, err
	}

	result := BestMoveResult{
		Move:  res.Move,
		Score: res.Score,
		Depth: res.Depth,
		Nodes: res.Nodes,
		Found: res.Found,
	}
	// results cut short by the time budget are not stable, skip caching them
	if !res.Truncated {
		s.store(ctx, key, result)
	}
	return result, nil
}

// Evaluation compares a proposed move with the best one-ply move.
type Evaluation struct {
	MoveRating
	Status domain.GameStatus `json:"status"`
}

func (s *Service) EvaluateMove(rows [][]int, row, col int, player domain.PlayerID) (Evaluation, error) {
	state, err := domain.NewGameStateFromRows(rows, player)
	if err != nil {
		return Evaluation{}, err
	}
	if state.IsGameOver {
		return Evaluation{}, domain.ErrGameOver
	}
	rating, ok, err := RateMove(state, row, col, player)
	if err != nil {
		return Evaluation{}, err
	}
	if !ok {
		return Evaluation{}, fmt.Errorf("%w: no empty cell", domain.ErrInvalidBoard)
	}
	return Evaluation{MoveRating: rating, Status: state.Status()}, nil
}

func (s *Service) lookup(ctx context.Context, key string) (BestMoveResult, bool) {
	if s.cache == nil {
		return BestMoveResult{}, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return BestMoveResult{}, false
	}
	var result BestMoveResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[ANALYSIS] corrupt cache entry")
		return BestMoveResult{}, false
	}
	result.Cached = true
	return result, true
}

func (s *Service) store(ctx context.Context, key string, result BestMoveResult) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[ANALYSIS] failed to cache result")
	}
}

func cacheKey(state *domain.GameState, player domain.PlayerID, depth int) string {
	return fmt.Sprintf("analysis:%d:%016x:%d:%d", state.Board.Size(), state.Hash(), player, depth)
}
