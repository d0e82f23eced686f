package bot

import (
	"context"
	"errors"
	"time"

	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	DefaultSearchDepth = 4
	// MaxSearchDepth is a hard ceiling; the branching factor makes deeper
	// fixed-depth searches unusable interactively.
	MaxSearchDepth = 6
)

// ErrSearchInvariant means the search tried to play or take back a move the
// board rejected. It indicates a bug in move generation, never bad input.
var ErrSearchInvariant = errors.New("search invariant violated")

// errSearchAborted stops an iteration when the time budget runs out.
var errSearchAborted = errors.New("search aborted")

type Option func(a *Agent)

// WithTimeBudget enables iterative deepening bounded by a wall-clock budget.
// The move from the deepest completed iteration is returned.
func WithTimeBudget(budget time.Duration) Option {
	return func(a *Agent) {
		if budget > 0 {
			a.budget = budget
		}
	}
}

// Agent picks moves for one player. It keeps no board data between calls.
type Agent struct {
	player domain.PlayerID
	depth  int
	budget time.Duration
}

// SearchResult describes the outcome of one search. Truncated is set when
// the time budget stopped deepening early.
type SearchResult struct {
	Move      domain.Move
	Score     int
	Depth     int
	Nodes     int64
	Found     bool
	Truncated bool
	Elapsed   time.Duration
}

func NewAgent(player domain.PlayerID, depth int, options ...Option) *Agent {
	a := &Agent{player: player, depth: clampDepth(depth)}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *Agent) Player() domain.PlayerID {
	return a.player
}

// SetPlayer changes the side the agent plays. Callers must reset the game.
func (a *Agent) SetPlayer(p domain.PlayerID) {
	a.player = p
}

func (a *Agent) Depth() int {
	return a.depth
}

func (a *Agent) SetDepth(depth int) {
	a.depth = clampDepth(depth)
}

// MakeMove chooses a move for the agent. ok is false when the game is over or
// no move exists; err is only set on an internal invariant violation.
func (a *Agent) MakeMove(ctx context.Context, state *domain.GameState) (domain.Move, bool, error) {
	res, err := a.Search(ctx, state)
	if err != nil {
		return domain.Move{}, false, err
	}
	return res.Move, res.Found, nil
}

// Search runs the full decision procedure and reports statistics. The
// caller's state is never modified.
func (a *Agent) Search(ctx context.Context, state *domain.GameState) (SearchResult, error) {
	start := time.Now()
	if !a.player.Valid() {
		return SearchResult{}, domain.ErrInvalidPlayer
	}
	if state.IsGameOver || domain.CheckVictory(state) != domain.Empty {
		return SearchResult{}, nil
	}

	s := newSearch(ctx, a.player, state.Clone())
	candidates := domain.CandidateMoves(s.state)
	if len(candidates) == 0 {
		return SearchResult{}, nil
	}
	if len(candidates) == 1 {
		return SearchResult{Move: candidates[0], Found: true, Elapsed: time.Since(start)}, nil
	}

	ordered, err := s.order(candidates, a.player)
	if err != nil {
		return SearchResult{}, err
	}

	for _, mv := range ordered {
		won, err := s.winsWith(mv, a.player)
		if err != nil {
			return SearchResult{}, err
		}
		if won {
			log.Debug().Int("row", mv.Row).Int("col", mv.Col).Msg("[BOT] immediate win")
			return SearchResult{Move: mv, Score: WinScore, Found: true, Nodes: s.nodes, Elapsed: time.Since(start)}, nil
		}
	}

	var res SearchResult
	if a.budget <= 0 {
		res, err = s.root(ordered, a.depth)
		if err != nil {
			return SearchResult{}, err
		}
	} else {
		res, err = a.deepen(ctx, s, ordered)
		if err != nil {
			return SearchResult{}, err
		}
	}

	res.Nodes = s.nodes
	res.Elapsed = time.Since(start)
	log.Debug().
		Str("player", a.player.String()).
		Int("row", res.Move.Row).
		Int("col", res.Move.Col).
		Int("score", res.Score).
		Int("depth", res.Depth).
		Int64("nodes", res.Nodes).
		Dur("elapsed", res.Elapsed).
		Msg("[BOT] search complete")
	return res, nil
}

// deepen searches depth 1, 2, ... up to the configured depth and keeps the
// result of the deepest iteration that finished inside the budget.
func (a *Agent) deepen(ctx context.Context, s *search, ordered []domain.Move) (SearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, a.budget)
	defer cancel()
	s.ctx = ctx

	best := SearchResult{Move: ordered[0], Found: true}
	for depth := 1; depth <= a.depth; depth++ {
		res, err := s.root(ordered, depth)
		if errors.Is(err, errSearchAborted) {
			log.Debug().Int("depth", depth).Msg("[BOT] time budget exhausted, using previous iteration")
			best.Truncated = true
			break
		}
		if err != nil {
			return SearchResult{}, err
		}
		best = res
	}
	return best, nil
}

func clampDepth(depth int) int {
	if depth < 1 {
		return 1
	}
	if depth > MaxSearchDepth {
		return MaxSearchDepth
	}
	return depth
}
