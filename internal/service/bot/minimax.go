package bot

import (
	"context"
	"fmt"
	"math"

	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
)

// cancellation is polled once per this many nodes
const pollInterval = 1024

// search holds one call's private copy of the position. Every move it plays
// is taken back before the call that played it returns.
type search struct {
	ctx   context.Context
	agent domain.PlayerID
	state *domain.GameState
	nodes int64
}

func newSearch(ctx context.Context, agent domain.PlayerID, state *domain.GameState) *search {
	if ctx == nil {
		ctx = context.Background()
	}
	return &search{ctx: ctx, agent: agent, state: state}
}

// root evaluates the ordered candidates for the agent at the given depth.
func (s *search) root(ordered []domain.Move, depth int) (SearchResult, error) {
	best := ordered[0]
	bestScore := math.MinInt
	alpha, beta := math.MinInt, math.MaxInt

	for _, mv := range ordered {
		score, err := s.withMove(mv, s.agent, func() (int, error) {
			return s.minimax(depth-1, false, alpha, beta, mv)
		})
		if err != nil {
			return SearchResult{}, err
		}

		if score > bestScore {
			bestScore = score
			best = mv
		}
		alpha = max(alpha, bestScore)
		if beta <= alpha {
			break
		}
	}

	return SearchResult{Move: best, Score: bestScore, Depth: depth, Found: true}, nil
}

// minimax implements the minimax algorithm with alpha-beta pruning. last is
// the move that produced the current position.
func (s *search) minimax(depth int, isMaximizing bool, alpha, beta int, last domain.Move) (int, error) {
	s.nodes++
	if s.nodes%pollInterval == 0 && s.ctx.Err() != nil {
		return 0, errSearchAborted
	}

	if domain.WinsThrough(s.state.Board, last.Row, last.Col) {
		if s.state.Board.At(last.Row, last.Col) == s.agent {
			return WinScore + depth, nil
		}
		return -(WinScore + depth), nil
	}

	if s.state.Board.IsFull() {
		return 0, nil // draw
	}

	if depth == 0 {
		return EvaluateBoard(s.state, s.agent), nil
	}

	mover := s.agent
	if !isMaximizing {
		mover = s.agent.Opponent()
	}
	ordered, err := s.order(domain.CandidateMoves(s.state), mover)
	if err != nil {
		return 0, err
	}

	if isMaximizing {
		maxEval := math.MinInt
		for _, mv := range ordered {
			eval, err := s.withMove(mv, mover, func() (int, error) {
				return s.minimax(depth-1, false, alpha, beta, mv)
			})
			if err != nil {
				return 0, err
			}
			maxEval = max(maxEval, eval)
			alpha = max(alpha, eval)
			if beta <= alpha {
				break // beta cutoff
			}
		}
		return maxEval, nil
	}

	minEval := math.MaxInt
	for _, mv := range ordered {
		eval, err := s.withMove(mv, mover, func() (int, error) {
			return s.minimax(depth-1, true, alpha, beta, mv)
		})
		if err != nil {
			return 0, err
		}
		minEval = min(minEval, eval)
		beta = min(beta, eval)
		if beta <= alpha {
			break // alpha cutoff
		}
	}
	return minEval, nil
}

// withMove plays mv for player, runs fn, and restores the board on every
// exit path of fn, including panics.
func (s *search) withMove(mv domain.Move, player domain.PlayerID, fn func() (int, error)) (score int, err error) {
	if applyErr := s.state.ApplyMove(mv.Row, mv.Col, player); applyErr != nil {
		return 0, fmt.Errorf("%w: play %s at (%d,%d): %v", ErrSearchInvariant, player, mv.Row, mv.Col, applyErr)
	}
	defer func() {
		if undoErr := s.state.UndoMove(mv.Row, mv.Col); undoErr != nil && err == nil {
			err = fmt.Errorf("%w: %v", ErrSearchInvariant, undoErr)
		}
	}()
	return fn()
}

// winsWith reports whether player completes five by playing mv.
func (s *search) winsWith(mv domain.Move, player domain.PlayerID) (bool, error) {
	won := false
	_, err := s.withMove(mv, player, func() (int, error) {
		won = domain.WinsThrough(s.state.Board, mv.Row, mv.Col)
		return 0, nil
	})
	return won, err
}
