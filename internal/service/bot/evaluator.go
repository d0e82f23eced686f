package bot

import (
	"fmt"

	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
)

const (
	// Pattern values for a five-cell window, from highest to lowest
	WinScore         = 100_000_000
	OpenFourScore    = 10000
	HalfFourScore    = 1500
	OpenThreeScore   = 1200
	HalfThreeScore   = 150
	OpenTwoScore     = 100
	HalfTwoScore     = 10
	CentralityWeight = 1

	windowLength = domain.ToWin
)

// EvaluateBoard scores the position from perspective's point of view by
// summing the pattern value of every five-cell window on the board, plus a
// small bonus for stones near the center.
func EvaluateBoard(g *domain.GameState, perspective domain.PlayerID) int {
	b := g.Board
	size := b.Size()
	opponent := perspective.Opponent()
	score := 0

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			for _, dir := range domain.Directions {
				dRow, dCol := dir[0], dir[1]
				if !b.InBounds(row+dRow*(windowLength-1), col+dCol*(windowLength-1)) {
					continue
				}

				own, theirs := 0, 0
				for i := 0; i < windowLength; i++ {
					switch b.At(row+dRow*i, col+dCol*i) {
					case perspective:
						own++
					case opponent:
						theirs++
					}
				}
				if (own > 0) == (theirs > 0) {
					continue // empty or contested
				}

				open := openEnds(b, row, col, dRow, dCol)
				if own > 0 {
					score += windowScore(own, open)
				} else {
					score -= windowScore(theirs, open)
				}
			}
		}
	}

	return score + centralityBonus(b, perspective)
}

// openEnds counts the empty cells immediately before and after a window.
func openEnds(b domain.Board, row, col, dRow, dCol int) int {
	open := 0
	if b.IsEmpty(row-dRow, col-dCol) {
		open++
	}
	if b.IsEmpty(row+dRow*windowLength, col+dCol*windowLength) {
		open++
	}
	return open
}

func windowScore(count, open int) int {
	if count >= windowLength {
		return WinScore
	}
	if open == 0 {
		return 0
	}
	switch count {
	case 4:
		if open == 2 {
			return OpenFourScore
		}
		return HalfFourScore
	case 3:
		if open == 2 {
			return OpenThreeScore
		}
		return HalfThreeScore
	case 2:
		if open == 2 {
			return OpenTwoScore
		}
		return HalfTwoScore
	}
	return 0
}

func centralityBonus(b domain.Board, perspective domain.PlayerID) int {
	center := b.Center()
	radius := b.MaxIndex() / 2
	size := b.Size()
	bonus := 0
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			owner := b.At(row, col)
			if owner == domain.Empty {
				continue
			}
			value := CentralityWeight*radius - (abs(row-center.Row) + abs(col-center.Col))
			if value <= 0 {
				continue
			}
			if owner == perspective {
				bonus += value
			} else {
				bonus -= value
			}
		}
	}
	return bonus
}

// EvaluateMove scores the position reached after player plays (row, col),
// using the same static evaluation as the search.
func EvaluateMove(g *domain.GameState, row, col int, player domain.PlayerID) (int, error) {
	next := g.Clone()
	if err := next.ApplyMove(row, col, player); err != nil {
		return 0, fmt.Errorf("evaluate move: %w", err)
	}
	return EvaluateBoard(next, player), nil
}

// FindBestMove returns the candidate with the highest one-ply evaluation for
// player. ok is false only when the board has no empty cell. A candidate that
// cannot be played or taken back is reported as ErrSearchInvariant.
func FindBestMove(g *domain.GameState, player domain.PlayerID) (best domain.Move, bestScore int, ok bool, err error) {
	if !player.Valid() {
		return domain.Move{}, 0, false, domain.ErrInvalidPlayer
	}
	work := g.Clone()
	for _, mv := range domain.CandidateMoves(work) {
		if err := work.ApplyMove(mv.Row, mv.Col, player); err != nil {
			return domain.Move{}, 0, false, fmt.Errorf("%w: play %s at (%d,%d): %v", ErrSearchInvariant, player, mv.Row, mv.Col, err)
		}
		score := EvaluateBoard(work, player)
		if err := work.UndoMove(mv.Row, mv.Col); err != nil {
			return domain.Move{}, 0, false, fmt.Errorf("%w: undo (%d,%d): %v", ErrSearchInvariant, mv.Row, mv.Col, err)
		}

		if !ok || score > bestScore {
			best, bestScore, ok = mv, score, true
		}
	}
	return best, bestScore, ok, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
