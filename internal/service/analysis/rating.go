package analysis

import (
	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/bot"
)

const InitialRating = 100

// PlayerScore tracks how close a human's moves come to the engine's best
// one-ply move. The rating is a 0-100 average weighted by the square of the
// move number, so later moves count more.
type PlayerScore struct {
	MoveCount        int   `json:"moveCount"`
	CurrentRating    int   `json:"currentRating"`
	CurrentMoveScore int   `json:"currentMoveScore"`
	BestMoveScore    int   `json:"bestMoveScore"`
	MoveScores       []int `json:"moveScores"`
}

func NewPlayerScore() *PlayerScore {
	return &PlayerScore{CurrentRating: InitialRating, MoveScores: []int{}}
}

// AddMove records one move and recomputes the rating.
func (p *PlayerScore) AddMove(currentScore, bestScore int) {
	p.MoveCount++
	p.CurrentMoveScore = currentScore
	p.BestMoveScore = bestScore
	p.MoveScores = append(p.MoveScores, MovePercentage(currentScore, bestScore))

	var weighted, weights int64
	for i, score := range p.MoveScores {
		w := int64(i+1) * int64(i+1)
		weighted += int64(score) * w
		weights += w
	}
	if weights == 0 {
		p.CurrentRating = InitialRating
		return
	}
	p.CurrentRating = int(weighted / weights)
}

func (p *PlayerScore) Reset() {
	p.MoveCount = 0
	p.CurrentRating = InitialRating
	p.CurrentMoveScore = 0
	p.BestMoveScore = 0
	p.MoveScores = p.MoveScores[:0]
}

// MovePercentage is current/best as a percentage in [0, 100]. A non-positive
// best score means no move could do better, so any move earns 100.
func MovePercentage(currentScore, bestScore int) int {
	if bestScore <= 0 {
		return 100
	}
	pct := int(int64(currentScore) * 100 / int64(bestScore))
	return max(0, min(100, pct))
}

// MoveRating is the engine's view of one human move.
type MoveRating struct {
	Move       domain.Move `json:"move"`
	Score      int         `json:"score"`
	BestMove   domain.Move `json:"bestMove"`
	BestScore  int         `json:"bestScore"`
	Percentage int         `json:"percentage"`
}

// RateMove compares (row, col) with the best one-ply move for player on the
// position before the move is played. ok is false when nothing can be rated.
func RateMove(state *domain.GameState, row, col int, player domain.PlayerID) (MoveRating, bool, error) {
	best, bestScore, ok, err := bot.FindBestMove(state, player)
	if err != nil {
		return MoveRating{}, false, err
	}
	if !ok {
		return MoveRating{}, false, nil
	}
	score, err := bot.EvaluateMove(state, row, col, player)
	if err != nil {
		return MoveRating{}, false, err
	}
	return MoveRating{
		Move:       domain.Move{Row: row, Col: col},
		Score:      score,
		BestMove:   best,
		BestScore:  bestScore,
		Percentage: MovePercentage(score, bestScore),
	}, true, nil
}
