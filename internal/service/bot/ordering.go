package bot

import (
	"sort"

	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
)

// order sorts candidates by the static evaluation, from mover's point of view,
// of the position after mover plays each of them. Best first; ties keep the
// incoming (row-major) order.
func (s *search) order(candidates []domain.Move, mover domain.PlayerID) ([]domain.Move, error) {
	scores := make([]int, len(candidates))
	for i, mv := range candidates {
		score, err := s.withMove(mv, mover, func() (int, error) {
			return EvaluateBoard(s.state, mover), nil
		})
		if err != nil {
			return nil, err
		}
		scores[i] = score
	}

	idx := make([]int, len(candidates))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})

	ordered := make([]domain.Move, len(candidates))
	for i, j := range idx {
		ordered[i] = candidates[j]
	}
	return ordered, nil
}
