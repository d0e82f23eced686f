package domain

// RelevanceRadius bounds how far from existing stones candidate moves may be.
const RelevanceRadius = 2

// RelevantMoves returns the empty cells within RelevanceRadius (in both axes)
// of any stone, deduplicated and in row-major order. An empty board yields the
// center cell. The result can be empty while empty cells remain elsewhere;
// that is not a draw.
func RelevantMoves(g *GameState) []Move {
	b := g.Board
	size := b.Size()
	marked := make([]bool, size*size)
	stones := 0

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if b.At(row, col) == Empty {
				continue
			}
			stones++
			for dr := -RelevanceRadius; dr <= RelevanceRadius; dr++ {
				for dc := -RelevanceRadius; dc <= RelevanceRadius; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					r, c := row+dr, col+dc
					if b.IsEmpty(r, c) {
						marked[b.index(r, c)] = true
					}
				}
			}
		}
	}

	if stones == 0 {
		return []Move{b.Center()}
	}

	moves := []Move{}
	for i, ok := range marked {
		if ok {
			moves = append(moves, Move{Row: i / size, Col: i % size})
		}
	}
	return moves
}

// CandidateMoves is RelevantMoves with a fallback to every empty cell when no
// cell near the stones is free.
func CandidateMoves(g *GameState) []Move {
	moves := RelevantMoves(g)
	if len(moves) == 0 {
		return g.ValidMoves()
	}
	return moves
}
