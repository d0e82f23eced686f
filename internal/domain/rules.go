package domain

// Directions scanned for lines: horizontal, vertical and both diagonals.
var Directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// CheckVictory scans from every stone in every direction and returns the
// owner of the first five-in-a-row found, or Empty.
func CheckVictory(g *GameState) PlayerID {
	b := g.Board
	size := b.Size()
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			player := b.At(row, col)
			if player == Empty {
				continue
			}
			for _, dir := range Directions {
				if countForward(b, row, col, dir[0], dir[1], player) >= ToWin {
					return player
				}
			}
		}
	}
	return Empty
}

// WinsThrough only checks lines passing through (row, col). This is cheaper
// than a full scan and gives the same answer right after a placement on a
// board that had no winner before it.
func WinsThrough(b Board, row, col int) bool {
	player := b.At(row, col)
	if player == Empty {
		return false
	}
	for _, dir := range Directions {
		total := 1 + CountDiskInDirection(b, row, col, dir[0], dir[1], player) +
			CountDiskInDirection(b, row, col, -dir[0], -dir[1], player)
		if total >= ToWin {
			return true
		}
	}
	return false
}

// this counts the number of stones in a specific direction, excluding the start cell
func CountDiskInDirection(b Board, row, col, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	r, c := row+deltaRow, col+deltaCol
	for b.InBounds(r, c) && b.At(r, c) == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}

// countForward counts up to ToWin consecutive stones starting at (row, col).
func countForward(b Board, row, col, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	for i := 0; i < ToWin; i++ {
		r, c := row+i*deltaRow, col+i*deltaCol
		if !b.InBounds(r, c) || b.At(r, c) != player {
			break
		}
		count++
	}
	return count
}
