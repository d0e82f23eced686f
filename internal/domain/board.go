package domain

// Board is a square grid of intersections. Dimensions never change after
// construction.
type Board struct {
	size  int
	cells []PlayerID
}

func NewBoard(size int) Board {
	return Board{size: size, cells: make([]PlayerID, size*size)}
}

func (b Board) Size() int {
	return b.size
}

// MaxIndex is the largest valid row or column (inclusive bounds).
func (b Board) MaxIndex() int {
	return b.size - 1
}

func (b Board) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < b.size && col < b.size
}

// At returns the owner of a cell. Out-of-bounds cells read as Empty.
func (b Board) At(row, col int) PlayerID {
	if !b.InBounds(row, col) {
		return Empty
	}
	return b.cells[b.index(row, col)]
}

func (b Board) IsEmpty(row, col int) bool {
	return b.InBounds(row, col) && b.cells[b.index(row, col)] == Empty
}

func (b *Board) set(row, col int, p PlayerID) {
	b.cells[b.index(row, col)] = p
}

func (b Board) Center() Move {
	mid := b.MaxIndex() / 2
	return Move{Row: mid, Col: mid}
}

func (b Board) IsFull() bool {
	for _, cell := range b.cells {
		if cell == Empty {
			return false
		}
	}
	return true
}

func (b Board) StoneCount() int {
	count := 0
	for _, cell := range b.cells {
		if cell != Empty {
			count++
		}
	}
	return count
}

func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = Empty
	}
}

// this creates a deep copy of the board
func (b Board) Copy() Board {
	clone := Board{size: b.size, cells: make([]PlayerID, len(b.cells))}
	copy(clone.cells, b.cells)
	return clone
}

// Equal reports whether both boards have the same size and stones.
func (b Board) Equal(other Board) bool {
	if b.size != other.size || len(b.cells) != len(other.cells) {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

func (b Board) index(row, col int) int {
	return row*b.size + col
}
