package domain

import "sync"

// ZobristTable holds the random keys for one board size.
type ZobristTable struct {
	size  int
	cells []uint64
	side  uint64
}

type zobristStore struct {
	mu     sync.Mutex
	tables map[int]*ZobristTable
}

var zobristTables = &zobristStore{tables: make(map[int]*ZobristTable)}

// GetZobrist returns the table for a board size. Keys are derived from a
// fixed seed so hashes are stable across processes (they are used as cache keys).
func GetZobrist(size int) *ZobristTable {
	zobristTables.mu.Lock()
	defer zobristTables.mu.Unlock()
	if table, ok := zobristTables.tables[size]; ok {
		return table
	}
	rng := splitmix64{state: uint64(0x9e3779b97f4a7c15) ^ uint64(size)}
	table := &ZobristTable{size: size, cells: make([]uint64, size*size*2)}
	for i := range table.cells {
		table.cells[i] = rng.next()
	}
	table.side = rng.next()
	zobristTables.tables[size] = table
	return table
}

func (z *ZobristTable) stone(row, col int, player PlayerID) uint64 {
	idx := (row*z.size + col) * 2
	if player == Player2 {
		idx++
	}
	return z.cells[idx]
}

// Hash is the zobrist hash of the stones and the side to move.
func (g *GameState) Hash() uint64 {
	size := g.Board.Size()
	z := GetZobrist(size)
	var hash uint64
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			cell := g.Board.At(row, col)
			if cell == Empty {
				continue
			}
			hash ^= z.stone(row, col, cell)
		}
	}
	if g.CurrentTurn == Player2 {
		hash ^= z.side
	}
	return hash
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
