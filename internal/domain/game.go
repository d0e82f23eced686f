package domain

import "fmt"

// GameState owns the board plus turn and terminal bookkeeping. It is mutated
// only through ApplyMove/UndoMove (and Play, which builds on ApplyMove).
type GameState struct {
	Board       Board
	CurrentTurn PlayerID
	IsGameOver  bool
	Winner      PlayerID
	MoveCount   int
}

func NewGameState(size int) *GameState {
	return &GameState{
		Board:       NewBoard(size),
		CurrentTurn: Player1,
		Winner:      Empty,
	}
}

// NewGameStateFromRows builds a state from a row-major snapshot such as the
// one produced by Snapshot. Terminal flags are derived from the stones.
func NewGameStateFromRows(rows [][]int, toMove PlayerID) (*GameState, error) {
	size := len(rows)
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidBoard, size)
	}
	if !toMove.Valid() {
		return nil, ErrInvalidPlayer
	}

	state := NewGameState(size)
	for r, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, r, len(row), size)
		}
		for c, v := range row {
			p := PlayerID(v)
			if p != Empty && !p.Valid() {
				return nil, fmt.Errorf("%w: cell (%d,%d) holds %d", ErrInvalidBoard, r, c, v)
			}
			if p != Empty {
				state.Board.set(r, c, p)
				state.MoveCount++
			}
		}
	}
	state.CurrentTurn = toMove
	state.refreshTerminal()
	return state, nil
}

// ApplyMove places a stone. It has no side effect on failure.
func (g *GameState) ApplyMove(row, col int, player PlayerID) error {
	if !player.Valid() {
		return ErrInvalidPlayer
	}
	if !g.Board.InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, row, col)
	}
	if g.Board.At(row, col) != Empty {
		return fmt.Errorf("%w: (%d,%d)", ErrCellOccupied, row, col)
	}
	g.Board.set(row, col, player)
	return nil
}

// UndoMove clears a cell the caller itself just set. Undoing an empty or
// out-of-range cell is a programming error and is reported, not ignored.
func (g *GameState) UndoMove(row, col int) error {
	if !g.Board.InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d) is out of bounds", ErrInvalidUndo, row, col)
	}
	if g.Board.At(row, col) == Empty {
		return fmt.Errorf("%w: (%d,%d) is already empty", ErrInvalidUndo, row, col)
	}
	g.Board.set(row, col, Empty)
	return nil
}

// this will simulate a move and give the result to the caller
func (g *GameState) SimulateMove(row, col int, player PlayerID) (*GameState, bool) {
	next := g.Clone()
	if err := next.ApplyMove(row, col, player); err != nil {
		return nil, false
	}
	return next, true
}

// ValidMoves lists every empty cell in row-major order.
func (g *GameState) ValidMoves() []Move {
	size := g.Board.Size()
	moves := make([]Move, 0, size*size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if g.Board.At(r, c) == Empty {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}
	return moves
}

func (g *GameState) Reset() {
	g.Board.Clear()
	g.CurrentTurn = Player1
	g.IsGameOver = false
	g.Winner = Empty
	g.MoveCount = 0
}

func (g *GameState) Clone() *GameState {
	return &GameState{
		Board:       g.Board.Copy(),
		CurrentTurn: g.CurrentTurn,
		IsGameOver:  g.IsGameOver,
		Winner:      g.Winner,
		MoveCount:   g.MoveCount,
	}
}

// Play applies a move for the side to move and advances the game: it marks
// the game finished on five-in-a-row or a full board, otherwise passes the turn.
func (g *GameState) Play(row, col int) error {
	if g.IsGameOver {
		return ErrGameOver
	}
	player := g.CurrentTurn
	if err := g.ApplyMove(row, col, player); err != nil {
		return err
	}
	g.MoveCount++

	if WinsThrough(g.Board, row, col) {
		g.IsGameOver = true
		g.Winner = player
		return nil
	}
	if g.Board.IsFull() {
		g.IsGameOver = true
		g.Winner = Empty
		return nil
	}

	g.CurrentTurn = player.Opponent()
	return nil
}

func (g *GameState) Status() GameStatus {
	switch {
	case !g.IsGameOver:
		return StatusActive
	case g.Winner != Empty:
		return StatusWon
	default:
		return StatusDraw
	}
}

// Snapshot converts the board into a row-major int matrix for JSON.
func (g *GameState) Snapshot() [][]int {
	size := g.Board.Size()
	rows := make([][]int, size)
	for r := range rows {
		rows[r] = make([]int, size)
		for c := range rows[r] {
			rows[r][c] = int(g.Board.At(r, c))
		}
	}
	return rows
}

func (g *GameState) refreshTerminal() {
	if winner := CheckVictory(g); winner != Empty {
		g.IsGameOver = true
		g.Winner = winner
		return
	}
	if g.Board.IsFull() {
		g.IsGameOver = true
		g.Winner = Empty
	}
}
