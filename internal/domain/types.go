package domain

// Display names for the agent, keyed by difficulty
var BotNames = map[string]string{
	"easy":   "Alice",
	"medium": "Bob",
	"hard":   "Charles",
}

func GetBotName(difficulty string) string {
	if name, ok := BotNames[difficulty]; ok {
		return name
	}
	return "BOT"
}

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1 // first to move (black)
	Player2 PlayerID = 2 // second to move (white)
)

// Opponent returns the other player. Empty has no opponent and maps to itself.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return Empty
	}
}

func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "black"
	case Player2:
		return "white"
	default:
		return "empty"
	}
}

const (
	// GridSize is the largest index on a standard board; indices run 0..=GridSize.
	GridSize         = 14
	DefaultBoardSize = GridSize + 1
	MinBoardSize     = 5
	MaxBoardSize     = 25
	ToWin            = 5
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// Move is a single placement on the board.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrOutOfBounds   Error = "move out of bounds"
	ErrCellOccupied  Error = "cell is occupied"
	ErrInvalidUndo   Error = "invalid undo"
	ErrInvalidPlayer Error = "invalid player"
	ErrGameOver      Error = "game is over"
	ErrNotYourTurn   Error = "not your turn"
	ErrInvalidBoard  Error = "invalid board"
)
