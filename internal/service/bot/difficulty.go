package bot

import "github.com/iamasit07/5-in-a-row/backend/internal/domain"

type BotDifficulty string

const (
	DifficultyEasy   BotDifficulty = "easy"
	DifficultyMedium BotDifficulty = "medium"
	DifficultyHard   BotDifficulty = "hard"
)

// ParseDifficulty validates and returns the bot difficulty
// Defaults to Hard if invalid or empty
func ParseDifficulty(difficulty string) BotDifficulty {
	switch difficulty {
	case "easy":
		return DifficultyEasy
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	default:
		return DifficultyHard
	}
}

// DepthFor maps a difficulty to a search depth. hardDepth is the configured
// full-strength depth.
func DepthFor(difficulty BotDifficulty, hardDepth int) int {
	switch difficulty {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return min(2, clampDepth(hardDepth))
	default:
		return clampDepth(hardDepth)
	}
}

// NewAgentFor builds an agent for a difficulty level.
func NewAgentFor(player domain.PlayerID, difficulty BotDifficulty, hardDepth int, options ...Option) *Agent {
	return NewAgent(player, DepthFor(difficulty, hardDepth), options...)
}
