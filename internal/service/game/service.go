package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/analysis"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/bot"
	"github.com/iamasit07/5-in-a-row/backend/pkg/uid"
	"github.com/rs/zerolog/log"
)

const ErrSessionNotFound domain.Error = "session not found"

// Settings are the engine defaults applied to new sessions.
type Settings struct {
	BoardSize   int
	HardDepth   int
	TimeBudget  time.Duration
	AgentPlayer domain.PlayerID
}

// GameSession is one human-versus-agent game. All access goes through its
// methods, which serialize on mu.
type GameSession struct {
	GameID       string
	OwnerID      string
	Difficulty   bot.BotDifficulty
	CreatedAt    time.Time
	lastActivity time.Time
	state        *domain.GameState
	agent        *bot.Agent
	score        *analysis.PlayerScore
	lastAgent    *domain.Move
	mu           sync.Mutex
}

// SessionView is a read-only snapshot of a session.
type SessionView struct {
	GameID      string               `json:"gameId"`
	Board       [][]int              `json:"board"`
	Status      domain.GameStatus    `json:"status"`
	CurrentTurn domain.PlayerID      `json:"currentTurn"`
	Winner      domain.PlayerID      `json:"winner"`
	MoveCount   int                  `json:"moveCount"`
	AgentPlayer domain.PlayerID      `json:"agentPlayer"`
	HumanPlayer domain.PlayerID      `json:"humanPlayer"`
	Difficulty  bot.BotDifficulty    `json:"difficulty"`
	Opponent    string               `json:"opponent"`
	LastAgent   *domain.Move         `json:"lastAgentMove,omitempty"`
	Score       analysis.PlayerScore `json:"score"`
}

// TurnResult reports what happened during one human turn.
type TurnResult struct {
	HumanMove domain.Move          `json:"humanMove"`
	Rating    *analysis.MoveRating `json:"rating,omitempty"`
	AgentMove *domain.Move         `json:"agentMove,omitempty"`
	View      SessionView          `json:"game"`
}

// SessionManager manages active game sessions
type SessionManager struct {
	sessions map[string]*GameSession // gameID → GameSession
	byOwner  map[string]string       // ownerID → gameID (for quick lookup)
	settings Settings
	onExpire func(ownerID, gameID string)
	mu       sync.RWMutex
}

func NewSessionManager(settings Settings) *SessionManager {
	if settings.BoardSize == 0 {
		settings.BoardSize = domain.DefaultBoardSize
	}
	if !settings.AgentPlayer.Valid() {
		settings.AgentPlayer = domain.Player2
	}
	return &SessionManager{
		sessions: make(map[string]*GameSession),
		byOwner:  make(map[string]string),
		settings: settings,
	}
}

// OnExpire registers a callback invoked when the cleanup pass evicts a session.
func (sm *SessionManager) OnExpire(fn func(ownerID, gameID string)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.onExpire = fn
}

// CreateSession starts a new game for ownerID, replacing any game the owner
// already has. If the agent plays first it makes its opening move here.
func (sm *SessionManager) CreateSession(ctx context.Context, ownerID, difficulty string, agentPlayer domain.PlayerID) (*GameSession, error) {
	if !agentPlayer.Valid() {
		agentPlayer = sm.settings.AgentPlayer
	}
	level := bot.ParseDifficulty(difficulty)

	var options []bot.Option
	if sm.settings.TimeBudget > 0 {
		options = append(options, bot.WithTimeBudget(sm.settings.TimeBudget))
	}

	now := time.Now()
	session := &GameSession{
		GameID:       uid.GenerateGameID(),
		OwnerID:      ownerID,
		Difficulty:   level,
		CreatedAt:    now,
		lastActivity: now,
		state:        domain.NewGameState(sm.settings.BoardSize),
		agent:        bot.NewAgentFor(agentPlayer, level, sm.settings.HardDepth, options...),
		score:        analysis.NewPlayerScore(),
	}

	if err := session.StartAgentTurn(ctx); err != nil {
		return nil, err
	}

	sm.mu.Lock()
	if oldID, exists := sm.byOwner[ownerID]; exists {
		delete(sm.sessions, oldID)
		log.Info().Str("game", oldID).Str("owner", ownerID).Msg("[SESSION] Replaced previous session")
	}
	sm.sessions[session.GameID] = session
	sm.byOwner[ownerID] = session.GameID
	sm.mu.Unlock()

	log.Info().
		Str("game", session.GameID).
		Str("owner", ownerID).
		Str("difficulty", string(level)).
		Int("depth", session.agent.Depth()).
		Str("agent", agentPlayer.String()).
		Msg("[SESSION] Created session")
	return session, nil
}

// GetSession returns the game only if it belongs to ownerID.
func (sm *SessionManager) GetSession(gameID, ownerID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[gameID]
	if !exists || session.OwnerID != ownerID {
		return nil, false
	}
	return session, true
}

func (sm *SessionManager) GetSessionByOwner(ownerID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	gameID, exists := sm.byOwner[ownerID]
	if !exists {
		return nil, false
	}
	session, exists := sm.sessions[gameID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.removeSessionLocked(gameID)
}

// removeSessionLocked removes session from maps without acquiring lock (caller must hold it)
func (sm *SessionManager) removeSessionLocked(gameID string) error {
	session, exists := sm.sessions[gameID]
	if !exists {
		return ErrSessionNotFound
	}

	log.Info().Str("game", gameID).Msg("[SESSION] Removing session")
	if sm.byOwner[session.OwnerID] == gameID {
		delete(sm.byOwner, session.OwnerID)
	}
	delete(sm.sessions, gameID)
	return nil
}

// CleanupIdleSessions evicts sessions with no activity for maxIdle and
// returns how many were removed.
func (sm *SessionManager) CleanupIdleSessions(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	// Snapshot first: a session busy in an agent search holds its own lock
	sm.mu.RLock()
	candidates := make([]*GameSession, 0, len(sm.sessions))
	for _, session := range sm.sessions {
		candidates = append(candidates, session)
	}
	sm.mu.RUnlock()

	var idle []*GameSession
	for _, session := range candidates {
		if session.LastActivity().Before(cutoff) {
			idle = append(idle, session)
		}
	}

	sm.mu.Lock()
	var expired []*GameSession
	for _, session := range idle {
		if sm.removeSessionLocked(session.GameID) == nil {
			expired = append(expired, session)
		}
	}
	onExpire := sm.onExpire
	sm.mu.Unlock()

	if onExpire != nil {
		for _, session := range expired {
			onExpire(session.OwnerID, session.GameID)
		}
	}
	return len(expired)
}

func (sm *SessionManager) ActiveSessionCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// HandleMove plays the human's move, rates it against the engine's best
// one-ply move, and lets the agent reply.
func (gs *GameSession) HandleMove(ctx context.Context, row, col int) (TurnResult, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.lastActivity = time.Now()

	if gs.state.IsGameOver {
		return TurnResult{}, domain.ErrGameOver
	}
	// A reply that failed earlier leaves the agent to move; finish it first
	if _, _, err := gs.agentTurnLocked(ctx); err != nil {
		return TurnResult{}, err
	}
	if gs.state.IsGameOver {
		return TurnResult{}, domain.ErrGameOver
	}
	human := gs.agent.Player().Opponent()
	if gs.state.CurrentTurn != human {
		return TurnResult{}, domain.ErrNotYourTurn
	}

	// Rate against the position before the move is played
	rating, rated, err := analysis.RateMove(gs.state, row, col, human)
	if err != nil {
		return TurnResult{}, err
	}
	if err := gs.state.Play(row, col); err != nil {
		return TurnResult{}, err
	}

	result := TurnResult{HumanMove: domain.Move{Row: row, Col: col}}
	if rated {
		gs.score.AddMove(rating.Score, rating.BestScore)
		result.Rating = &rating
	}

	if !gs.state.IsGameOver {
		mv, played, err := gs.agentTurnLocked(ctx)
		if err != nil {
			return TurnResult{}, err
		}
		if played {
			result.AgentMove = &mv
		}
	}

	result.View = gs.viewLocked()
	return result, nil
}

// StartAgentTurn lets the agent move if it is its turn (e.g. it plays first).
func (gs *GameSession) StartAgentTurn(ctx context.Context) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	_, _, err := gs.agentTurnLocked(ctx)
	return err
}

// Reset clears the board and rating; the agent opens again if it plays first.
func (gs *GameSession) Reset(ctx context.Context) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.resetLocked()
	_, _, err := gs.agentTurnLocked(ctx)
	return err
}

// SwitchSides swaps the agent's color. Changing sides mid-game has no
// meaning, so the game is always reset.
func (gs *GameSession) SwitchSides(ctx context.Context) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.agent.SetPlayer(gs.agent.Player().Opponent())
	gs.resetLocked()
	log.Info().Str("game", gs.GameID).Str("agent", gs.agent.Player().String()).Msg("[SESSION] Agent switched sides")

	_, _, err := gs.agentTurnLocked(ctx)
	return err
}

func (gs *GameSession) View() SessionView {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.viewLocked()
}

func (gs *GameSession) LastActivity() time.Time {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.lastActivity
}

func (gs *GameSession) resetLocked() {
	gs.state.Reset()
	gs.score.Reset()
	gs.lastAgent = nil
	gs.lastActivity = time.Now()
}

// agentTurnLocked asks the agent for a move and plays it. Caller holds mu.
// The search outlives the caller's context; depth and time budget bound it.
func (gs *GameSession) agentTurnLocked(ctx context.Context) (domain.Move, bool, error) {
	if gs.state.IsGameOver || gs.state.CurrentTurn != gs.agent.Player() {
		return domain.Move{}, false, nil
	}

	mv, ok, err := gs.agent.MakeMove(context.WithoutCancel(ctx), gs.state)
	if err != nil {
		return domain.Move{}, false, err
	}
	if !ok {
		log.Warn().Str("game", gs.GameID).Msg("[BOT] No move available")
		return domain.Move{}, false, nil
	}
	if err := gs.state.Play(mv.Row, mv.Col); err != nil {
		return domain.Move{}, false, fmt.Errorf("%w: agent move rejected: %v", bot.ErrSearchInvariant, err)
	}
	gs.lastAgent = &mv

	if gs.state.IsGameOver {
		log.Info().Str("game", gs.GameID).Str("status", string(gs.state.Status())).Msg("[SESSION] Game finished")
	}
	return mv, true, nil
}

func (gs *GameSession) viewLocked() SessionView {
	score := *gs.score
	score.MoveScores = append([]int(nil), gs.score.MoveScores...)

	var last *domain.Move
	if gs.lastAgent != nil {
		mv := *gs.lastAgent
		last = &mv
	}

	return SessionView{
		GameID:      gs.GameID,
		Board:       gs.state.Snapshot(),
		Status:      gs.state.Status(),
		CurrentTurn: gs.state.CurrentTurn,
		Winner:      gs.state.Winner,
		MoveCount:   gs.state.MoveCount,
		AgentPlayer: gs.agent.Player(),
		HumanPlayer: gs.agent.Player().Opponent(),
		Difficulty:  gs.Difficulty,
		Opponent:    domain.GetBotName(string(gs.Difficulty)),
		LastAgent:   last,
		Score:       score,
	}
}
