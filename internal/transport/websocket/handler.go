package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/game"
	"github.com/iamasit07/5-in-a-row/backend/pkg/auth"
	"github.com/iamasit07/5-in-a-row/backend/pkg/httputil"
	"github.com/rs/zerolog/log"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Upgrader       websocket.Upgrader
	jwtSecret      string
}

func NewHandler(cm *ConnectionManager, sm *game.SessionManager, jwtSecret string, allowedOrigins []string) *Handler {
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		jwtSecret:      jwtSecret,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     originChecker(allowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == origin {
				return true
			}
		}
		log.Warn().Str("origin", origin).Msg("[WS] Origin rejected")
		return false
	}
}

// HandleWebSocket authenticates the guest token, then upgrades the connection
func (h *Handler) HandleWebSocket(c *gin.Context) {
	token, err := httputil.GetTokenFromRequest(c.Request)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	claims, err := auth.ValidateGuestToken(h.jwtSecret, token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("[WS] Upgrade error")
		return
	}

	h.handleConnection(conn, claims.GuestID, claims.Username)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn, guestID, username string) {
	ctx, cancel := context.WithCancel(context.Background())

	h.ConnManager.AddConnection(guestID, conn, username)
	log.Info().Str("guest", guestID).Str("username", username).Msg("[WS] Connection initialized")

	defer func() {
		cancel()
		log.Info().Str("guest", guestID).Msg("[WS] Connection closed")
		h.ConnManager.RemoveConnectionIfMatching(guestID, conn)
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	// Resume an existing game on reconnect
	if session, exists := h.SessionManager.GetSessionByOwner(guestID); exists {
		_ = h.ConnManager.SendMessage(guestID, gameStartMessage(session.View()))
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("guest", guestID).Msg("[WS] Guest disconnected unexpectedly")
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Warn().Err(err).Str("guest", guestID).Msg("[WS] Invalid message format")
			h.ConnManager.SendError(guestID, "Invalid message format")
			continue
		}

		h.processMessage(ctx, guestID, msg)
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(ctx context.Context, guestID string, msg domain.ClientMessage) {
	switch msg.Type {
	case "new_game":
		session, err := h.SessionManager.CreateSession(ctx, guestID, msg.Difficulty, domain.PlayerID(msg.AgentPlayer))
		if err != nil {
			h.sendFailure(guestID, err)
			return
		}
		_ = h.ConnManager.SendMessage(guestID, gameStartMessage(session.View()))

	case "make_move":
		session, exists := h.SessionManager.GetSessionByOwner(guestID)
		if !exists {
			h.ConnManager.SendError(guestID, "Game not found")
			return
		}
		result, err := session.HandleMove(ctx, msg.Row, msg.Col)
		if err != nil {
			h.sendFailure(guestID, err)
			return
		}
		h.sendTurn(guestID, result)

	case "reset":
		session, exists := h.SessionManager.GetSessionByOwner(guestID)
		if !exists {
			h.ConnManager.SendError(guestID, "Game not found")
			return
		}
		if err := session.Reset(ctx); err != nil {
			h.sendFailure(guestID, err)
			return
		}
		_ = h.ConnManager.SendMessage(guestID, gameStartMessage(session.View()))

	case "switch_side":
		session, exists := h.SessionManager.GetSessionByOwner(guestID)
		if !exists {
			h.ConnManager.SendError(guestID, "Game not found")
			return
		}
		if err := session.SwitchSides(ctx); err != nil {
			h.sendFailure(guestID, err)
			return
		}
		_ = h.ConnManager.SendMessage(guestID, gameStartMessage(session.View()))

	default:
		h.ConnManager.SendError(guestID, "Unknown message type")
	}
}

// NotifyExpired tells a connected guest that their idle game was evicted.
func (h *Handler) NotifyExpired(guestID, gameID string) {
	_ = h.ConnManager.SendMessage(guestID, domain.ServerMessage{
		Type:    "game_over",
		GameID:  gameID,
		Reason:  "expired",
		Message: "Game expired after inactivity",
	})
}

func (h *Handler) sendTurn(guestID string, result game.TurnResult) {
	view := result.View

	humanMsg := domain.ServerMessage{
		Type:      "move_made",
		GameID:    view.GameID,
		Row:       result.HumanMove.Row,
		Col:       result.HumanMove.Col,
		Player:    int(view.HumanPlayer),
		Rating:    view.Score.CurrentRating,
		MoveCount: view.MoveCount,
	}
	if result.AgentMove == nil {
		humanMsg.Board = view.Board
		humanMsg.CurrentTurn = int(view.CurrentTurn)
	}
	_ = h.ConnManager.SendMessage(guestID, humanMsg)

	if result.AgentMove != nil {
		_ = h.ConnManager.SendMessage(guestID, domain.ServerMessage{
			Type:        "move_made",
			GameID:      view.GameID,
			Row:         result.AgentMove.Row,
			Col:         result.AgentMove.Col,
			Player:      int(view.AgentPlayer),
			Board:       view.Board,
			CurrentTurn: int(view.CurrentTurn),
			MoveCount:   view.MoveCount,
			Rating:      view.Score.CurrentRating,
		})
	}

	if view.Status != domain.StatusActive {
		reason := "five_in_a_row"
		if view.Status == domain.StatusDraw {
			reason = "draw"
		}
		_ = h.ConnManager.SendMessage(guestID, domain.ServerMessage{
			Type:      "game_over",
			GameID:    view.GameID,
			Winner:    int(view.Winner),
			Reason:    reason,
			Board:     view.Board,
			MoveCount: view.MoveCount,
			Rating:    view.Score.CurrentRating,
		})
	}
}

func (h *Handler) sendFailure(guestID string, err error) {
	var domainErr domain.Error
	if errors.As(err, &domainErr) {
		h.ConnManager.SendError(guestID, err.Error())
		return
	}
	log.Error().Err(err).Str("guest", guestID).Msg("[WS] Internal error")
	h.ConnManager.SendError(guestID, "Internal error")
}

func gameStartMessage(view game.SessionView) domain.ServerMessage {
	return domain.ServerMessage{
		Type:        "game_start",
		GameID:      view.GameID,
		Opponent:    view.Opponent,
		YourPlayer:  int(view.HumanPlayer),
		CurrentTurn: int(view.CurrentTurn),
		Board:       view.Board,
		MoveCount:   view.MoveCount,
		Rating:      view.Score.CurrentRating,
	}
}
