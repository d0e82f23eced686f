package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/game"
	"github.com/iamasit07/5-in-a-row/backend/internal/transport/http/middleware"
)

type GameHandler struct {
	SessionManager *game.SessionManager
}

func NewGameHandler(sm *game.SessionManager) *GameHandler {
	return &GameHandler{SessionManager: sm}
}

type createGameRequest struct {
	Difficulty  string `json:"difficulty"`
	AgentPlayer int    `json:"agentPlayer"`
}

type moveRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

func (h *GameHandler) Create(c *gin.Context) {
	var req createGameRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
	}
	if req.AgentPlayer != 0 && !domain.PlayerID(req.AgentPlayer).Valid() {
		respondError(c, domain.ErrInvalidPlayer)
		return
	}

	session, err := h.SessionManager.CreateSession(c.Request.Context(), middleware.GuestID(c), req.Difficulty, domain.PlayerID(req.AgentPlayer))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session.View())
}

func (h *GameHandler) Get(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.View())
}

func (h *GameHandler) Move(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "row and col are required"})
		return
	}

	result, err := session.HandleMove(c.Request.Context(), *req.Row, *req.Col)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *GameHandler) Reset(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	if err := session.Reset(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.View())
}

func (h *GameHandler) SwitchSides(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	if err := session.SwitchSides(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.View())
}

func (h *GameHandler) Delete(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	if err := h.SessionManager.RemoveSession(session.GameID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// session resolves :id for the authenticated guest, writing a 404 otherwise.
func (h *GameHandler) session(c *gin.Context) (*game.GameSession, bool) {
	session, exists := h.SessionManager.GetSession(c.Param("id"), middleware.GuestID(c))
	if !exists {
		respondError(c, game.ErrSessionNotFound)
		return nil, false
	}
	return session, true
}
