package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/analysis"
)

type AnalysisHandler struct {
	Service *analysis.Service
}

func NewAnalysisHandler(s *analysis.Service) *AnalysisHandler {
	return &AnalysisHandler{Service: s}
}

type bestMoveRequest struct {
	Board  [][]int `json:"board" binding:"required"`
	Player int     `json:"player" binding:"required"`
	Depth  int     `json:"depth"`
}

type evaluateRequest struct {
	Board  [][]int `json:"board" binding:"required"`
	Player int     `json:"player" binding:"required"`
	Row    *int    `json:"row" binding:"required"`
	Col    *int    `json:"col" binding:"required"`
}

// BestMove runs the full search on a submitted position
func (h *AnalysisHandler) BestMove(c *gin.Context) {
	var req bestMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "board and player are required"})
		return
	}
	player := domain.PlayerID(req.Player)
	if !player.Valid() {
		respondError(c, domain.ErrInvalidPlayer)
		return
	}

	result, err := h.Service.BestMove(c.Request.Context(), req.Board, player, req.Depth)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Evaluate rates a proposed move against the best one-ply move
func (h *AnalysisHandler) Evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "board, player, row and col are required"})
		return
	}
	player := domain.PlayerID(req.Player)
	if !player.Valid() {
		respondError(c, domain.ErrInvalidPlayer)
		return
	}

	evaluation, err := h.Service.EvaluateMove(req.Board, *req.Row, *req.Col, player)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, evaluation)
}
