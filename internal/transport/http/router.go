package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/game"
	"github.com/iamasit07/5-in-a-row/backend/internal/transport/http/middleware"
)

// Handlers groups everything the router serves.
type Handlers struct {
	Auth      *AuthHandler
	Games     *GameHandler
	Analysis  *AnalysisHandler
	WebSocket gin.HandlerFunc
}

type RouterConfig struct {
	JWTSecret      string
	AllowedOrigins []string
	CacheEnabled   bool
}

func NewRouter(cfg RouterConfig, h Handlers, sm *game.SessionManager) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"sessions": sm.ActiveSessionCount(),
			"cache":    cfg.CacheEnabled,
		})
	})

	// Public Auth Routes
	router.POST("/api/auth/guest", h.Auth.Guest)

	// Protected Routes
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		protected.POST("/games", h.Games.Create)
		protected.GET("/games/:id", h.Games.Get)
		protected.POST("/games/:id/moves", h.Games.Move)
		protected.POST("/games/:id/reset", h.Games.Reset)
		protected.POST("/games/:id/switch", h.Games.SwitchSides)
		protected.DELETE("/games/:id", h.Games.Delete)

		protected.POST("/analysis/best-move", h.Analysis.BestMove)
		protected.POST("/analysis/evaluate", h.Analysis.Evaluate)
	}

	// WebSocket Route (auth handled inside the WS handler itself)
	if h.WebSocket != nil {
		router.GET("/ws", h.WebSocket)
	}

	return router
}
