package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/5-in-a-row/backend/pkg/auth"
	"github.com/iamasit07/5-in-a-row/backend/pkg/httputil"
	"github.com/iamasit07/5-in-a-row/backend/pkg/uid"
	"github.com/rs/zerolog/log"
)

const maxUsernameLength = 50

type AuthHandler struct {
	JWTSecret    string
	TokenTTL     time.Duration
	SecureCookie bool
}

func NewAuthHandler(jwtSecret string, tokenTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{JWTSecret: jwtSecret, TokenTTL: tokenTTL, SecureCookie: secureCookie}
}

// Guest issues an anonymous identity. Games are owned by the guest ID in the token.
func (h *AuthHandler) Guest(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
	}
	// An empty body is allowed
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
	}

	req.Username = strings.TrimSpace(req.Username)
	if len(req.Username) > maxUsernameLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be at most 50 characters"})
		return
	}

	guestID, err := uid.GenerateGuestID()
	if err != nil {
		respondError(c, err)
		return
	}
	if req.Username == "" {
		req.Username = "Guest-" + guestID[len(guestID)-6:]
	}

	token, err := auth.GenerateGuestToken(h.JWTSecret, guestID, req.Username, h.TokenTTL)
	if err != nil {
		respondError(c, err)
		return
	}

	httputil.SetAuthCookie(c.Writer, token, h.TokenTTL, h.SecureCookie)
	log.Info().Str("guest", guestID).Str("username", req.Username).Msg("[AUTH] Guest token issued")
	c.JSON(http.StatusCreated, gin.H{
		"token":    token,
		"guestId":  guestID,
		"username": req.Username,
	})
}
