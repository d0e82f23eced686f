package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/analysis"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/game"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sm := game.NewSessionManager(game.Settings{BoardSize: domain.DefaultBoardSize, HardDepth: 1})
	return NewRouter(
		RouterConfig{JWTSecret: testSecret, AllowedOrigins: []string{"http://localhost:5173"}},
		Handlers{
			Auth:     NewAuthHandler(testSecret, time.Hour, false),
			Games:    NewGameHandler(sm),
			Analysis: NewAnalysisHandler(analysis.NewService(nil, 0, 2, 0)),
		},
		sm,
	)
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func guestToken(t *testing.T, router *gin.Engine) string {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, "/api/auth/guest", "", map[string]string{"username": "tester"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Token    string `json:"token"`
		GuestID  string `json:"guestId"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "tester", resp.Username)
	return resp.Token
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestGuestAuth(t *testing.T) {
	router := newTestRouter(t)

	t.Run("empty body gets a generated name", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/auth/guest", "", nil)
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Contains(t, rec.Body.String(), `"username":"Guest-`)
		require.NotEmpty(t, rec.Result().Cookies(), "Token is also set as a cookie")
	})

	t.Run("protected routes need a token", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/games", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = doRequest(t, router, http.MethodPost, "/api/games", "garbage", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGameFlow(t *testing.T) {
	router := newTestRouter(t)
	token := guestToken(t, router)

	rec := doRequest(t, router, http.MethodPost, "/api/games", token, map[string]interface{}{"difficulty": "easy"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var view game.SessionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.NotEmpty(t, view.GameID)
	require.Equal(t, domain.Player1, view.HumanPlayer)

	base := "/api/games/" + view.GameID

	rec = doRequest(t, router, http.MethodGet, base, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, base+"/moves", token, map[string]int{"row": 7, "col": 7})
	require.Equal(t, http.StatusOK, rec.Code)
	var turn game.TurnResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &turn))
	require.NotNil(t, turn.AgentMove)
	require.Equal(t, 2, turn.View.MoveCount)

	rec = doRequest(t, router, http.MethodPost, base+"/moves", token, map[string]int{"row": 7, "col": 7})
	require.Equal(t, http.StatusBadRequest, rec.Code, "Occupied cell")

	rec = doRequest(t, router, http.MethodPost, base+"/moves", token, map[string]int{"row": 3})
	require.Equal(t, http.StatusBadRequest, rec.Code, "Missing column")

	other := guestToken(t, router)
	rec = doRequest(t, router, http.MethodGet, base, other, nil)
	require.Equal(t, http.StatusNotFound, rec.Code, "Games are private to their guest")

	rec = doRequest(t, router, http.MethodPost, base+"/switch", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Equal(t, domain.Player1, view.AgentPlayer)
	require.Equal(t, 1, view.MoveCount)

	rec = doRequest(t, router, http.MethodPost, base+"/reset", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, base, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = doRequest(t, router, http.MethodGet, base, token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalysisRoutes(t *testing.T) {
	router := newTestRouter(t)
	token := guestToken(t, router)
	board := domain.NewGameState(domain.DefaultBoardSize).Snapshot()

	rec := doRequest(t, router, http.MethodPost, "/api/analysis/best-move", token, map[string]interface{}{
		"board": board, "player": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var best analysis.BestMoveResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &best))
	require.True(t, best.Found)
	require.Equal(t, domain.Move{Row: 7, Col: 7}, best.Move)

	rec = doRequest(t, router, http.MethodPost, "/api/analysis/best-move", token, map[string]interface{}{
		"board": board, "player": 3,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/analysis/evaluate", token, map[string]interface{}{
		"board": board, "player": 1, "row": 7, "col": 7,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"percentage":100`)

	rec = doRequest(t, router, http.MethodPost, "/api/analysis/evaluate", token, map[string]interface{}{
		"board": [][]int{{0, 0}, {0, 0}}, "player": 1, "row": 0, "col": 0,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORS(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/games", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStatusFor(t *testing.T) {
	require.Equal(t, http.StatusNotFound, statusFor(game.ErrSessionNotFound))
	require.Equal(t, http.StatusConflict, statusFor(domain.ErrNotYourTurn))
	require.Equal(t, http.StatusConflict, statusFor(domain.ErrGameOver))
	require.Equal(t, http.StatusBadRequest, statusFor(domain.ErrInvalidBoard))
	require.Equal(t, http.StatusInternalServerError, statusFor(bytes.ErrTooLarge))
}
