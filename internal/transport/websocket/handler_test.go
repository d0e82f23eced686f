package websocket

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/game"
	"github.com/iamasit07/5-in-a-row/backend/pkg/auth"
	"github.com/stretchr/testify/require"
)

const testSecret = "ws-secret"

func newTestServer(t *testing.T) (*httptest.Server, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sm := game.NewSessionManager(game.Settings{BoardSize: domain.DefaultBoardSize, HardDepth: 1})
	h := NewHandler(NewConnectionManager(), sm, testSecret, []string{"http://localhost:5173"})

	router := gin.New()
	router.GET("/ws", h.HandleWebSocket)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, h
}

func dial(t *testing.T, server *httptest.Server, guestID string) *websocket.Conn {
	t.Helper()
	token, err := auth.GenerateGuestToken(testSecret, guestID, "tester", time.Hour)
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) domain.ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg domain.ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestWebSocketRejectsMissingToken(t *testing.T) {
	server, _ := newTestServer(t)
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Equal(t, 401, resp.StatusCode)
}

func TestWebSocketGame(t *testing.T) {
	server, _ := newTestServer(t)
	conn := dial(t, server, "guest_ws")

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: "new_game", Difficulty: "easy"}))
	start := readMessage(t, conn)
	require.Equal(t, "game_start", start.Type)
	require.NotEmpty(t, start.GameID)
	require.Equal(t, int(domain.Player1), start.YourPlayer)
	require.Equal(t, "Alice", start.Opponent)

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: "make_move", Row: 7, Col: 7}))
	human := readMessage(t, conn)
	require.Equal(t, "move_made", human.Type)
	require.Equal(t, int(domain.Player1), human.Player)
	require.Equal(t, 7, human.Row)
	require.Equal(t, 7, human.Col)

	reply := readMessage(t, conn)
	require.Equal(t, "move_made", reply.Type)
	require.Equal(t, int(domain.Player2), reply.Player)
	require.Equal(t, int(domain.Player1), reply.CurrentTurn)
	require.Equal(t, int(domain.Player2), reply.Board[reply.Row][reply.Col])

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: "make_move", Row: 7, Col: 7}))
	failure := readMessage(t, conn)
	require.Equal(t, "error", failure.Type)
	require.Contains(t, failure.Message, "occupied")

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: "switch_side"}))
	switched := readMessage(t, conn)
	require.Equal(t, "game_start", switched.Type)
	require.Equal(t, int(domain.Player2), switched.YourPlayer)
	require.Equal(t, 1, switched.MoveCount)
}

func TestWebSocketWithoutGame(t *testing.T) {
	server, _ := newTestServer(t)
	conn := dial(t, server, "guest_idle")

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: "make_move", Row: 1, Col: 1}))
	msg := readMessage(t, conn)
	require.Equal(t, "error", msg.Type)
	require.Equal(t, "Game not found", msg.Message)

	require.NoError(t, conn.WriteJSON(domain.ClientMessage{Type: "dance"}))
	msg = readMessage(t, conn)
	require.Equal(t, "Unknown message type", msg.Message)
}

func TestWebSocketResumesGame(t *testing.T) {
	server, h := newTestServer(t)
	session, err := h.SessionManager.CreateSession(t.Context(), "guest_back", "easy", domain.Empty)
	require.NoError(t, err)

	conn := dial(t, server, "guest_back")
	msg := readMessage(t, conn)
	require.Equal(t, "game_start", msg.Type)
	require.Equal(t, session.GameID, msg.GameID)
}
