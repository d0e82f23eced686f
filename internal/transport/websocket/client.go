package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
)

const writeWait = 10 * time.Second

// ConnectionManager handles active WebSocket connections thread-safely
type ConnectionManager struct {
	connections map[string]*websocket.Conn
	usernames   map[string]string

	// conn.WriteJSON is not safe for concurrent use, so every socket has its own write lock
	writeMu map[string]*sync.Mutex

	mu sync.RWMutex // Protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		usernames:   make(map[string]string),
		writeMu:     make(map[string]*sync.Mutex),
	}
}

// AddConnection registers a new connection, closing any older one for the same guest
func (cm *ConnectionManager) AddConnection(guestID string, conn *websocket.Conn, username string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if oldConn, exists := cm.connections[guestID]; exists {
		oldConn.Close()
	}

	cm.connections[guestID] = conn
	cm.usernames[guestID] = username
	cm.writeMu[guestID] = &sync.Mutex{}
}

// RemoveConnectionIfMatching avoids closing a NEW connection when cleaning up an OLD one.
func (cm *ConnectionManager) RemoveConnectionIfMatching(guestID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if currentConn, exists := cm.connections[guestID]; exists && currentConn == conn {
		currentConn.Close()
		delete(cm.connections, guestID)
		delete(cm.usernames, guestID)
		delete(cm.writeMu, guestID)
	}
}

func (cm *ConnectionManager) IsConnected(guestID string) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	_, exists := cm.connections[guestID]
	return exists
}

// SendMessage sends a JSON message to a specific guest. A guest without a
// live connection is silently skipped.
func (cm *ConnectionManager) SendMessage(guestID string, message interface{}) error {
	cm.mu.RLock()
	conn, exists := cm.connections[guestID]
	mu, muExists := cm.writeMu[guestID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(message)
}

// SendError is a shorthand for an error event.
func (cm *ConnectionManager) SendError(guestID, message string) {
	_ = cm.SendMessage(guestID, domain.ErrorMessage{Type: "error", Message: message})
}

// GetUsername returns the username for a connected guest
func (cm *ConnectionManager) GetUsername(guestID string) (string, bool) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	name, exists := cm.usernames[guestID]
	return name, exists
}
