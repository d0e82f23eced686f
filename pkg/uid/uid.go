package uid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const idBytes = 16

func randomHex() (string, error) {
	buf := make([]byte, idBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// GenerateGameID returns a random 128-bit game ID in hex. It panics if the
// system random source fails.
func GenerateGameID() string {
	id, err := randomHex()
	if err != nil {
		panic(fmt.Sprintf("uid: read random game id: %v", err))
	}
	return id
}

// GenerateGuestID returns "guest_" followed by 128 random bits in hex.
func GenerateGuestID() (string, error) {
	id, err := randomHex()
	if err != nil {
		return "", fmt.Errorf("failed to generate guest ID: %w", err)
	}
	return "guest_" + id, nil
}
