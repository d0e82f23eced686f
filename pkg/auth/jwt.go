package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents JWT claims for guest tokens
type Claims struct {
	GuestID  string `json:"guest_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateGuestToken creates a signed guest token valid for ttl
func GenerateGuestToken(secret, guestID, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		GuestID:  guestID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   guestID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateGuestToken validates a guest token and returns the claims
func ValidateGuestToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.GuestID != "" {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
