package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pholio/internal/ids"
)

type SessionClaims struct {
	AdminID  int64  `json:"aid"`
	Username string `json:"name"`
	jwt.RegisteredClaims
}

// GenerateSessionToken mints a signed session token for an admin. The token
// id (jti) is the handle the logout denylist keys on.
func GenerateSessionToken(secret string, adminID int64, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		AdminID:  adminID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   fmt.Sprintf("%d", adminID),
			ID:        ids.New(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

func ParseSessionToken(tokenStr string, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
