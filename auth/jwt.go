package auth

import (
	"errors"
	"time"

	"finance-tracker/apperrors"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = time.Hour

// TokenManager issues and verifies the stateless bearer tokens. Nothing
// is persisted: validity is a pure signature + expiry check.
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Issue signs a token binding the user id, valid for TokenTTL.
func (tm *TokenManager) Issue(userID int) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userID,
		"iat": now.Unix(),
		"exp": now.Add(TokenTTL).Unix(),
	})
	return token.SignedString(tm.secret)
}

// Verify checks signature and expiry and returns the embedded user id.
// Malformed, tampered and expired tokens all fail with the same
// unauthorized error; callers must not learn which check tripped.
func (tm *TokenManager) Verify(tokenStr string) (int, error) {
	unauthorized := apperrors.Unauthorized("Unauthorized")

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, unauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, unauthorized
	}

	// JSON numbers decode as float64.
	id, ok := claims["id"].(float64)
	if !ok {
		return 0, unauthorized
	}
	return int(id), nil
}
