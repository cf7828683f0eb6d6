package auth

import (
	"time"

	"github.com/edupanel/enrollcore/internal/errs"
	"github.com/golang-jwt/jwt/v5"
)

type TokenManager struct {
	secretKey []byte
}

func NewTokenManager(secretKey string) *TokenManager {
	return &TokenManager{[]byte(secretKey)}
}

// GenerateToken issues a short-lived admin token. Only the admin surface
// (verify/refund/dispute) is token-guarded.
func (tm *TokenManager) GenerateToken(login string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  login,
		"role": "admin",
		"exp":  time.Now().Add(8 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secretKey)
}

func (tm *TokenManager) ParseToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errs.ErrInvalidToken
		}
		return tm.secretKey, nil
	})

	if err != nil || !token.Valid {
		return "", errs.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errs.ErrInvalidToken
	}

	if role, ok := claims["role"].(string); !ok || role != "admin" {
		return "", errs.ErrInvalidToken
	}

	login, ok := claims["sub"].(string)
	if !ok || login == "" {
		return "", errs.ErrInvalidToken
	}

	return login, nil
}
