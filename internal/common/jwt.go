package common

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the data stored in the JWT token. The user id is the
// only custom claim, mirroring the bearer payload {id: <user id>}.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenManager signs and validates bearer tokens. The secret and expiry
// come from config at construction, never from ambient process state.
type TokenManager struct {
	secret []byte
	expiry time.Duration
	issuer string
}

func NewTokenManager(secret, issuer string, expiryDays int) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		expiry: time.Duration(expiryDays) * 24 * time.Hour,
		issuer: issuer,
	}
}

func (tm *TokenManager) GenerateToken(userID string) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tm.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    tm.issuer,
			Subject:   "user-auth",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(tm.secret)
}

func (tm *TokenManager) ValidToken(tokenstring string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenstring, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, NewUnauthorizedError("unexpected signing method")
		}
		return tm.secret, nil
	})

	if err != nil {
		return nil, NewUnauthorizedError("invalid or expired token")
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, NewUnauthorizedError("invalid token")
}
