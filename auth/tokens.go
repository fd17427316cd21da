package auth

import (
	"time"

	"reisegruppen/middleware"
	"reisegruppen/models"
	"reisegruppen/utils"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer signs HS256 access tokens carrying the user's id, email and role.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl, now: time.Now}
}

func (ti *TokenIssuer) Issue(u models.User) (string, error) {
	now := ti.now()
	return middleware.SignToken(ti.secret, middleware.Claims{
		UserID: u.ID.Hex(),
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        utils.GetUUID(),
			Subject:   u.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
		},
	})
}
