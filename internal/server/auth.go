package server

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errNoSession = errors.New("no valid session")

// TokenAuth issues and verifies the signed bearer tokens that stand in
// for the identity layer. The engine only ever sees the player ID the
// token resolves to.
type TokenAuth struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenAuth(secret string, ttl time.Duration) *TokenAuth {
	return &TokenAuth{secret: []byte(secret), ttl: ttl}
}

type tokenClaims struct {
	PlayerName string `json:"playerName"`
	jwt.RegisteredClaims
}

// Issue signs a token carrying the player's ID as subject.
func (a *TokenAuth) Issue(p Player) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		PlayerName: p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			Issuer:    "centum",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Verify validates the token and returns the player ID it was issued to.
func (a *TokenAuth) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", errNoSession
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", errNoSession
	}
	return claims.Subject, nil
}
