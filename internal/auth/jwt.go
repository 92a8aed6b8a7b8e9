package auth

import (
	"errors"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies the bearer tokens that carry the
// request-scoped identity.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (t *TokenIssuer) Mint(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.UserID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *TokenIssuer) Verify(tokenStr string) (domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil {
		return domain.Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return domain.Identity{}, ErrInvalidToken
	}

	role := domain.Role(claims.Role)
	if claims.UserID == "" || !role.Valid() {
		return domain.Identity{}, ErrInvalidToken
	}

	return domain.Identity{
		UserID: claims.UserID,
		Role:   role,
	}, nil
}
