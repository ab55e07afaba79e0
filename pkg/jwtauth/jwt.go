// Package jwtauth issues and verifies the signed identity tokens used by the
// API. Tokens are HS256 JWTs carrying {id, username, email, role} plus the
// standard expiry claims. Every token names its signing key in the "kid"
// header so verification keeps working across a secret rotation.
package jwtauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"user-auth-api/internal/config"
	"user-auth-api/internal/model"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims is the payload embedded in every issued token.
type Claims struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// CanModify reports whether this identity may mutate the user with the given
// ID: owners may touch their own record, admins may touch any.
func (c *Claims) CanModify(userID int) bool {
	return c.ID == userID || c.Role == model.RoleAdmin
}

// TokenService signs and parses tokens with the configured key set.
type TokenService struct {
	keys      map[string]string
	activeKID string
	timeout   time.Duration
}

func NewTokenService(cfg *config.Config) (*TokenService, error) {
	if _, ok := cfg.JWT.Keys[cfg.JWT.ActiveKID]; !ok {
		return nil, fmt.Errorf("jwt active_kid %q has no secret", cfg.JWT.ActiveKID)
	}
	return &TokenService{
		keys:      cfg.JWT.Keys,
		activeKID: cfg.JWT.ActiveKID,
		timeout:   cfg.JWT.Timeout,
	}, nil
}

// Issue signs a token for the user, expiring after the configured timeout.
func (s *TokenService) Issue(user *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.timeout)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = s.activeKID

	signed, err := token.SignedString([]byte(s.keys[s.activeKID]))
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Parse validates a token and returns its claims. Expired tokens come back as
// ErrTokenExpired; anything else wrong with the token (bad signature, unknown
// kid, malformed) is ErrTokenInvalid.
func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}

		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			// Tokens issued before key identifiers were introduced fall
			// back to the active key.
			kid = s.activeKID
		}
		secret, ok := s.keys[kid]
		if !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
