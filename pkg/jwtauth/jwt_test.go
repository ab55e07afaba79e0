package jwtauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"user-auth-api/internal/config"
	"user-auth-api/internal/model"
)

func testConfig(timeout time.Duration) *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Keys:      map[string]string{"v1": "0123456789abcdef0123456789abcdef"},
			ActiveKID: "v1",
			Timeout:   timeout,
		},
	}
}

func testUser() *model.User {
	return &model.User{
		ID:       2,
		Username: "alice",
		Email:    "a@x.com",
		Role:     model.RoleUser,
	}
}

func TestIssueAndParse(t *testing.T) {
	svc, err := NewTokenService(testConfig(24 * time.Hour))
	require.NoError(t, err)

	token, err := svc.Issue(testUser())
	require.NoError(t, err)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	require.Equal(t, 2, claims.ID)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "a@x.com", claims.Email)
	require.Equal(t, model.RoleUser, claims.Role)
}

func TestParseExpired(t *testing.T) {
	// A negative timeout issues tokens that are already past their expiry.
	svc, err := NewTokenService(testConfig(-time.Minute))
	require.NoError(t, err)

	token, err := svc.Issue(testUser())
	require.NoError(t, err)

	_, err = svc.Parse(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseWrongSecret(t *testing.T) {
	issuer, err := NewTokenService(testConfig(time.Hour))
	require.NoError(t, err)

	verifier, err := NewTokenService(&config.Config{
		JWT: config.JWTConfig{
			Keys:      map[string]string{"v1": "another-secret-another-secret-32ch"},
			ActiveKID: "v1",
			Timeout:   time.Hour,
		},
	})
	require.NoError(t, err)

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseGarbage(t *testing.T) {
	svc, err := NewTokenService(testConfig(time.Hour))
	require.NoError(t, err)

	_, err = svc.Parse("not.a.token")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestKeyRotation(t *testing.T) {
	oldSvc, err := NewTokenService(testConfig(time.Hour))
	require.NoError(t, err)

	token, err := oldSvc.Issue(testUser())
	require.NoError(t, err)

	// After rotation the old key stays in the set; tokens signed with it
	// still verify while new ones are signed with v2.
	rotated, err := NewTokenService(&config.Config{
		JWT: config.JWTConfig{
			Keys: map[string]string{
				"v1": "0123456789abcdef0123456789abcdef",
				"v2": "fedcba9876543210fedcba9876543210",
			},
			ActiveKID: "v2",
			Timeout:   time.Hour,
		},
	})
	require.NoError(t, err)

	claims, err := rotated.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)

	newToken, err := rotated.Issue(testUser())
	require.NoError(t, err)
	_, err = rotated.Parse(newToken)
	require.NoError(t, err)

	// The retired service has no v2 key and must reject new tokens.
	_, err = oldSvc.Parse(newToken)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestCanModify(t *testing.T) {
	owner := &Claims{ID: 2, Role: model.RoleUser}
	require.True(t, owner.CanModify(2))
	require.False(t, owner.CanModify(3))

	admin := &Claims{ID: 1, Role: model.RoleAdmin}
	require.True(t, admin.CanModify(1))
	require.True(t, admin.CanModify(99))
}

func TestNewTokenServiceMissingActiveKey(t *testing.T) {
	_, err := NewTokenService(&config.Config{
		JWT: config.JWTConfig{
			Keys:      map[string]string{"v1": "0123456789abcdef0123456789abcdef"},
			ActiveKID: "v2",
			Timeout:   time.Hour,
		},
	})
	require.Error(t, err)
}
