package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"user-auth-api/internal/config"
	"user-auth-api/internal/repository"
	"user-auth-api/pkg/jwtauth"
)

func newAuthService(t *testing.T) (*AuthServiceImpl, *repository.MemoryUserRepository, *jwtauth.TokenService) {
	t.Helper()

	repo, err := repository.NewMemoryUserRepository()
	require.NoError(t, err)

	tokens, err := jwtauth.NewTokenService(&config.Config{
		JWT: config.JWTConfig{
			Keys:      map[string]string{"v1": "0123456789abcdef0123456789abcdef"},
			ActiveKID: "v1",
			Timeout:   24 * time.Hour,
		},
	})
	require.NoError(t, err)

	return NewAuthService(repo, tokens), repo, tokens
}

func TestRegister(t *testing.T) {
	svc, _, tokens := newAuthService(t)

	token, user, err := svc.Register("alice", "a@x.com", "pw12345")
	require.NoError(t, err)
	require.Equal(t, 2, user.ID)
	require.Equal(t, "alice", user.Username)
	require.NotEqual(t, "pw12345", user.Password, "password must be stored hashed")

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.ID)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "a@x.com", claims.Email)
}

func TestRegisterConflict(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, _, err := svc.Register("alice", "a@x.com", "pw12345")
	require.NoError(t, err)

	// Same email, different username.
	_, _, err = svc.Register("alice2", "a@x.com", "pw12345")
	require.ErrorIs(t, err, ErrUserConflict)

	// Same username, different email.
	_, _, err = svc.Register("alice", "a2@x.com", "pw12345")
	require.ErrorIs(t, err, ErrUserConflict)

	// The seeded admin's identity is taken too.
	_, _, err = svc.Register("admin", "new@x.com", "pw12345")
	require.ErrorIs(t, err, ErrUserConflict)
}

func TestLogin(t *testing.T) {
	svc, _, tokens := newAuthService(t)

	_, registered, err := svc.Register("alice", "a@x.com", "pw12345")
	require.NoError(t, err)

	token, user, err := svc.Login("a@x.com", "pw12345")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	require.Equal(t, registered.ID, claims.ID)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "a@x.com", claims.Email)
}

func TestLoginBadCredentialsAreIndistinguishable(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, _, err := svc.Register("alice", "a@x.com", "pw12345")
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login("a@x.com", "wrong")
	_, _, unknownEmail := svc.Login("nobody@x.com", "pw12345")

	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLoginSeedAdmin(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, user, err := svc.Login("admin@example.com", "admin123")
	require.NoError(t, err)
	require.Equal(t, 1, user.ID)
}

func TestProfileGoneUser(t *testing.T) {
	svc, repo, _ := newAuthService(t)

	_, user, err := svc.Register("alice", "a@x.com", "pw12345")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(user.ID))

	_, err = svc.Profile(user.ID)
	require.ErrorIs(t, err, repository.ErrUserNotFound)
}
