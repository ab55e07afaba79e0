package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"user-auth-api/internal/model"
	"user-auth-api/internal/repository"
	"user-auth-api/pkg/jwtauth"
)

func newUserService(t *testing.T) (*UserServiceImpl, *repository.MemoryUserRepository) {
	t.Helper()
	repo, err := repository.NewMemoryUserRepository()
	require.NoError(t, err)
	return NewUserService(repo), repo
}

func addUser(t *testing.T, repo *repository.MemoryUserRepository, username, email string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw12345"), bcrypt.DefaultCost)
	require.NoError(t, err)
	u := &model.User{
		Username:  username,
		Email:     email,
		Password:  string(hash),
		Role:      model.RoleUser,
		CreatedAt: model.Now(),
	}
	require.NoError(t, repo.Create(u))
	return u
}

func claimsFor(u *model.User) *jwtauth.Claims {
	return &jwtauth.Claims{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

func TestUpdateByOwner(t *testing.T) {
	svc, repo := newUserService(t)
	alice := addUser(t, repo, "alice", "a@x.com")

	newEmail := "alice@x.com"
	updated, err := svc.UpdateUser(claimsFor(alice), alice.ID, UserUpdate{Email: &newEmail})
	require.NoError(t, err)
	require.Equal(t, "alice@x.com", updated.Email)
	require.Equal(t, "alice", updated.Username, "unset fields stay unchanged")
}

func TestUpdateRehashesPassword(t *testing.T) {
	svc, repo := newUserService(t)
	alice := addUser(t, repo, "alice", "a@x.com")

	newPassword := "newpw123"
	updated, err := svc.UpdateUser(claimsFor(alice), alice.ID, UserUpdate{Password: &newPassword})
	require.NoError(t, err)
	require.NotEqual(t, newPassword, updated.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte(newPassword)))
}

func TestUpdateByOtherUserForbidden(t *testing.T) {
	svc, repo := newUserService(t)
	alice := addUser(t, repo, "alice", "a@x.com")
	bob := addUser(t, repo, "bob", "b@x.com")

	name := "hacked"
	_, err := svc.UpdateUser(claimsFor(bob), alice.ID, UserUpdate{Username: &name})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateByAdmin(t *testing.T) {
	svc, repo := newUserService(t)
	alice := addUser(t, repo, "alice", "a@x.com")

	admin, err := repo.FindByID(1)
	require.NoError(t, err)

	name := "renamed"
	updated, err := svc.UpdateUser(claimsFor(admin), alice.ID, UserUpdate{Username: &name})
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Username)
}

func TestUpdateMissingUser(t *testing.T) {
	svc, repo := newUserService(t)
	admin, err := repo.FindByID(1)
	require.NoError(t, err)

	name := "ghost"
	_, err = svc.UpdateUser(claimsFor(admin), 99, UserUpdate{Username: &name})
	require.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestDeleteOwnershipRules(t *testing.T) {
	svc, repo := newUserService(t)
	alice := addUser(t, repo, "alice", "a@x.com")
	bob := addUser(t, repo, "bob", "b@x.com")

	require.ErrorIs(t, svc.DeleteUser(claimsFor(bob), alice.ID), ErrForbidden)

	require.NoError(t, svc.DeleteUser(claimsFor(alice), alice.ID))
	require.ErrorIs(t, svc.DeleteUser(claimsFor(alice), alice.ID), repository.ErrUserNotFound)

	admin, err := repo.FindByID(1)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteUser(claimsFor(admin), bob.ID))
}

func TestListUsers(t *testing.T) {
	svc, repo := newUserService(t)
	addUser(t, repo, "alice", "a@x.com")

	users, err := svc.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
}
