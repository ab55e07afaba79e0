package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"user-auth-api/internal/model"
	"user-auth-api/internal/repository"
	"user-auth-api/pkg/jwtauth"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so a
	// caller cannot tell which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserConflict       = errors.New("username or email already exists")
)

type AuthService interface {
	Register(username, email, password string) (string, *model.User, error)
	Login(email, password string) (string, *model.User, error)
	Profile(id int) (*model.User, error)
}

type AuthServiceImpl struct {
	userRepo repository.UserRepository
	tokens   *jwtauth.TokenService
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwtauth.TokenService) *AuthServiceImpl {
	return &AuthServiceImpl{userRepo: userRepo, tokens: tokens}
}

// Register hashes the password, stores a new record with the next sequential
// ID and role "user", and issues a token for it.
func (s *AuthServiceImpl) Register(username, email, password string) (string, *model.User, error) {
	if _, err := s.userRepo.FindByEmailOrUsername(email, username); err == nil {
		return "", nil, ErrUserConflict
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user := &model.User{
		Username:  username,
		Email:     email,
		Password:  string(hashed),
		Role:      model.RoleUser,
		CreatedAt: model.Now(),
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return "", nil, ErrUserConflict
		}
		return "", nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthServiceImpl) Login(email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Profile looks the identity up again; a token can outlive its user, so the
// record may be gone even though the guard accepted the token.
func (s *AuthServiceImpl) Profile(id int) (*model.User, error) {
	return s.userRepo.FindByID(id)
}
