package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"user-auth-api/internal/model"
	"user-auth-api/internal/repository"
	"user-auth-api/pkg/jwtauth"
)

// ErrForbidden means the acting identity is neither the owner of the target
// record nor an admin.
var ErrForbidden = errors.New("not allowed to modify this user")

// UserUpdate carries the optional fields of a profile update; nil means
// "leave unchanged".
type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
}

type UserService interface {
	ListUsers() ([]model.User, error)
	GetUser(id int) (*model.User, error)
	UpdateUser(actor *jwtauth.Claims, id int, update UserUpdate) (*model.User, error)
	DeleteUser(actor *jwtauth.Claims, id int) error
}

type UserServiceImpl struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) ListUsers() ([]model.User, error) {
	return s.userRepo.List()
}

func (s *UserServiceImpl) GetUser(id int) (*model.User, error) {
	return s.userRepo.FindByID(id)
}

// UpdateUser applies only the fields present in the update. A supplied
// password is re-hashed before storage. The not-found check runs before the
// ownership check, matching the route's 404-then-403 order.
func (s *UserServiceImpl) UpdateUser(actor *jwtauth.Claims, id int, update UserUpdate) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if !actor.CanModify(id) {
		return nil, ErrForbidden
	}

	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, ErrUserConflict
		}
		return nil, err
	}
	return user, nil
}

func (s *UserServiceImpl) DeleteUser(actor *jwtauth.Claims, id int) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		return err
	}

	if !actor.CanModify(id) {
		return ErrForbidden
	}

	return s.userRepo.Delete(id)
}
