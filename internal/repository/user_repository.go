package repository

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"user-auth-api/internal/model"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("username or email already exists")
)

type UserRepository interface {
	FindByID(id int) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByEmailOrUsername(email, username string) (*model.User, error)
	List() ([]model.User, error)
	Create(user *model.User) error
	Update(user *model.User) error
	Delete(id int) error
}

// MemoryUserRepository keeps user records in an in-process slice. Lookups are
// linear scans; all access goes through a RWMutex so concurrent requests see
// consistent state. Nothing survives a restart.
type MemoryUserRepository struct {
	mu     sync.RWMutex
	users  []model.User
	nextID int
}

// Default credentials for the seeded administrator account.
const (
	seedAdminUsername = "admin"
	seedAdminEmail    = "admin@example.com"
	seedAdminPassword = "admin123"
)

// NewMemoryUserRepository builds the store with one seeded admin record
// (ID 1); IDs assigned to registered users start at 2.
func NewMemoryUserRepository() (*MemoryUserRepository, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &MemoryUserRepository{
		users: []model.User{{
			ID:        1,
			Username:  seedAdminUsername,
			Email:     seedAdminEmail,
			Password:  string(hash),
			Role:      model.RoleAdmin,
			CreatedAt: model.Now(),
		}},
		nextID: 2,
	}, nil
}

func (r *MemoryUserRepository) FindByID(id int) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUserRepository) FindByEmail(email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUserRepository) FindByEmailOrUsername(email, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].Email == email || r.users[i].Username == username {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

// List returns a copy of every record.
func (r *MemoryUserRepository) List() ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

// Create assigns the next sequential ID and appends the record. The
// uniqueness invariant is re-checked under the write lock so two concurrent
// registrations cannot both slip past the service-level check.
func (r *MemoryUserRepository) Create(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].Email == user.Email || r.users[i].Username == user.Username {
			return ErrDuplicateUser
		}
	}

	user.ID = r.nextID
	r.nextID++
	r.users = append(r.users, *user)
	return nil
}

// Update replaces the stored record with the same ID. Uniqueness against the
// other records is enforced here as well.
func (r *MemoryUserRepository) Update(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == user.ID {
			continue
		}
		if r.users[i].Email == user.Email || r.users[i].Username == user.Username {
			return ErrDuplicateUser
		}
	}

	for i := range r.users {
		if r.users[i].ID == user.ID {
			r.users[i] = *user
			return nil
		}
	}
	return ErrUserNotFound
}

func (r *MemoryUserRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return ErrUserNotFound
}
