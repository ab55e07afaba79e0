package apiclient

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrNoToken is returned by Load when no usable token is stored.
var ErrNoToken = errors.New("no token stored")

// TokenStore is the client-side slot a session token lives in between calls.
type TokenStore interface {
	Save(token string, expiresAt time.Time) error
	Load() (string, error)
	Clear() error
}

type storedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// FileTokenStore persists the token as a small JSON file, the CLI equivalent
// of the browser cookie the web frontend uses.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Save(token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(storedToken{Token: token, ExpiresAt: expiresAt})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Load returns the stored token, or ErrNoToken when the slot is empty or the
// stored record has passed its expiry stamp.
func (s *FileTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", err
	}

	var st storedToken
	if err := json.Unmarshal(data, &st); err != nil {
		return "", ErrNoToken
	}
	if st.Token == "" || time.Now().After(st.ExpiresAt) {
		return "", ErrNoToken
	}
	return st.Token, nil
}

func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemoryTokenStore keeps the token in process memory only.
type MemoryTokenStore struct {
	mu sync.Mutex
	st storedToken
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Save(token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = storedToken{Token: token, ExpiresAt: expiresAt}
	return nil
}

func (s *MemoryTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.Token == "" || time.Now().After(s.st.ExpiresAt) {
		return "", ErrNoToken
	}
	return s.st.Token, nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = storedToken{}
	return nil
}
