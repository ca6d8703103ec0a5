package auth

import (
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MemStore is the in-process credential map. It is not a security boundary.
type MemStore struct {
	mu         sync.RWMutex
	byUsername map[string]User
	cost       int
}

func NewMemStore() *MemStore {
	return NewMemStoreWithCost(bcrypt.DefaultCost)
}

func NewMemStoreWithCost(cost int) *MemStore {
	return &MemStore{byUsername: make(map[string]User), cost: cost}
}

func (s *MemStore) Register(username, password string, role Role) (User, error) {
	username = normalizeUsername(username)
	password = normalizePassword(password)

	if username == "" || strings.IndexFunc(username, unicode.IsSpace) >= 0 {
		return User{}, ErrInvalidUsername
	}
	if len(password) < MinPasswordLen {
		return User{}, ErrPasswordTooShort
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byUsername[username]; ok {
		return User{}, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, err
	}

	u := User{ID: "u_" + uuid.NewString(), Username: username, Hash: hash, Role: role}
	s.byUsername[username] = u
	return u, nil
}

func (s *MemStore) Verify(username, password string) (User, error) {
	username = normalizeUsername(username)
	password = normalizePassword(password)

	s.mu.RLock()
	u, ok := s.byUsername[username]
	s.mu.RUnlock()

	if !ok {
		return User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(u.Hash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byUsername)
}
