package db

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cv-builder/internal/types"
)

// MemoryStore keeps accounts in process memory. It backs `serve --memory` and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*User
	now   func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[uuid.UUID]*User), now: time.Now}
}

func (m *MemoryStore) findByEmail(email string) *User {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range m.users {
		if strings.ToLower(u.Email) == email {
			return u
		}
	}
	return nil
}

// CheckEmailExists reports whether an account uses the email, ignoring case.
func (m *MemoryStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.findByEmail(email) != nil, nil
}

// CreateUser inserts an account.
func (m *MemoryStore) CreateUser(_ context.Context, name, email, phone, passwordHash string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findByEmail(email) != nil {
		return uuid.Nil, ErrEmailTaken
	}
	now := m.now()
	u := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        strings.TrimSpace(email),
		Phone:        phone,
		PasswordHash: passwordHash,
		PasswordSet:  passwordHash != "",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.users[u.ID] = u
	return u.ID, nil
}

// GetUser returns a copy of the account, or nil when none exists.
func (m *MemoryStore) GetUser(_ context.Context, id uuid.UUID) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// GetUserByEmail returns a copy of the account, or nil when none exists.
func (m *MemoryStore) GetUserByEmail(_ context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u := m.findByEmail(email)
	if u == nil {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// UpdatePassword replaces the password hash.
func (m *MemoryStore) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	u.PasswordHash = passwordHash
	u.PasswordSet = true
	u.UpdatedAt = m.now()
	return nil
}

// UpdateProfile applies the non-nil fields of req.
func (m *MemoryStore) UpdateProfile(_ context.Context, id uuid.UUID, req *types.UpdateProfileRequest) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	u.applyProfile(req)
	u.UpdatedAt = m.now()
	cp := *u
	return &cp, nil
}
