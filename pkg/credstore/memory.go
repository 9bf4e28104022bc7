package credstore

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
)

// Memory is an in-process Store. Everything is lost when the process exits.
type Memory struct {
	mu    sync.RWMutex
	token string
	user  []byte
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get(_ context.Context) (Credentials, error) {
	m.mu.RLock()
	token, user := m.token, m.user
	m.mu.RUnlock()

	if user != nil && !ValidUser(user) {
		m.mu.Lock()
		if bytes.Equal(m.user, user) {
			m.user = nil
		}
		m.mu.Unlock()
		return Credentials{}, ErrNotFound
	}
	if token == "" || user == nil {
		return Credentials{}, ErrNotFound
	}

	return Credentials{Token: token, User: bytes.Clone(user)}, nil
}

func (m *Memory) Set(_ context.Context, user json.RawMessage, token string) error {
	if err := CheckSet(user, token); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.user = bytes.Clone(user)
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.user = nil
	return nil
}

// Token returns the raw token entry even when the user entry is unusable.
func (m *Memory) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}
