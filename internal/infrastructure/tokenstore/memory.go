package tokenstore

import (
	"context"
	"sync"

	"github.com/oksasatya/grandline-driver/internal/domain/entity"
	"github.com/oksasatya/grandline-driver/internal/domain/repository"
)

// Memory keeps the token pair in process memory only.
type Memory struct {
	mu   sync.RWMutex
	pair entity.TokenPair
}

var _ repository.TokenStore = (*Memory)(nil)

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) AccessToken(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pair.AccessToken, nil
}

func (m *Memory) RefreshToken(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pair.RefreshToken, nil
}

func (m *Memory) Save(_ context.Context, pair entity.TokenPair) error {
	m.mu.Lock()
	m.pair = pair
	m.mu.Unlock()
	return nil
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	m.pair = entity.TokenPair{}
	m.mu.Unlock()
	return nil
}
