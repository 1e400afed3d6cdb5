package mocks

import (
	"context"

	"github.com/oksasatya/grandline-driver/internal/domain/entity"
	"github.com/oksasatya/grandline-driver/internal/domain/repository"
)

// MockTokenStore implements repository.TokenStore for testing
type MockTokenStore struct {
	AccessTokenFunc  func(ctx context.Context) (string, error)
	RefreshTokenFunc func(ctx context.Context) (string, error)
	SaveFunc         func(ctx context.Context, pair entity.TokenPair) error
	ClearFunc        func(ctx context.Context) error
}

// NewMockTokenStore creates a new MockTokenStore with default behaviors
func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{}
}

func (m *MockTokenStore) AccessToken(ctx context.Context) (string, error) {
	if m.AccessTokenFunc != nil {
		return m.AccessTokenFunc(ctx)
	}
	return "", nil
}

func (m *MockTokenStore) RefreshToken(ctx context.Context) (string, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx)
	}
	return "", nil
}

func (m *MockTokenStore) Save(ctx context.Context, pair entity.TokenPair) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, pair)
	}
	return nil
}

func (m *MockTokenStore) Clear(ctx context.Context) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	return nil
}

var _ repository.TokenStore = (*MockTokenStore)(nil)
