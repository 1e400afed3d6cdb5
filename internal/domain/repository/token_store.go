package repository

import (
	"context"

	"github.com/oksasatya/grandline-driver/internal/domain/entity"
)

// TokenStore holds the bearer tokens used by the real backend.
// An absent token is reported as "" with a nil error.
type TokenStore interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	Save(ctx context.Context, pair entity.TokenPair) error
	Clear(ctx context.Context) error
}
