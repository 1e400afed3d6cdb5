package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/grandline-driver/config"
	"github.com/oksasatya/grandline-driver/internal/domain/repository"
	"github.com/oksasatya/grandline-driver/internal/infrastructure/mock"
	"github.com/oksasatya/grandline-driver/internal/infrastructure/remote"
	"github.com/oksasatya/grandline-driver/internal/infrastructure/tokenstore"
)

func NewMockBackend(c *config.Config, l *logrus.Logger) *mock.Backend {
	return mock.NewBackend(mock.Config{
		FixedDelays:  c.MockFixedDelays,
		MinDelay:     c.MockDelayMin,
		MaxDelay:     c.MockDelayMax,
		TestEmail:    c.MockTestEmail,
		TestPassword: c.MockTestPassword,
	}, mock.WithLogger(l))
}

// NewTokenStore keeps tokens in Redis when a client is given, else in memory.
func NewTokenStore(c *config.Config, rdb *redis.Client) repository.TokenStore {
	if rdb == nil {
		return tokenstore.NewMemory()
	}
	return tokenstore.NewRedis(rdb, c.TokenStoreKey, 0)
}

// NewBackend picks the backend once from USE_MOCK_API.
func NewBackend(c *config.Config, tokens repository.TokenStore, l *logrus.Logger) repository.Backend {
	if c.UseMockAPI {
		return NewMockBackend(c, l)
	}
	client := remote.NewClient(c.APIBaseURL, c.APITimeout, tokens, l)
	return remote.NewBackend(client)
}
