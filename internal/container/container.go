package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/grandline-driver/config"
	"github.com/oksasatya/grandline-driver/internal/infrastructure/mock"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
	mockBackend *mock.Backend
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }

// SetRedis stores the optional Redis client; nil disables rate limiting.
func SetRedis(r *redis.Client) { redisClient = r }
func GetRedis() *redis.Client  { return redisClient }

func SetMockBackend(b *mock.Backend) { mockBackend = b }
func GetMockBackend() *mock.Backend {
	if mockBackend != nil {
		return mockBackend
	}
	if cfg != nil {
		mockBackend = NewMockBackend(cfg, logger)
		return mockBackend
	}
	mockBackend = mock.NewBackend(mock.Config{}, mock.WithLogger(logger))
	return mockBackend
}
