package tokenstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/grandline-driver/internal/domain/entity"
	"github.com/oksasatya/grandline-driver/internal/domain/repository"
	"github.com/oksasatya/grandline-driver/pkg/helpers"
)

// Redis stores the token pair as one JSON value under Key.
// A zero TTL keeps the pair until Clear.
type Redis struct {
	RDB *redis.Client
	Key string
	TTL time.Duration
}

var _ repository.TokenStore = (*Redis)(nil)

func NewRedis(rdb *redis.Client, key string, ttl time.Duration) *Redis {
	if key == "" {
		key = "driver:session:tokens"
	}
	return &Redis{RDB: rdb, Key: key, TTL: ttl}
}

func (r *Redis) load(ctx context.Context) (entity.TokenPair, error) {
	var pair entity.TokenPair
	if _, err := helpers.RedisGetJSON(ctx, r.RDB, r.Key, &pair); err != nil {
		return entity.TokenPair{}, err
	}
	return pair, nil
}

func (r *Redis) AccessToken(ctx context.Context) (string, error) {
	pair, err := r.load(ctx)
	return pair.AccessToken, err
}

func (r *Redis) RefreshToken(ctx context.Context) (string, error) {
	pair, err := r.load(ctx)
	return pair.RefreshToken, err
}

func (r *Redis) Save(ctx context.Context, pair entity.TokenPair) error {
	return helpers.RedisSetJSON(ctx, r.RDB, r.Key, pair, r.TTL)
}

func (r *Redis) Clear(ctx context.Context) error {
	return helpers.RedisDel(ctx, r.RDB, r.Key)
}
