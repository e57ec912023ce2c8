package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/account-inventory/internal/inventory"
)

// ErrKeyMissing is returned when the configured Redis key does not exist.
var ErrKeyMissing = errors.New("redis key not found")

type redisGetter interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
}

// RedisSource reads the account document stored as a string at one key.
type RedisSource struct {
	rdb redisGetter
	key string
}

func NewRedisSource(rdb redisGetter, key string) (*RedisSource, error) {
	if rdb == nil {
		return nil, fmt.Errorf("redis source: client is required")
	}
	k := strings.TrimSpace(key)
	if k == "" {
		return nil, fmt.Errorf("redis source: key is required")
	}
	return &RedisSource{rdb: rdb, key: k}, nil
}

func (s *RedisSource) Load(ctx context.Context) ([]inventory.RawRecord, error) {
	b, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrKeyMissing, s.key)
		}
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return decodeBytes(b)
}

func (s *RedisSource) Describe() string { return string(KindRedis) + ":" + s.key }
