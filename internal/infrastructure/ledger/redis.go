package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "odds-pipeline:delivered:"

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient opens a client and verifies the connection.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, crerr.New("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, crerr.Wrapf(err, "ping redis addr=%s", addr)
	}

	return client, nil
}

// RedisLedger stores the last delivered fingerprint per game with a TTL.
type RedisLedger struct {
	client redis.Cmdable
	ttl    time.Duration
	prefix string
}

func NewRedisLedger(client redis.Cmdable, ttl time.Duration) *RedisLedger {
	return &RedisLedger{
		client: client,
		ttl:    ttl,
		prefix: defaultKeyPrefix,
	}
}

func (l *RedisLedger) Seen(ctx context.Context, key, fingerprint string) (bool, error) {
	stored, err := l.client.Get(ctx, l.redisKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, crerr.Wrapf(err, "read ledger key=%s", key)
	}
	return stored == fingerprint, nil
}

func (l *RedisLedger) Remember(ctx context.Context, key, fingerprint string) error {
	if err := l.client.Set(ctx, l.redisKey(key), fingerprint, l.ttl).Err(); err != nil {
		return crerr.Wrapf(err, "write ledger key=%s", key)
	}
	return nil
}

// Forget drops the stored fingerprint so the next batch resends the game.
func (l *RedisLedger) Forget(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.redisKey(key)).Err(); err != nil {
		return crerr.Wrapf(err, "delete ledger key=%s", key)
	}
	return nil
}

func (l *RedisLedger) redisKey(key string) string {
	return l.prefix + key
}
