package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DanielPopoola/ficmart-payment-methods/internal/config"
	"github.com/DanielPopoola/ficmart-payment-methods/internal/domain"
	"github.com/go-redis/redis/v8"
)

const sessionKeyspace = "sessions"

// RedisStore keeps session records as JSON values under a keyspace,
// re-applying the TTL on every write so expiry runs from the last write.
// Expiry is the only deletion path; nothing ever deletes a key directly.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(cfg config.RedisConfig, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{
		client: client,
		ttl:    ttl,
	}, nil
}

func (s *RedisStore) Get(ctx context.Context, orderID string) (*domain.Session, bool, error) {
	val, err := s.client.Get(ctx, sessionKey(orderID)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, true, nil
}

func (s *RedisStore) Set(ctx context.Context, session *domain.Session) error {
	jsonData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return s.client.Set(ctx, sessionKey(session.OrderID), jsonData, s.ttl).Err()
}

// SetIfAbsent reserves a raw key for the given duration and reports
// whether the reservation succeeded. Used for order-id collision checks.
func (s *RedisStore) SetIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, key, "1", ttl).Result()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func sessionKey(orderID string) string {
	return sessionKeyspace + ":" + orderID
}
