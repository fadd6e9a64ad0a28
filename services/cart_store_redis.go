package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisCartRetries = 5

// RedisCartStore keeps carts as JSON under "cart:<session>". Updates run in
// a WATCH/MULTI transaction and are retried when another writer wins.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

func (s *RedisCartStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	return s.get(ctx, s.client, cartKey(sessionID))
}

func (s *RedisCartStore) Update(ctx context.Context, sessionID string, fn func(*Cart) error) error {
	key := cartKey(sessionID)

	txf := func(tx *redis.Tx) error {
		cart, err := s.get(ctx, tx, key)
		if err != nil {
			return err
		}
		if err := fn(cart); err != nil {
			return err
		}

		data, err := json.Marshal(cart)
		if err != nil {
			return fmt.Errorf("%w: marshal cart: %w", ErrPersistence, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if cart.IsEmpty() {
				pipe.Del(ctx, key)
				return nil
			}
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		if err != nil {
			return fmt.Errorf("%w: redis write: %w", ErrPersistence, err)
		}
		return nil
	}

	for i := 0; i < redisCartRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("%w: cart %s kept changing, giving up", ErrPersistence, sessionID)
}

func (s *RedisCartStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: redis delete: %w", ErrPersistence, err)
	}
	return nil
}

func (s *RedisCartStore) get(ctx context.Context, c redis.Cmdable, key string) (*Cart, error) {
	data, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return &Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: redis get: %w", ErrPersistence, err)
	}

	var cart Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("%w: unmarshal cart: %w", ErrPersistence, err)
	}
	return &cart, nil
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

var _ CartStore = (*RedisCartStore)(nil)
