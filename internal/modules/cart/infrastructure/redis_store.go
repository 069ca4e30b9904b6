package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"canteenWeb/internal/modules/cart/application/port"
	"canteenWeb/internal/modules/cart/domain"
)

const (
	DefaultCartTTL = 7 * 24 * time.Hour
	redisKeyPrefix = "cart:"
	maxTxRetries   = 5
)

// RedisStore keeps one JSON cart per user under cart:<userId>. Updates run in a WATCH transaction.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(options *redis.Options) (*redis.Client, error) {
	client := redis.NewClient(options)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}
	return client, nil
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(userID string) string {
	return redisKeyPrefix + userID
}

func (s *RedisStore) Load(ctx context.Context, userID string) (*domain.Cart, error) {
	return readCart(ctx, s.client, userID)
}

type redisGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readCart(ctx context.Context, client redisGetter, userID string) (*domain.Cart, error) {
	serialized, err := client.Get(ctx, redisKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.New(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting cart from redis: %w", err)
	}

	cart := domain.New(userID)
	if err := json.Unmarshal(serialized, cart); err != nil {
		return nil, fmt.Errorf("error unmarshaling cart from redis: %w", err)
	}
	cart.UserID = userID
	return cart, nil
}

func (s *RedisStore) Update(ctx context.Context, userID string, fn func(*domain.Cart) error) (*domain.Cart, error) {
	key := redisKey(userID)
	var result *domain.Cart

	txf := func(tx *redis.Tx) error {
		cart, err := readCart(ctx, tx, userID)
		if err != nil {
			return err
		}
		if err := fn(cart); err != nil {
			return err
		}

		if cart.IsEmpty() {
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Del(ctx, key)
				return nil
			})
		} else {
			serialized, marshalErr := json.Marshal(cart)
			if marshalErr != nil {
				return fmt.Errorf("error marshaling cart: %w", marshalErr)
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, serialized, s.ttl)
				return nil
			})
		}
		if err != nil {
			return err
		}
		result = cart
		return nil
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %s", port.ErrStoreConflict, userID)
}

func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, redisKey(userID)).Err(); err != nil {
		return fmt.Errorf("error deleting cart from redis: %w", err)
	}
	return nil
}

var _ port.Store = (*RedisStore)(nil)
