package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/vote/internal/core"
)

type Store struct {
	client *redis.Client
	logger logrus.FieldLogger
}

func NewStore(injector *do.Injector) (*Store, error) {
	config, err := do.Invoke[core.Config](injector)
	if err != nil {
		return nil, err
	}

	logger, err := do.Invoke[logrus.FieldLogger](injector)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:         config.RedisAddr(),
		Password:     config.RedisPassword(),
		DialTimeout:  config.StoreTimeout(),
		ReadTimeout:  config.StoreTimeout(),
		WriteTimeout: config.StoreTimeout(),
	})

	return NewStoreWithClient(client, logger), nil
}

func NewStoreWithClient(client *redis.Client, logger logrus.FieldLogger) *Store {
	return &Store{
		client: client,
		logger: logger.WithFields(logrus.Fields{
			"component": "store.redis.Store",
			"addr":      client.Options().Addr,
		}),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	err := s.client.Ping(ctx).Err()
	if err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (int64, error) {
	value, err := s.client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, fmt.Errorf("%w: %s", core.ErrKeyNotFound, key)
		}

		return 0, fmt.Errorf("failed to get value: %w", err)
	}

	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value int64) error {
	err := s.client.Set(ctx, key, value, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}

	return nil
}

func (s *Store) Incr(ctx context.Context, key string, delta int64) (int64, error) {
	value, err := s.client.IncrBy(ctx, key, delta).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment value: %w", err)
	}

	return value, nil
}

func (s *Store) HealthCheck() error {
	return s.Ping(context.Background())
}

func (s *Store) Shutdown() error {
	s.logger.Info("Closing connection...")

	err := s.client.Close()
	if err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}
