package nats

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/vote/internal/core"
)

// Store keeps counters in a JetStream key-value bucket. Values are decimal
// strings, keys are base64url encoded since KV keys only allow [-/_=.a-zA-Z0-9].
type Store struct {
	client *Client
	kv     jetstream.KeyValue
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

	client, err := do.Invoke[*Client](injector)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.StoreTimeout())
	defer cancel()

	return NewStoreWithClient(ctx, client, config.NatsBucket(), logger)
}

func NewStoreWithClient(ctx context.Context, client *Client, bucket string, logger logrus.FieldLogger) (*Store, error) {
	kv, err := createOrOpenBucket(ctx, client.JetStream, bucket)
	if err != nil {
		return nil, err
	}

	return &Store{
		client: client,
		kv:     kv,
		logger: logger.WithFields(logrus.Fields{
			"component": "store.nats.Store",
			"bucket":    bucket,
		}),
	}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	_, err := s.kv.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bucket status: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (int64, error) {
	entry, err := s.kv.Get(ctx, encodeKey(key))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return 0, fmt.Errorf("%w: %w", core.ErrKeyNotFound, err)
		}

		return 0, fmt.Errorf("failed to get value: %w", err)
	}

	return parseCounter(entry.Value())
}

func (s *Store) Set(ctx context.Context, key string, value int64) error {
	_, err := s.kv.Put(ctx, encodeKey(key), formatCounter(value))
	if err != nil {
		return fmt.Errorf("failed to put value: %w", err)
	}

	return nil
}

// Incr is a compare-and-set loop on the entry revision, so concurrent
// increments from any number of processes are never lost.
func (s *Store) Incr(ctx context.Context, key string, delta int64) (int64, error) { //nolint:cyclop
	encoded := encodeKey(key)

	for {
		entry, err := s.kv.Get(ctx, encoded)
		if err != nil { //nolint:nestif
			if errors.Is(err, jetstream.ErrKeyNotFound) {
				_, err := s.kv.Create(ctx, encoded, formatCounter(delta))
				if err != nil {
					// Created concurrently, try again.
					if errors.Is(err, jetstream.ErrKeyExists) {
						continue
					}

					return 0, fmt.Errorf("failed to create value: %w", err)
				}

				return delta, nil
			}

			return 0, fmt.Errorf("failed to get value: %w", err)
		}

		value, err := parseCounter(entry.Value())
		if err != nil {
			return 0, err
		}

		value += delta

		_, err = s.kv.Update(ctx, encoded, formatCounter(value), entry.Revision())
		if err == nil {
			return value, nil
		}

		if errors.Is(err, jetstream.ErrKeyExists) ||
			errors.Is(err, jetstream.ErrKeyDeleted) ||
			errors.Is(err, jetstream.ErrKeyNotFound) {
			s.logger.WithField("key", key).Debug("Counter changed concurrently, retrying")

			continue
		}

		return 0, fmt.Errorf("failed to update value: %w", err)
	}
}

func (s *Store) HealthCheck() error {
	return s.client.HealthCheck()
}

func (s *Store) Shutdown() error {
	return nil
}

func createOrOpenBucket(ctx context.Context, js jetstream.JetStream, bucket string) (jetstream.KeyValue, error) {
	kv, err := js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket: bucket,
	})
	if err == nil {
		return kv, nil
	}

	if !errors.Is(err, jetstream.ErrBucketExists) {
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	kv, err = js.KeyValue(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	return kv, nil
}

func parseCounter(data []byte) (int64, error) {
	value, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse counter value: %w", err)
	}

	return value, nil
}

func formatCounter(value int64) []byte {
	return []byte(strconv.FormatInt(value, 10))
}

func encodeKey(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}
