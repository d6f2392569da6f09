package vote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/vote/internal/core"
)

// Service owns the tally logic. It keeps no state between requests, every call
// goes to the store.
type Service struct {
	store    core.Store
	observer core.AuditObserver
	options  Options
	timeout  time.Duration

	logger logrus.FieldLogger
}

func NewService(injector *do.Injector) (*Service, error) {
	config, err := do.Invoke[core.Config](injector)
	if err != nil {
		return nil, err
	}

	logger, err := do.Invoke[logrus.FieldLogger](injector)
	if err != nil {
		return nil, err
	}

	store, err := do.Invoke[core.Store](injector)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrStoreUnreachable, err)
	}

	observer, err := do.Invoke[core.AuditObserver](injector)
	if err != nil {
		return nil, err
	}

	return New(store, observer, OptionsFromConfig(config), config.StoreTimeout(), logger), nil
}

func New(store core.Store, observer core.AuditObserver, options Options, timeout time.Duration, logger logrus.FieldLogger) *Service {
	return &Service{
		store:    store,
		observer: observer,
		options:  options,
		timeout:  timeout,
		logger:   logger.WithField("component", "vote.Service"),
	}
}

func (s *Service) Options() Options {
	return s.options
}

// Initialize checks the store is reachable and seeds both counters with zero
// when they are absent. Any failure here must stop the process before it
// starts serving.
func (s *Service) Initialize(ctx context.Context) error {
	err := s.options.Validate()
	if err != nil {
		return err
	}

	err = s.withTimeout(ctx, s.store.Ping)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrStoreUnreachable, err)
	}

	for _, key := range s.options.Keys() {
		err = s.seed(ctx, key)
		if err != nil {
			return fmt.Errorf("%w: %w", core.ErrStoreUnreachable, err)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"optionA": s.options.A,
		"optionB": s.options.B,
	}).Info("Counters initialized")

	return nil
}

// Handle dispatches a request by method and the submitted vote form value.
func (s *Service) Handle(ctx context.Context, method, vote string) (core.RenderModel, error) {
	switch method {
	case http.MethodGet:
		return s.Tally(ctx)

	case http.MethodPost:
		if vote == core.ResetVote {
			return s.Reset(ctx)
		}

		return s.Vote(ctx, vote)
	}

	return core.RenderModel{}, fmt.Errorf("%w: %s", core.ErrMethodNotAllowed, method)
}

// Tally reads both counters.
func (s *Service) Tally(ctx context.Context) (core.RenderModel, error) {
	countA, err := s.get(ctx, s.options.A)
	if err != nil {
		return core.RenderModel{}, err
	}

	countB, err := s.get(ctx, s.options.B)
	if err != nil {
		return core.RenderModel{}, err
	}

	return core.RenderModel{
		CountA: countA,
		CountB: countB,
		LabelA: s.options.A,
		LabelB: s.options.B,
		Title:  s.options.Title,
	}, nil
}

// Vote atomically adds one vote to option and returns the new tally.
func (s *Service) Vote(ctx context.Context, option string) (core.RenderModel, error) {
	if !s.options.Has(option) {
		return core.RenderModel{}, fmt.Errorf("%w: %q", core.ErrInvalidVoteTarget, option)
	}

	err := s.withTimeout(ctx, func(ctx context.Context) error {
		_, err := s.store.Incr(ctx, option, 1)

		return err
	})
	if err != nil {
		return core.RenderModel{}, fmt.Errorf("%w: failed to increment %s: %w", core.ErrStoreUnavailable, option, err)
	}

	return s.Tally(ctx)
}

// Reset sets both counters to zero and reports every option to the audit
// observer. A vote landing concurrently with a reset may survive it.
func (s *Service) Reset(ctx context.Context) (core.RenderModel, error) {
	previous, err := s.Tally(ctx)
	if err != nil {
		return core.RenderModel{}, err
	}

	for _, key := range s.options.Keys() {
		err = s.withTimeout(ctx, func(ctx context.Context) error {
			return s.store.Set(ctx, key, 0)
		})
		if err != nil {
			return core.RenderModel{}, fmt.Errorf("%w: failed to reset %s: %w", core.ErrStoreUnavailable, key, err)
		}
	}

	model, err := s.Tally(ctx)
	if err != nil {
		return core.RenderModel{}, err
	}

	now := time.Now().UTC()

	s.audit(ctx, core.ResetEvent{
		ID: uuid.NewString(), Option: model.LabelA, At: now, Previous: previous.CountA, Value: model.CountA,
	})
	s.audit(ctx, core.ResetEvent{
		ID: uuid.NewString(), Option: model.LabelB, At: now, Previous: previous.CountB, Value: model.CountB,
	})

	return model, nil
}

func (s *Service) HealthCheck() error {
	return s.store.HealthCheck()
}

func (s *Service) audit(ctx context.Context, event core.ResetEvent) {
	err := s.withTimeout(ctx, func(ctx context.Context) error {
		return s.observer.Reset(ctx, event)
	})
	if err != nil {
		s.logger.WithError(err).WithField("option", event.Option).Error("Failed to deliver reset audit event")
	}
}

// get returns 0 for a counter that does not exist yet.
func (s *Service) get(ctx context.Context, key string) (int64, error) {
	var value int64

	err := s.withTimeout(ctx, func(ctx context.Context) error {
		var err error

		value, err = s.store.Get(ctx, key)

		return err
	})
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return 0, nil
		}

		return 0, fmt.Errorf("%w: failed to read %s: %w", core.ErrStoreUnavailable, key, err)
	}

	return value, nil
}

func (s *Service) seed(ctx context.Context, key string) error {
	err := s.withTimeout(ctx, func(ctx context.Context) error {
		_, err := s.store.Get(ctx, key)

		return err
	})
	if err == nil {
		return nil
	}

	if !errors.Is(err, core.ErrKeyNotFound) {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}

	err = s.withTimeout(ctx, func(ctx context.Context) error {
		return s.store.Set(ctx, key, 0)
	})
	if err != nil {
		return fmt.Errorf("failed to seed %s: %w", key, err)
	}

	s.logger.WithField("option", key).Info("Counter seeded")

	return nil
}

func (s *Service) withTimeout(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.timeout <= 0 {
		return fn(ctx)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return fn(ctx)
}
