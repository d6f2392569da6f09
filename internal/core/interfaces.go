package core

import (
	"context"
	"time"

	"github.com/samber/do"
)

type ServiceDependency interface {
	do.Healthcheckable
	do.Shutdownable
}

type Config interface {
	HTTPPort() int
	LogLevel() string
	LogFormat() string

	OptionA() string
	OptionB() string
	Title() string

	StoreBackend() string
	StoreTimeout() time.Duration

	RedisAddr() string
	RedisPassword() string

	NatsURL() string
	NatsBucket() string

	AuditAMQPURL() string
	AuditAMQPQueue() string
	AuditNatsSubject() string
}

// Store is the key-value store holding the tally. Every counter is an integer
// value stored under the option identifier.
type Store interface {
	ServiceDependency

	Ping(ctx context.Context) error

	// Get returns ErrKeyNotFound when the key is absent.
	Get(ctx context.Context, key string) (int64, error)
	Set(ctx context.Context, key string, value int64) error
	Incr(ctx context.Context, key string, delta int64) (int64, error)
}

// AuditObserver is notified once per option every time the tally is reset.
type AuditObserver interface {
	Reset(ctx context.Context, event ResetEvent) error
}
