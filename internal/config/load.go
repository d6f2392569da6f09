package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/samber/lo"
	"github.com/zhulik/vote/internal/core"
)

var (
	ErrValidationFailed = errors.New("config validation failed")
	validate            = validator.New() //nolint:gochecknoglobals
)

// source is one layer of configuration. The environment and the config file
// share it, empty strings and nil pointers mean "not set".
type source struct {
	HTTPPort  *int   `env:"HTTP_PORT"  yaml:"http_port"`
	LogLevel  string `env:"LOG_LEVEL"  yaml:"log_level"`
	LogFormat string `env:"LOG_FORMAT" yaml:"log_format"`

	Vote1Value string `env:"VOTE1VALUE" yaml:"vote1value"`
	Vote2Value string `env:"VOTE2VALUE" yaml:"vote2value"`
	Title      string `env:"TITLE"      yaml:"title"`
	ShowHost   *bool  `env:"SHOWHOST"   yaml:"showhost"`

	StoreBackend string         `env:"STORE_BACKEND" yaml:"store_backend"`
	StoreTimeout *time.Duration `env:"STORE_TIMEOUT" yaml:"store_timeout"`

	Redis     string `env:"REDIS"      yaml:"redis"`
	RedisPort *int   `env:"REDIS_PORT" yaml:"redis_port"`
	RedisPwd  string `env:"REDIS_PWD"  yaml:"redis_pwd"`

	NatsURL    string `env:"NATS_URL"    yaml:"nats_url"`
	NatsBucket string `env:"NATS_BUCKET" yaml:"nats_bucket"`

	AuditAMQPURL     string `env:"AUDIT_AMQP_URL"     yaml:"audit_amqp_url"`
	AuditAMQPQueue   string `env:"AUDIT_AMQP_QUEUE"   yaml:"audit_amqp_queue"`
	AuditNatsSubject string `env:"AUDIT_NATS_SUBJECT" yaml:"audit_nats_subject"`
}

type loader struct {
	path      string
	mustExist bool

	environment map[string]string
	hostname    func() (string, error)
	overrides   []func(*Config)
}

type Option func(*loader)

// WithFile sets the config file. When mustExist is false a missing file is ignored.
func WithFile(path string, mustExist bool) Option {
	return func(l *loader) {
		l.path = path
		l.mustExist = mustExist
	}
}

// WithEnvironment replaces the process environment, used in tests.
func WithEnvironment(environment map[string]string) Option {
	return func(l *loader) {
		l.environment = environment
	}
}

func WithHostname(hostname func() (string, error)) Option {
	return func(l *loader) {
		l.hostname = hostname
	}
}

// WithOverride applies fn to the resolved config before validation, used by
// command line flags.
func WithOverride(fn func(*Config)) Option {
	return func(l *loader) {
		l.overrides = append(l.overrides, fn)
	}
}

// Load resolves every value from the environment first, then from the config
// file, then from built-in defaults. When SHOWHOST is true the title is
// replaced by the host name.
func Load(opts ...Option) (*Config, error) {
	l := &loader{
		path:     core.DefaultConfigFile,
		hostname: os.Hostname,
	}

	for _, opt := range opts {
		opt(l)
	}

	file, err := l.readFile()
	if err != nil {
		return nil, err
	}

	environment, err := l.readEnv()
	if err != nil {
		return nil, err
	}

	cfg := merge(environment, file)

	if cfg.ShowHost {
		hostname, err := l.hostname()
		if err != nil {
			return nil, fmt.Errorf("failed to get hostname: %w", err)
		}

		cfg.PageTitle = hostname
	}

	for _, override := range l.overrides {
		override(cfg)
	}

	err = validate.Struct(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	return cfg, nil
}

func (l *loader) readFile() (source, error) {
	var file source

	if l.path == "" {
		return file, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !l.mustExist {
			return file, nil
		}

		return file, fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(data, &file)
	if err != nil {
		return file, fmt.Errorf("failed to parse config file %s: %w", l.path, err)
	}

	return file, nil
}

func (l *loader) readEnv() (source, error) {
	var environment source

	opts := env.Options{}
	if l.environment != nil {
		opts.Environment = l.environment
	}

	err := env.ParseWithOptions(&environment, opts)
	if err != nil {
		return environment, fmt.Errorf("failed to parse environment: %w", err)
	}

	return environment, nil
}

func merge(environment, file source) *Config {
	return &Config{
		Port:   firstPtr(core.DefaultHTTPPort, environment.HTTPPort, file.HTTPPort),
		Level:  first(core.DefaultLogLevel, environment.LogLevel, file.LogLevel),
		Format: first(core.DefaultLogFormat, environment.LogFormat, file.LogFormat),

		Vote1:     first(core.DefaultOptionA, environment.Vote1Value, file.Vote1Value),
		Vote2:     first(core.DefaultOptionB, environment.Vote2Value, file.Vote2Value),
		PageTitle: first(core.DefaultTitle, environment.Title, file.Title),
		ShowHost:  firstPtr(false, environment.ShowHost, file.ShowHost),

		Backend: first(core.StoreBackendRedis, environment.StoreBackend, file.StoreBackend),
		Timeout: firstPtr(core.DefaultStoreTimeout, environment.StoreTimeout, file.StoreTimeout),

		RedisHost: first("", environment.Redis, file.Redis),
		RedisPort: firstPtr(core.DefaultRedisPort, environment.RedisPort, file.RedisPort),
		RedisPwd:  first("", environment.RedisPwd, file.RedisPwd),

		NATSURL:    first("", environment.NatsURL, file.NatsURL),
		NATSBucket: first(core.DefaultBucketName, environment.NatsBucket, file.NatsBucket),

		AMQPURL:          first("", environment.AuditAMQPURL, file.AuditAMQPURL),
		AMQPQueue:        first("", environment.AuditAMQPQueue, file.AuditAMQPQueue),
		NATSAuditSubject: first("", environment.AuditNatsSubject, file.AuditNatsSubject),
	}
}

func first(fallback string, values ...string) string {
	value, ok := lo.Coalesce(values...)
	if !ok {
		return fallback
	}

	return value
}

func firstPtr[T any](fallback T, values ...*T) T {
	value, ok := lo.Coalesce(values...)
	if !ok {
		return fallback
	}

	return *value
}
