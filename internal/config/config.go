package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config is resolved once at startup and never changes afterwards.
type Config struct {
	Port   int    `validate:"gte=0,lte=65535"`
	Level  string `validate:"required,oneof=trace debug info warning warn error fatal panic"`
	Format string `validate:"required,oneof=text json"`

	Vote1     string `validate:"required,ne=reset,nefield=Vote2"`
	Vote2     string `validate:"required,ne=reset"`
	PageTitle string
	ShowHost  bool

	Backend string        `validate:"required,oneof=redis nats memory"`
	Timeout time.Duration `validate:"gt=0"`

	RedisHost string `validate:"required_if=Backend redis"`
	RedisPort int    `validate:"gt=0,lte=65535"`
	RedisPwd  string

	NATSURL    string `validate:"required_if=Backend nats,required_with=NATSAuditSubject"`
	NATSBucket string `validate:"required"`

	AMQPURL          string
	AMQPQueue        string `validate:"required_with=AMQPURL"`
	NATSAuditSubject string
}

func (c Config) HTTPPort() int {
	return c.Port
}

func (c Config) LogLevel() string {
	return c.Level
}

func (c Config) LogFormat() string {
	return c.Format
}

func (c Config) OptionA() string {
	return c.Vote1
}

func (c Config) OptionB() string {
	return c.Vote2
}

func (c Config) Title() string {
	return c.PageTitle
}

func (c Config) StoreBackend() string {
	return c.Backend
}

func (c Config) StoreTimeout() time.Duration {
	return c.Timeout
}

func (c Config) RedisAddr() string {
	return net.JoinHostPort(c.RedisHost, strconv.Itoa(c.RedisPort))
}

func (c Config) RedisPassword() string {
	return c.RedisPwd
}

func (c Config) NatsURL() string {
	return c.NATSURL
}

func (c Config) NatsBucket() string {
	return c.NATSBucket
}

func (c Config) AuditAMQPURL() string {
	return c.AMQPURL
}

func (c Config) AuditAMQPQueue() string {
	return c.AMQPQueue
}

func (c Config) AuditNatsSubject() string {
	return c.NATSAuditSubject
}

func (c Config) String() string {
	return fmt.Sprintf("backend=%s options=%s/%s title=%q port=%d", c.Backend, c.Vote1, c.Vote2, c.PageTitle, c.Port)
}
