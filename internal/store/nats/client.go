package nats

import (
	"context"
	"fmt"
	"time"

	libNats "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/vote/internal/core"
)

// Client is the connection shared by the NATS store and the NATS audit publisher.
type Client struct {
	Nats      *libNats.Conn
	JetStream jetstream.JetStream

	timeout time.Duration
	logger  logrus.FieldLogger
}

func NewClient(injector *do.Injector) (*Client, error) {
	config, err := do.Invoke[core.Config](injector)
	if err != nil {
		return nil, err
	}

	logger, err := do.Invoke[logrus.FieldLogger](injector)
	if err != nil {
		return nil, err
	}

	conn, err := libNats.Connect(
		config.NatsURL(),
		libNats.Name("vote"),
		libNats.Timeout(config.StoreTimeout()),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to NATS at %s: %w", core.ErrStoreUnreachable, config.NatsURL(), err)
	}

	return NewClientWithConn(conn, config.StoreTimeout(), logger)
}

func NewClientWithConn(conn *libNats.Conn, timeout time.Duration, logger logrus.FieldLogger) (*Client, error) {
	jetStream, err := jetstream.New(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to build JetStream client: %w", err)
	}

	return &Client{
		Nats:      conn,
		JetStream: jetStream,
		timeout:   timeout,
		logger:    logger.WithField("component", "store.nats.Client"),
	}, nil
}

// HealthCheck checks the connection and that JetStream answers within the store timeout.
func (c *Client) HealthCheck() error {
	if !c.Nats.IsConnected() {
		return fmt.Errorf("%w: connection status %s", core.ErrStoreUnavailable, c.Nats.Status())
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	_, err := c.JetStream.AccountInfo(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to get account info: %w", core.ErrStoreUnavailable, err)
	}

	return nil
}

// Shutdown drains pending audit messages before closing the connection.
func (c *Client) Shutdown() error {
	c.logger.Info("Draining NATS connection...")
	defer c.logger.Info("NATS connection closed.")

	c.JetStream.CleanupPublisher()

	err := c.Nats.Drain()
	if err != nil {
		c.Nats.Close()

		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}

	return nil
}
