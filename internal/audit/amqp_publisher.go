package audit

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/vote/internal/core"
	"github.com/zhulik/vote/pkg/json"
)

const (
	connectAttempts = 5
	connectDelay    = 2 * time.Second
)

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes reset events to a durable queue through the default exchange.
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel amqpChannel
	queue   string

	channelMutex sync.Mutex
	logger       logrus.FieldLogger
}

func NewAMQPPublisher(url, queue string, logger logrus.FieldLogger) (*AMQPPublisher, error) {
	logger = logger.WithFields(logrus.Fields{
		"component": "audit.AMQPPublisher",
		"queue":     queue,
	})

	conn, err := connect(url, logger)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("failed to declare a queue: %w", err)
	}

	publisher := NewAMQPPublisherWithChannel(ch, queue, logger)
	publisher.conn = conn

	return publisher, nil
}

func NewAMQPPublisherWithChannel(ch amqpChannel, queue string, logger logrus.FieldLogger) *AMQPPublisher {
	return &AMQPPublisher{
		channel: ch,
		queue:   queue,
		logger:  logger,
	}
}

func (p *AMQPPublisher) Reset(ctx context.Context, event core.ResetEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err //nolint:wrapcheck
	}

	p.channelMutex.Lock()
	defer p.channelMutex.Unlock()

	err = p.channel.PublishWithContext(
		ctx,
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID,
			Timestamp:    event.At,
			Type:         "vote.reset",
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish reset event: %w", err)
	}

	return nil
}

func (p *AMQPPublisher) HealthCheck() error {
	if p.conn != nil && p.conn.IsClosed() {
		return fmt.Errorf("%w: amqp connection closed", core.ErrAuditDeliveryFailed)
	}

	return nil
}

func (p *AMQPPublisher) Shutdown() error {
	p.logger.Info("Closing channel...")

	err := p.channel.Close()
	if err != nil {
		return fmt.Errorf("failed to close channel: %w", err)
	}

	if p.conn == nil {
		return nil
	}

	err = p.conn.Close()
	if err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}

	return nil
}

func connect(url string, logger logrus.FieldLogger) (*amqp.Connection, error) {
	var connection *amqp.Connection

	var err error

	for range connectAttempts {
		if connection, err = amqp.Dial(url); err == nil {
			logger.Info("Successfully connected to RabbitMQ")

			return connection, nil
		}

		logger.WithError(err).Warnf("Failed to connect to RabbitMQ. Retrying in %s...", connectDelay)
		time.Sleep(connectDelay)
	}

	return nil, fmt.Errorf("could not connect to RabbitMQ after %d attempts: %w", connectAttempts, err)
}
