package audit

import (
	"context"
	"fmt"
	"time"

	libNats "github.com/nats-io/nats.go"
	"github.com/zhulik/vote/internal/core"
	"github.com/zhulik/vote/pkg/json"
)

// flushTimeout bounds the flush when the caller's context has no deadline.
const flushTimeout = 5 * time.Second

// NatsPublisher publishes reset events to a core NATS subject.
type NatsPublisher struct {
	conn    *libNats.Conn
	subject string
}

func NewNatsPublisher(conn *libNats.Conn, subject string) *NatsPublisher {
	return &NatsPublisher{
		conn:    conn,
		subject: subject,
	}
}

func (p *NatsPublisher) Reset(ctx context.Context, event core.ResetEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err //nolint:wrapcheck
	}

	msg := libNats.NewMsg(p.subject)
	msg.Header.Set(libNats.MsgIdHdr, event.ID)
	msg.Data = body

	err = p.conn.PublishMsg(msg)
	if err != nil {
		return fmt.Errorf("failed to publish reset event: %w", err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, flushTimeout)
		defer cancel()
	}

	err = p.conn.FlushWithContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to flush reset event: %w", err)
	}

	return nil
}
