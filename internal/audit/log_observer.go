package audit

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/zhulik/vote/internal/core"
)

// LogObserver writes one warning per reset option, the counter values go to structured fields.
type LogObserver struct {
	logger logrus.FieldLogger
}

func NewLogObserver(logger logrus.FieldLogger) *LogObserver {
	return &LogObserver{
		logger: logger.WithField("component", "audit.LogObserver"),
	}
}

func (o *LogObserver) Reset(_ context.Context, event core.ResetEvent) error {
	o.logger.WithFields(logrus.Fields{
		"event_id": event.ID,
		"option":   event.Option,
		"previous": event.Previous,
		"value":    event.Value,
	}).Warn(event.Option)

	return nil
}
