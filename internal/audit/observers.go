package audit

import (
	"context"
	"errors"
	"fmt"

	"github.com/zhulik/vote/internal/core"
)

// Observers fans a reset event out to every observer. All of them are called
// even when some fail.
type Observers []core.AuditObserver

func (o Observers) Reset(ctx context.Context, event core.ResetEvent) error {
	var errs []error

	for _, observer := range o {
		err := observer.Reset(ctx, event)
		if err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", core.ErrAuditDeliveryFailed, errors.Join(errs...))
	}

	return nil
}
