package testhelpers

import (
	"context"
	"sync"

	"github.com/zhulik/vote/internal/core"
)

// RecordingObserver keeps every reset event it receives.
type RecordingObserver struct {
	mu     sync.Mutex
	events []core.ResetEvent
}

func (o *RecordingObserver) Reset(_ context.Context, event core.ResetEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.events = append(o.events, event)

	return nil
}

func (o *RecordingObserver) Events() []core.ResetEvent {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]core.ResetEvent(nil), o.events...)
}
