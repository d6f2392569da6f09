package vote_test

import (
	"context"

	"github.com/zhulik/vote/internal/core"
)

type failingObserver struct{}

func (failingObserver) Reset(context.Context, core.ResetEvent) error {
	return errConnectionRefused
}
