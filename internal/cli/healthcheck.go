package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/do"
	"github.com/urfave/cli/v3"
	"github.com/zhulik/vote/internal/cli/flags"
	"github.com/zhulik/vote/internal/config"
	"github.com/zhulik/vote/internal/core"
	"github.com/zhulik/vote/internal/di"
	"github.com/zhulik/vote/internal/vote"
)

func newHealthcheckCMD() *cli.Command {
	return &cli.Command{
		Name:     core.ComponentNameHealthcheck,
		Aliases:  []string{"hc"},
		Usage:    "Check the configured store and audit publishers, then exit.",
		Category: "Utility",
		Flags:    flags.Common(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			return healthcheck(ctx, cfg)
		},
	}
}

func healthcheck(ctx context.Context, cfg *config.Config) error {
	injector := di.New(cfg)
	defer injector.Shutdown() //nolint:errcheck

	// Builds the store and every audit observer.
	_, err := do.Invoke[*vote.Service](injector)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrStoreUnreachable, err)
	}

	store := do.MustInvoke[core.Store](injector)

	ctx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout())
	defer cancel()

	err = store.Ping(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrStoreUnreachable, err)
	}

	var errs []error

	for name, err := range injector.HealthCheck() {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	return errors.Join(errs...)
}
