package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"syscall"

	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"github.com/zhulik/vote/internal/cli/flags"
	"github.com/zhulik/vote/internal/core"
	"github.com/zhulik/vote/internal/di"
	"github.com/zhulik/vote/internal/vote"
	"github.com/zhulik/vote/internal/web"
)

func newServeCMD() *cli.Command {
	return &cli.Command{
		Name:     core.ComponentNameServe,
		Aliases:  []string{"s"},
		Usage:    "Run the voting web server.",
		Category: "Service",
		Flags:    flags.ForServer(),
		Action:   serve,
	}
}

// serve binds the listener only after the store is initialized.
func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	injector := di.New(cfg)

	logger := do.MustInvoke[logrus.FieldLogger](injector).WithField("component", "main")

	logger.WithField("config", cfg.String()).Info("Starting...")

	service, err := do.Invoke[*vote.Service](injector)
	if err != nil {
		injector.Shutdown() //nolint:errcheck

		return fmt.Errorf("failed to create vote service: %w", err)
	}

	err = service.Initialize(ctx)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize")
		injector.Shutdown() //nolint:errcheck

		return err //nolint:wrapcheck
	}

	server, err := do.Invoke[*web.Server](injector)
	if err != nil {
		injector.Shutdown() //nolint:errcheck

		return fmt.Errorf("failed to create web server: %w", err)
	}

	go func() {
		err := server.Run()

		if errors.Is(err, http.ErrServerClosed) {
			return
		}

		logger.WithError(err).Fatal("Failed to run server")
	}()

	logger.Info("Running...")

	return injector.ShutdownOnSignals(syscall.SIGINT, syscall.SIGTERM) //nolint:wrapcheck
}
