package logging

import (
	"fmt"

	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/vote/internal/core"
)

func Register(injector *do.Injector) {
	do.Provide(injector, func(injector *do.Injector) (logrus.FieldLogger, error) {
		config, err := do.Invoke[core.Config](injector)
		if err != nil {
			return nil, err
		}

		return New(config.LogLevel(), config.LogFormat())
	})
}

func New(level, format string) (*logrus.Logger, error) {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("failed parse loglevel: %w", err)
	}

	logger.SetLevel(logLevel)

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger, nil
}
