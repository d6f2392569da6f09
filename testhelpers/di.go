package testhelpers

import (
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/vote/internal/config"
	"github.com/zhulik/vote/internal/core"
)

func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(ginkgo.GinkgoWriter)
	logger.SetLevel(logrus.DebugLevel)

	return logger
}

// NewConfig returns a valid in-memory configuration for the Cats/Dogs poll.
func NewConfig() *config.Config {
	return &config.Config{
		Port:       0,
		Level:      "debug",
		Format:     "text",
		Vote1:      core.DefaultOptionA,
		Vote2:      core.DefaultOptionB,
		PageTitle:  "Vote",
		Backend:    core.StoreBackendMemory,
		Timeout:    time.Second,
		RedisPort:  core.DefaultRedisPort,
		NATSBucket: core.DefaultBucketName,
	}
}

func NewInjector(cfg *config.Config) *do.Injector {
	injector := do.New()

	do.ProvideValue[core.Config](injector, cfg)
	do.ProvideValue[logrus.FieldLogger](injector, NewLogger())

	return injector
}
