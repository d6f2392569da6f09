package store

import (
	"fmt"

	"github.com/samber/do"
	"github.com/zhulik/vote/internal/core"
	"github.com/zhulik/vote/internal/store/memory"
	"github.com/zhulik/vote/internal/store/nats"
	"github.com/zhulik/vote/internal/store/redis"
)

func Register(injector *do.Injector) {
	do.Provide(injector, nats.NewClient)

	do.Provide(injector, func(injector *do.Injector) (core.Store, error) {
		config, err := do.Invoke[core.Config](injector)
		if err != nil {
			return nil, err
		}

		switch config.StoreBackend() {
		case core.StoreBackendRedis:
			return redis.NewStore(injector)
		case core.StoreBackendNATS:
			return nats.NewStore(injector)
		case core.StoreBackendMemory:
			return memory.NewStore(), nil
		}

		return nil, fmt.Errorf("%w: %s", core.ErrUnknownBackend, config.StoreBackend())
	})
}
