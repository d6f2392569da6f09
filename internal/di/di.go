package di

import (
	"github.com/samber/do"
	"github.com/zhulik/vote/internal/audit"
	"github.com/zhulik/vote/internal/config"
	"github.com/zhulik/vote/internal/core"
	"github.com/zhulik/vote/internal/logging"
	"github.com/zhulik/vote/internal/store"
	"github.com/zhulik/vote/internal/vote"
	"github.com/zhulik/vote/internal/web"
)

// New builds the injector with every service of the application. Services
// are created lazily on first invocation.
func New(cfg *config.Config) *do.Injector {
	injector := do.New()

	do.ProvideValue[core.Config](injector, cfg)

	logging.Register(injector)
	store.Register(injector)
	audit.Register(injector)
	vote.Register(injector)
	web.Register(injector)

	return injector
}
