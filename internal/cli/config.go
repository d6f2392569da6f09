package cli

import (
	"github.com/urfave/cli/v3"
	"github.com/zhulik/vote/internal/cli/flags"
	"github.com/zhulik/vote/internal/config"
)

// loadConfig resolves the configuration, explicitly set flags win over the
// environment and the config file.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	opts := []config.Option{
		config.WithFile(cmd.String(flags.FlagNameConfig), cmd.IsSet(flags.FlagNameConfig)),
	}

	if cmd.IsSet(flags.FlagNameServerPort) {
		port := int(cmd.Int(flags.FlagNameServerPort))

		opts = append(opts, config.WithOverride(func(cfg *config.Config) { cfg.Port = port }))
	}

	if cmd.IsSet(flags.FlagNameLogLevel) {
		level := cmd.String(flags.FlagNameLogLevel)

		opts = append(opts, config.WithOverride(func(cfg *config.Config) { cfg.Level = level }))
	}

	if cmd.IsSet(flags.FlagNameLogFormat) {
		format := cmd.String(flags.FlagNameLogFormat)

		opts = append(opts, config.WithOverride(func(cfg *config.Config) { cfg.Format = format }))
	}

	if cmd.IsSet(flags.FlagNameBackend) {
		backend := cmd.String(flags.FlagNameBackend)

		opts = append(opts, config.WithOverride(func(cfg *config.Config) { cfg.Backend = backend }))
	}

	return config.Load(opts...) //nolint:wrapcheck
}
