package flags

import (
	"github.com/urfave/cli/v3"
	"github.com/zhulik/vote/internal/core"
)

const (
	FlagNameConfig     = "config"
	FlagNameServerPort = "port"
	FlagNameLogLevel   = "log-level"
	FlagNameLogFormat  = "log-format"
	FlagNameBackend    = "backend"
)

// Flags keep their parsed values, so every command gets fresh instances.
// Only CONFIG_FILE is read here, the other variables are resolved by the
// config loader, which ignores empty values.

func NewConfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    FlagNameConfig,
		Aliases: []string{"c"},
		Usage:   "Read configuration from `FILE`. A missing file is an error only when set explicitly.",
		Value:   core.DefaultConfigFile,
		Sources: cli.EnvVars("CONFIG_FILE"),
	}
}

func NewServerPortFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    FlagNameServerPort,
		Aliases: []string{"p"},
		Usage:   "Set server port to `PORT`. Overrides HTTP_PORT.",
		Value:   core.DefaultHTTPPort,
	}
}

func NewLogLevelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    FlagNameLogLevel,
		Aliases: []string{"l"},
		Usage:   "Set log level to `LEVEL`. Overrides LOG_LEVEL.",
		Value:   core.DefaultLogLevel,
	}
}

func NewLogFormatFlag() cli.Flag {
	return newEnumFlag(
		FlagNameLogFormat, nil, "Set log format to `FORMAT`. Overrides LOG_FORMAT.",
		core.DefaultLogFormat, "text", "json",
	)
}

func NewBackendFlag() cli.Flag {
	return newEnumFlag(
		FlagNameBackend, []string{"b"}, "Set store backend to `BACKEND`. Overrides STORE_BACKEND.",
		core.StoreBackendRedis, core.StoreBackendRedis, core.StoreBackendNATS, core.StoreBackendMemory,
	)
}

func Common() []cli.Flag {
	return []cli.Flag{
		NewConfigFlag(),
		NewLogLevelFlag(),
		NewLogFormatFlag(),
		NewBackendFlag(),
	}
}

func ForServer() []cli.Flag {
	return append(Common(), NewServerPortFlag())
}
