package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"
	"github.com/zhulik/vote/internal/cli/flags"
	"github.com/zhulik/vote/internal/config"
	"github.com/zhulik/vote/internal/core"
)

func writeConfig(content string) string {
	path := filepath.Join(GinkgoT().TempDir(), "config.yaml")
	lo.Must0(os.WriteFile(path, []byte(content), 0o600))

	return path
}

// closedRedisConfig points the redis backend to an address nothing listens on.
func closedRedisConfig() string {
	mr := lo.Must(miniredis.Run())
	host, port := lo.Must2(net.SplitHostPort(mr.Addr()))
	mr.Close()

	return writeConfig(fmt.Sprintf("redis: %s\nredis_port: %s\nstore_timeout: 1s\n", host, port))
}

func freePort() int {
	listener := lo.Must(net.Listen("tcp", "127.0.0.1:0"))
	defer listener.Close()

	return listener.Addr().(*net.TCPAddr).Port //nolint:forcetypeassert
}

var _ = Describe("serve", func() {
	Context("when the store is unreachable", func() {
		It("exits before binding the listener", func(ctx SpecContext) {
			port := freePort()

			err := NewCommand().Run(ctx, []string{
				"vote", "serve",
				"--config", closedRedisConfig(),
				"--backend", core.StoreBackendRedis,
				"--port", strconv.Itoa(port),
			})

			Expect(err).To(MatchError(core.ErrStoreUnreachable))

			listener, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%d", port))
			Expect(err).ToNot(HaveOccurred())
			Expect(listener.Close()).To(Succeed())
		})
	})

	Context("when options are invalid", func() {
		It("exits with a validation error", func(ctx SpecContext) {
			err := NewCommand().Run(ctx, []string{
				"vote", "serve",
				"--config", writeConfig("vote1value: Dogs\nvote2value: Dogs\n"),
				"--backend", core.StoreBackendMemory,
			})

			Expect(err).To(MatchError(config.ErrValidationFailed))
		})
	})
})

var _ = Describe("healthcheck", func() {
	It("succeeds with a reachable store", func(ctx SpecContext) {
		err := NewCommand().Run(ctx, []string{
			"vote", "healthcheck",
			"--config", writeConfig("store_backend: memory\n"),
		})

		Expect(err).ToNot(HaveOccurred())
	})

	It("fails with an unreachable store", func(ctx SpecContext) {
		err := NewCommand().Run(ctx, []string{
			"vote", "healthcheck",
			"--config", closedRedisConfig(),
			"--backend", core.StoreBackendRedis,
		})

		Expect(err).To(MatchError(core.ErrStoreUnreachable))
	})
})

var _ = Describe("loadConfig", func() {
	var path string

	load := func(ctx context.Context, args ...string) *config.Config {
		var cfg *config.Config

		cmd := &cli.Command{
			Name:  "test",
			Flags: flags.ForServer(),
			Action: func(_ context.Context, cmd *cli.Command) error {
				var err error

				cfg, err = loadConfig(cmd)

				return err
			},
		}

		lo.Must0(cmd.Run(ctx, append([]string{"test", "--config", path}, args...)))

		return cfg
	}

	BeforeEach(func() {
		path = writeConfig("store_backend: memory\nhttp_port: 7000\nlog_level: warn\n")
	})

	It("uses the config file when no flag is set", func(ctx SpecContext) {
		GinkgoT().Setenv("HTTP_PORT", "")
		GinkgoT().Setenv("LOG_LEVEL", "")

		cfg := load(ctx)

		Expect(cfg.HTTPPort()).To(Equal(7000))
		Expect(cfg.LogLevel()).To(Equal("warn"))
	})

	It("prefers HTTP_PORT over the config file", func(ctx SpecContext) {
		GinkgoT().Setenv("HTTP_PORT", "9001")

		Expect(load(ctx).HTTPPort()).To(Equal(9001))
	})

	It("prefers --port over HTTP_PORT", func(ctx SpecContext) {
		GinkgoT().Setenv("HTTP_PORT", "9001")

		Expect(load(ctx, "--port", "9002").HTTPPort()).To(Equal(9002))
	})

	It("applies log and backend flags", func(ctx SpecContext) {
		cfg := load(ctx, "-l", "debug", "--log-format", "json", "-b", core.StoreBackendMemory)

		Expect(cfg.LogLevel()).To(Equal("debug"))
		Expect(cfg.LogFormat()).To(Equal("json"))
		Expect(cfg.StoreBackend()).To(Equal(core.StoreBackendMemory))
	})
})
