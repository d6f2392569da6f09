package testhelpers

import (
	"github.com/nats-io/nats-server/v2/server"
	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/onsi/ginkgo/v2"
)

// RunNatsServer starts an in-process JetStream enabled server on a random port,
// it is stopped when the current spec finishes.
func RunNatsServer() *server.Server {
	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	opts.JetStream = true
	opts.StoreDir = ginkgo.GinkgoT().TempDir()

	srv := natsserver.RunServer(&opts)
	ginkgo.DeferCleanup(srv.Shutdown)

	return srv
}
