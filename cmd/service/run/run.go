package run

import (
	"context"
	"os/signal"
	"syscall"

	servicectx "github.com/Bridgeless-Project/ton-kit/cmd/service/ctx"
	"github.com/Bridgeless-Project/ton-kit/internal/api"
	"github.com/Bridgeless-Project/ton-kit/internal/api/health"
	"github.com/Bridgeless-Project/ton-kit/internal/chain/ton"
	"github.com/Bridgeless-Project/ton-kit/internal/config"
	"github.com/Bridgeless-Project/ton-kit/internal/db"
	pg "github.com/Bridgeless-Project/ton-kit/internal/db/postgres"
	"github.com/Bridgeless-Project/ton-kit/internal/watcher"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var Cmd = &cobra.Command{
	Use:   "run",
	Short: "Runs the config watcher and the API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
		defer cancel()

		err := runService(ctx, servicectx.Config(cmd))

		return errors.Wrap(err, "failed to run service")
	},
}

func runService(ctx context.Context, cfg config.Config) error {
	var (
		logger     = cfg.Log()
		rpc        = cfg.TonRPC()
		watcherCfg = cfg.WatcherConfig()
	)

	client, err := ton.NewClient(ctx, rpc, logger.WithField("component", "ton_client"))
	if err != nil {
		return errors.Wrap(err, "failed to create ton client")
	}

	var q db.ConfigParamsQ
	if watcherCfg.Persist {
		q = pg.NewConfigParamsQ(cfg.DB())
	}

	configWatcher := watcher.New(client, q, watcherCfg, logger.WithField("component", "watcher"))
	checker := health.NewChecker(map[string]health.Checkable{
		"watcher":      configWatcher,
		"lite_servers": client,
	})

	apiServer := api.NewServer(
		cfg.Listener(),
		q,
		configWatcher,
		checker,
		rpc.NetworkGlobalID(),
		logger.WithField("component", "api_server"),
	)

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error { return errors.Wrap(configWatcher.Run(ctx), "error while running config watcher") })
	eg.Go(func() error { return errors.Wrap(apiServer.RunHTTP(ctx), "error while running API HTTP server") })

	return eg.Wait()
}
