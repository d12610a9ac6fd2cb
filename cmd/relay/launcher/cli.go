package launcher

import (
	application "github.com/Exca-DK/relay-util/app"
	"github.com/Exca-DK/relay-util/log"
	"github.com/urfave/cli/v2"
)

var (
	RunCommand = &cli.Command{
		Name:        "run",
		Description: "runs the prime worker, relaying reported primes to the consumer loop",
		Action:      runRelay,
		Flags: []cli.Flag{
			application.LimitFlag,
			application.EveryFlag,
			application.DepthFlag,
			application.RateFlag,
			application.RunsFlag,
			application.MetricsFlag,
			application.PortFlag,
			application.VerbosityFlag,
		},
	}
)

func runRelay(ctx *cli.Context) error {
	log.SetLoggingLvl(application.ParseVerbosity(ctx))
	logger := log.NewLogger()

	cfg := application.Config{
		Metrics: application.ParseMetrics(ctx),
		Port:    application.ParsePort(ctx),
		Limit:   application.ParseLimit(ctx),
		Every:   application.ParseEvery(ctx),
		Depth:   application.ParseDepth(ctx),
		Rate:    application.ParseRate(ctx),
		Runs:    application.ParseRuns(ctx),
	}
	logger.Info("relay starting",
		log.NewUintField("limit", uint64(cfg.Limit)),
		log.NewTField("every", cfg.Every),
		log.NewTField("depth", cfg.Depth),
		log.NewTField("runs", cfg.Runs),
	)
	relayApp := application.NewRelayApp(cfg)
	relayApp.Run(ctx.Context)
	return nil
}
