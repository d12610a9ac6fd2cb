package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Exca-DK/relay-util/control"
	"github.com/Exca-DK/relay-util/log"
	"github.com/Exca-DK/relay-util/metrics"
	"github.com/Exca-DK/relay-util/primes"
	"github.com/Exca-DK/relay-util/relay"
	"github.com/Exca-DK/relay-util/workers/producer"
)

var (
	VersionMajor = 0     // Major version component of the current release
	VersionMinor = 0     // Minor version component of the current release
	VersionPatch = 1     // Patch version component of the current release
	VersionMeta  = "dev" // Version metadata to append to the version string
)

func Version() string {
	return fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
}

func VersionWithMeta() string {
	v := Version()
	if VersionMeta != "" {
		v += "-" + VersionMeta
	}
	return v
}

type Config struct {
	Metrics bool
	Port    int

	Limit uint32
	Every int
	Depth int
	Rate  float64
	Runs  int
}

func NewRelayApp(cfg Config) *Application {
	app := &Application{Config: cfg, log: log.NewLogger()}

	engine := gin.Default()
	if cfg.Metrics {
		app.log.Info("metrics enabled")
		metrics.RegisterMetricsHandler(engine)
	}
	app.http = http.Server{Addr: fmt.Sprintf(":%v", cfg.Port), Handler: engine}

	var opts []relay.LoopOption
	if cfg.Rate > 0 {
		app.log.Info("callback dispatch throttled", log.NewTField("rate", cfg.Rate))
		opts = append(opts, relay.WithRateLimit(rate.Limit(cfg.Rate), 1))
	}
	app.loop = relay.NewLoop(cfg.Depth, opts...)
	app.controller = control.NewController(control.Config[uint32]{
		Name:        "primes",
		Invoker:     app.loop,
		NewSource:   func() producer.Source[uint32] { return primes.NewSource(cfg.Limit) },
		QueueDepth:  cfg.Depth,
		ReportEvery: cfg.Every,
	})
	return app
}

type Application struct {
	Config
	http http.Server

	loop       *relay.Loop
	controller *control.Controller[uint32]

	log log.Logger

	wg sync.WaitGroup
}

func (app *Application) Run(ctx context.Context) {
	app.loop.Start()
	app.wg.Add(1)
	go app.runHttp(ctx)

	app.runRelay(ctx)

	app.http.Close()
	app.wg.Wait()
	app.loop.Stop()
}

func (app *Application) runRelay(ctx context.Context) {
	results := make(chan control.RunStats, 1)
	sub := app.controller.SubscribeRuns(results)
	defer sub.Unsubscribe()
	defer app.controller.Close()

	callback := func(prime uint32) {
		app.log.Info("prime reported", log.NewUintField("prime", uint64(prime)))
	}

	for i := 0; i < app.Runs; i++ {
		if err := app.controller.Start(callback); err != nil {
			app.log.Error("start rejected", log.NewErrorField(err))
			return
		}
		select {
		case <-ctx.Done():
			return
		case stats := <-results:
			app.log.Info("run finished",
				log.NewStringField("run", stats.Id.Short()),
				log.NewTField("units", stats.Units),
				log.NewTField("sent", stats.Sent),
				log.NewDurationField("took", stats.FinishedAt.Sub(stats.StartedAt)),
				log.NewErrorField(stats.Err),
			)
		}
	}
}

func (app *Application) runHttp(ctx context.Context) {
	defer app.wg.Done()
	app.http.ListenAndServe()
}
