package app

import "github.com/urfave/cli/v2"

var (
	LimitFlag = &cli.Uint64Flag{
		Name:  "limit",
		Usage: "candidate limit for the prime workload",
	}
	EveryFlag = &cli.Uint64Flag{
		Name:  "every",
		Usage: "report every nth prime",
	}
	DepthFlag = &cli.Uint64Flag{
		Name:  "depth",
		Usage: "delivery queue depth",
	}
	RateFlag = &cli.Float64Flag{
		Name:  "rate",
		Usage: "max callback dispatches per second, 0 means unlimited",
	}
	RunsFlag = &cli.Uint64Flag{
		Name:  "runs",
		Usage: "amount of sequential runs",
	}
	MetricsFlag = &cli.BoolFlag{
		Name:  "metrics",
		Usage: "enable metrics",
	}
	PortFlag = &cli.IntFlag{
		Name:  "port",
		Usage: "port for the http server",
	}
	VerbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "logging verbosity, lower is chattier",
	}
)
