package app

import (
	"math"

	"github.com/urfave/cli/v2"

	"github.com/Exca-DK/relay-util/log"
	"github.com/Exca-DK/relay-util/relay"
	"github.com/Exca-DK/relay-util/workers/producer"
)

const (
	defaultLimit = 100000
	defaultPort  = 6061
)

func ParseLimit(ctx *cli.Context) uint32 {
	if !ctx.IsSet(LimitFlag.Name) {
		return defaultLimit
	}
	input := ctx.Uint64(LimitFlag.Name)
	if input == 0 {
		return defaultLimit
	}
	if input > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(input)
}

func ParseEvery(ctx *cli.Context) int {
	if !ctx.IsSet(EveryFlag.Name) {
		return producer.DefaultReportEvery
	}
	input := ctx.Uint64(EveryFlag.Name)
	if input == 0 {
		return producer.DefaultReportEvery
	}
	return int(input)
}

func ParseDepth(ctx *cli.Context) int {
	if !ctx.IsSet(DepthFlag.Name) {
		return relay.DefaultQueueDepth
	}
	input := ctx.Uint64(DepthFlag.Name)
	if input == 0 {
		return relay.DefaultQueueDepth
	}
	return int(input)
}

func ParseRate(ctx *cli.Context) float64 {
	if !ctx.IsSet(RateFlag.Name) {
		return 0
	}
	return ctx.Float64(RateFlag.Name)
}

func ParseRuns(ctx *cli.Context) int {
	if !ctx.IsSet(RunsFlag.Name) {
		return 1
	}
	input := ctx.Uint64(RunsFlag.Name)
	if input == 0 {
		return 1
	}
	return int(input)
}

func ParseMetrics(ctx *cli.Context) bool {
	if ctx.IsSet(MetricsFlag.Name) {
		return ctx.Bool(MetricsFlag.Name)
	}
	return false
}

func ParsePort(ctx *cli.Context) int {
	var port int
	if ctx.IsSet(PortFlag.Name) {
		port = ctx.Int(PortFlag.Name)
	}
	if port < 1000 {
		return defaultPort
	}
	return port
}

func ParseVerbosity(ctx *cli.Context) log.LoggingLvl {
	if !ctx.IsSet(VerbosityFlag.Name) {
		return log.INFO
	}
	input := ctx.Int(VerbosityFlag.Name)
	if input < int(log.TRACE) || input > int(log.FATAL) {
		return log.INFO
	}
	return log.LoggingLvl(input)
}
