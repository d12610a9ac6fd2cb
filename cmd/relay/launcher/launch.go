package launcher

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	application "github.com/Exca-DK/relay-util/app"

	"github.com/urfave/cli/v2"
)

var (
	app = &cli.App{
		Name:        filepath.Base(os.Args[0]),
		Usage:       "relay periodic results from a prime worker onto a consumer loop",
		Version:     application.VersionWithMeta(),
		Writer:      os.Stdout,
		HideVersion: false,
	}
)

func init() {
	app.Before = func(ctx *cli.Context) error {
		var cancel func()
		ctx.Context, cancel = context.WithCancel(ctx.Context)
		ch := make(chan os.Signal, 10)
		signal.Notify(ch, os.Interrupt)
		var canceled bool
		go func() {
			for i := 0; i < 10; i++ {
				<-ch
				if !canceled {
					cancel()
					canceled = true
				}
				fmt.Printf("%v gracefull attempts left before forceed crash\n", 10-i)
			}
			os.Exit(1)
		}()
		return nil
	}
	app.CommandNotFound = func(ctx *cli.Context, cmd string) {
		fmt.Fprintf(os.Stderr, "No such command: %s\n", cmd)
		os.Exit(1)
	}
	// Add subcommands.
	app.Commands = []*cli.Command{
		RunCommand,
	}
}

func Launch(args []string) error {
	return app.Run(args)
}
