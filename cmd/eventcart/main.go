package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aussiebroadwan/eventcart/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := cli.LoadConfig()

	store, closer, err := cli.OpenStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "eventcart: %v\n", err)
		return 1
	}
	if closer != nil {
		defer closer.Close()
	}

	app := cli.New(cfg, store, os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "eventcart: %v\n", err)
		if errors.Is(err, cli.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}
