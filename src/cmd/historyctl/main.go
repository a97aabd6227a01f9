package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"historyatlas/src/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := cli.NewRunner(os.Stdout, os.Stderr, nil)
	if err := runner.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "historyctl: %v\n", err)
		stop()
		os.Exit(1)
	}
}
