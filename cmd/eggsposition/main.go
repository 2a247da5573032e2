package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/eggsposition/eggsposition/internal/cli"
	"github.com/eggsposition/eggsposition/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if stderrors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintf(os.Stderr, "\n❌ Error: %s\n", errors.UserMessage(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	return c.RootCommand().ExecuteContext(ctx)
}
