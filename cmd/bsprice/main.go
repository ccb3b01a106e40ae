package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/contactkeval/option-pricer/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		logger.Errorf("%v", err)
	}
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
