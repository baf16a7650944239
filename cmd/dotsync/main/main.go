package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dotsync/dotsync/cmd/dotsync"
	"github.com/dotsync/dotsync/pkg/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := dotsync.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		output.NewRenderer(os.Stderr, dotsync.NoColor(rootCmd)).Error(err)
		os.Exit(1)
	}
}
