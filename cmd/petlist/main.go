package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root, env := newRootCmd()
	err := root.ExecuteContext(ctx)
	_ = env.close()
	stop()
	if err != nil {
		os.Exit(1)
	}
}
