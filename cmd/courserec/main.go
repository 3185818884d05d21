package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"course-recommender/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{}
	err := cli.NewRootCmd(app).ExecuteContext(ctx)
	if app.Log != nil {
		_ = app.Log.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
