// Command courserecd is the recommendation HTTP service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"course-recommender/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{}
	cmd := cli.NewRootCmd(app)
	cmd.SetArgs(append([]string{"serve"}, os.Args[1:]...))
	err := cmd.ExecuteContext(ctx)
	if err != nil && app.Log != nil {
		app.Log.Error("courserecd exited", zap.Error(err))
	}
	if app.Log != nil {
		_ = app.Log.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
