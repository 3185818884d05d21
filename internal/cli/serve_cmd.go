package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"course-recommender/internal/api"
	"course-recommender/internal/catalog"
	"course-recommender/internal/recommend"
)

// NewServeCmd runs the HTTP API. It is also the root of courserecd.
func NewServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve recommendations over HTTP; SIGHUP reloads the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				app.Config.Server.Addr = addr
			}
			ln, err := net.Listen("tcp", app.Config.Server.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", app.Config.Server.Addr, err)
			}
			return serve(cmd.Context(), app, ln)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default server.addr)")
	return cmd
}

func serve(ctx context.Context, app *App, ln net.Listener) error {
	svc, src, err := app.loadService(ctx)
	if err != nil {
		ln.Close()
		return err
	}

	srv := &http.Server{
		Handler: api.NewRouter(svc, api.Config{
			CORSOrigins: app.Config.Server.CORSOrigins,
			RateLimit:   app.Config.Server.RateLimit,
			RateWindow:  app.Config.Server.RateWindow,
		}, app.Log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				_ = reload(ctx, app, svc, src)
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	app.Log.Info("http server listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.Log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// reload builds a fresh index off to the side and publishes it. On failure
// the current index keeps serving.
func reload(ctx context.Context, app *App, svc *recommend.Service, src catalog.Source) error {
	ctx, cancel := context.WithTimeout(ctx, app.Config.Catalog.Timeout)
	defer cancel()

	idx, err := catalog.LoadIndex(ctx, src, app.Log)
	if err != nil {
		app.Log.Error("catalog reload failed, keeping current index", zap.Error(err))
		return err
	}
	svc.Swap(idx)
	return nil
}
