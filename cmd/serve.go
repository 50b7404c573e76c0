package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/df07/go-pathtracer/web/server"
	"github.com/urfave/cli"
)

// Serve runs the HTTP preview server until interrupted.
func Serve(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	srv := server.NewServer(ctx.String("addr"))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		logger.Notice("shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
