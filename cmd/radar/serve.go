package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/radar/internal/adapters/http/api"
	"github.com/okian/radar/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func (c *cli) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve [csv]",
		Short: "Serve charts, the summary and metrics over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.generator(args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Addr
			}
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("%w: %w", api.ErrServe, err)
			}
			_, _ = fmt.Fprintf(c.out, "Serving charts on http://%s/\n", ln.Addr())

			mux := http.NewServeMux()
			api.NewServer(g, c.log).Register(cmd.Context(), mux)
			return serve(cmd.Context(), ln, mux, c.log)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")
	return cmd
}

// serve runs handler on ln until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, ln net.Listener, handler http.Handler, log logger.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%w: %w", api.ErrServe, err)
	case <-ctx.Done():
	}

	log.Info(ctx, "shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return fmt.Errorf("%w: %w", api.ErrServe, err)
	}
	log.Info(ctx, "server stopped")
	return nil
}
