package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sagarc03/pitchgate"
	"github.com/sagarc03/pitchgate/config"
	pitchhttp "github.com/sagarc03/pitchgate/http"
	"github.com/sagarc03/pitchgate/keybackend"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the pitchgate HTTP server.

Every request except GET /healthz must carry valid Basic credentials.
The server stops gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	creds, err := keybackend.NewCredentialSet(cfg.Auth)
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	gateway, err := pitchgate.NewGateway(store.Dir(), store)
	if err != nil {
		return fmt.Errorf("create gateway: %w", err)
	}

	handlerConfig := pitchhttp.HandlerConfig{
		Realm:    cfg.Server.Realm,
		Verifier: creds,
		CORS:     cfg.CORS,
	}

	handler := pitchhttp.NewHandler(&handlerConfig, gateway)

	addr := cfg.Server.Addr()

	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  config.Seconds(cfg.Server.ReadTimeout),
		WriteTimeout: config.Seconds(cfg.Server.WriteTimeout),
		IdleTimeout:  config.Seconds(cfg.Server.IdleTimeout),
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-sigCh:
		case <-ctx.Done():
			return
		}

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.Seconds(cfg.Server.ShutdownTimeout))
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server", "addr", addr, "root", gateway.Root())
	slog.Info("basic auth enabled", "realm", cfg.Server.Realm, "credentials", creds.Len())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	<-ctx.Done()
	return nil
}
