package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/assetvault/assetvault"
	"github.com/assetvault/assetvault/config"
	"github.com/assetvault/assetvault/filesystem"
	assethttp "github.com/assetvault/assetvault/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the assetvault HTTP server.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 4000, "HTTP server port")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	registry, err := assetvault.NewRegistry(cfg.Assets.Root, cfg.Clients)
	if err != nil {
		return fmt.Errorf("load clients: %w", err)
	}
	slog.Info("loaded client registry", "clients", registry.Len())

	if err = os.MkdirAll(cfg.Assets.Root, 0o750); err != nil {
		return fmt.Errorf("create assets root: %w", err)
	}

	root, err := os.OpenRoot(cfg.Assets.Root)
	if err != nil {
		return fmt.Errorf("open assets root: %w", err)
	}
	defer func() { _ = root.Close() }()

	store := filesystem.NewStore(root)

	service, err := assetvault.NewAssetService(registry, store)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	handlerConfig := assethttp.HandlerConfig{
		Registry:  registry,
		CORS:      cfg.CORS,
		RateLimit: cfg.RateLimit,
	}

	handler := assethttp.NewHandler(&handlerConfig, service)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server", "addr", addr, "assets_root", cfg.Assets.Root)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
