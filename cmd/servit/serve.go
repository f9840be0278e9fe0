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
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/sagarc03/servit/config"
	servithttp "github.com/sagarc03/servit/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server for the configured directory.

Every profile in the config file gets its own resolver and service and is
selected per request with the profile query parameter, e.g. /?conf=2.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 3000, "HTTP server port (env: SERVIT_SERVER_PORT)")
	serveCmd.Flags().Bool("h2c", false, "accept HTTP/2 over cleartext (env: SERVIT_SERVER_H2C)")
	serveCmd.Flags().String("profile-param", "conf", "query parameter selecting a profile (env: SERVIT_SERVER_PROFILE_PARAM)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	base, err := openSite(workDir, cfg.Delivery)
	if err != nil {
		return err
	}
	defer func() { _ = base.Close() }()

	profiles := make(map[string]servithttp.Service, len(cfg.Profiles))
	for name, opts := range cfg.ProfileOptions() {
		s, err := openSite(workDir, opts)
		if err != nil {
			return fmt.Errorf("profile %s: %w", name, err)
		}
		defer func() { _ = s.Close() }()

		profiles[name] = s.service
		slog.Debug("profile ready", "profile", name, "root", s.resolver.Base(), "index_file", opts.IndexFile, "compress", opts.Compress)
	}

	handler := servithttp.NewHandler(&servithttp.HandlerConfig{
		ProfileParam: cfg.Server.ProfileParam,
		Profiles:     profiles,
		CORS:         cfg.CORS,
	}, base.service)

	var h http.Handler = handler.Router()
	if cfg.Server.H2C {
		h = h2c.NewHandler(h, &http2.Server{})
	}

	// No WriteTimeout: large files stream for as long as the client reads.
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           h,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting server",
		"port", cfg.Server.Port,
		"root", base.resolver.Base(),
		"compress", cfg.Delivery.Compress,
		"h2c", cfg.Server.H2C,
		"profiles", len(profiles),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
