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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/seplab/spmeplan"
	"github.com/seplab/spmeplan/internal/config"
	"github.com/seplab/spmeplan/internal/logging"
	httpAdapter "github.com/seplab/spmeplan/pkg/adapters/http"
	"github.com/seplab/spmeplan/pkg/adapters/memory"
	"github.com/seplab/spmeplan/pkg/adapters/pubchem"
	redisAdapter "github.com/seplab/spmeplan/pkg/adapters/redis"
	"github.com/seplab/spmeplan/pkg/adapters/thermotable"
	"github.com/seplab/spmeplan/pkg/observability"
	"github.com/seplab/spmeplan/pkg/persistence/middleware"
	"github.com/seplab/spmeplan/pkg/ports"
	"github.com/seplab/spmeplan/pkg/session"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the planner in server mode, exposing a JSON API over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}

		level := slog.LevelInfo
		if debug || cfg.Debug {
			level = slog.LevelDebug
		}
		logger := logging.NewJSON(level)

		registry := prometheus.NewRegistry()
		metrics := observability.NewMetrics(registry)

		resolverOpts := []pubchem.Option{pubchem.WithLogger(logger)}
		if cfg.PubChemURL != "" {
			resolverOpts = append(resolverOpts, pubchem.WithBaseURL(cfg.PubChemURL))
		}

		planner := spmeplan.New(
			spmeplan.WithResolver(pubchem.New(resolverOpts...)),
			spmeplan.WithBoilingPoints(thermotable.New()),
			spmeplan.WithLogger(logger),
			spmeplan.WithMetrics(metrics),
		)

		var store ports.CompoundStore
		if cfg.RedisAddr != "" {
			store = redisAdapter.New(cfg.RedisAddr, "", 0, redisAdapter.WithTTL(cfg.RedisTTL))
			logger.Info("Using Redis session store", "addr", cfg.RedisAddr, "ttl", cfg.RedisTTL)
		} else {
			store = memory.NewStore()
			logger.Info("Using in-memory session store")
		}

		activeKey, fallbackKeys, err := cfg.EncryptionKeys()
		if err != nil {
			return err
		}
		if activeKey != nil {
			store = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
				ActiveKey:    activeKey,
				FallbackKeys: fallbackKeys,
			})(store)
			logger.Info("Session encryption enabled", "fallback_keys", len(fallbackKeys))
		}
		sessions := session.NewManager(store, session.WithLogger(logger))

		handler := httpAdapter.NewHandler(planner,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithSessions(sessions),
			httpAdapter.WithMetrics(metrics),
			httpAdapter.WithMetricsEndpoint(registry),
		)

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting spmeplan server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("Start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("Graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("could not stop server: %w", err)
				}
			}
			logger.Info("Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("config", "", "Path to a YAML config file")
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
}
