// @title Pet Health API
// @version 1.0
// @description Historial de salud de mascotas y health score.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-health/internal/adapters/auth/odin"
	"pet-health/internal/adapters/cache/redis"
	"pet-health/internal/adapters/notify/webhook"
	pg "pet-health/internal/adapters/storage/postgres"
	"pet-health/internal/domain/notifications"
	"pet-health/internal/platform/config"
	"pet-health/internal/platform/logger"
	"pet-health/internal/ports/auth"
	"pet-health/internal/router"

	"github.com/spf13/cobra"
)

func main() {
	var configFile string

	cmd := &cobra.Command{
		Use:           "api",
		Short:         "Pet health HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "ruta a config.yaml (opcional)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
	defer logger.Sync(log)

	opts := router.Options{
		Logger:      log,
		CacheTTL:    cfg.Cache.TTL,
		Concurrency: cfg.Insights.Concurrency,
	}

	db, err := openDB(ctx, cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		opts.DB = db
	}

	cache, err := openCache(ctx, cfg, log)
	if err != nil {
		return err
	}
	if cache != nil {
		defer cache.Close()
		opts.Cache = cache
	}

	if opts.AuthVerifier, err = newVerifier(cfg, log); err != nil {
		return err
	}
	if opts.Deliverer, err = newDeliverer(cfg, log); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openDB: sin DSN => nil (repos in-memory).
func openDB(ctx context.Context, cfg *config.Config, log logger.Logger) (*sql.DB, error) {
	if cfg.DB.DSN == "" {
		log.Warn("db.dsn not set, using in-memory storage", nil)
		return nil, nil
	}

	db, err := pg.Open(ctx, cfg.DB.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		if err := pg.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info("schema applied", nil)
	}
	return db, nil
}

func openCache(ctx context.Context, cfg *config.Config, log logger.Logger) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}
	c, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}
	log.Info("redis report cache enabled", map[string]any{"addr": cfg.Redis.Addr})
	return c, nil
}

func newVerifier(cfg *config.Config, log logger.Logger) (auth.AuthVerifier, error) {
	if cfg.Odin.BaseURL == "" {
		log.Warn("odin not configured, accepting X-Debug-User-ID (dev mode)", nil)
		return nil, nil
	}
	client, err := odin.NewClient(odin.Config{BaseURL: cfg.Odin.BaseURL, APIKey: cfg.Odin.APIKey})
	if err != nil {
		return nil, err
	}
	if !client.IsConfigured() {
		return nil, errors.New("odin.baseURL set but odin.apiKey missing")
	}
	return odin.NewVerifier(client), nil
}

func newDeliverer(cfg *config.Config, log logger.Logger) (notifications.Deliverer, error) {
	if cfg.Notify.WebhookURL == "" {
		return nil, nil
	}
	d, err := webhook.New(webhook.Config{
		URL:     cfg.Notify.WebhookURL,
		APIKey:  cfg.Notify.APIKey,
		Timeout: cfg.Notify.Timeout,
	})
	if err != nil {
		return nil, err
	}
	log.Info("notification webhook enabled", nil)
	return d, nil
}
