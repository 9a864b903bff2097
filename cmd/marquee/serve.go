package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/marquee/internal/config"
	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/metrics"
	"github.com/Nixie-Tech-LLC/marquee/internal/mqtt"
	"github.com/Nixie-Tech-LLC/marquee/internal/redis"
	"github.com/Nixie-Tech-LLC/marquee/internal/service"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the admin and player HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := db.Init(cfg.Database.URL, cfg.Database.MaxRetries); err != nil {
		return err
	}
	defer db.DB.Close()
	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		return fmt.Errorf("db migrate: %w", err)
	}
	store := db.NewStore(db.DB)

	opts, cleanup, err := serviceOptions(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	schedules := service.NewScheduleService(store, opts...)

	if os.Getenv("APP_ENV") != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	RegisterRoutes(r, cfg, store, schedules)

	srv := &http.Server{Addr: cfg.Server.Address, Handler: r}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", cfg.Server.Address).Msg("listening")
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

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// serviceOptions connects the optional collaborators: Redis for the resolution cache,
// MQTT for change notifications and Prometheus for metrics. The returned cleanup closes
// whatever was opened.
func serviceOptions(cfg *config.Config) ([]service.Option, func(), error) {
	opts := []service.Option{service.WithMaxPreviewDays(cfg.Scheduling.MaxPreviewDays)}
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.Redis.Enabled {
		if err := redis.InitRedis(cfg.Redis.Address, cfg.Redis.Username, cfg.Redis.Password, cfg.Redis.DB); err != nil {
			return nil, nil, err
		}
		closers = append(closers, redis.Close)
		opts = append(opts, service.WithCache(redis.NewResolutionCache(redis.Rdb, cfg.Redis.TTL())))
	}

	if cfg.MQTT.Enabled {
		client, err := mqtt.Connect(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.Username, cfg.MQTT.Password)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() { client.Disconnect(250) })
		opts = append(opts, service.WithNotifier(mqtt.NewNotifier(client, cfg.MQTT.TopicPrefix)))
	}

	if cfg.Metrics.Enabled {
		rec, err := metrics.NewPromRecorder(prometheus.DefaultRegisterer)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("register metrics: %w", err)
		}
		opts = append(opts, service.WithMetrics(rec))
	}
	return opts, cleanup, nil
}
