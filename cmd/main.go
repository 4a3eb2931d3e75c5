package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopping-list-api/internal/config"
	"shopping-list-api/internal/infrastructure/database/gormdb"
	"shopping-list-api/internal/logger"
	"shopping-list-api/internal/notify"
	"shopping-list-api/internal/routes"
	"shopping-list-api/internal/usecase/user"
	"shopping-list-api/pkg/mqtt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env, cfg.Server.LogLevel); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
		zap.String("db_driver", cfg.Database.Driver),
	)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	db, err := gormdb.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	userService := user.NewService(gormdb.NewUserRepository(db), cfg)
	if err := userService.EnsureAdmin(ctx); err != nil {
		logger.Fatal("Failed to seed admin user", zap.Error(err))
	}

	publisher, closePublisher := newPublisher(cfg)
	defer closePublisher()

	router := routes.SetupRoutes(ctx, cfg, db, publisher)

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		userService.StartTokenCleanupJob(gctx, cfg.Cleanup.Interval)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown Server ...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}

	logger.Info("Server exited properly")
}

// newPublisher connects to the MQTT broker when one is configured. Without a
// broker, or when the connection fails, notifications are dropped.
func newPublisher(cfg *config.Config) (notify.Publisher, func()) {
	if cfg.MQTT.Broker == "" {
		logger.Info("MQTT broker not configured, notifications disabled")
		return notify.NopPublisher{}, func() {}
	}

	client := mqtt.NewClient(&mqtt.Config{
		Broker:   cfg.MQTT.Broker,
		ClientID: cfg.MQTT.ClientID,
		Username: cfg.MQTT.Username,
		Password: cfg.MQTT.Password,
		Logger:   logger.Named("mqtt"),
	})

	if err := client.Connect(); err != nil {
		logger.Error("Failed to connect to MQTT broker, notifications disabled",
			zap.String("broker", cfg.MQTT.Broker),
			zap.Error(err),
		)
		return notify.NopPublisher{}, func() {}
	}

	return notify.NewMQTTPublisher(client, cfg.MQTT.TopicPrefix, cfg.MQTT.QoS), client.Disconnect
}
