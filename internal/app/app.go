package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"linkherald/internal/config"
	"linkherald/internal/httpserver"
	"linkherald/internal/httpserver/deps"
	"linkherald/internal/logger"
	"linkherald/internal/notify"
	"linkherald/internal/redis"
	redisstore "linkherald/internal/store/redis"
	"linkherald/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	if !cfg.DeliveryConfigured() {
		loggerClient.Warn("slack webhook URL not configured, deliveries will fail until it is set")
	}

	notifier := notify.New(cfg.SlackWebhookURL)

	// Redis is supplemental (dedupe + counters). If it is configured but
	// unreachable we degrade instead of refusing to start: the relay itself
	// needs no state.
	var redisClient *goredis.Client
	var store deps.RelayStore
	if cfg.RedisAddr != "" {
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, loggerClient)
		if err != nil {
			loggerClient.Warn("redis unavailable, duplicate suppression disabled",
				logger.Error(err))
		} else {
			redisClient = client
			store = redisstore.NewStore(client)
			loggerClient.Info("duplicate suppression enabled",
				logger.Duration("ttl", cfg.DedupeTTL))
		}
	} else {
		loggerClient.Info("redis not configured, duplicate suppression disabled")
	}

	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		WebhookSecret: cfg.WebhookSecret,
		Notifier:      notifier,
		Store:         store,
		DedupeTTL:     cfg.DedupeTTL,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting linkherald v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("linkherald %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ linkherald stopped cleanly")
	return nil
}
