package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/apihub/internal/catalog"
	"github.com/MrSnakeDoc/apihub/internal/config"
	"github.com/MrSnakeDoc/apihub/internal/draft"
	"github.com/MrSnakeDoc/apihub/internal/httpserver"
	"github.com/MrSnakeDoc/apihub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/apihub/internal/index"
	"github.com/MrSnakeDoc/apihub/internal/logger"
	"github.com/MrSnakeDoc/apihub/internal/prefs"
	"github.com/MrSnakeDoc/apihub/internal/redis"
	"github.com/MrSnakeDoc/apihub/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/apihub/internal/store/redis"
	"github.com/MrSnakeDoc/apihub/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	reloader    *scheduler.CatalogReloader
	janitor     *scheduler.DraftJanitor
}

// New wires the application from the environment. Redis is only dialled
// when an address is configured; a configured but unreachable Redis is a
// startup error.
func New(ctx context.Context) (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	client, err := catalog.New(cfg.StoreURL, loggerClient, catalog.WithTimeout(cfg.FetchTimeout))
	if err != nil {
		return nil, err
	}

	var redisClient *goredis.Client
	var prefStore prefs.Store = prefs.NewMemoryStore()
	if cfg.RedisEnabled() {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		redisClient, err = redis.Connect(ctx, redis.ConnectOptions{
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
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		prefStore = redisstore.NewStore(redisClient).WithTTL(cfg.RedisPrefsTTL)
		loggerClient.Info("Redis initialized successfully, preferences are persistent")
	} else {
		loggerClient.Info("APIHUB_REDIS_ADDR not set, preferences kept in memory")
	}

	memIndex := index.NewMemoryIndex()
	drafts := draft.NewRegistry()

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewCatalogReloader(
		client,
		memIndex,
		loggerClient.Named("reload"),
		cfg.ReloadInterval,
		reloadTrigger,
	)

	janitor := scheduler.NewDraftJanitor(
		drafts,
		loggerClient.Named("janitor"),
		cfg.DraftGCInterval,
		cfg.DraftTTL,
	)

	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		StoreURL:      client.BaseURL(),
		Catalog:       client,
		MemoryIndex:   memIndex,
		Drafts:        drafts,
		Themes:        prefs.NewThemes(prefStore, cfg.Theme),
		RedisClient:   redisClient,
		ReloadTrigger: reloadTrigger,
		ImportLimit:   cfg.ImportLimit,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
		memIndex:    memIndex,
		reloader:    reloader,
		janitor:     janitor,
	}, nil
}

// Run serves until SIGINT/SIGTERM or ctx is cancelled, then shuts down.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("🚀 Starting %s on %s", version.String(), a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// First load is synchronous; an unreachable store only leaves the
	// catalog absent until the next reload.
	a.reloader.Start(ctx)
	a.logger.Info("catalog reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval),
		logger.Bool("ready", a.memIndex.Ready()))

	a.janitor.Start(ctx)
	a.logger.Info("draft janitor started",
		logger.Duration("interval", a.cfg.DraftGCInterval),
		logger.Duration("ttl", a.cfg.DraftTTL))

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
		a.reloader.Stop()
		a.janitor.Stop()
		return err
	}

	a.reloader.Stop()
	a.janitor.Stop()

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

	a.logger.Info("✅ apihub stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
