package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/navs/internal/config"
	"github.com/MrSnakeDoc/navs/internal/connect"
	"github.com/MrSnakeDoc/navs/internal/finder"
	"github.com/MrSnakeDoc/navs/internal/httpserver"
	"github.com/MrSnakeDoc/navs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navs/internal/index"
	"github.com/MrSnakeDoc/navs/internal/logger"
	"github.com/MrSnakeDoc/navs/internal/scheduler"
	"github.com/MrSnakeDoc/navs/internal/store"
	redisstore "github.com/MrSnakeDoc/navs/internal/store/redis"
	"github.com/MrSnakeDoc/navs/internal/version"
)

// worker is a background loop owned by the app.
type worker interface {
	Start(ctx context.Context) error
	Stop()
}

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	store    store.Store // nil for the memory backend
	memIndex *index.MemoryIndex
	source   worker // NavReloader or StoreSyncer
	gc       *scheduler.GarbageCollector
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Open the store early - fail fast if unavailable
	st, err := openStore(cfg, loggerClient.Named("connect"))
	if err != nil {
		loggerClient.Errorf("Failed to open %s store: %v", cfg.StoreBackend, err)
		os.Exit(1)
	}

	memIndex := index.NewMemoryIndex()

	// Recover records and their timestamps from the store before the
	// source file is merged on top.
	if st != nil {
		syncer := scheduler.NewStoreSyncer(st, memIndex, loggerClient.Named("sync"), cfg.ReloadInterval, nil)
		if err := syncer.Sync(context.Background()); err != nil {
			loggerClient.Warn("failed to sync from store on startup",
				logger.String("backend", cfg.StoreBackend),
				logger.Error(err))
		}
	}

	reloadTrigger := make(chan struct{}, 1)

	var source worker
	switch {
	case cfg.SourceFile != "":
		source = scheduler.NewNavReloader(cfg.SourceFile, st, memIndex, loggerClient.Named("reloader"), cfg.ReloadInterval, reloadTrigger)
	case st != nil:
		loggerClient.Info("no source file configured, serving the store",
			logger.String("backend", cfg.StoreBackend))
		source = scheduler.NewStoreSyncer(st, memIndex, loggerClient.Named("sync"), cfg.ReloadInterval, reloadTrigger)
	default:
		loggerClient.Warn("no source file and no store configured, the index stays empty")
	}

	gc := scheduler.NewGarbageCollector(st, memIndex, loggerClient.Named("gc"), cfg.GCInterval, cfg.GCThreshold)

	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		AllowedHosts:    cfg.AllowedHosts,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		TrustProxy:      cfg.TrustProxy,
		SourceFile:      cfg.SourceFile,
		StoreBackend:    cfg.StoreBackend,
		Store:           st,
		MemoryIndex:     memIndex,
		Finder:          finder.New(memIndex, loggerClient.Named("finder")),
		ReloadTrigger:   reloadTrigger,
		RateLimitBurst:  cfg.RateLimitBurst,
		RateLimitPerMin: cfg.RateLimitPerMin,
	}

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		server:   httpserver.New(cfg, loggerClient.Named("http"), d),
		store:    st,
		memIndex: memIndex,
		source:   source,
		gc:       gc,
	}
}

// openStore connects the configured backend. It returns a nil Store for the
// memory backend.
func openStore(cfg *config.Config, log logger.Logger) (store.Store, error) {
	ctx := context.Background()

	switch cfg.StoreBackend {
	case config.BackendRedis:
		client, err := connect.Redis(ctx, connect.RedisOptions{
			Addr:         cfg.RedisAddr,
			User:         cfg.RedisUser,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  cfg.RedisDT,
			ReadTimeout:  cfg.RedisRT,
			WriteTimeout: cfg.RedisWT,
			PoolSize:     cfg.RedisPoolSize,
			Retry: connect.RetryOptions{
				ConnectTimeout: cfg.RedisConnectTimeout,
				RetryInterval:  cfg.RedisRetryInterval,
				MaxWait:        cfg.RedisMaxWait,
				PingTimeout:    cfg.RedisPingTimeout,
				WarnThreshold:  cfg.RedisWarnThreshold,
			},
		}, log)
		if err != nil {
			return nil, err
		}
		return redisstore.NewStore(client), nil

	case config.BackendSQL:
		st, err := connect.SQL(ctx, cfg.DatabaseDSN, connect.RetryOptions{
			ConnectTimeout: cfg.DatabaseConnectTimeout,
			RetryInterval:  time.Second,
			MaxWait:        10 * time.Second,
			PingTimeout:    5 * time.Second,
			WarnThreshold:  3,
		}, log)
		if err != nil {
			return nil, err
		}
		return st, nil
	}

	return nil, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting navs %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.source != nil {
		if err := a.source.Start(ctx); err != nil {
			return fmt.Errorf("failed to start reloader: %w", err)
		}
		a.logger.Info("reloader started",
			logger.String("source", a.cfg.SourceFile),
			logger.String("backend", a.cfg.StoreBackend),
			logger.Duration("interval", a.cfg.ReloadInterval))
	}

	if err := a.gc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start garbage collector: %w", err)
	}
	a.logger.Info("garbage collector started",
		logger.Duration("interval", a.cfg.GCInterval),
		logger.Duration("threshold", a.cfg.GCThreshold))

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

	if a.source != nil {
		a.source.Stop()
	}
	a.gc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warnf("failed to close %s store: %v", a.cfg.StoreBackend, err)
		} else {
			a.logger.Infof("✅ %s store closed cleanly", a.cfg.StoreBackend)
		}
	}

	a.logger.Info("✅ navs stopped cleanly",
		logger.Int("links", a.memIndex.LinkCount()),
		logger.Int("groups", a.memIndex.GroupCount()))
	return nil
}
