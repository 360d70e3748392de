package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/securecookie"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/verluxstands/verlux-api/api/swagger"
	"github.com/verluxstands/verlux-api/internal/repository"
	"github.com/verluxstands/verlux-api/internal/sections"
	"github.com/verluxstands/verlux-api/internal/service"
	"github.com/verluxstands/verlux-api/internal/session"
	"github.com/verluxstands/verlux-api/pkg/cache"
	"github.com/verluxstands/verlux-api/pkg/config"
	"github.com/verluxstands/verlux-api/pkg/database"
	"github.com/verluxstands/verlux-api/pkg/logger"
	"github.com/verluxstands/verlux-api/pkg/treestore"
)

// @title Verlux Stands API
// @version 1.0.0
// @description Marketing site pages, admin CMS and two-factor login
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := build(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("bootstrap failed", zap.Error(err))
	}
	defer cleanup()

	go app.sessions.Run(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           app.router(cfg, logr),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "tree_store", cfg.TreeStore.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

type application struct {
	store     treestore.Store
	metrics   *service.MetricsService
	users     *repository.UserRepository
	creds     *service.CredentialService
	totp      *service.TOTPService
	settings  *service.TOTPSettingsService
	seo       *service.SEOService
	pages     *service.PageService
	builder   *service.PageBuilderService
	events    *service.EventService
	analytics *service.AnalyticsService
	dashboard *service.DashboardService
	sessions  *session.Registry
}

func build(ctx context.Context, cfg *config.Config, logr *zap.Logger) (*application, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, cleanup, fmt.Errorf("connect postgres: %w", err)
	}
	closers = append(closers, func() { _ = db.Close() })

	var rdb *redis.Client
	if client, err := cache.NewRedis(ctx, cfg.Redis); err != nil {
		if cfg.TreeStore.Driver == config.TreeStoreRedis || cfg.TreeStore.Driver == "" {
			return nil, cleanup, fmt.Errorf("connect redis: %w", err)
		}
		logr.Warn("redis unavailable, SEO cache disabled", zap.Error(err))
	} else {
		rdb = client
		closers = append(closers, func() { _ = rdb.Close() })
	}

	store, err := openStore(cfg, rdb, db)
	if err != nil {
		return nil, cleanup, err
	}
	if metrics != nil {
		store = treestore.WithObserver(store, metrics)
	}

	users := repository.NewUserRepository(db)
	seoRepo := repository.NewSEORepository(store)
	pageRepo := repository.NewPageRepository(store)
	totpRepo := repository.NewTOTPSettingsRepository(store)

	var cacheRepo service.CacheRepository
	if rdb != nil {
		cacheRepo = repository.NewCacheRepository(rdb, cfg.TreeStore.Prefix+":cache", logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.SEO.CacheTTL, logr, cfg.SEO.CacheEnabled)

	validate := validator.New()
	app := &application{store: store, metrics: metrics, users: users}
	app.creds = service.NewCredentialService(users, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	app.totp = service.NewTOTPService(cfg.TOTP, metrics, logr)
	app.settings = service.NewTOTPSettingsService(totpRepo, app.totp, logr)
	app.seo = service.NewSEOService(seoRepo, cacheSvc, service.SEOConfig{
		SiteName: cfg.Site.Name,
		BaseURL:  cfg.Site.BaseURL,
		CacheTTL: cfg.SEO.CacheTTL,
	}, validate, logr)
	app.pages = service.NewPageService(pageRepo, sections.NewRegistry(), logr)
	app.builder = service.NewPageBuilderService(pageRepo, seoRepo, cfg.Site.BaseURL, validate, logr)
	app.events = service.NewEventService(repository.NewEventRepository(store), validate, logr)
	app.analytics = service.NewAnalyticsService(repository.NewAnalyticsRepository(store), metrics, logr)
	app.dashboard = service.NewDashboardService(service.DashboardServiceParams{
		SEO:       app.seo,
		Pages:     app.builder,
		Events:    app.events,
		Analytics: app.analytics,
		TOTP:      app.settings,
		Cache:     cacheSvc,
		Logger:    logr,
	})

	sessionCfg := cfg.Session
	if sessionCfg.HashKey == "" {
		if cfg.Env == config.EnvProduction {
			return nil, cleanup, errors.New("SESSION_HASH_KEY is required in production")
		}
		logr.Warn("SESSION_HASH_KEY not set, login cookies will not survive a restart")
		sessionCfg.HashKey = string(securecookie.GenerateRandomKey(32))
	}
	app.sessions = session.NewRegistry(sessionCfg, func() *service.LoginSession {
		return service.NewLoginSession(app.creds, totpRepo, app.totp, metrics, logr)
	}, logr)

	return app, cleanup, nil
}

func openStore(cfg *config.Config, rdb *redis.Client, db *sqlx.DB) (treestore.Store, error) {
	var client redis.UniversalClient
	if rdb != nil {
		client = rdb
	}
	store, err := treestore.Open(cfg.TreeStore, client, db)
	if err != nil {
		return nil, fmt.Errorf("open tree store: %w", err)
	}
	return store, nil
}
