package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-streak-engine/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-streak-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-streak-engine/internal/adapters/metrics"
	"github.com/comitanigiacomo/kanso-streak-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-streak-engine/internal/config"
	"github.com/comitanigiacomo/kanso-streak-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-streak-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-streak-engine/internal/logger"
)

// @title                       Kanso Streak Engine API
// @version                     1.0
// @description                 Daily and weekly habits with lazy period rollover and streaks.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	l, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatal("failed to build logger", "err", err)
	}

	gin.SetMode(gin.ReleaseMode)

	app, err := newApp(context.Background(), cfg, l)
	if err != nil {
		l.Fatal("startup failed", "err", err)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      app.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		l.Info("kanso streak engine running", "addr", "http://localhost:"+cfg.Port, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("critical server error", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("stop signal received, shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		l.Error("forced shutdown", "err", err)
	}

	l.Info("server stopped gracefully")
}

type app struct {
	router *gin.Engine
	db     *sqlx.DB
	redis  *redis.Client
}

func (a *app) Close() {
	if a.redis != nil {
		a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}

// newApp wires the store selected by the configuration, the optional Redis
// cache and the HTTP router. Redis is best effort: when it is configured but
// unreachable the server starts without cache and rate limiting.
func newApp(ctx context.Context, cfg *config.Config, l *log.Logger) (*app, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	a := &app{}

	var store domain.HabitStore
	if dbCfg, ok := cfg.Database(); ok {
		l.Info("connecting to database", "driver", dbCfg.Driver)
		db, err := repository.OpenDatabase(ctx, dbCfg)
		if err != nil {
			return nil, err
		}
		a.db = db
		store = repository.NewSQLHabitRepository(db)
	} else {
		l.Warn("using in-memory store, habits are lost on restart")
		store = repository.NewInMemoryHabitRepository()
	}

	if cfg.RedisEnabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			l.Warn("redis unavailable, cache and rate limiter disabled", "err", err)
		} else {
			a.redis = rdb
			store = repository.NewCachedHabitRepository(store, rdb, cfg.CacheTTL, l)
		}
	}

	m := metrics.New()
	habitService := services.NewHabitService(store,
		services.WithLocation(cfg.Location),
		services.WithRecorder(m),
		services.WithLogger(l.WithPrefix("habits")),
	)
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)

	a.router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		HabitHandler: adapterHTTP.NewHabitHandler(habitService),
		Tokens:       tokens,
		DB:           a.db,
		Redis:        a.redis,
		Metrics:      m,
		Logger:       l,
		RateLimit:    cfg.RateLimit,
		RateWindow:   cfg.RateWindow,
		StartTime:    time.Now(),
	})

	return a, nil
}
