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

	"github.com/beanboard/menu-service/handlers"
	"github.com/beanboard/menu-service/internal/config"
	"github.com/beanboard/menu-service/internal/database"
	"github.com/beanboard/menu-service/internal/menu/handler"
	"github.com/beanboard/menu-service/internal/menu/repository"
	"github.com/beanboard/menu-service/internal/menu/service"
	"github.com/beanboard/menu-service/internal/menu/snapshot"
	"github.com/beanboard/menu-service/internal/storage"
	"github.com/beanboard/menu-service/pkg/logger"
	"github.com/beanboard/menu-service/pkg/metrics"
	"github.com/beanboard/menu-service/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL is read before config so config errors are reported at the right level
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.SetFormat(cfg.LogFormat)
	logger.Infof("config loaded: backend=%s redis=%v minio=%v", cfg.Store.Backend, cfg.Redis.Host != "", cfg.MinIO.Endpoint != "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORSMiddleware(cfg.Server.CORSOrigins))

	// Redis is shared by the redis store backend and the distributed rate limiter
	var redisClient *redis.Client
	if cfg.Redis.Host != "" && (cfg.Store.Backend == config.BackendRedis || cfg.RateLimit.UseRedis) {
		redisClient, err = database.Retry(ctx, "Redis", 5, time.Second, func(ctx context.Context) (*redis.Client, error) {
			return database.ConnectRedis(ctx, cfg.Redis, 5*time.Second)
		})
		if err != nil {
			if cfg.Store.Backend == config.BackendRedis {
				logger.Fatalf("could not connect to Redis at %s: %v", cfg.Redis.Addr(), err)
			}
			logger.Warnf("Redis unavailable, rate limiter falls back to memory: %v", err)
			redisClient = nil
		} else {
			defer func() { _ = redisClient.Close() }()
			logger.Infof("connected to Redis: %s", cfg.Redis.Addr())
		}
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	store, closeStore, err := openStore(ctx, cfg, redisClient)
	if err != nil {
		logger.Fatalf("failed to open %s store: %v", cfg.Store.Backend, err)
	}
	defer closeStore()
	svc := service.NewService(store)
	logger.Infof("menu store ready: %s", cfg.Store.Backend)

	handler.RegisterMenuRoutes(r, svc)
	handlers.RegisterSwagger(r)

	deps := map[string]handlers.Pinger{"store": svc}
	if cfg.RateLimit.UseRedis && redisClient != nil && cfg.Store.Backend != config.BackendRedis {
		deps["redis"] = redisPinger{redisClient}
	}
	handlers.RegisterHealth(r, startTime, deps)

	if cfg.MinIO.Endpoint != "" {
		objects, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf("snapshots disabled: %v", err)
		} else {
			exporter := snapshot.NewExporter(svc, objects, cfg.Snapshot.Prefix)
			handler.RegisterSnapshotRoutes(r, exporter)
			if cfg.Snapshot.Cron != "" {
				c, err := exporter.Schedule(cfg.Snapshot.Cron)
				if err != nil {
					logger.Fatalf("%v", err)
				}
				defer c.Stop()
				logger.Infof("menu snapshots scheduled: %s", cfg.Snapshot.Cron)
			}
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("Starting menu API on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down menu API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}

// openStore builds the repository selected by STORE_BACKEND. The returned
// func releases its connection.
func openStore(ctx context.Context, cfg *config.Config, redisClient *redis.Client) (repository.Store, func(), error) {
	noop := func() {}
	switch cfg.Store.Backend {
	case config.BackendMongo:
		// retry to tolerate the database starting after us
		client, err := database.Retry(ctx, "MongoDB", 5, time.Second, func(ctx context.Context) (*mongo.Client, error) {
			return database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		})
		if err != nil {
			return nil, noop, err
		}
		col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
		return repository.NewMongoRepo(col), func() { _ = client.Disconnect(context.Background()) }, nil

	case config.BackendPostgres:
		db, err := database.Retry(ctx, "Postgres", 5, time.Second, func(ctx context.Context) (*sqlx.DB, error) {
			return database.ConnectPostgres(ctx, cfg.Postgres.DSN, 10*time.Second)
		})
		if err != nil {
			return nil, noop, err
		}
		repo, err := repository.NewPostgresRepo(db, cfg.Postgres.Table)
		if err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		if err := repo.EnsureTable(ctx); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return repo, func() { _ = db.Close() }, nil

	case config.BackendRedis:
		if redisClient == nil {
			return nil, noop, errors.New("redis client not connected")
		}
		return repository.NewRedisRepo(redisClient, cfg.Redis.Prefix), noop, nil
	}
	logger.Warnf("using in-memory menu store; data is lost on restart")
	return repository.NewMemoryRepo(), noop, nil
}

type redisPinger struct{ c *redis.Client }

func (p redisPinger) Ping(ctx context.Context) error { return p.c.Ping(ctx).Err() }
