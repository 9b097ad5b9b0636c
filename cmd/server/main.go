package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	sqlitelib "zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	apiHandler "github.com/rekamjejak/backend/api/handler"
	"github.com/rekamjejak/backend/internal/config"
	"github.com/rekamjejak/backend/internal/infrastructure/buffer"
	"github.com/rekamjejak/backend/internal/infrastructure/monitor"
	redisInfra "github.com/rekamjejak/backend/internal/infrastructure/redis"
	sqliteInfra "github.com/rekamjejak/backend/internal/infrastructure/sqlite"
	"github.com/rekamjejak/backend/internal/middleware"
	"github.com/rekamjejak/backend/internal/router"
	"github.com/rekamjejak/backend/internal/services"
	"github.com/rekamjejak/backend/internal/services/lifecycle"
	"github.com/rekamjejak/backend/pkg/httpcontext"
	"github.com/rekamjejak/backend/pkg/logger"
	redisRepo "github.com/rekamjejak/backend/repository/redis"
	sqliteRepo "github.com/rekamjejak/backend/repository/sqlite"
	activityUC "github.com/rekamjejak/backend/usecase/activity"
	authUC "github.com/rekamjejak/backend/usecase/auth"
	reportUC "github.com/rekamjejak/backend/usecase/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	for _, path := range []string{cfg.SQLite.Path, cfg.Buffer.Path} {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			zapLogger.Fatal("failed to create data directory", zap.String("path", path), zap.Error(err))
		}
	}

	pool, err := sqliteInfra.NewPool(sqliteInfra.Config{
		Path:     cfg.SQLite.Path,
		PoolSize: cfg.SQLite.PoolSize,
		Logger:   zapLogger,
		OnConnect: func(conn *sqlitelib.Conn) error {
			return sqlitex.ExecuteScript(conn, sqliteRepo.Schema, nil)
		},
	})
	if err != nil {
		zapLogger.Fatal("sqlite open failed", zap.Error(err))
	}
	manager.Register("sqlite", func(ctx context.Context) error {
		return pool.Close()
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "buffer")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := sqliteRepo.NewUserRepository(pool)
	activityRepo := sqliteRepo.NewActivityRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, 24*time.Hour)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		activityRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)

	authUseCase := authUC.New(userRepo, sessionRepo, cfg.JWT.Secret, cfg.JWT.Issuer, zapLogger)
	activityUseCase := activityUC.New(activityRepo, bufferBridge, zapLogger)
	reportUseCase := reportUC.New(activityRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:     apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Activity: apiHandler.NewActivityHandler(activityUseCase, ctxAdapter, zapLogger),
		Report:   apiHandler.NewReportHandler(reportUseCase, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, sessionRepo, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
