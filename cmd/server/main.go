package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/taskboard/api/handler"
	"github.com/fastygo/taskboard/internal/config"
	"github.com/fastygo/taskboard/internal/infrastructure/monitor"
	"github.com/fastygo/taskboard/internal/infrastructure/storage"
	"github.com/fastygo/taskboard/internal/middleware"
	"github.com/fastygo/taskboard/internal/router"
	"github.com/fastygo/taskboard/internal/services/lifecycle"
	"github.com/fastygo/taskboard/pkg/httpcontext"
	"github.com/fastygo/taskboard/pkg/logger"
	taskUC "github.com/fastygo/taskboard/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Output:   cfg.Logger.Output,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	appCtx, stop := manager.Listen(context.Background())
	defer stop()

	backend, err := storage.Open(appCtx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("storage initialization failed", zap.Error(err))
	}
	manager.Register(backend.Hooks...)

	mon := monitor.New(backend.Storage, backend.Driver, backend.Cache, cfg.Monitor.Interval, zapLogger)
	mon.Start()
	manager.Register(lifecycle.Hook{Name: "monitor", Close: func(ctx context.Context) error {
		mon.Stop(ctx)
		return nil
	}})

	taskUseCase := taskUC.New(backend.Tasks, zapLogger)
	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout, httpcontext.WithBaseContext(appCtx))

	r := router.New(router.Handlers{
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	})

	server := &fasthttp.Server{
		Handler: router.Handler(r,
			middleware.RequestLogger(zapLogger),
			middleware.CORS(cfg.HTTP.AllowedOrigins),
		),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("storage", backend.Driver),
		)
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register(lifecycle.Hook{Name: "http_server", Close: server.ShutdownWithContext})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
