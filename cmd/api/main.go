package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	apphttp "loginapp/internal/adapter/http"
	"loginapp/internal/adapter/http/routes"
	"loginapp/internal/adapter/telemetry"
	"loginapp/internal/core/port"
	coretelemetry "loginapp/internal/core/telemetry"
	"loginapp/pkg/config"
	"loginapp/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Args[1:])

	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLogger, err := logger.New(cfg.Telemetry.ServiceName, cfg.Log.Level)

	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}

	defer appLogger.Sync()

	var (
		probe   port.Telemetry = coretelemetry.NewNoOpProbe()
		metrics *coretelemetry.AppMetrics
	)

	if cfg.Telemetry.Enabled {
		tel, err := telemetry.NewContainer(ctx, telemetry.Config{
			ServiceName:    cfg.Telemetry.ServiceName,
			ServiceVersion: cfg.Telemetry.ServiceVersion,
			Environment:    cfg.Environment,
			MetricsPort:    cfg.Telemetry.MetricsPort,
			OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		}, appLogger.Logger)

		if err != nil {
			appLogger.Fatal("Failed to initialize telemetry", zap.Error(err))
		}

		defer tel.Shutdown(context.Background())

		probe = tel.NewTelemetryProbe(appLogger.Logger)
		metrics = tel.AppMetrics
	}

	container, err := apphttp.NewContainer(ctx, cfg, apphttp.Observability{
		Probe:   probe,
		Metrics: metrics,
		Logger:  appLogger.Logger,
	})

	if err != nil {
		appLogger.Fatal("Failed to build application", zap.Error(err))
	}

	defer container.Close()

	router := routes.SetupRouter(routes.HandlersConfig{
		AuthHandler: container.AuthHandler,
		UserHandler: container.UserHandler,
	}, routes.Options{
		ServiceName:  cfg.Telemetry.ServiceName,
		Metrics:      metrics,
		Logger:       appLogger,
		EnforceHTTPS: cfg.HTTP.EnforceHTTPS,
	})

	appLogger.Info("Configuration loaded",
		zap.String("environment", cfg.Environment),
		zap.String("database_driver", cfg.Database.Driver),
		zap.String("token_store", cfg.Token.Store),
	)

	if err := apphttp.NewServer(cfg, router, appLogger.Logger).Run(ctx); err != nil {
		appLogger.Error("Server failed", zap.Error(err))
	}
}
