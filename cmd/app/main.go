package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gytech/flightdesk/config"
	"github.com/gytech/flightdesk/internal/bootstrap"
	"github.com/gytech/flightdesk/internal/events"
	"github.com/gytech/flightdesk/internal/imagefile"
	"github.com/gytech/flightdesk/internal/service/core"
	"github.com/gytech/flightdesk/internal/store"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := newLogger(cfg.Logging.Level)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus := events.NewBus()
	if cfg.Kafka.Enabled() {
		sink := events.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.OutcomesTopic, logger)
		defer func() { _ = sink.Close() }()
		go sink.Run(ctx, bus)
	}

	manager := store.NewManager(cfg.Database, cfg.Admin, logger)
	images := imagefile.NewReader(cfg.Feed.MaxImageBytes)
	svc := core.New(manager, bus, images, logger)

	// Failing to reach the store at startup is the one unrecoverable
	// condition; everything after this is reported per call.
	if err := svc.Connect(ctx); err != nil {
		logger.Fatal("initial database connect failed", zap.Error(err))
	}
	defer svc.Disconnect(context.Background())

	if err := bootstrap.Run(ctx, cfg, svc, bus, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	return logger
}
