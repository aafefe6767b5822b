package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KotFed0t/lot_allocator/config"
	"github.com/KotFed0t/lot_allocator/data"
	"github.com/KotFed0t/lot_allocator/data/cache"
	"github.com/KotFed0t/lot_allocator/data/lock"
	"github.com/KotFed0t/lot_allocator/data/repository/postgres"
	"github.com/KotFed0t/lot_allocator/data/session"
	"github.com/KotFed0t/lot_allocator/internal/allocation"
	"github.com/KotFed0t/lot_allocator/internal/externalApi/cloudStorageApi/googleDriveApi"
	"github.com/KotFed0t/lot_allocator/internal/externalApi/moexApi"
	"github.com/KotFed0t/lot_allocator/internal/reportGenerator/xslsxGenerator"
	"github.com/KotFed0t/lot_allocator/internal/scheduler"
	"github.com/KotFed0t/lot_allocator/internal/service/lotService"
	"github.com/KotFed0t/lot_allocator/internal/tgbot"
	"github.com/KotFed0t/lot_allocator/internal/transport/telegram"
)

func main() {
	cfg := config.MustLoad()

	setupLogger(cfg)

	if _, err := allocation.ParseStrategy(cfg.Allocation.DefaultStrategy); err != nil {
		slog.Error("invalid DEFAULT_STRATEGY", slog.String("err", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgClient := data.NewPostgresClient(cfg)
	defer pgClient.Close()

	pgRepo := postgres.NewPostgres(cfg, pgClient)

	redisClient := data.NewRedisClient(cfg)
	defer redisClient.Close()

	redisCache := cache.NewRedisCache(redisClient, cfg)
	redisSession := session.NewRedisSession(redisClient, cfg)
	redisLocker := lock.NewRedisLocker(redisClient, cfg)

	moexApiClient := moexApi.New(cfg)

	reportGenerator := xslsxGenerator.New()

	var cloudStorage lotService.CloudStorage
	if cfg.GoogleDrive.CredentialsFile != "" {
		googleDrive, err := googleDriveApi.New(ctx, cfg)
		if err != nil {
			panic(err)
		}
		cloudStorage = googleDrive
	} else {
		slog.Info("google drive is not configured, reports will be sent as files")
	}

	lotSrv := lotService.New(cfg, pgRepo, redisCache, redisLocker, redisSession, moexApiClient, reportGenerator, cloudStorage)

	sched, err := scheduler.New()
	if err != nil {
		panic(err)
	}
	err = sched.Register(
		scheduler.Job{Name: "sync splits", Fn: lotSrv.SyncSplits, Interval: cfg.Jobs.SyncSplitsInterval, StartImmediately: true},
		scheduler.Job{Name: "cleanup reports", Fn: lotSrv.CleanupReports, Interval: cfg.Jobs.CleanupReportsInterval},
	)
	if err != nil {
		panic(err)
	}
	sched.Start()
	defer func() { _ = sched.Stop() }()

	tgController := telegram.NewController(lotSrv, redisSession)

	tgBot := tgbot.New(cfg, tgController)
	tgBot.Start()
	defer tgBot.Stop()

	// Waiting interruption signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-interrupt
}

func setupLogger(cfg *config.Config) {
	var logLevel slog.Level

	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)
}
