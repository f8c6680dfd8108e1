package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trendwatch/internal/app"
	"trendwatch/internal/config"
	"trendwatch/internal/scheduler"
	"trendwatch/pkg/logx"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "path to config file (json or yaml); optional, credentials may come from env")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}

	log, closeLog := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File:    logx.FileConfig{Enabled: cfg.Logging.File.Enabled, Path: cfg.Logging.File.Path},
	})
	defer closeLog()

	if err := run(ctx, cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("fatal", logx.Err(err))
		closeLog()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logx.Logger) error {
	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}

	poll, err := config.ParseDurationOrDefault("scheduler.poll_interval", cfg.Scheduler.PollInterval, time.Minute)
	if err != nil {
		return err
	}
	liveness, err := config.ParseDurationOrDefault("scheduler.liveness_interval", cfg.Scheduler.LivenessInterval, 15*time.Minute)
	if err != nil {
		return err
	}

	sched, err := scheduler.New(scheduler.Config{
		Time:             cfg.Scheduler.Time,
		Timezone:         cfg.Scheduler.Timezone,
		PollInterval:     poll,
		LivenessInterval: liveness,
	}, a.RunPipeline, log.With(logx.String("comp", "scheduler")))
	if err != nil {
		return err
	}

	log.Info("trend watcher started",
		logx.String("daily_at", cfg.Scheduler.Time),
		logx.String("tz", cfg.Scheduler.Timezone))
	return sched.Run(ctx)
}
