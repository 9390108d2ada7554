// Package main runs the background worker that delivers queued reminder email.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ipca-wpd/backend/config"
	"github.com/ipca-wpd/backend/internal/emaillogs"
	"github.com/ipca-wpd/backend/internal/registrants"
	"github.com/ipca-wpd/backend/internal/worker"
	"github.com/ipca-wpd/backend/pkg/database"
	"github.com/ipca-wpd/backend/pkg/mailer"
	"github.com/ipca-wpd/backend/pkg/queue"
	"github.com/ipca-wpd/backend/pkg/redis"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	mail := mailer.New(mailer.Config{
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SMTPHost:    cfg.Email.SMTPHost,
		SMTPPort:    cfg.Email.SMTPPort,
		SMTPUser:    cfg.Email.SMTPUser,
		SMTPPass:    cfg.Email.SMTPPass,
	}, logger)

	processor := worker.NewReminderProcessor(
		registrants.NewRepository(pool),
		mail,
		emaillogs.NewRepository(pool, logger),
		queue.NewQueue(rdb.Client, logger),
		logger,
	)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutdown signal received")
		cancel()
	}()

	logger.Info("reminder worker started")
	processor.Run(ctx)
	logger.Info("worker stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
