// Package main seeds an admin account. Usage:
//
//	createadmin -email admin@example.com -password secret
//
// The account is created only if the email is not already registered.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ipca-wpd/backend/config"
	"github.com/ipca-wpd/backend/internal/admin"
	"github.com/ipca-wpd/backend/pkg/database"
	"github.com/ipca-wpd/backend/pkg/utils"
)

func main() {
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: createadmin -email <email> -password <password>")
		os.Exit(2)
	}

	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	repo := admin.NewRepository(pool)
	existing, err := repo.GetByEmail(ctx, *email)
	if err != nil {
		logger.Fatal("admin lookup", zap.Error(err))
	}
	if existing != nil {
		logger.Info("admin already exists", zap.String("email", *email))
		return
	}

	hash, err := utils.HashPassword(*password)
	if err != nil {
		logger.Fatal("hash password", zap.Error(err))
	}

	created, err := repo.Create(ctx, *email, hash)
	if err != nil {
		logger.Fatal("create admin", zap.Error(err))
	}
	logger.Info("admin created", zap.String("email", created.Email), zap.String("id", created.ID.String()))
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
