// Package main runs the World Pest Day campaign HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ipca-wpd/backend/config"
	"github.com/ipca-wpd/backend/internal/admin"
	"github.com/ipca-wpd/backend/internal/auth"
	"github.com/ipca-wpd/backend/internal/certificates"
	"github.com/ipca-wpd/backend/internal/emaillogs"
	"github.com/ipca-wpd/backend/internal/middleware"
	"github.com/ipca-wpd/backend/internal/registrants"
	"github.com/ipca-wpd/backend/internal/uploads"
	"github.com/ipca-wpd/backend/internal/visits"
	"github.com/ipca-wpd/backend/pkg/database"
	"github.com/ipca-wpd/backend/pkg/mailer"
	"github.com/ipca-wpd/backend/pkg/queue"
	"github.com/ipca-wpd/backend/pkg/redis"
	"github.com/ipca-wpd/backend/pkg/response"
	"github.com/ipca-wpd/backend/pkg/storage"
)

func main() {
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

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	s3Client, err := storage.NewS3(ctx, storage.S3Config{
		Region:          cfg.AWS.Region,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		MediaBucket:     cfg.AWS.MediaBucket,
	}, logger)
	if err != nil {
		logger.Fatal("s3", zap.Error(err))
	}

	renderer, err := certificates.NewRenderer(cfg.Certificate, logger)
	if err != nil {
		logger.Fatal("certificate renderer", zap.Error(err))
	}

	mail := mailer.New(mailer.Config{
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SMTPHost:    cfg.Email.SMTPHost,
		SMTPPort:    cfg.Email.SMTPPort,
		SMTPUser:    cfg.Email.SMTPUser,
		SMTPPass:    cfg.Email.SMTPPass,
	}, logger)

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	verification := auth.NewVerificationService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpireHours)*time.Hour)
	jobQueue := queue.NewQueue(rdb.Client, logger)

	emailLogRepo := emaillogs.NewRepository(pool, logger)
	emailLogHandler := emaillogs.NewHandler(emailLogRepo)

	registrantRepo := registrants.NewRepository(pool)
	registrantHandler := registrants.NewHandler(registrantRepo, verification, mail, emailLogRepo, cfg.Server.BaseURL, logger)

	uploadHandler := uploads.NewHandler(registrantRepo, s3Client, cfg.AWS.MaxVideoSizeMB, logger)

	adminRepo := admin.NewRepository(pool)
	adminHandler := admin.NewHandler(adminRepo, registrantRepo, jwtService, renderer, s3Client, mail, emailLogRepo, jobQueue, logger)

	visitRepo := visits.NewRepository(pool)
	visitHandler := visits.NewHandler(visitRepo, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	api := router.Group("/api")
	{
		// Public: registration and verification
		api.POST("/users/register", registrantHandler.Register)
		api.POST("/users/check", registrantHandler.CheckStatus)
		api.GET("/users/verify", registrantHandler.Verify)
		api.GET("/users/video", registrantHandler.GetVideoData)

		// Public: video submission
		api.POST("/upload", uploadHandler.Upload)

		// Public: visit tracking
		api.POST("/track-visit", visitHandler.Track)

		// Admin
		api.POST("/admin/login", adminHandler.Login)
		protected := api.Group("")
		protected.Use(middleware.AdminJWT(jwtService))
		{
			protected.GET("/admin/submissions", adminHandler.ListSubmissions)
			protected.POST("/admin/approve/:userId", adminHandler.Approve)
			protected.GET("/admin/dashboard", adminHandler.Dashboard)
			protected.POST("/admin/reminders", adminHandler.EnqueueReminders)
			protected.GET("/admin/emails", emailLogHandler.List)
			protected.GET("/unique-visits", visitHandler.Summary)
			protected.GET("/unique-visits-daily", visitHandler.Daily)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
