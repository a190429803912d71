// Package main runs the event supplier marketplace HTTP server with
// WebSocket push and graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/festeja/backend/config"
	"github.com/festeja/backend/internal/auth"
	"github.com/festeja/backend/internal/categories"
	"github.com/festeja/backend/internal/contactforms"
	"github.com/festeja/backend/internal/media"
	"github.com/festeja/backend/internal/middleware"
	"github.com/festeja/backend/internal/realtime"
	"github.com/festeja/backend/internal/reviews"
	"github.com/festeja/backend/internal/suppliers"
	"github.com/festeja/backend/internal/worker"
	"github.com/festeja/backend/pkg/database"
	"github.com/festeja/backend/pkg/queue"
	"github.com/festeja/backend/pkg/redis"
	"github.com/festeja/backend/pkg/response"
	"github.com/festeja/backend/pkg/storage"
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

	var s3Client *storage.S3
	if cfg.AWS.Region != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			MediaBucket:          cfg.AWS.MediaBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	redisPubSub := realtime.NewRedisPubSub(rdb.Client, logger)
	hub := realtime.NewHub(logger, redisPubSub, redisPubSub)
	limiter := middleware.NewRateLimiter(rdb, logger)
	jobQueue := queue.NewQueue(rdb.Client, logger)

	// Auth
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, logger)

	// Categories
	categoryRepo := categories.NewRepository(pool)
	categoryHandler := categories.NewHandler(categoryRepo, logger)

	// Contact forms (created before suppliers: new profiles get the default form)
	formRepo := contactforms.NewRepository(pool)

	// Suppliers
	supplierRepo := suppliers.NewRepository(pool)
	supplierHandler := suppliers.NewHandler(supplierRepo, formRepo, logger)

	formHandler := contactforms.NewHandler(formRepo, supplierRepo, jobQueue, hub, logger)

	// Reviews
	reviewRepo := reviews.NewRepository(pool)
	reviewHandler := reviews.NewHandler(reviewRepo, logger)

	// Media
	mediaRepo := media.NewRepository(pool)
	mediaHandler := media.NewHandler(mediaRepo, supplierRepo, s3Client, logger)

	// Background worker (submission notification mail)
	processor := worker.NewSubmissionProcessor(formRepo, supplierRepo, jobQueue, cfg.Email, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Auth (public; login behind a sliding-window limiter)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login",
			limiter.ByIP("login", cfg.RateLimit.LoginPerQuarter, 15*time.Minute, "too many login attempts, try again later"),
			authHandler.Login)
	}

	// Public catalog
	router.GET("/categories", categoryHandler.List)
	router.GET("/suppliers", supplierHandler.List)
	router.GET("/suppliers/random", supplierHandler.Random)
	router.GET("/suppliers/:id", supplierHandler.Get)
	router.GET("/suppliers/:id/reviews", reviewHandler.ListForSupplier)
	router.GET("/suppliers/:id/media", mediaHandler.List)
	router.GET("/contact-forms/default-template", formHandler.DefaultTemplate)
	router.GET("/suppliers/:id/contact-form", formHandler.Get)
	router.POST("/suppliers/:id/contact-form/submit",
		limiter.ByIP("submit", cfg.RateLimit.SubmitPerHour, time.Hour, "too many submissions, try again later"),
		formHandler.Submit)

	// Protected API (JWT required)
	api := router.Group("")
	api.Use(middleware.JWT(jwtService))
	{
		api.GET("/auth/me", authHandler.Me)

		// Supplier profiles
		api.POST("/suppliers", middleware.RequireRole("supplier", "admin"), supplierHandler.Create)
		api.GET("/suppliers/me", supplierHandler.Mine)
		api.PUT("/suppliers/:id", supplierHandler.Update)
		api.DELETE("/suppliers/:id", supplierHandler.Delete)
		api.GET("/suppliers/:id/completeness", supplierHandler.GetCompleteness)

		// Reviews
		api.POST("/suppliers/:id/reviews",
			limiter.ByUser("review", cfg.RateLimit.ReviewPerHour, time.Hour, "too many reviews, try again later"),
			reviewHandler.Create)
		api.PUT("/reviews/:id", reviewHandler.Update)
		api.DELETE("/reviews/:id", reviewHandler.Delete)

		// Media
		api.POST("/suppliers/:id/media", mediaHandler.Upload)
		api.POST("/suppliers/:id/media/url", mediaHandler.CreateByURL)
		api.DELETE("/media/:mediaID", mediaHandler.Delete)

		// Contact forms (owner)
		api.POST("/suppliers/:id/contact-form", formHandler.Create)
		api.PUT("/suppliers/:id/contact-form", formHandler.Update)
		api.DELETE("/suppliers/:id/contact-form", formHandler.Delete)
		api.POST("/suppliers/:id/contact-form/reset", formHandler.ResetToDefault)
		api.GET("/suppliers/:id/contact-form/submissions", formHandler.ListSubmissions)
		api.PATCH("/submissions/:id/read", formHandler.MarkRead)

		// Admin
		admin := api.Group("/admin", middleware.RequireRole("admin"))
		{
			admin.GET("/stats", authHandler.Stats)
			admin.GET("/users", authHandler.List)
			admin.DELETE("/users/:id", authHandler.Delete)
			admin.POST("/categories", categoryHandler.Create)
			admin.PUT("/categories/:id", categoryHandler.Update)
			admin.DELETE("/categories/:id", categoryHandler.Delete)
			admin.PATCH("/suppliers/:id/status", supplierHandler.SetStatus)
			admin.GET("/reviews/pending", reviewHandler.ListPending)
			admin.PATCH("/reviews/:id", reviewHandler.Moderate)
		}
	}

	// WebSocket inbox (token in query; no Authorization header on upgrades)
	jwtValidate := func(token string) (uuid.UUID, error) {
		claims, err := jwtService.Validate(token)
		if err != nil {
			return uuid.Nil, err
		}
		return claims.UserID, nil
	}
	resolveSupplier := func(userID uuid.UUID) (uuid.UUID, error) {
		s, err := supplierRepo.GetByUserID(ctx, userID)
		if err != nil {
			return uuid.Nil, err
		}
		return s.ID, nil
	}
	router.GET("/ws/dashboard", realtime.ServeWs(hub, logger, jwtValidate, resolveSupplier))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go processor.Run(workerCtx)

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	workerCancel()
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
