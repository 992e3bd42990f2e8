package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-search-tracker/internal/config"
	"github.com/justsurfingit/job-search-tracker/internal/database"
	"github.com/justsurfingit/job-search-tracker/internal/handlers"
	"github.com/justsurfingit/job-search-tracker/internal/logger"
	"github.com/justsurfingit/job-search-tracker/internal/middleware"
	"github.com/justsurfingit/job-search-tracker/internal/services"
	"github.com/justsurfingit/job-search-tracker/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database ready", "driver", cfg.Database.Driver)

	// Uploads answer 503 without a store.
	var store storage.ObjectStore
	if cfg.Storage.Configured() {
		minioStore, err := storage.NewMinioStore(cfg.Storage)
		if err != nil {
			slog.Error("failed to initialize object storage", "error", err)
			os.Exit(1)
		}
		if err := minioStore.EnsureBucket(context.Background()); err != nil {
			slog.Error("failed to ensure storage bucket", "error", err)
			os.Exit(1)
		}
		store = minioStore
	} else {
		slog.Warn("storage credentials missing, uploads disabled")
	}

	completer, err := services.NewGeminiCompleter(context.Background(), cfg.LLM)
	if err != nil {
		slog.Error("failed to initialize LLM client", "error", err)
		os.Exit(1)
	}
	if completer == nil {
		slog.Warn("GEMINI_API_KEY not set, posting extraction disabled")
	}

	tasks := services.NewTaskService(db)
	svc := &handlers.Services{
		Applications: services.NewApplicationService(db),
		Contacts:     services.NewContactService(db),
		Watchlist:    services.NewWatchlistService(db),
		Tasks:        tasks,
		Stats:        services.NewStatsService(db, tasks),
		Uploads:      services.NewUploadService(store),
		LLM:          services.NewLLMService(completer),
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))

	handlers.RegisterRoutes(router, svc)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				slog.Info("shutting down server")
				return srv.Shutdown(ctx)
			},
			"database": func(context.Context) error {
				return database.Close(db)
			},
		},
	)

	exitCode := <-wait
	slog.Info("server exited", "code", exitCode)
	os.Exit(exitCode)
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	c.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "X-Request-ID"}
	c.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	c.ExposeHeaders = []string{"X-Request-ID"}
	return c
}
