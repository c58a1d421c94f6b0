// Package classification CUFF Service.
//
// REST API of CUFF, the campus leftover food app
//
//	Version: 0.1.0
//	BasePath: /api
//
//	Consumes:
//	  - application/json
//
//	Produces:
//	  - application/json
//	  - text/event-stream
//
// swagger:meta
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"

	internalHandler "github.com/cuff-app/cuff/internal/handler"
	cuffLog "github.com/cuff-app/cuff/internal/log"
	"github.com/cuff-app/cuff/internal/server"
	"github.com/cuff-app/cuff/pkg/analytics"
	"github.com/cuff-app/cuff/pkg/config"
	"github.com/cuff-app/cuff/pkg/event"
	"github.com/cuff-app/cuff/pkg/notification"
	"github.com/cuff-app/cuff/pkg/post"
	"github.com/cuff-app/cuff/pkg/storage"
	"github.com/cuff-app/cuff/pkg/user"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger := slog.New(cuffLog.New(cuffLog.NewPrettyJSONHandler(os.Stdout, &cuffLog.PrettyJSONHandlerOptions{
		HandlerOptions: slog.HandlerOptions{AddSource: true, Level: cfg.Logging.Level},
		PrettyPrint:    cfg.Logging.Pretty,
	})))
	slog.SetDefault(logger)

	location, err := cfg.Location()
	if err != nil {
		return err
	}

	db, err := storage.NewDatabase(logger, cfg.Postgresql)
	if err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = storage.NewRedis(cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	} else {
		logger.Info("Redis isn't configured, analytics summaries won't be cached")
	}

	userService := user.NewService(logger, user.NewRepository(db))
	notificationService := notification.NewService(logger, notification.NewRepository(db), userService)
	broker := event.NewEventBroker()
	summaryCache := analytics.NewCache(redisClient, cfg.SummaryCacheTTL)
	postService := post.NewService(logger, post.NewRepository(db), userService, broker, notificationService, summaryCache)
	analyticsService := analytics.NewService(logger, analytics.NewRepository(db), postService, summaryCache, location)

	if cfg.Admin.Enabled() {
		if _, err := userService.EnsureAdmin(context.Background(), cfg.Admin.Email, cfg.Admin.Password); err != nil {
			return err
		}
	}

	if err := internalHandler.RegisterValidation(); err != nil {
		return fmt.Errorf("failed to register validation: %v", err)
	}

	userHandler := user.NewHandler(userService, postService, location)
	postHandler := post.NewHandler(postService)
	eventHandler := event.NewHandler(logger, broker, userService)
	notificationHandler := notification.NewHandler(notificationService)
	analyticsHandler := analytics.NewHandler(analyticsService)

	r := server.GetEngine(logger, cfg.BasePath,
		func(r gin.IRouter) { user.Routes(r, userHandler) },
		func(r gin.IRouter) { event.Routes(r, eventHandler) },
		func(r gin.IRouter) { post.Routes(r, postHandler) },
		func(r gin.IRouter) { notification.Routes(r, notificationHandler) },
		func(r gin.IRouter) { analytics.Routes(r, analyticsHandler) },
	)

	logger.Info("Starting server", "port", cfg.Port, "basePath", cfg.BasePath)
	return r.Run(":" + strconv.Itoa(cfg.Port))
}
