// Package main is the entry point for the clinic API server.
// It loads configuration, connects PostgreSQL and Redis, mounts the
// routes and serves until interrupted.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic/internal/config"
	"clinic/internal/logger"
	"clinic/internal/repositories"
	"clinic/internal/routes"
	"clinic/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	zapLog, err := logger.New(cfg.LogLevel, cfg.LogFormat, "clinic-api")
	if err != nil {
		log.Fatalf("failed to initialise logger: %v", err)
	}
	defer zapLog.Sync() //nolint:errcheck

	if err := repositories.InitDB(cfg, zapLog); err != nil {
		zapLog.Fatal("failed to initialise storage", zap.Error(err))
	}
	defer repositories.Close(zapLog)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := repositories.Sessions.HealthCheck(ctx); err != nil {
		zapLog.Warn("redis is not reachable, token revocation will fail", zap.Error(err))
	}
	cancel()

	app := fiber.New(fiber.Config{
		AppName:      "clinic-api",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return response.Error(c, fe.Code, fe.Message)
			}
			zapLog.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
			return response.ServerError(c, "internal server error")
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, repositories.DB, repositories.Sessions, cfg, zapLog)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zapLog.Fatal("server stopped", zap.Error(err))
		}
	}()
	zapLog.Info("server started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
}
