package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"clinic/internal/config"
	apperrors "clinic/internal/errors"
	"clinic/internal/logger"
	"clinic/internal/models"
	"clinic/internal/repositories"
	"clinic/internal/services/auth"
	"clinic/internal/validation"

	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	zapLog, err := logger.New(cfg.LogLevel, "console", "admin-seed")
	if err != nil {
		log.Fatalf("failed to initialise logger: %v", err)
	}
	defer zapLog.Sync() //nolint:errcheck

	adminEmail := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	adminName := config.GetEnv("ADMIN_NAME", "Administrator")

	if adminEmail == "" || adminPassword == "" {
		zapLog.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	v := validation.New()
	v.Email("email", adminEmail)
	auth.CheckPassword(v, "password", adminPassword)
	if err := v.Err(); err != nil {
		zapLog.Fatal("invalid admin credentials", zap.Error(err))
	}

	if err := repositories.InitDB(cfg, zapLog); err != nil {
		zapLog.Fatal("failed to initialise storage", zap.Error(err))
	}
	defer repositories.Close(zapLog)

	ctx := context.Background()
	users := repositories.NewUserRepository(repositories.DB)

	_, err = users.GetByEmail(ctx, adminEmail)
	if err == nil {
		zapLog.Info("admin user already exists", zap.String("email", adminEmail))
		return
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		zapLog.Fatal("failed to look up admin user", zap.Error(err))
	}

	hashed, err := auth.HashPassword(adminPassword)
	if err != nil {
		zapLog.Fatal("failed to hash password", zap.Error(err))
	}

	admin := &models.User{
		Email:        adminEmail,
		Password:     hashed,
		Name:         adminName,
		Role:         models.RoleSuperAdmin,
		TokenVersion: 1,
	}
	if err := users.Create(ctx, admin); err != nil {
		zapLog.Fatal("failed to create admin user", zap.Error(err))
	}

	zapLog.Info("admin account created", zap.String("email", adminEmail), zap.String("id", admin.ID.String()))
}
