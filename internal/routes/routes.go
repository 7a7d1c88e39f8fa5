// Package routes defines the API routing configuration.
// It wires repositories into services and handlers and mounts them
// with the authentication and permission middleware each group needs.
package routes

import (
	"context"
	"time"

	"clinic/internal/config"
	"clinic/internal/handlers"
	"clinic/internal/middleware"
	"clinic/internal/models"
	"clinic/internal/repositories"
	"clinic/internal/repositories/cache"
	"clinic/internal/services/assistant"
	"clinic/internal/services/auth"
	"clinic/internal/services/branch"
	"clinic/internal/services/clinic"
	"clinic/internal/services/diagnosis"
	"clinic/internal/services/treatment"
	"clinic/internal/services/user"
	"clinic/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB, sessions *cache.SessionStore, cfg config.Config, log *zap.Logger) {
	// Repositories
	clinicRepo := repositories.NewClinicRepository(db)
	branchRepo := repositories.NewBranchRepository(db)
	userRepo := repositories.NewUserRepository(db)
	treatmentRepo := repositories.NewTreatmentRepository(db)
	diagnosisRepo := repositories.NewDiagnosisRepository(db)
	assistantRepo := repositories.NewAssistantRepository(db)

	// Services
	clinicService := clinic.NewService(clinicRepo, log)
	authService := auth.NewService(userRepo, sessions, utils.TokenConfig{
		AccessSecret:  cfg.JWTSecret,
		RefreshSecret: cfg.RefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	}, log)
	userService := user.NewService(userRepo, clinicService, log)
	branchService := branch.NewService(branchRepo, clinicService, log)
	treatmentService := treatment.NewService(treatmentRepo, clinicService, log)
	diagnosisService := diagnosis.NewService(diagnosisRepo, clinicService, log)
	assistantService := assistant.NewService(assistantRepo, branchRepo, clinicService, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, userRepo, log)
	healthHandler := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"database": handlers.PingFunc(func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
		"redis": handlers.PingFunc(sessions.HealthCheck),
	}, log)

	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Clinic API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})

	api := app.Group("/api")

	// Public endpoints (no auth required)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", loginLimiter(), authHandler.LoginUser)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret, sessions, userRepo, log)
	protected := api.Group("", authMiddleware.Handler)

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/logout", authHandler.LogoutUser)
	protected.Post("/auth/change-password", authHandler.ChangePassword)

	setupClinicRoutes(protected, handlers.NewClinicHandler(clinicService, log))
	setupBranchRoutes(protected, handlers.NewBranchHandler(branchService, log))
	setupUserRoutes(protected, handlers.NewUserHandler(userService, log))
	setupTreatmentRoutes(protected, handlers.NewTreatmentHandler(treatmentService, log))
	setupDiagnosisRoutes(protected, handlers.NewDiagnosisHandler(diagnosisService, log))
	setupAssistantRoutes(protected, handlers.NewAssistantHandler(assistantService, log))
}

func loginLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        config.GetIntEnv("LOGIN_RATE_LIMIT", 5),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	})
}

func setupClinicRoutes(router fiber.Router, h *handlers.ClinicHandler) {
	clinics := router.Group("/clinics")
	clinics.Post("/", middleware.RequireSuperAdmin, h.CreateClinic)
	clinics.Get("/", middleware.HasPermission(models.PermissionClinicRead), h.ListClinics)
	clinics.Get("/:id", middleware.HasPermission(models.PermissionClinicRead), h.GetClinic)
}

func setupBranchRoutes(router fiber.Router, h *handlers.BranchHandler) {
	branches := router.Group("/branches")
	branches.Post("/", middleware.HasPermission(models.PermissionBranchWrite), h.CreateBranch)
	branches.Get("/", middleware.HasPermission(models.PermissionBranchRead), h.ListBranches)
}

func setupUserRoutes(router fiber.Router, h *handlers.UserHandler) {
	users := router.Group("/users")
	users.Post("/", middleware.HasPermission(models.PermissionUserWrite), h.CreateUser)
	users.Get("/", middleware.HasPermission(models.PermissionUserRead), h.ListUsers)
	// Self lookups are allowed without user:read; the service enforces the rest.
	users.Get("/:id", h.GetUser)
}

func setupTreatmentRoutes(router fiber.Router, h *handlers.TreatmentHandler) {
	read := middleware.HasPermission(models.PermissionTreatmentRead)
	write := middleware.HasPermission(models.PermissionTreatmentWrite)

	treatments := router.Group("/treatments")
	// Static paths first so they are not captured by /:id.
	treatments.Get("/export", read, h.ExportTreatments)
	treatments.Post("/calculate", read, h.Calculate)

	treatments.Post("/", write, h.CreateTreatment)
	treatments.Get("/", read, h.ListTreatments)
	treatments.Get("/:id", read, h.GetTreatment)
	treatments.Patch("/:id", write, h.UpdateTreatment)
	treatments.Delete("/:id", write, h.DeleteTreatment)
	treatments.Post("/:id/calculate", read, h.PreviewFees)
}

func setupDiagnosisRoutes(router fiber.Router, h *handlers.DiagnosisHandler) {
	read := middleware.HasPermission(models.PermissionDiagnosisRead)
	write := middleware.HasPermission(models.PermissionDiagnosisWrite)

	diagnoses := router.Group("/diagnoses")
	diagnoses.Post("/", write, h.CreateDiagnosis)
	diagnoses.Get("/", read, h.ListDiagnoses)
	diagnoses.Get("/:id", read, h.GetDiagnosis)
	diagnoses.Patch("/:id", write, h.UpdateDiagnosis)
	diagnoses.Delete("/:id", write, h.DeleteDiagnosis)
}

func setupAssistantRoutes(router fiber.Router, h *handlers.AssistantHandler) {
	read := middleware.HasPermission(models.PermissionAssistantRead)
	write := middleware.HasPermission(models.PermissionAssistantWrite)

	assistants := router.Group("/assistants")
	assistants.Post("/", write, h.CreateAssistant)
	assistants.Get("/", read, h.ListAssistants)
	assistants.Get("/:id", read, h.GetAssistant)
	assistants.Patch("/:id", write, h.UpdateAssistant)
	assistants.Patch("/:id/status", write, h.SetAssistantStatus)
	assistants.Delete("/:id", write, h.DeleteAssistant)
}
