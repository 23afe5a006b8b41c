package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/hospital-api/internal/application/service"
	"github.com/sangkips/hospital-api/internal/config"
	"github.com/sangkips/hospital-api/internal/infrastructure/database"
	"github.com/sangkips/hospital-api/internal/infrastructure/repository"
	"github.com/sangkips/hospital-api/internal/presentation/http/handler"
	"github.com/sangkips/hospital-api/internal/presentation/http/routes"
	"github.com/sangkips/hospital-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	billingStatsRepo := repository.NewBillingStatsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, jwtManager)
	tenantService := service.NewTenantService(tenantRepo)
	patientService := service.NewPatientService(patientRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, paymentRepo, patientRepo)
	paymentService := service.NewPaymentService(paymentRepo, invoiceRepo)
	billingStatsService := service.NewBillingStatsService(billingStatsRepo, invoiceRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Tenant:  handler.NewTenantHandler(tenantService),
		Patient: handler.NewPatientHandler(patientService),
		Invoice: handler.NewInvoiceHandler(invoiceService),
		Payment: handler.NewPaymentHandler(paymentService),
		Billing: handler.NewBillingHandler(billingStatsService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		TenantRepo:      tenantRepo,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
