package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/hospital-api/internal/config"
	domainRepo "github.com/sangkips/hospital-api/internal/domain/repository"
	"github.com/sangkips/hospital-api/internal/presentation/http/handler"
	"github.com/sangkips/hospital-api/internal/presentation/http/middleware"
	"github.com/sangkips/hospital-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Tenant  *handler.TenantHandler
	Patient *handler.PatientHandler
	Invoice *handler.InvoiceHandler
	Payment *handler.PaymentHandler
	Billing *handler.BillingHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	TenantRepo      domainRepo.TenantRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication + tenant resolution)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.TenantMiddleware(deps.TenantRepo))

		// Per-tenant rate limiter
		rateLimiter := middleware.NewTenantRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile routes
	protected.GET("/profile", h.Auth.Me)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Tenants
	registerTenantRoutes(protected, h)

	// Routes below operate on a hospital's data and need a resolved tenant
	scoped := protected.Group("")
	scoped.Use(middleware.RequireTenant())

	registerPatientRoutes(scoped, h)
	registerInvoiceRoutes(scoped, h, deps)
	registerPaymentRoutes(scoped, h, deps)
	registerBillingRoutes(scoped, h)
}

func registerTenantRoutes(protected *gin.RouterGroup, h *Handlers) {
	tenants := protected.Group("/tenants")
	{
		tenants.GET("", h.Tenant.ListTenants)
		tenants.POST("", h.Tenant.Create)
		tenants.GET("/current", h.Tenant.GetCurrentTenant)
		tenants.PUT("/current", h.Tenant.UpdateTenant)
		tenants.GET("/current/members", h.Tenant.ListMembers)
		tenants.POST("/current/members", h.Tenant.InviteMember)
		tenants.DELETE("/current/members/:userId", h.Tenant.RemoveMember)
	}
}

func registerPatientRoutes(scoped *gin.RouterGroup, h *Handlers) {
	patients := scoped.Group("/patients")
	patients.Use(middleware.RequirePermission("manage-patients"))
	{
		patients.GET("", h.Patient.List)
		patients.POST("", h.Patient.Create)
		patients.GET("/mrn/:mrn", h.Patient.GetByMRN)
		patients.GET("/:id", h.Patient.Get)
		patients.PUT("/:id", h.Patient.Update)
		patients.DELETE("/:id", h.Patient.Delete)
	}
}

func registerInvoiceRoutes(scoped *gin.RouterGroup, h *Handlers, deps *Deps) {
	invoices := scoped.Group("/invoices")
	invoices.Use(middleware.RequirePermission("manage-invoices"))
	{
		invoices.GET("", h.Invoice.List)
		// Invoice creation uses idempotency middleware to prevent duplicates
		invoices.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PUT("/:id", h.Invoice.Update)
		invoices.POST("/:id/cancel", h.Invoice.Cancel)
	}
}

func registerPaymentRoutes(scoped *gin.RouterGroup, h *Handlers, deps *Deps) {
	payments := scoped.Group("/payments")
	payments.Use(middleware.RequirePermission("manage-payments"))
	{
		payments.GET("", h.Payment.List)
		// Payment creation uses idempotency middleware so a retried
		// submission is replayed instead of booked twice
		payments.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Payment.Create)
		payments.GET("/:id", h.Payment.Get)
		payments.PUT("/:id", h.Payment.Update)
	}
}

func registerBillingRoutes(scoped *gin.RouterGroup, h *Handlers) {
	billing := scoped.Group("/billing")
	{
		billing.GET("/stats", h.Billing.Stats)
		billing.GET("/revenue-report", middleware.RequirePermission("view-reports"), h.Billing.RevenueReport)
	}
}
