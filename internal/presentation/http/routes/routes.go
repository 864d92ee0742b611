package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/feetrack/feetrack-api/internal/config"
	"github.com/feetrack/feetrack-api/internal/presentation/http/handler"
	"github.com/feetrack/feetrack-api/internal/presentation/http/middleware"
	"github.com/feetrack/feetrack-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	Student      *handler.StudentHandler
	Payment      *handler.PaymentHandler
	Class        *handler.ClassHandler
	Fee          *handler.FeeHandler
	Discount     *handler.DiscountHandler
	AcademicYear *handler.AcademicYearHandler
	Report       *handler.ReportHandler
	Promotion    *handler.PromotionHandler
	Dashboard    *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
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
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)

	// Students and their ledgers
	students := protected.Group("/students")
	{
		students.GET("", h.Student.List)
		students.POST("", h.Student.Create)
		students.GET("/:id", h.Student.Get)
		students.PATCH("/:id", h.Student.Update)
		students.DELETE("/:id", h.Student.Deactivate)
		students.GET("/:id/ledger", h.Student.GetLedger)
		students.POST("/:id/fee-structure", h.Student.AssignStructure)
		students.POST("/:id/discounts", h.Student.ApplyDiscount)
		students.POST("/:id/carry-forward", middleware.RequireRole("admin"), h.Student.CarryForward)
		students.POST("/:id/promote", middleware.RequireRole("admin"), h.Student.Promote)
	}

	// Payments
	payments := protected.Group("/payments")
	{
		payments.GET("", h.Payment.List)
		payments.POST("", h.Payment.Create)
		payments.GET("/:id", h.Payment.Get)
		payments.GET("/receipt/:receipt", h.Payment.GetByReceipt)
		payments.POST("/:id/cancel", middleware.RequireRole("admin"), h.Payment.Cancel)
	}

	// Classes
	classes := protected.Group("/classes")
	{
		classes.GET("", h.Class.List)
		classes.POST("", h.Class.Create)
		classes.GET("/:id", h.Class.Get)
		classes.PATCH("/:id", h.Class.Update)
		classes.DELETE("/:id", h.Class.Delete)
	}

	// Fee categories
	categories := protected.Group("/fee-categories")
	{
		categories.GET("", h.Fee.ListCategories)
		categories.POST("", h.Fee.CreateCategory)
		categories.GET("/:id", h.Fee.GetCategory)
		categories.PATCH("/:id", h.Fee.UpdateCategory)
		categories.DELETE("/:id", h.Fee.DeleteCategory)
	}

	// Fee structures
	structures := protected.Group("/fee-structures")
	{
		structures.GET("", h.Fee.ListStructures)
		structures.POST("", h.Fee.CreateStructure)
		structures.GET("/:id", h.Fee.GetStructure)
		structures.PATCH("/:id", h.Fee.UpdateStructure)
		structures.DELETE("/:id", h.Fee.DeleteStructure)
	}

	// Discounts
	discounts := protected.Group("/discounts")
	{
		discounts.GET("", h.Discount.List)
		discounts.GET("/:id", h.Discount.Get)
		discounts.PATCH("/:id", h.Discount.Update)
		discounts.DELETE("/:id", h.Discount.Delete)
	}

	// Academic years
	years := protected.Group("/academic-years")
	{
		years.GET("", h.AcademicYear.List)
		years.POST("", middleware.RequireRole("admin"), h.AcademicYear.Create)
		years.GET("/active", h.AcademicYear.GetActive)
		years.GET("/:id", h.AcademicYear.Get)
		years.POST("/:id/activate", middleware.RequireRole("admin"), h.AcademicYear.Activate)
	}

	// Reports
	reports := protected.Group("/reports")
	{
		reports.GET("/overview", h.Report.Overview)
		reports.GET("/by-class", h.Report.ByClass)
		reports.GET("/by-section", h.Report.BySection)
		reports.GET("/defaulters", h.Report.Defaulters)
		reports.GET("/daily", h.Report.Daily)
		reports.GET("/monthly", h.Report.Monthly)
	}

	// Promotion
	protected.POST("/promotions", middleware.RequireRole("admin"), h.Promotion.PromoteCohort)
	protected.POST("/promotions/students", middleware.RequireRole("admin"), h.Promotion.PromoteStudents)
}
