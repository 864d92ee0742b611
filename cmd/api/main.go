package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/feetrack/feetrack-api/internal/application/service"
	"github.com/feetrack/feetrack-api/internal/config"
	"github.com/feetrack/feetrack-api/internal/infrastructure/database"
	"github.com/feetrack/feetrack-api/internal/infrastructure/repository"
	"github.com/feetrack/feetrack-api/internal/presentation/http/handler"
	"github.com/feetrack/feetrack-api/internal/presentation/http/routes"
	"github.com/feetrack/feetrack-api/pkg/receipt"
	"github.com/feetrack/feetrack-api/pkg/utils"
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
	studentRepo := repository.NewStudentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	classRepo := repository.NewClassRepository(db)
	categoryRepo := repository.NewFeeCategoryRepository(db)
	structureRepo := repository.NewFeeStructureRepository(db)
	yearRepo := repository.NewAcademicYearRepository(db)

	// Initialize services
	receipts := receipt.NewGenerator()
	authService := service.NewAuthService(userRepo, jwtManager)
	studentService := service.NewStudentService(studentRepo, structureRepo)
	ledgerService := service.NewLedgerService(studentRepo, paymentRepo, discountRepo, structureRepo, receipts, cfg.Ledger)
	promotionService := service.NewPromotionService(studentRepo)
	reportService := service.NewReportService(studentRepo, paymentRepo)
	classService := service.NewClassService(classRepo)
	feeService := service.NewFeeService(categoryRepo, structureRepo)
	discountService := service.NewDiscountService(discountRepo)
	yearService := service.NewAcademicYearService(yearRepo, studentRepo, classRepo)
	dashboardService := service.NewDashboardService(studentRepo, classRepo, paymentRepo, yearRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Student:      handler.NewStudentHandler(studentService, ledgerService, promotionService),
		Payment:      handler.NewPaymentHandler(ledgerService),
		Class:        handler.NewClassHandler(classService),
		Fee:          handler.NewFeeHandler(feeService),
		Discount:     handler.NewDiscountHandler(discountService),
		AcademicYear: handler.NewAcademicYearHandler(yearService),
		Report:       handler.NewReportHandler(reportService),
		Promotion:    handler.NewPromotionHandler(promotionService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
