package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/feetrack/feetrack-api/internal/config"
	"github.com/feetrack/feetrack-api/internal/domain/entity"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Staff accounts
		&entity.User{},

		// Academic scaffolding
		&entity.AcademicYear{},
		&entity.Class{},
		&entity.Section{},

		// Fee plan entities
		&entity.FeeCategory{},
		&entity.FeeStructure{},
		&entity.FeeStructureItem{},

		// Ledger entities
		&entity.Student{},
		&entity.Discount{},
		&entity.Payment{},
		&entity.PaymentLineItem{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the admin account, the current academic year and the
// standard fee categories when the database is empty
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	var userCount int64
	if err := db.Model(&entity.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		admin := &entity.User{
			Name:  "Administrator",
			Email: "admin@feetrack.local",
			Role:  "admin",
		}
		if err := admin.SetPassword("admin123"); err != nil {
			return err
		}
		if err := db.Create(admin).Error; err != nil {
			return err
		}
		log.Println("Seeded default admin user (admin@feetrack.local)")
	}

	var yearCount int64
	if err := db.Model(&entity.AcademicYear{}).Count(&yearCount).Error; err != nil {
		return err
	}
	if yearCount == 0 {
		now := time.Now()
		startYear := now.Year()
		// Academic year runs April to March
		if now.Month() < time.April {
			startYear--
		}
		year := &entity.AcademicYear{
			Label:     fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100),
			StartDate: time.Date(startYear, time.April, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(startYear+1, time.March, 31, 0, 0, 0, 0, time.UTC),
			IsActive:  true,
		}
		if err := db.Create(year).Error; err != nil {
			return err
		}
		log.Printf("Seeded academic year %s", year.Label)
	}

	var categoryCount int64
	if err := db.Model(&entity.FeeCategory{}).Count(&categoryCount).Error; err != nil {
		return err
	}
	if categoryCount == 0 {
		categories := []entity.FeeCategory{
			{Name: "Tuition Fee", Classification: "academic", DefaultAmount: 12000},
			{Name: "Admission Fee", Classification: "one-time", DefaultAmount: 5000},
			{Name: "Examination Fee", Classification: "academic", DefaultAmount: 1200},
			{Name: "Library Fee", Classification: "facility", DefaultAmount: 800},
			{Name: "Laboratory Fee", Classification: "facility", DefaultAmount: 1500},
			{Name: "Transport Fee", Classification: "facility", DefaultAmount: 6000, IsOptional: true},
		}
		if err := db.Create(&categories).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d fee categories", len(categories))
	}

	return nil
}
