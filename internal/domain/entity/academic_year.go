package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AcademicYear is the school's annual operating period. At most one year is
// active at a time; activating one deactivates the rest in the same
// transaction. StudentCount and ClassCount are denormalized display counters.
type AcademicYear struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Label        string         `gorm:"size:10;unique;not null" json:"label"`
	StartDate    time.Time      `gorm:"type:date;not null" json:"start_date"`
	EndDate      time.Time      `gorm:"type:date;not null" json:"end_date"`
	IsActive     bool           `gorm:"default:false;index" json:"is_active"`
	StudentCount int64          `gorm:"default:0" json:"student_count"`
	ClassCount   int64          `gorm:"default:0" json:"class_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new academic year
func (y *AcademicYear) BeforeCreate(tx *gorm.DB) error {
	if y.ID == uuid.Nil {
		y.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AcademicYear model
func (AcademicYear) TableName() string {
	return "academic_years"
}
