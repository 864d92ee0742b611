package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Class represents a grade-level class offered in an academic year
type Class struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name         string         `gorm:"size:50;not null;index:idx_class_name_year,unique" json:"name"`
	GradeLevel   int            `gorm:"not null" json:"grade_level"`
	AcademicYear string         `gorm:"size:10;not null;index:idx_class_name_year,unique" json:"academic_year"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sections []Section `gorm:"foreignKey:ClassID" json:"sections,omitempty"`
}

// BeforeCreate generates a UUID before creating a new class
func (c *Class) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Class model
func (Class) TableName() string {
	return "classes"
}

// Section is a named division of a class with a seat capacity
type Section struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClassID   uuid.UUID `gorm:"type:uuid;not null;index" json:"class_id"`
	Name      string    `gorm:"size:10;not null" json:"name"`
	Capacity  int       `gorm:"default:0" json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new section
func (s *Section) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Section model
func (Section) TableName() string {
	return "sections"
}
