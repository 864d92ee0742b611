package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeeCategory represents a named fee type such as tuition or transport
type FeeCategory struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name           string         `gorm:"size:100;unique;not null" json:"name"`
	Description    string         `gorm:"size:255" json:"description"`
	DefaultAmount  int64          `gorm:"default:0" json:"default_amount"`
	IsOptional     bool           `gorm:"default:false" json:"is_optional"`
	Classification string         `gorm:"size:50" json:"classification"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new fee category
func (c *FeeCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FeeCategory model
func (FeeCategory) TableName() string {
	return "fee_categories"
}
