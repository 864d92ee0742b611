package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feetrack/feetrack-api/internal/domain/enum"
)

// Discount is a fee concession granted to one student.
//
// Storing a discount does not by itself reduce the student's ledger; whether an
// active discount is netted against the balance is a policy decision behind
// config.LedgerConfig.AutoApplyDiscounts (off by default, matching the legacy
// system which recorded discounts without applying them).
type Discount struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	StudentID uuid.UUID         `gorm:"type:uuid;not null;index" json:"student_id"`
	Type      enum.DiscountType `gorm:"size:20;not null" json:"type"`
	Value     int64             `gorm:"not null" json:"value"`

	ValidFrom *time.Time `json:"valid_from,omitempty"`
	ValidTo   *time.Time `json:"valid_to,omitempty"`

	Reason     string `gorm:"size:255" json:"reason"`
	ApprovedBy string `gorm:"size:100" json:"approved_by"`

	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Student    Student       `gorm:"foreignKey:StudentID" json:"-"`
	Categories []FeeCategory `gorm:"many2many:discount_fee_categories" json:"categories,omitempty"`
}

// BeforeCreate generates a UUID before creating a new discount
func (d *Discount) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Discount model
func (Discount) TableName() string {
	return "discounts"
}

// AmountAgainst computes the concession in rupees for a given fee total.
// Percentage values are whole percents; fixed values are rupees.
func (d *Discount) AmountAgainst(totalFee int64) int64 {
	if d.Type == enum.DiscountTypePercentage {
		return totalFee * d.Value / 100
	}
	return d.Value
}

// ValidAt reports whether the discount's validity window covers t.
func (d *Discount) ValidAt(t time.Time) bool {
	if d.ValidFrom != nil && t.Before(*d.ValidFrom) {
		return false
	}
	if d.ValidTo != nil && t.After(*d.ValidTo) {
		return false
	}
	return true
}
