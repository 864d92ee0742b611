package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feetrack/feetrack-api/internal/domain/enum"
)

// Student represents an admitted student and their fee ledger.
//
// Money fields hold whole rupees as int64; the school records no paise, so all
// ledger arithmetic is exact integer arithmetic. PendingAmount is derived and
// must equal TotalFee - PaidAmount after every mutation. The ledger does not
// clamp PaidAmount to [0, TotalFee]; over-payment is representable and surfaces
// as the "advance" standing.
type Student struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	FirstName       string     `gorm:"size:100;not null" json:"first_name"`
	LastName        string     `gorm:"size:100" json:"last_name"`
	AdmissionNumber string     `gorm:"size:50;unique;not null" json:"admission_number"`
	ClassName       string     `gorm:"size:50;not null;index" json:"class_name"`
	Section         string     `gorm:"size:10;index" json:"section"`
	AcademicYear    string     `gorm:"size:10;not null;index" json:"academic_year"`
	FeeStructureID  *uuid.UUID `gorm:"type:uuid;index" json:"fee_structure_id,omitempty"`

	TotalFee      int64 `gorm:"default:0" json:"total_fee"`
	PaidAmount    int64 `gorm:"default:0" json:"paid_amount"`
	PendingAmount int64 `gorm:"default:0" json:"pending_amount"`

	// Carry-forward audit trail, set once per year-end close
	CarryForwardAmount int64      `gorm:"default:0" json:"carry_forward_amount"`
	CarryForwardDate   *time.Time `json:"carry_forward_date,omitempty"`
	CarryForwardYear   string     `gorm:"size:10" json:"carry_forward_year,omitempty"`

	PromotionDate *time.Time `json:"promotion_date,omitempty"`

	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	FeeStructure *FeeStructure `gorm:"foreignKey:FeeStructureID" json:"fee_structure,omitempty"`
	Discounts    []Discount    `gorm:"foreignKey:StudentID" json:"discounts,omitempty"`
}

// BeforeCreate generates a UUID before creating a new student
func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Student model
func (Student) TableName() string {
	return "students"
}

// FullName returns the student's display name
func (s *Student) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

// FeeStatus derives the student's payment standing from the ledger fields.
func (s *Student) FeeStatus() enum.FeeStatus {
	return enum.FeeStatusOf(s.TotalFee, s.PaidAmount)
}
