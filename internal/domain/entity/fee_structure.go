package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feetrack/feetrack-api/internal/domain/enum"
)

// FeeStructure represents the per-class fee plan for an academic year.
//
// A student is assigned at most one structure at admission; the student's
// TotalFee is the sum of the item amounts at assignment time and is not
// live-linked, so editing a structure later does not retroactively change
// already-assigned students.
type FeeStructure struct {
	ID           uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	ClassName    string                `gorm:"size:50;not null;index:idx_structure_class_year,unique" json:"class_name"`
	AcademicYear string                `gorm:"size:10;not null;index:idx_structure_class_year,unique" json:"academic_year"`
	Frequency    enum.PaymentFrequency `gorm:"size:20;default:'annual'" json:"frequency"`

	LateFeeType   enum.LateFeeType `gorm:"size:20;default:'fixed'" json:"late_fee_type"`
	LateFeeAmount int64            `gorm:"default:0" json:"late_fee_amount"`

	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []FeeStructureItem `gorm:"foreignKey:FeeStructureID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new fee structure
func (f *FeeStructure) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FeeStructure model
func (FeeStructure) TableName() string {
	return "fee_structures"
}

// TotalAmount sums the item amounts. This is what a newly assigned student owes.
func (f *FeeStructure) TotalAmount() int64 {
	var total int64
	for _, item := range f.Items {
		total += item.Amount
	}
	return total
}

// FeeStructureItem is one (category, amount, due date) line in a fee structure.
// Position preserves the administrator's ordering.
type FeeStructureItem struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	FeeStructureID uuid.UUID  `gorm:"type:uuid;not null;index" json:"fee_structure_id"`
	FeeCategoryID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"fee_category_id"`
	Amount         int64      `gorm:"not null" json:"amount"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	IsOptional     bool       `gorm:"default:false" json:"is_optional"`
	Position       int        `gorm:"default:0" json:"position"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relationships
	FeeCategory FeeCategory `gorm:"foreignKey:FeeCategoryID" json:"fee_category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new fee structure item
func (i *FeeStructureItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FeeStructureItem model
func (FeeStructureItem) TableName() string {
	return "fee_structure_items"
}
