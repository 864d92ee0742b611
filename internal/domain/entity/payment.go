package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feetrack/feetrack-api/internal/domain/enum"
)

// Payment is an immutable fee receipt. Once created it is never edited; a
// mistaken payment is cancelled (status), not deleted. TotalAmount is the
// amount the collector declared and is not reconciled against the line items
// unless the strict ledger mode is enabled.
type Payment struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptNumber string             `gorm:"size:50;unique;not null" json:"receipt_number"`
	StudentID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"student_id"`
	TotalAmount   int64              `gorm:"not null" json:"total_amount"`
	Method        enum.PaymentMethod `gorm:"size:20;not null" json:"method"`
	Status        enum.PaymentStatus `gorm:"size:20;default:'completed';index" json:"status"`
	PaymentDate   time.Time          `gorm:"not null;index" json:"payment_date"`
	AcademicYear  string             `gorm:"size:10;not null;index" json:"academic_year"`
	CollectedBy   string             `gorm:"size:100" json:"collected_by"`
	Remarks       string             `gorm:"size:255" json:"remarks"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	// Relationships
	Student   Student           `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	LineItems []PaymentLineItem `gorm:"foreignKey:PaymentID" json:"line_items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// LineItemTotal sums the line item amounts. Kept separate from TotalAmount;
// the two are not required to agree (documented non-invariant).
func (p *Payment) LineItemTotal() int64 {
	var total int64
	for _, item := range p.LineItems {
		total += item.Amount
	}
	return total
}

// PaymentLineItem is one (fee type, amount) line on a receipt
type PaymentLineItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PaymentID uuid.UUID `gorm:"type:uuid;not null;index" json:"payment_id"`
	FeeType   string    `gorm:"size:100;not null" json:"fee_type"`
	Amount    int64     `gorm:"not null" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new payment line item
func (i *PaymentLineItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentLineItem model
func (PaymentLineItem) TableName() string {
	return "payment_line_items"
}
