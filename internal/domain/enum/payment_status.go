package enum

// PaymentStatus represents the lifecycle state of a payment receipt
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusCompleted, PaymentStatusPending, PaymentStatusCancelled:
		return true
	}
	return false
}

func (s PaymentStatus) String() string {
	return string(s)
}
