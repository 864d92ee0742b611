package enum

// PaymentFrequency represents how often a fee structure is collected
type PaymentFrequency string

const (
	PaymentFrequencyMonthly   PaymentFrequency = "monthly"
	PaymentFrequencyQuarterly PaymentFrequency = "quarterly"
	PaymentFrequencyAnnual    PaymentFrequency = "annual"
)

func (f PaymentFrequency) IsValid() bool {
	switch f {
	case PaymentFrequencyMonthly, PaymentFrequencyQuarterly, PaymentFrequencyAnnual:
		return true
	}
	return false
}

// LateFeeType represents how a late fee is computed
type LateFeeType string

const (
	LateFeeTypeFixed      LateFeeType = "fixed"
	LateFeeTypePercentage LateFeeType = "percentage"
)

func (t LateFeeType) IsValid() bool {
	return t == LateFeeTypeFixed || t == LateFeeTypePercentage
}

// FeeStatus is a student's derived payment standing. It is computed from the
// ledger fields, never stored: UNPAID when nothing is paid, PARTIAL while
// 0 < paid < total, PAID at paid == total, and ADVANCE when paid exceeds total
// (through over-payment or a carry-forward surplus).
type FeeStatus string

const (
	FeeStatusUnpaid  FeeStatus = "unpaid"
	FeeStatusPartial FeeStatus = "partial"
	FeeStatusPaid    FeeStatus = "paid"
	FeeStatusAdvance FeeStatus = "advance"
)

// FeeStatusOf derives the standing from ledger amounts.
func FeeStatusOf(totalFee, paidAmount int64) FeeStatus {
	switch {
	case paidAmount > totalFee:
		return FeeStatusAdvance
	case paidAmount == totalFee && totalFee > 0:
		return FeeStatusPaid
	case paidAmount > 0:
		return FeeStatusPartial
	default:
		return FeeStatusUnpaid
	}
}
