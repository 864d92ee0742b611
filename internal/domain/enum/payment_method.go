package enum

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodCheque PaymentMethod = "cheque"
	PaymentMethodCard   PaymentMethod = "card"
)

// PaymentMethods lists every valid method, in display order.
var PaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodOnline,
	PaymentMethodCheque,
	PaymentMethodCard,
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodOnline, PaymentMethodCheque, PaymentMethodCard:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}
