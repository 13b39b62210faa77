package domain

import "time"

type PaymentMethod string

const (
	MethodCard       PaymentMethod = "card"
	MethodUPI        PaymentMethod = "upi"
	MethodNetbanking PaymentMethod = "netbanking"
	MethodWallet     PaymentMethod = "wallet"
)

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCard, MethodUPI, MethodNetbanking, MethodWallet:
		return true
	}
	return false
}

type PaymentRecordStatus string

const (
	PaymentRecordPending  PaymentRecordStatus = "pending"
	PaymentRecordSuccess  PaymentRecordStatus = "success"
	PaymentRecordFailed   PaymentRecordStatus = "failed"
	PaymentRecordRefunded PaymentRecordStatus = "refunded"
)

// Payment is written once by the confirmation flow and mutated to
// refunded only by the refund flow.
type Payment struct {
	ID            int64               `json:"id"`
	BookingID     int64               `json:"booking_id" gorm:"index"`
	UserID        int64               `json:"user_id" gorm:"index"`
	Amount        float64             `json:"amount"`
	Currency      string              `json:"currency"`
	Method        PaymentMethod       `json:"method"`
	Gateway       string              `json:"gateway"`
	TransactionID string              `json:"transaction_id" gorm:"uniqueIndex"`
	Status        PaymentRecordStatus `json:"status"`
	RefundAmount  float64             `json:"refund_amount,omitempty"`
	RefundReason  string              `json:"refund_reason,omitempty" gorm:"type:text"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}
