package payment

type ConfirmPaymentRequest struct {
	BookingID     int64   `json:"booking_id" binding:"required"`
	TransactionID string  `json:"transaction_id" binding:"required"`
	Method        string  `json:"method" binding:"required"`
	Amount        float64 `json:"amount" binding:"gte=0"`
}

type RefundRequest struct {
	BookingID int64  `json:"booking_id" binding:"required"`
	Reason    string `json:"reason"`
}

type RefundResult struct {
	BookingID int64   `json:"booking_id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
}
