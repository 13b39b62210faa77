package payment

import "errors"

var (
	ErrValidation           = errors.New("validation error")
	ErrNotFound             = errors.New("booking not found")
	ErrForbidden            = errors.New("forbidden")
	ErrAlreadyPaid          = errors.New("booking already paid")
	ErrDuplicateTransaction = errors.New("duplicate transaction id")
	ErrNoPaymentToRefund    = errors.New("no payment to refund")
)
