package payment

import (
	"context"

	"bikerental/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Payment, error)
	GetAll(ctx context.Context) ([]domain.Payment, error)
	MarkRefunded(ctx context.Context, id int64, amount float64, reason string) error
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// BookingCoordinator is the lifecycle side: this module records the
// money, the coordinator moves the booking's payment status.
type BookingCoordinator interface {
	MarkPaid(ctx context.Context, bookingID int64) (*domain.Booking, error)
	MarkRefunded(ctx context.Context, bookingID int64) (*domain.Booking, error)
}
