package report

import (
	"context"
	"time"

	"bikerental/internal/domain"
)

// Read-only sources; the projector never mutates anything.

type BookingSource interface {
	CreatedBetween(ctx context.Context, start, end time.Time) ([]domain.Booking, error)
	CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error)
}

type PaymentSource interface {
	SuccessfulBetween(ctx context.Context, start, end time.Time) ([]domain.Payment, error)
	RefundedBetween(ctx context.Context, start, end time.Time) ([]domain.Payment, error)
	TotalRevenue(ctx context.Context) (float64, error)
}

type BikeSource interface {
	CountAll(ctx context.Context) (total, available int64, err error)
	TopByRides(ctx context.Context, limit int) ([]domain.Bike, error)
}

type UserSource interface {
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
}
