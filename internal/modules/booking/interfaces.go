package booking

import (
	"context"
	"time"

	"bikerental/internal/domain"
	"bikerental/internal/modules/tracking"
)

// BookingRepository defines the persistence seam for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Booking, error)
	GetAll(ctx context.Context) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	// CompleteAndReleaseBike performs active -> completed, releases the
	// bike and bumps its ride counter atomically, reporting whether
	// this call won the transition. Atomicity matters: a completed
	// booking with a still-unavailable bike would have no path back.
	CompleteAndReleaseBike(ctx context.Context, bookingID, bikeID int64) (bool, error)
	CancelWithReason(ctx context.Context, id int64, reason string, at time.Time) error
	UpdateCurrentLocation(ctx context.Context, id int64, loc domain.GeoPoint) error
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
}

// BikeInventory is the seam through which the coordinator touches bike
// state outside the completion transaction. Keeping availability writes
// behind these operations makes the single-open-booking invariant
// auditable in one place.
type BikeInventory interface {
	GetByID(ctx context.Context, id int64) (*domain.Bike, error)
	// ClaimIfAvailable flips available true -> false as a conditional
	// update; false means someone else holds the bike.
	ClaimIfAvailable(ctx context.Context, id int64) (bool, error)
	SetAvailable(ctx context.Context, id int64, available bool) error
}

// UserReader supplies the minimal user projection for responses.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// LocationPublisher receives one event per accepted location update.
type LocationPublisher interface {
	Publish(channel string, ev tracking.LocationEvent)
}
