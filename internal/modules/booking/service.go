package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"bikerental/internal/domain"
	"bikerental/internal/modules/tracking"

	"gorm.io/gorm"
)

// Service coordinates the booking lifecycle: it validates requests
// against inventory, drives the status state machine, and owns every
// availability transition. No other component writes bike.available.
type Service struct {
	bookings  BookingRepository
	bikes     BikeInventory
	users     UserReader
	publisher LocationPublisher
}

func NewService(bookings BookingRepository, bikes BikeInventory, users UserReader, publisher LocationPublisher) *Service {
	return &Service{
		bookings:  bookings,
		bikes:     bikes,
		users:     users,
		publisher: publisher,
	}
}

// canTransition encodes the booking state machine:
// pending -> confirmed -> active -> completed, with cancelled reachable
// from pending or confirmed. Terminal states admit nothing.
func canTransition(from, to domain.BookingStatus) bool {
	switch from {
	case domain.BookingPending:
		return to == domain.BookingConfirmed || to == domain.BookingCancelled
	case domain.BookingConfirmed:
		return to == domain.BookingActive || to == domain.BookingCancelled
	case domain.BookingActive:
		return to == domain.BookingCompleted
	}
	return false
}

func validStatus(s domain.BookingStatus) bool {
	switch s {
	case domain.BookingPending, domain.BookingConfirmed, domain.BookingActive,
		domain.BookingCompleted, domain.BookingCancelled:
		return true
	}
	return false
}

func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if req.StartDate.IsZero() || req.EndDate.IsZero() || !req.EndDate.After(req.StartDate) {
		return nil, ErrValidation
	}
	if req.Duration <= 0 {
		return nil, ErrValidation
	}

	bike, err := s.bikes.GetByID(ctx, req.BikeID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if !bike.Available {
		return nil, ErrNotAvailable
	}

	// Hourly picks the hourly rate; everything else is daily. Duration
	// is trusted as a whole-unit count, no proration.
	price := bike.PricePerDay
	if domain.RentalType(req.RentalType) == domain.RentalHourly {
		price = bike.PricePerHour
	}
	rentalAmount := price * float64(req.Duration)
	totalAmount := rentalAmount + bike.SecurityDeposit

	// Admission gate: the conditional flip is the only serialization
	// point. Of two concurrent requests for the same bike exactly one
	// claim succeeds; the loser sees the same Conflict as a bike that
	// was already booked.
	claimed, err := s.bikes.ClaimIfAvailable(ctx, req.BikeID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrNotAvailable
	}

	b := &domain.Booking{
		BikeID:          req.BikeID,
		UserID:          req.UserID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		RentalType:      domain.RentalType(req.RentalType),
		Duration:        req.Duration,
		RentalAmount:    rentalAmount,
		SecurityDeposit: bike.SecurityDeposit,
		TotalAmount:     totalAmount,
		PickupLocation:  pickupToGeoPoint(req.PickupLocation),
		CurrentLocation: bike.Location,
		Status:          domain.BookingPending,
		PaymentStatus:   domain.PaymentPending,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		// The claim went through but the booking row did not. Release
		// best-effort so the bike is not stranded unavailable.
		if relErr := s.bikes.SetAvailable(ctx, req.BikeID, true); relErr != nil {
			log.Printf("booking_create_release_failed bike_id=%d err=%v", req.BikeID, relErr)
		}
		return nil, err
	}

	b.Bike = summaryOf(bike)
	s.attachUser(ctx, b)
	return b, nil
}

func (s *Service) GetBooking(ctx context.Context, bookingID int64, actor domain.Actor) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if b.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	s.attachBike(ctx, b)
	s.attachUser(ctx, b)
	return b, nil
}

// ListBookings returns the actor's bookings; admins see everyone's.
func (s *Service) ListBookings(ctx context.Context, actor domain.Actor) ([]domain.Booking, error) {
	var (
		out []domain.Booking
		err error
	)
	if actor.IsAdmin() {
		out, err = s.bookings.GetAll(ctx)
	} else {
		out, err = s.bookings.GetByUserID(ctx, actor.UserID)
	}
	if err != nil {
		return nil, err
	}

	for i := range out {
		s.attachBike(ctx, &out[i])
		s.attachUser(ctx, &out[i])
	}
	return out, nil
}

func (s *Service) CancelBooking(ctx context.Context, bookingID int64, actor domain.Actor, reason string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if b.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if b.Status.Terminal() {
		return nil, ErrInvalidStatusTransition
	}

	// Release the bike before marking the booking cancelled: if the
	// flip fails the cancellation must fail too, otherwise the bike is
	// stuck unavailable with no open booking to release it.
	if err := s.bikes.SetAvailable(ctx, b.BikeID, true); err != nil {
		return nil, err
	}

	if reason == "" {
		reason = "User cancelled"
	}
	if err := s.bookings.CancelWithReason(ctx, bookingID, reason, time.Now()); err != nil {
		return nil, err
	}

	// Refunds are driven by the payment collaborator; the cancellation
	// itself never touches payment infrastructure.
	updated, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.attachBike(ctx, updated)
	s.attachUser(ctx, updated)
	return updated, nil
}

// UpdateLocation overwrites the booking's current position and pushes
// one event to the booking's channel. No ownership check here: this is
// telemetry, and the HTTP layer gates it with the device credential.
func (s *Service) UpdateLocation(ctx context.Context, bookingID int64, req UpdateLocationRequest) (*domain.GeoPoint, error) {
	if len(req.Coordinates) != 2 {
		return nil, ErrValidation
	}

	if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
		return nil, notFoundOr(err)
	}

	loc := domain.GeoPoint{
		Lng:       req.Coordinates[0],
		Lat:       req.Coordinates[1],
		Address:   req.Address,
		UpdatedAt: time.Now(),
	}
	if err := s.bookings.UpdateCurrentLocation(ctx, bookingID, loc); err != nil {
		return nil, err
	}

	s.publisher.Publish(tracking.ChannelForBooking(bookingID), tracking.LocationEvent{
		Type:      tracking.EventLocationUpdate,
		BookingID: bookingID,
		Location:  loc,
	})

	return &loc, nil
}

func (s *Service) SetStatus(ctx context.Context, bookingID int64, newStatus domain.BookingStatus, actor domain.Actor) (*domain.Booking, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if !validStatus(newStatus) {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if !canTransition(b.Status, newStatus) {
		return nil, ErrInvalidStatusTransition
	}

	if newStatus == domain.BookingCompleted {
		// The conditional update inside the transaction is the
		// idempotency barrier: a second completion request loses the
		// race and never reaches the ride-count increment. On failure
		// the whole step rolls back, so the booking stays active and a
		// retry can still release the bike.
		won, err := s.bookings.CompleteAndReleaseBike(ctx, bookingID, b.BikeID)
		if err != nil {
			return nil, err
		}
		if !won {
			return nil, ErrInvalidStatusTransition
		}
	} else {
		if err := s.bookings.UpdateStatus(ctx, bookingID, newStatus); err != nil {
			return nil, err
		}
	}

	updated, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.attachBike(ctx, updated)
	s.attachUser(ctx, updated)
	return updated, nil
}

// MarkPaid ingests the payment collaborator's success event:
// paymentStatus pending -> paid, and a pending booking moves to
// confirmed.
func (s *Service) MarkPaid(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if b.PaymentStatus != domain.PaymentPending {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookings.UpdatePaymentStatus(ctx, bookingID, domain.PaymentPaid); err != nil {
		return nil, err
	}
	if b.Status == domain.BookingPending {
		if err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingConfirmed); err != nil {
			return nil, err
		}
	}

	return s.bookings.GetByID(ctx, bookingID)
}

// MarkRefunded ingests the refund-completed event; only a paid booking
// can become refunded.
func (s *Service) MarkRefunded(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if b.PaymentStatus != domain.PaymentPaid {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookings.UpdatePaymentStatus(ctx, bookingID, domain.PaymentRefunded); err != nil {
		return nil, err
	}
	return s.bookings.GetByID(ctx, bookingID)
}

func (s *Service) attachBike(ctx context.Context, b *domain.Booking) {
	bike, err := s.bikes.GetByID(ctx, b.BikeID)
	if err != nil {
		return
	}
	b.Bike = summaryOf(bike)
}

func (s *Service) attachUser(ctx context.Context, b *domain.Booking) {
	u, err := s.users.GetByID(ctx, b.UserID)
	if err != nil {
		return
	}
	sum := u.Summary()
	b.User = &sum
}

func summaryOf(bike *domain.Bike) *domain.BikeSummary {
	sum := bike.Summary()
	return &sum
}

func pickupToGeoPoint(p PickupLocation) domain.GeoPoint {
	loc := domain.GeoPoint{Address: p.Address}
	if len(p.Coordinates) == 2 {
		loc.Lng = p.Coordinates[0]
		loc.Lat = p.Coordinates[1]
	}
	return loc
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
