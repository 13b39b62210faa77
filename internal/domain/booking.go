package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// HoldsBike reports whether a booking in this status keeps its bike
// claimed. A bike has at most one booking in a holding status.
func (s BookingStatus) HoldsBike() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingActive:
		return true
	}
	return false
}

// Terminal statuses admit no further transition.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

type RentalType string

const (
	RentalHourly RentalType = "hourly"
	RentalDaily  RentalType = "daily"
)

type Booking struct {
	ID     int64 `json:"id"`
	BikeID int64 `json:"bike_id" gorm:"index"`
	UserID int64 `json:"user_id" gorm:"index"`

	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	RentalType RentalType `json:"rental_type"`
	Duration   int        `json:"duration"`

	RentalAmount    float64 `json:"rental_amount"`
	SecurityDeposit float64 `json:"security_deposit"`
	TotalAmount     float64 `json:"total_amount"`

	PickupLocation  GeoPoint `json:"pickup_location" gorm:"embedded;embeddedPrefix:pickup_"`
	CurrentLocation GeoPoint `json:"current_location" gorm:"embedded;embeddedPrefix:current_"`

	Status        BookingStatus `json:"status" gorm:"index"`
	PaymentStatus PaymentStatus `json:"payment_status"`

	CancellationReason string     `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Bike *BikeSummary `json:"bike,omitempty" gorm:"-"`
	User *UserSummary `json:"user,omitempty" gorm:"-"`
}
