package booking

import "time"

type PickupLocation struct {
	// Coordinates follow GeoJSON order: [lng, lat].
	Coordinates []float64 `json:"coordinates" binding:"omitempty,len=2"`
	Address     string    `json:"address"`
}

type CreateBookingRequest struct {
	BikeID         int64          `json:"bike_id" binding:"required"`
	StartDate      time.Time      `json:"start_date" binding:"required"`
	EndDate        time.Time      `json:"end_date" binding:"required"`
	RentalType     string         `json:"rental_type" binding:"required,oneof=hourly daily"`
	Duration       int            `json:"duration" binding:"required,gt=0"`
	PickupLocation PickupLocation `json:"pickup_location"`

	// UserID comes from the authenticated actor, never from the body.
	UserID int64 `json:"-"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type UpdateLocationRequest struct {
	Coordinates []float64 `json:"coordinates" binding:"required,len=2"`
	Address     string    `json:"address"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
