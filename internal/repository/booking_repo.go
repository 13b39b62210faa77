package repository

import (
	"context"
	"time"

	"bikerental/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID     int64 `gorm:"column:id;primaryKey"`
	BikeID int64 `gorm:"column:bike_id;index"`
	UserID int64 `gorm:"column:user_id;index"`

	StartDate  time.Time `gorm:"column:start_date"`
	EndDate    time.Time `gorm:"column:end_date"`
	RentalType string    `gorm:"column:rental_type"`
	Duration   int       `gorm:"column:duration"`

	RentalAmount    float64 `gorm:"column:rental_amount"`
	SecurityDeposit float64 `gorm:"column:security_deposit"`
	TotalAmount     float64 `gorm:"column:total_amount"`

	PickupLat        float64    `gorm:"column:pickup_lat"`
	PickupLng        float64    `gorm:"column:pickup_lng"`
	PickupAddress    string     `gorm:"column:pickup_address"`
	CurrentLat       float64    `gorm:"column:current_lat"`
	CurrentLng       float64    `gorm:"column:current_lng"`
	CurrentAddress   string     `gorm:"column:current_address"`
	CurrentUpdatedAt *time.Time `gorm:"column:current_updated_at"`

	Status        string `gorm:"column:status;index"`
	PaymentStatus string `gorm:"column:payment_status"`

	CancellationReason *string    `gorm:"column:cancellation_reason"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var reason string
	if m.CancellationReason != nil {
		reason = *m.CancellationReason
	}

	current := domain.GeoPoint{Lat: m.CurrentLat, Lng: m.CurrentLng, Address: m.CurrentAddress}
	if m.CurrentUpdatedAt != nil {
		current.UpdatedAt = *m.CurrentUpdatedAt
	}

	return &domain.Booking{
		ID:                 m.ID,
		BikeID:             m.BikeID,
		UserID:             m.UserID,
		StartDate:          m.StartDate,
		EndDate:            m.EndDate,
		RentalType:         domain.RentalType(m.RentalType),
		Duration:           m.Duration,
		RentalAmount:       m.RentalAmount,
		SecurityDeposit:    m.SecurityDeposit,
		TotalAmount:        m.TotalAmount,
		PickupLocation:     domain.GeoPoint{Lat: m.PickupLat, Lng: m.PickupLng, Address: m.PickupAddress},
		CurrentLocation:    current,
		Status:             domain.BookingStatus(m.Status),
		PaymentStatus:      domain.PaymentStatus(m.PaymentStatus),
		CancellationReason: reason,
		CancelledAt:        m.CancelledAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var reason *string
	if b.CancellationReason != "" {
		v := b.CancellationReason
		reason = &v
	}
	var currentUpdated *time.Time
	if !b.CurrentLocation.UpdatedAt.IsZero() {
		v := b.CurrentLocation.UpdatedAt
		currentUpdated = &v
	}

	return bookingModel{
		ID:                 b.ID,
		BikeID:             b.BikeID,
		UserID:             b.UserID,
		StartDate:          b.StartDate,
		EndDate:            b.EndDate,
		RentalType:         string(b.RentalType),
		Duration:           b.Duration,
		RentalAmount:       b.RentalAmount,
		SecurityDeposit:    b.SecurityDeposit,
		TotalAmount:        b.TotalAmount,
		PickupLat:          b.PickupLocation.Lat,
		PickupLng:          b.PickupLocation.Lng,
		PickupAddress:      b.PickupLocation.Address,
		CurrentLat:         b.CurrentLocation.Lat,
		CurrentLng:         b.CurrentLocation.Lng,
		CurrentAddress:     b.CurrentLocation.Address,
		CurrentUpdatedAt:   currentUpdated,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		CancellationReason: reason,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var models []bookingModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainBookings(models), nil
}

func (r *BookingRepository) GetAll(ctx context.Context) ([]domain.Booking, error) {
	var models []bookingModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainBookings(models), nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CompleteAndReleaseBike transitions active -> completed, releases the
// bike and increments its ride counter as one transaction. The
// conditional booking update decides the winner, so duplicate
// completion requests increment exactly once; a failed release rolls
// the completion back, leaving the booking active for a retry instead
// of stranding the bike unavailable.
func (r *BookingRepository) CompleteAndReleaseBike(ctx context.Context, bookingID, bikeID int64) (bool, error) {
	var won bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&bookingModel{}).
			Where("id = ? AND status = ?", bookingID, string(domain.BookingActive)).
			Updates(map[string]interface{}{
				"status":     string(domain.BookingCompleted),
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			won = false
			return nil
		}

		bike := tx.Model(&bikeModel{}).
			Where("id = ? AND deleted_at IS NULL", bikeID).
			Updates(map[string]interface{}{
				"available":   true,
				"total_rides": gorm.Expr("total_rides + 1"),
				"updated_at":  time.Now(),
			})
		if bike.Error != nil {
			return bike.Error
		}
		if bike.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		won = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return won, nil
}

func (r *BookingRepository) CancelWithReason(ctx context.Context, id int64, reason string, at time.Time) error {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":              string(domain.BookingCancelled),
			"cancellation_reason": reason,
			"cancelled_at":        at,
			"updated_at":          time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingRepository) UpdateCurrentLocation(ctx context.Context, id int64, loc domain.GeoPoint) error {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_lat":        loc.Lat,
			"current_lng":        loc.Lng,
			"current_address":    loc.Address,
			"current_updated_at": loc.UpdatedAt,
			"updated_at":         time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_status": string(status),
			"updated_at":     time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreatedBetween feeds the reporting projections.
func (r *BookingRepository) CreatedBetween(ctx context.Context, start, end time.Time) ([]domain.Booking, error) {
	var models []bookingModel
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainBookings(models), nil
}

func (r *BookingRepository) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Select("status, COUNT(1) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[domain.BookingStatus]int64, len(rows))
	for _, r := range rows {
		out[domain.BookingStatus(r.Status)] = r.Count
	}
	return out, nil
}

func toDomainBookings(models []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out
}
