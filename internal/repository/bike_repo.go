package repository

import (
	"context"
	"time"

	"bikerental/internal/domain"

	"gorm.io/gorm"
)

type BikeFilters struct {
	Brand     string
	Available *bool
	MinPrice  float64
	MaxPrice  float64
	Limit     int
	Offset    int
}

type BikeRepository struct {
	db *gorm.DB
}

func NewBikeRepository(db *gorm.DB) *BikeRepository {
	return &BikeRepository{db: db}
}

type bikeModel struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	Name               string     `gorm:"column:name"`
	Brand              string     `gorm:"column:brand"`
	Model              string     `gorm:"column:model"`
	Image              string     `gorm:"column:image"`
	RegistrationNumber string     `gorm:"column:registration_number;uniqueIndex"`
	Year               int        `gorm:"column:year"`
	PricePerDay        float64    `gorm:"column:price_per_day"`
	PricePerHour       float64    `gorm:"column:price_per_hour"`
	SecurityDeposit    float64    `gorm:"column:security_deposit"`
	Available          bool       `gorm:"column:available"`
	Rating             float64    `gorm:"column:rating"`
	TotalRides         int64      `gorm:"column:total_rides"`
	LocationLat        float64    `gorm:"column:location_lat"`
	LocationLng        float64    `gorm:"column:location_lng"`
	LocationAddress    string     `gorm:"column:location_address"`
	LocationUpdatedAt  *time.Time `gorm:"column:location_updated_at"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
	DeletedAt          *time.Time `gorm:"column:deleted_at"`
}

func (bikeModel) TableName() string { return "bikes" }

func toDomainBike(m bikeModel) *domain.Bike {
	loc := domain.GeoPoint{
		Lat:     m.LocationLat,
		Lng:     m.LocationLng,
		Address: m.LocationAddress,
	}
	if m.LocationUpdatedAt != nil {
		loc.UpdatedAt = *m.LocationUpdatedAt
	}

	return &domain.Bike{
		ID:                 m.ID,
		Name:               m.Name,
		Brand:              domain.BikeBrand(m.Brand),
		Model:              m.Model,
		Image:              m.Image,
		RegistrationNumber: m.RegistrationNumber,
		Year:               m.Year,
		PricePerDay:        m.PricePerDay,
		PricePerHour:       m.PricePerHour,
		SecurityDeposit:    m.SecurityDeposit,
		Available:          m.Available,
		Rating:             m.Rating,
		TotalRides:         m.TotalRides,
		Location:           loc,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		DeletedAt:          m.DeletedAt,
	}
}

func toBikeModel(b *domain.Bike) bikeModel {
	var locUpdated *time.Time
	if !b.Location.UpdatedAt.IsZero() {
		v := b.Location.UpdatedAt
		locUpdated = &v
	}

	return bikeModel{
		ID:                 b.ID,
		Name:               b.Name,
		Brand:              string(b.Brand),
		Model:              b.Model,
		Image:              b.Image,
		RegistrationNumber: b.RegistrationNumber,
		Year:               b.Year,
		PricePerDay:        b.PricePerDay,
		PricePerHour:       b.PricePerHour,
		SecurityDeposit:    b.SecurityDeposit,
		Available:          b.Available,
		Rating:             b.Rating,
		TotalRides:         b.TotalRides,
		LocationLat:        b.Location.Lat,
		LocationLng:        b.Location.Lng,
		LocationAddress:    b.Location.Address,
		LocationUpdatedAt:  locUpdated,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
		DeletedAt:          b.DeletedAt,
	}
}

func (r *BikeRepository) Create(ctx context.Context, b *domain.Bike) error {
	m := toBikeModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBike(m)
	return nil
}

func (r *BikeRepository) GetByID(ctx context.Context, id int64) (*domain.Bike, error) {
	var m bikeModel
	tx := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBike(m), nil
}

func (r *BikeRepository) GetAll(ctx context.Context, f BikeFilters) ([]domain.Bike, int64, error) {
	var models []bikeModel
	var total int64

	q := r.db.WithContext(ctx).
		Model(&bikeModel{}).
		Where("deleted_at IS NULL")

	if f.Brand != "" {
		q = q.Where("brand = ?", f.Brand)
	}
	if f.Available != nil {
		q = q.Where("available = ?", *f.Available)
	}
	if f.MinPrice > 0 {
		q = q.Where("price_per_day >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price_per_day <= ?", f.MaxPrice)
	}

	q.Count(&total)

	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	if err := q.Order("id").Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Bike, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBike(m))
	}
	return out, total, nil
}

func (r *BikeRepository) Update(ctx context.Context, b *domain.Bike) error {
	m := toBikeModel(b)
	tx := r.db.WithContext(ctx).
		Model(&bikeModel{}).
		Where("id = ? AND deleted_at IS NULL", b.ID).
		Updates(map[string]interface{}{
			"name":                m.Name,
			"brand":               m.Brand,
			"model":               m.Model,
			"image":               m.Image,
			"registration_number": m.RegistrationNumber,
			"year":                m.Year,
			"price_per_day":       m.PricePerDay,
			"price_per_hour":      m.PricePerHour,
			"security_deposit":    m.SecurityDeposit,
			"location_lat":        m.LocationLat,
			"location_lng":        m.LocationLng,
			"location_address":    m.LocationAddress,
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

func (r *BikeRepository) SoftDelete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).
		Model(&bikeModel{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", time.Now())
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClaimIfAvailable is the admission gate for booking creation: it flips
// available from true to false as a single conditional update and
// reports whether this caller won the claim. Two concurrent claims on
// the same bike resolve to exactly one true.
func (r *BikeRepository) ClaimIfAvailable(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&bikeModel{}).
		Where("id = ? AND available = ? AND deleted_at IS NULL", id, true).
		Updates(map[string]interface{}{
			"available":  false,
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// SetAvailable is an unconditional flip, used to release a bike when
// its booking leaves a holding status. Safe because a bike has at most
// one open booking at a time.
func (r *BikeRepository) SetAvailable(ctx context.Context, id int64, available bool) error {
	tx := r.db.WithContext(ctx).
		Model(&bikeModel{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]interface{}{
			"available":  available,
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

// TopByRides feeds the admin overview report.
func (r *BikeRepository) TopByRides(ctx context.Context, limit int) ([]domain.Bike, error) {
	var models []bikeModel
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("total_rides DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Bike, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBike(m))
	}
	return out, nil
}

func (r *BikeRepository) CountAll(ctx context.Context) (total, available int64, err error) {
	base := r.db.WithContext(ctx).Model(&bikeModel{}).Where("deleted_at IS NULL")
	if err = base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = base.Session(&gorm.Session{}).Where("available = ?", true).Count(&available).Error; err != nil {
		return 0, 0, err
	}
	return total, available, nil
}
