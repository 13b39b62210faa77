package bike

import (
	"context"
	"errors"

	"bikerental/internal/domain"
	pkgvalidator "bikerental/internal/pkg/validator"
	"bikerental/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	bikes BikeRepository
}

func NewService(bikes BikeRepository) *Service {
	return &Service{bikes: bikes}
}

func (s *Service) CreateBike(ctx context.Context, req CreateBikeRequest) (*domain.Bike, error) {
	brand := domain.BikeBrand(req.Brand)
	if !domain.ValidBrand(brand) {
		return nil, ErrValidation
	}
	if req.PricePerDay < 0 || req.PricePerHour < 0 || req.SecurityDeposit < 0 {
		return nil, ErrValidation
	}

	b := &domain.Bike{
		Name:               req.Name,
		Brand:              brand,
		Model:              req.Model,
		Image:              req.Image,
		RegistrationNumber: req.RegistrationNumber,
		Year:               req.Year,
		PricePerDay:        req.PricePerDay,
		PricePerHour:       req.PricePerHour,
		SecurityDeposit:    req.SecurityDeposit,
		Available:          true,
		Location:           locationToGeoPoint(req.Location),
	}
	if violations := pkgvalidator.Validate(b); violations != nil {
		return nil, ErrValidation
	}

	if err := s.bikes.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) GetBike(ctx context.Context, id int64) (*domain.Bike, error) {
	b, err := s.bikes.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return b, nil
}

func (s *Service) ListBikes(ctx context.Context, q ListBikesQuery) ([]domain.Bike, int64, error) {
	if q.Brand != "" && !domain.ValidBrand(domain.BikeBrand(q.Brand)) {
		return nil, 0, ErrValidation
	}

	return s.bikes.GetAll(ctx, repository.BikeFilters{
		Brand:     q.Brand,
		Available: q.Available,
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
}

// UpdateBike applies admin edits. Available and TotalRides are absent
// on purpose: only the booking coordinator writes those.
func (s *Service) UpdateBike(ctx context.Context, id int64, req UpdateBikeRequest) (*domain.Bike, error) {
	b, err := s.bikes.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if req.Name != "" {
		b.Name = req.Name
	}
	if req.Brand != "" {
		brand := domain.BikeBrand(req.Brand)
		if !domain.ValidBrand(brand) {
			return nil, ErrValidation
		}
		b.Brand = brand
	}
	if req.Model != "" {
		b.Model = req.Model
	}
	if req.Image != "" {
		b.Image = req.Image
	}
	if req.RegistrationNumber != "" {
		b.RegistrationNumber = req.RegistrationNumber
	}
	if req.Year != 0 {
		b.Year = req.Year
	}
	if req.PricePerDay != nil {
		if *req.PricePerDay < 0 {
			return nil, ErrValidation
		}
		b.PricePerDay = *req.PricePerDay
	}
	if req.PricePerHour != nil {
		if *req.PricePerHour < 0 {
			return nil, ErrValidation
		}
		b.PricePerHour = *req.PricePerHour
	}
	if req.SecurityDeposit != nil {
		if *req.SecurityDeposit < 0 {
			return nil, ErrValidation
		}
		b.SecurityDeposit = *req.SecurityDeposit
	}
	if req.Location != nil {
		b.Location = locationToGeoPoint(*req.Location)
	}
	if violations := pkgvalidator.Validate(b); violations != nil {
		return nil, ErrValidation
	}

	if err := s.bikes.Update(ctx, b); err != nil {
		return nil, notFoundOr(err)
	}
	return s.bikes.GetByID(ctx, id)
}

func (s *Service) DeleteBike(ctx context.Context, id int64) error {
	if err := s.bikes.SoftDelete(ctx, id); err != nil {
		return notFoundOr(err)
	}
	return nil
}

func locationToGeoPoint(p LocationPayload) domain.GeoPoint {
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
