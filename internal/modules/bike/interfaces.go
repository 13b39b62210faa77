package bike

import (
	"context"

	"bikerental/internal/domain"
	"bikerental/internal/repository"
)

// BikeRepository covers inventory CRUD. Availability and ride-count
// writes are not here: those belong to the booking coordinator's seam.
type BikeRepository interface {
	Create(ctx context.Context, b *domain.Bike) error
	GetByID(ctx context.Context, id int64) (*domain.Bike, error)
	GetAll(ctx context.Context, f repository.BikeFilters) ([]domain.Bike, int64, error)
	Update(ctx context.Context, b *domain.Bike) error
	SoftDelete(ctx context.Context, id int64) error
}
