package bike

import (
	"context"
	"testing"

	"bikerental/internal/domain"
	"bikerental/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockBikeRepository struct {
	mock.Mock
}

func (m *MockBikeRepository) Create(ctx context.Context, b *domain.Bike) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 7 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBikeRepository) GetByID(ctx context.Context, id int64) (*domain.Bike, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bike), args.Error(1)
}

func (m *MockBikeRepository) GetAll(ctx context.Context, f repository.BikeFilters) ([]domain.Bike, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Bike), args.Get(1).(int64), args.Error(2)
}

func (m *MockBikeRepository) Update(ctx context.Context, b *domain.Bike) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBikeRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_CreateBike(t *testing.T) {
	repo := new(MockBikeRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo)

	b, err := service.CreateBike(context.Background(), CreateBikeRequest{
		Name:               "KTM Duke 390",
		Brand:              "KTM",
		Model:              "Duke 390",
		RegistrationNumber: "DL-01-AB-1234",
		Year:               2023,
		PricePerDay:        2500,
		PricePerHour:       250,
		SecurityDeposit:    5000,
		Location: LocationPayload{
			Coordinates: []float64{77.2090, 28.6139},
			Address:     "Connaught Place, New Delhi",
		},
	})

	assert.NoError(t, err)
	assert.True(t, b.Available)
	assert.Equal(t, domain.BrandKTM, b.Brand)
	assert.Equal(t, 28.6139, b.Location.Lat)
	assert.Equal(t, 77.2090, b.Location.Lng)
}

func TestService_CreateBike_UnknownBrand(t *testing.T) {
	repo := new(MockBikeRepository)
	service := NewService(repo)

	_, err := service.CreateBike(context.Background(), CreateBikeRequest{
		Name:               "Harley Street 750",
		Brand:              "Harley",
		Model:              "Street 750",
		RegistrationNumber: "DL-09-XY-0001",
		Year:               2022,
	})

	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_GetBike_NotFound(t *testing.T) {
	repo := new(MockBikeRepository)
	repo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(repo)

	_, err := service.GetBike(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ListBikes_PassesFilters(t *testing.T) {
	repo := new(MockBikeRepository)

	avail := true
	want := repository.BikeFilters{Brand: "KTM", Available: &avail, MaxPrice: 3000, Limit: 10}
	repo.On("GetAll", mock.Anything, want).Return([]domain.Bike{{ID: 7}}, int64(1), nil)

	service := NewService(repo)

	bikes, total, err := service.ListBikes(context.Background(), ListBikesQuery{
		Brand:     "KTM",
		Available: &avail,
		MaxPrice:  3000,
		Limit:     10,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, bikes, 1)
}

func TestService_UpdateBike_PartialFields(t *testing.T) {
	repo := new(MockBikeRepository)

	existing := &domain.Bike{
		ID:                 7,
		Name:               "KTM Duke 390",
		Brand:              domain.BrandKTM,
		Model:              "Duke 390",
		RegistrationNumber: "DL-01-AB-1234",
		Year:               2023,
		PricePerDay:        2500,
		PricePerHour:       250,
		Available:          true,
	}
	repo.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo)

	newPrice := 2200.0
	b, err := service.UpdateBike(context.Background(), 7, UpdateBikeRequest{
		PricePerDay: &newPrice,
	})

	assert.NoError(t, err)
	assert.Equal(t, 2200.0, b.PricePerDay)
	// untouched fields keep their values
	assert.Equal(t, "KTM Duke 390", b.Name)
	assert.Equal(t, 250.0, b.PricePerHour)
}

func TestService_UpdateBike_NegativePrice(t *testing.T) {
	repo := new(MockBikeRepository)
	repo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Bike{ID: 7}, nil)

	service := NewService(repo)

	bad := -10.0
	_, err := service.UpdateBike(context.Background(), 7, UpdateBikeRequest{PricePerDay: &bad})

	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_DeleteBike(t *testing.T) {
	repo := new(MockBikeRepository)
	repo.On("SoftDelete", mock.Anything, int64(7)).Return(nil)
	repo.On("SoftDelete", mock.Anything, int64(404)).Return(gorm.ErrRecordNotFound)

	service := NewService(repo)

	assert.NoError(t, service.DeleteBike(context.Background(), 7))
	assert.ErrorIs(t, service.DeleteBike(context.Background(), 404), ErrNotFound)
}
