package report

import (
	"context"
	"testing"
	"time"

	"bikerental/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingSource struct {
	mock.Mock
}

func (m *MockBookingSource) CreatedBetween(ctx context.Context, start, end time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingSource) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.BookingStatus]int64), args.Error(1)
}

type MockPaymentSource struct {
	mock.Mock
}

func (m *MockPaymentSource) SuccessfulBetween(ctx context.Context, start, end time.Time) ([]domain.Payment, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentSource) RefundedBetween(ctx context.Context, start, end time.Time) ([]domain.Payment, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentSource) TotalRevenue(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

type MockBikeSource struct {
	mock.Mock
}

func (m *MockBikeSource) CountAll(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockBikeSource) TopByRides(ctx context.Context, limit int) ([]domain.Bike, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bike), args.Error(1)
}

type MockUserSource struct {
	mock.Mock
}

func (m *MockUserSource) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(bookings *MockBookingSource, payments *MockPaymentSource, bikes *MockBikeSource, users *MockUserSource) *Service {
	return NewService(bookings, payments, bikes, users)
}

func TestService_Daily(t *testing.T) {
	bookings := new(MockBookingSource)
	payments := new(MockPaymentSource)
	bikes := new(MockBikeSource)
	users := new(MockUserSource)

	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	next := day.Add(24 * time.Hour)

	bookings.On("CreatedBetween", mock.Anything, day, next).Return([]domain.Booking{
		{ID: 1, Status: domain.BookingPending},
		{ID: 2, Status: domain.BookingConfirmed},
		{ID: 3, Status: domain.BookingConfirmed},
		{ID: 4, Status: domain.BookingCancelled},
	}, nil)
	payments.On("SuccessfulBetween", mock.Anything, day, next).Return([]domain.Payment{
		{ID: 1, Amount: 3200},
		{ID: 2, Amount: 540},
	}, nil)
	payments.On("RefundedBetween", mock.Anything, day, next).Return([]domain.Payment{
		{ID: 3, RefundAmount: 540},
	}, nil)

	service := newTestService(bookings, payments, bikes, users)

	// any time within the day lands in the same window
	r, err := service.Daily(context.Background(), day.Add(15*time.Hour))

	assert.NoError(t, err)
	assert.Equal(t, day, r.Date)
	assert.Equal(t, int64(4), r.Bookings.Total)
	assert.Equal(t, int64(2), r.Bookings.Confirmed)
	assert.Equal(t, int64(1), r.Bookings.Cancelled)
	assert.Equal(t, 3740.0, r.Revenue.Total)
	assert.Equal(t, 540.0, r.Revenue.Refunds)
	assert.Equal(t, 3200.0, r.Revenue.Net)
	assert.Equal(t, 2, r.Payments)
	assert.Len(t, r.Details, 4)
}

func TestService_Daily_EmptyDay(t *testing.T) {
	bookings := new(MockBookingSource)
	payments := new(MockPaymentSource)
	bikes := new(MockBikeSource)
	users := new(MockUserSource)

	bookings.On("CreatedBetween", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Booking{}, nil)
	payments.On("SuccessfulBetween", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Payment{}, nil)
	payments.On("RefundedBetween", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Payment{}, nil)

	service := newTestService(bookings, payments, bikes, users)

	r, err := service.Daily(context.Background(), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	assert.NoError(t, err)
	assert.Equal(t, int64(0), r.Bookings.Total)
	assert.Equal(t, 0.0, r.Revenue.Net)
	assert.NotNil(t, r.Details)
	assert.Len(t, r.Details, 0)
}

func TestService_Overview(t *testing.T) {
	bookings := new(MockBookingSource)
	payments := new(MockPaymentSource)
	bikes := new(MockBikeSource)
	users := new(MockUserSource)

	bikes.On("CountAll", mock.Anything).Return(int64(10), int64(7), nil)
	users.On("CountByRole", mock.Anything, domain.RoleUser).Return(int64(25), nil)
	bookings.On("CountByStatus", mock.Anything).Return(map[domain.BookingStatus]int64{
		domain.BookingPending:   2,
		domain.BookingActive:    3,
		domain.BookingCompleted: 40,
	}, nil)
	payments.On("TotalRevenue", mock.Anything).Return(128500.0, nil)
	bikes.On("TopByRides", mock.Anything, 5).Return([]domain.Bike{
		{ID: 1, TotalRides: 45},
		{ID: 2, TotalRides: 38},
	}, nil)

	service := newTestService(bookings, payments, bikes, users)

	o, err := service.Overview(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(10), o.Bikes.Total)
	assert.Equal(t, int64(3), o.Bikes.InUse)
	assert.Equal(t, int64(25), o.Users)
	assert.Equal(t, 128500.0, o.Revenue)
	assert.Len(t, o.PopularBikes, 2)

	// deterministic status ordering
	assert.Equal(t, domain.BookingActive, o.BookingsByStatus[0].Status)
	assert.Equal(t, domain.BookingCompleted, o.BookingsByStatus[1].Status)
	assert.Equal(t, domain.BookingPending, o.BookingsByStatus[2].Status)
}

func TestService_RevenueByDay_GroupsAndSorts(t *testing.T) {
	bookings := new(MockBookingSource)
	payments := new(MockPaymentSource)
	bikes := new(MockBikeSource)
	users := new(MockUserSource)

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(72 * time.Hour)

	payments.On("SuccessfulBetween", mock.Anything, start, end).Return([]domain.Payment{
		{ID: 1, Amount: 1000, CreatedAt: time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)},
		{ID: 2, Amount: 500, CreatedAt: time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)},
		{ID: 3, Amount: 250, CreatedAt: time.Date(2026, 9, 2, 21, 30, 0, 0, time.UTC)},
	}, nil)

	service := newTestService(bookings, payments, bikes, users)

	days, err := service.RevenueByDay(context.Background(), start, end)

	assert.NoError(t, err)
	assert.Len(t, days, 2)
	assert.Equal(t, "2026-09-01", days[0].Day)
	assert.Equal(t, 500.0, days[0].TotalRevenue)
	assert.Equal(t, "2026-09-02", days[1].Day)
	assert.Equal(t, 1250.0, days[1].TotalRevenue)
	assert.Equal(t, 2, days[1].Count)
}

func TestService_RevenueByDay_EmptyRange(t *testing.T) {
	bookings := new(MockBookingSource)
	payments := new(MockPaymentSource)
	bikes := new(MockBikeSource)
	users := new(MockUserSource)

	payments.On("SuccessfulBetween", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Payment{}, nil)

	service := newTestService(bookings, payments, bikes, users)

	days, err := service.RevenueByDay(context.Background(), time.Now().Add(-24*time.Hour), time.Now())

	assert.NoError(t, err)
	assert.Len(t, days, 0)
}
