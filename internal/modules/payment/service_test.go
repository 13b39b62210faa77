package payment

import (
	"context"
	"testing"

	"bikerental/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	if p != nil {
		p.ID = 55 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetAll(ctx context.Context) ([]domain.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) MarkRefunded(ctx context.Context, id int64, amount float64, reason string) error {
	args := m.Called(ctx, id, amount, reason)
	return args.Error(0)
}

type MockBookingReader struct {
	mock.Mock
}

func (m *MockBookingReader) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockBookingCoordinator struct {
	mock.Mock
}

func (m *MockBookingCoordinator) MarkPaid(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingCoordinator) MarkRefunded(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func unpaidBooking() *domain.Booking {
	return &domain.Booking{
		ID:            1,
		BikeID:        7,
		UserID:        42,
		TotalAmount:   3200,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
	}
}

func TestService_ConfirmPayment_Success(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingReader)
	coord := new(MockBookingCoordinator)

	bookings.On("GetByID", mock.Anything, int64(1)).Return(unpaidBooking(), nil)
	payments.On("Create", mock.Anything, mock.Anything).Return(nil)
	coord.On("MarkPaid", mock.Anything, int64(1)).Return(&domain.Booking{ID: 1, Status: domain.BookingConfirmed, PaymentStatus: domain.PaymentPaid}, nil)

	service := NewService(payments, bookings, coord)

	p, err := service.ConfirmPayment(context.Background(), ConfirmPaymentRequest{
		BookingID:     1,
		TransactionID: "txn_abc123",
		Method:        "upi",
	}, domain.Actor{UserID: 42, Role: domain.RoleUser})

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentRecordSuccess, p.Status)
	// amount defaults to the booking total when the request omits it
	assert.Equal(t, 3200.0, p.Amount)
	assert.Equal(t, "INR", p.Currency)
	assert.Equal(t, "stripe", p.Gateway)
	coord.AssertCalled(t, "MarkPaid", mock.Anything, int64(1))
}

func TestService_ConfirmPayment_InvalidMethod(t *testing.T) {
	service := NewService(new(MockPaymentRepository), new(MockBookingReader), new(MockBookingCoordinator))

	_, err := service.ConfirmPayment(context.Background(), ConfirmPaymentRequest{
		BookingID:     1,
		TransactionID: "txn_abc123",
		Method:        "cash",
	}, domain.Actor{UserID: 42, Role: domain.RoleUser})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_ConfirmPayment_NotOwner(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingReader)
	coord := new(MockBookingCoordinator)

	bookings.On("GetByID", mock.Anything, int64(1)).Return(unpaidBooking(), nil)

	service := NewService(payments, bookings, coord)

	_, err := service.ConfirmPayment(context.Background(), ConfirmPaymentRequest{
		BookingID:     1,
		TransactionID: "txn_abc123",
		Method:        "card",
	}, domain.Actor{UserID: 99, Role: domain.RoleUser})

	assert.ErrorIs(t, err, ErrForbidden)
	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_ConfirmPayment_AlreadyPaid(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingReader)
	coord := new(MockBookingCoordinator)

	paid := unpaidBooking()
	paid.PaymentStatus = domain.PaymentPaid
	bookings.On("GetByID", mock.Anything, int64(1)).Return(paid, nil)

	service := NewService(payments, bookings, coord)

	_, err := service.ConfirmPayment(context.Background(), ConfirmPaymentRequest{
		BookingID:     1,
		TransactionID: "txn_abc123",
		Method:        "card",
	}, domain.Actor{UserID: 42, Role: domain.RoleUser})

	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestService_ConfirmPayment_DuplicateTransaction(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingReader)
	coord := new(MockBookingCoordinator)

	bookings.On("GetByID", mock.Anything, int64(1)).Return(unpaidBooking(), nil)
	payments.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	service := NewService(payments, bookings, coord)

	_, err := service.ConfirmPayment(context.Background(), ConfirmPaymentRequest{
		BookingID:     1,
		TransactionID: "txn_abc123",
		Method:        "card",
	}, domain.Actor{UserID: 42, Role: domain.RoleUser})

	assert.ErrorIs(t, err, ErrDuplicateTransaction)
	coord.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
}

func TestService_Refund_FullAmount(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingReader)
	coord := new(MockBookingCoordinator)

	paid := unpaidBooking()
	paid.PaymentStatus = domain.PaymentPaid
	bookings.On("GetByID", mock.Anything, int64(1)).Return(paid, nil)
	payments.On("GetByBookingID", mock.Anything, int64(1)).Return(&domain.Payment{ID: 55, BookingID: 1, Amount: 3200}, nil)
	payments.On("MarkRefunded", mock.Anything, int64(55), 3200.0, "bike defect").Return(nil)
	coord.On("MarkRefunded", mock.Anything, int64(1)).Return(&domain.Booking{ID: 1, PaymentStatus: domain.PaymentRefunded}, nil)

	service := NewService(payments, bookings, coord)

	res, err := service.Refund(context.Background(), RefundRequest{
		BookingID: 1,
		Reason:    "bike defect",
	}, domain.Actor{UserID: 42, Role: domain.RoleUser})

	assert.NoError(t, err)
	assert.Equal(t, 3200.0, res.Amount)
	assert.Equal(t, string(domain.PaymentRecordRefunded), res.Status)
}

func TestService_Refund_RequiresPaidBooking(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingReader)
	coord := new(MockBookingCoordinator)

	bookings.On("GetByID", mock.Anything, int64(1)).Return(unpaidBooking(), nil)

	service := NewService(payments, bookings, coord)

	_, err := service.Refund(context.Background(), RefundRequest{BookingID: 1}, domain.Actor{UserID: 42, Role: domain.RoleUser})

	assert.ErrorIs(t, err, ErrNoPaymentToRefund)
	payments.AssertNotCalled(t, "MarkRefunded", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Refund_NoPaymentRow(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingReader)
	coord := new(MockBookingCoordinator)

	paid := unpaidBooking()
	paid.PaymentStatus = domain.PaymentPaid
	bookings.On("GetByID", mock.Anything, int64(1)).Return(paid, nil)
	payments.On("GetByBookingID", mock.Anything, int64(1)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(payments, bookings, coord)

	_, err := service.Refund(context.Background(), RefundRequest{BookingID: 1}, domain.Actor{UserID: 42, Role: domain.RoleUser})

	assert.ErrorIs(t, err, ErrNoPaymentToRefund)
}

func TestService_ListPayments_ScopedByActor(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingReader)
	coord := new(MockBookingCoordinator)

	mine := []domain.Payment{{ID: 55, UserID: 42}}
	everyone := []domain.Payment{{ID: 55, UserID: 42}, {ID: 56, UserID: 43}}

	payments.On("GetByUserID", mock.Anything, int64(42)).Return(mine, nil)
	payments.On("GetAll", mock.Anything).Return(everyone, nil)

	service := NewService(payments, bookings, coord)

	got, err := service.ListPayments(context.Background(), domain.Actor{UserID: 42, Role: domain.RoleUser})
	assert.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = service.ListPayments(context.Background(), domain.Actor{UserID: 1, Role: domain.RoleAdmin})
	assert.NoError(t, err)
	assert.Len(t, got, 2)
}
