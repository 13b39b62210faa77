package payment

import (
	"context"
	"errors"

	"bikerental/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	defaultCurrency = "INR"
	defaultGateway  = "stripe"
)

// Service ingests gateway outcomes. It never calls a gateway itself:
// the caller reports "payment succeeded" / "refund completed" and this
// service records the payment row and forwards the lifecycle change to
// the coordinator.
type Service struct {
	payments    PaymentRepository
	bookings    BookingReader
	coordinator BookingCoordinator
}

func NewService(payments PaymentRepository, bookings BookingReader, coordinator BookingCoordinator) *Service {
	return &Service{
		payments:    payments,
		bookings:    bookings,
		coordinator: coordinator,
	}
}

func (s *Service) ConfirmPayment(ctx context.Context, req ConfirmPaymentRequest, actor domain.Actor) (*domain.Payment, error) {
	method := domain.PaymentMethod(req.Method)
	if !domain.ValidPaymentMethod(method) {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if b.UserID != actor.UserID {
		return nil, ErrForbidden
	}
	if b.PaymentStatus != domain.PaymentPending {
		return nil, ErrAlreadyPaid
	}

	amount := req.Amount
	if amount <= 0 {
		amount = b.TotalAmount
	}

	p := &domain.Payment{
		BookingID:     req.BookingID,
		UserID:        actor.UserID,
		Amount:        amount,
		Currency:      defaultCurrency,
		Method:        method,
		Gateway:       defaultGateway,
		TransactionID: req.TransactionID,
		Status:        domain.PaymentRecordSuccess,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateTransaction
		}
		return nil, err
	}

	if _, err := s.coordinator.MarkPaid(ctx, req.BookingID); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Refund(ctx context.Context, req RefundRequest, actor domain.Actor) (*RefundResult, error) {
	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if b.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if b.PaymentStatus != domain.PaymentPaid {
		return nil, ErrNoPaymentToRefund
	}

	p, err := s.payments.GetByBookingID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPaymentToRefund
		}
		return nil, err
	}

	if err := s.payments.MarkRefunded(ctx, p.ID, p.Amount, req.Reason); err != nil {
		return nil, err
	}
	if _, err := s.coordinator.MarkRefunded(ctx, req.BookingID); err != nil {
		return nil, err
	}

	return &RefundResult{
		BookingID: req.BookingID,
		Amount:    p.Amount,
		Status:    string(domain.PaymentRecordRefunded),
	}, nil
}

// ListPayments returns the actor's payments; admins see everything.
func (s *Service) ListPayments(ctx context.Context, actor domain.Actor) ([]domain.Payment, error) {
	if actor.IsAdmin() {
		return s.payments.GetAll(ctx)
	}
	return s.payments.GetByUserID(ctx, actor.UserID)
}

// isUniqueViolation recognizes the transaction-id constraint on both
// backends: pg error 23505 and gorm's translated duplicate-key error.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
