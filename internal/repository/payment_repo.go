package repository

import (
	"context"
	"time"

	"bikerental/internal/domain"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

type paymentModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	BookingID     int64     `gorm:"column:booking_id;index"`
	UserID        int64     `gorm:"column:user_id;index"`
	Amount        float64   `gorm:"column:amount"`
	Currency      string    `gorm:"column:currency"`
	Method        string    `gorm:"column:method"`
	Gateway       string    `gorm:"column:gateway"`
	TransactionID string    `gorm:"column:transaction_id;uniqueIndex:idx_payments_transaction_id"`
	Status        string    `gorm:"column:status;index"`
	RefundAmount  float64   `gorm:"column:refund_amount"`
	RefundReason  *string   `gorm:"column:refund_reason"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (paymentModel) TableName() string { return "payments" }

func toDomainPayment(m paymentModel) *domain.Payment {
	var reason string
	if m.RefundReason != nil {
		reason = *m.RefundReason
	}

	return &domain.Payment{
		ID:            m.ID,
		BookingID:     m.BookingID,
		UserID:        m.UserID,
		Amount:        m.Amount,
		Currency:      m.Currency,
		Method:        domain.PaymentMethod(m.Method),
		Gateway:       m.Gateway,
		TransactionID: m.TransactionID,
		Status:        domain.PaymentRecordStatus(m.Status),
		RefundAmount:  m.RefundAmount,
		RefundReason:  reason,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toPaymentModel(p *domain.Payment) paymentModel {
	var reason *string
	if p.RefundReason != "" {
		v := p.RefundReason
		reason = &v
	}

	return paymentModel{
		ID:            p.ID,
		BookingID:     p.BookingID,
		UserID:        p.UserID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Method:        string(p.Method),
		Gateway:       p.Gateway,
		TransactionID: p.TransactionID,
		Status:        string(p.Status),
		RefundAmount:  p.RefundAmount,
		RefundReason:  reason,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	m := toPaymentModel(p)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainPayment(m)
	return nil
}

func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	var m paymentModel
	tx := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPayment(m), nil
}

func (r *PaymentRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Payment, error) {
	var models []paymentModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainPayments(models), nil
}

func (r *PaymentRepository) GetAll(ctx context.Context) ([]domain.Payment, error) {
	var models []paymentModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainPayments(models), nil
}

func (r *PaymentRepository) MarkRefunded(ctx context.Context, id int64, amount float64, reason string) error {
	tx := r.db.WithContext(ctx).
		Model(&paymentModel{}).
		Where("id = ? AND status = ?", id, string(domain.PaymentRecordSuccess)).
		Updates(map[string]interface{}{
			"status":        string(domain.PaymentRecordRefunded),
			"refund_amount": amount,
			"refund_reason": reason,
			"updated_at":    time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SuccessfulBetween returns success-status payments created in
// [start, end), for revenue projections.
func (r *PaymentRepository) SuccessfulBetween(ctx context.Context, start, end time.Time) ([]domain.Payment, error) {
	var models []paymentModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at >= ? AND created_at < ?", string(domain.PaymentRecordSuccess), start, end).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainPayments(models), nil
}

// RefundedBetween keys off the payment creation timestamp so a refund
// lands in the same reporting bucket as the revenue it reverses.
func (r *PaymentRepository) RefundedBetween(ctx context.Context, start, end time.Time) ([]domain.Payment, error) {
	var models []paymentModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at >= ? AND created_at < ?", string(domain.PaymentRecordRefunded), start, end).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainPayments(models), nil
}

func (r *PaymentRepository) TotalRevenue(ctx context.Context) (float64, error) {
	var total *float64
	err := r.db.WithContext(ctx).
		Model(&paymentModel{}).
		Select("SUM(amount)").
		Where("status = ?", string(domain.PaymentRecordSuccess)).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func toDomainPayments(models []paymentModel) []domain.Payment {
	out := make([]domain.Payment, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainPayment(m))
	}
	return out
}
