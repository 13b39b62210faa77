package report

import (
	"context"
	"sort"
	"time"

	"bikerental/internal/domain"
)

const popularBikeLimit = 5

// Service is the read side: projections over bookings and payments.
// Empty ranges come back as zeroed aggregates, never as errors.
type Service struct {
	bookings BookingSource
	payments PaymentSource
	bikes    BikeSource
	users    UserSource
}

func NewService(bookings BookingSource, payments PaymentSource, bikes BikeSource, users UserSource) *Service {
	return &Service{
		bookings: bookings,
		payments: payments,
		bikes:    bikes,
		users:    users,
	}
}

// Daily aggregates the calendar day containing date, in UTC.
func (s *Service) Daily(ctx context.Context, date time.Time) (*DailyReport, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	next := day.Add(24 * time.Hour)

	bookings, err := s.bookings.CreatedBetween(ctx, day, next)
	if err != nil {
		return nil, err
	}

	counts := BookingCounts{Total: int64(len(bookings))}
	for _, b := range bookings {
		switch b.Status {
		case domain.BookingPending:
			counts.Pending++
		case domain.BookingConfirmed:
			counts.Confirmed++
		case domain.BookingActive:
			counts.Active++
		case domain.BookingCompleted:
			counts.Completed++
		case domain.BookingCancelled:
			counts.Cancelled++
		}
	}

	successful, err := s.payments.SuccessfulBetween(ctx, day, next)
	if err != nil {
		return nil, err
	}
	refunded, err := s.payments.RefundedBetween(ctx, day, next)
	if err != nil {
		return nil, err
	}

	var revenue RevenueSummary
	for _, p := range successful {
		revenue.Total += p.Amount
	}
	for _, p := range refunded {
		revenue.Refunds += p.RefundAmount
	}
	revenue.Net = revenue.Total - revenue.Refunds

	if bookings == nil {
		bookings = []domain.Booking{}
	}

	return &DailyReport{
		Date:     day,
		Bookings: counts,
		Revenue:  revenue,
		Payments: len(successful),
		Details:  bookings,
	}, nil
}

func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	out := &Overview{}

	total, available, err := s.bikes.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	out.Bikes.Total = total
	out.Bikes.Available = available
	out.Bikes.InUse = total - available

	users, err := s.users.CountByRole(ctx, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	out.Users = users

	byStatus, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	out.BookingsByStatus = make([]StatusCount, 0, len(byStatus))
	for status, count := range byStatus {
		out.BookingsByStatus = append(out.BookingsByStatus, StatusCount{Status: status, Count: count})
	}
	sort.Slice(out.BookingsByStatus, func(i, j int) bool {
		return out.BookingsByStatus[i].Status < out.BookingsByStatus[j].Status
	})

	revenue, err := s.payments.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	out.Revenue = revenue

	popular, err := s.bikes.TopByRides(ctx, popularBikeLimit)
	if err != nil {
		return nil, err
	}
	if popular == nil {
		popular = []domain.Bike{}
	}
	out.PopularBikes = popular

	return out, nil
}

// RevenueByDay groups successful payments by calendar day, ascending.
func (s *Service) RevenueByDay(ctx context.Context, start, end time.Time) ([]DayRevenue, error) {
	payments, err := s.payments.SuccessfulBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*DayRevenue)
	for _, p := range payments {
		day := p.CreatedAt.UTC().Format("2006-01-02")
		entry, ok := byDay[day]
		if !ok {
			entry = &DayRevenue{Day: day}
			byDay[day] = entry
		}
		entry.TotalRevenue += p.Amount
		entry.Count++
	}

	out := make([]DayRevenue, 0, len(byDay))
	for _, entry := range byDay {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}
