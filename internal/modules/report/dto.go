package report

import (
	"time"

	"bikerental/internal/domain"
)

type BookingCounts struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
}

type RevenueSummary struct {
	Total   float64 `json:"total"`
	Refunds float64 `json:"refunds"`
	Net     float64 `json:"net"`
}

type DailyReport struct {
	Date     time.Time        `json:"date"`
	Bookings BookingCounts    `json:"bookings"`
	Revenue  RevenueSummary   `json:"revenue"`
	Payments int              `json:"payments"`
	Details  []domain.Booking `json:"details"`
}

type StatusCount struct {
	Status domain.BookingStatus `json:"status"`
	Count  int64                `json:"count"`
}

type Overview struct {
	Bikes struct {
		Total     int64 `json:"total"`
		Available int64 `json:"available"`
		InUse     int64 `json:"in_use"`
	} `json:"bikes"`
	Users            int64         `json:"users"`
	BookingsByStatus []StatusCount `json:"bookings_by_status"`
	Revenue          float64       `json:"revenue"`
	PopularBikes     []domain.Bike `json:"popular_bikes"`
}

type DayRevenue struct {
	Day          string  `json:"day"`
	TotalRevenue float64 `json:"total_revenue"`
	Count        int     `json:"count"`
}
