package domain

import "time"

type BikeBrand string

const (
	BrandKTM          BikeBrand = "KTM"
	BrandRoyalEnfield BikeBrand = "Royal Enfield"
	BrandScotty       BikeBrand = "Scotty"
)

func ValidBrand(b BikeBrand) bool {
	switch b {
	case BrandKTM, BrandRoyalEnfield, BrandScotty:
		return true
	}
	return false
}

// GeoPoint is a location snapshot. Bookings own their copy;
// the bike keeps its own last known position.
type GeoPoint struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Address   string    `json:"address,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

type Bike struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name" validate:"required"`
	Brand              BikeBrand `json:"brand" validate:"required"`
	Model              string    `json:"model" validate:"required"`
	Image              string    `json:"image,omitempty"`
	RegistrationNumber string    `json:"registration_number" gorm:"uniqueIndex" validate:"required"`
	Year               int       `json:"year" validate:"required"`
	PricePerDay        float64   `json:"price_per_day" validate:"gte=0"`
	PricePerHour       float64   `json:"price_per_hour" validate:"gte=0"`
	SecurityDeposit    float64   `json:"security_deposit" validate:"gte=0"`

	// Available is owned by the booking coordinator: it is flipped
	// only through the inventory seam, never by a client write.
	Available  bool    `json:"available"`
	Rating     float64 `json:"rating"`
	TotalRides int64   `json:"total_rides"`

	Location GeoPoint `json:"location" gorm:"embedded;embeddedPrefix:location_"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// BikeSummary is the minimal projection embedded into booking responses.
type BikeSummary struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Brand        BikeBrand `json:"brand"`
	Model        string    `json:"model"`
	Image        string    `json:"image,omitempty"`
	PricePerDay  float64   `json:"price_per_day"`
	PricePerHour float64   `json:"price_per_hour"`
}

func (b *Bike) Summary() BikeSummary {
	return BikeSummary{
		ID:           b.ID,
		Name:         b.Name,
		Brand:        b.Brand,
		Model:        b.Model,
		Image:        b.Image,
		PricePerDay:  b.PricePerDay,
		PricePerHour: b.PricePerHour,
	}
}
