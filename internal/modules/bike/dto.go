package bike

type LocationPayload struct {
	// GeoJSON order: [lng, lat].
	Coordinates []float64 `json:"coordinates" binding:"omitempty,len=2"`
	Address     string    `json:"address"`
}

type CreateBikeRequest struct {
	Name               string          `json:"name" binding:"required"`
	Brand              string          `json:"brand" binding:"required"`
	Model              string          `json:"model" binding:"required"`
	Image              string          `json:"image"`
	RegistrationNumber string          `json:"registration_number" binding:"required"`
	Year               int             `json:"year" binding:"required"`
	PricePerDay        float64         `json:"price_per_day" binding:"gte=0"`
	PricePerHour       float64         `json:"price_per_hour" binding:"gte=0"`
	SecurityDeposit    float64         `json:"security_deposit" binding:"gte=0"`
	Location           LocationPayload `json:"location"`
}

type UpdateBikeRequest struct {
	Name               string           `json:"name"`
	Brand              string           `json:"brand"`
	Model              string           `json:"model"`
	Image              string           `json:"image"`
	RegistrationNumber string           `json:"registration_number"`
	Year               int              `json:"year"`
	PricePerDay        *float64         `json:"price_per_day"`
	PricePerHour       *float64         `json:"price_per_hour"`
	SecurityDeposit    *float64         `json:"security_deposit"`
	Location           *LocationPayload `json:"location"`
}

type ListBikesQuery struct {
	Brand     string  `form:"brand"`
	Available *bool   `form:"available"`
	MinPrice  float64 `form:"min_price"`
	MaxPrice  float64 `form:"max_price"`
	Limit     int     `form:"limit"`
	Offset    int     `form:"offset"`
}
