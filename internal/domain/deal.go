package domain

import "time"

// Hotel is a normalized property record. AvgRating is computed from the
// hotel's deals at read time; it is never stored.
type Hotel struct {
	ID        int64
	Name      string
	City      string
	Country   string
	Phone     string
	AvgRating float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Deal is a bookable offer for a stay at a hotel. ExternalID is the
// upstream feed's identifier and is unique per deal.
type Deal struct {
	ID              int64
	ExternalID      int64
	HotelID         int64
	Rating          int
	RoomType        string
	PricePerNight   float64
	OriginalPrice   float64
	DiscountPercent int
	CheckinDate     time.Time
	CheckoutDate    time.Time
	IsAvailable     bool
	Categories      string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Hotel is populated on reads; nil on writes.
	Hotel *Hotel
}

// CityStat aggregates deals per city.
type CityStat struct {
	City             string  `json:"city"`
	DealCount        int64   `json:"deal_count"`
	AvgPricePerNight float64 `json:"avg_price_per_night"`
}
