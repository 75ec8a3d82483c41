package server

import (
	"fmt"
	"time"

	"github.com/dealdeck/dealdeck/internal/domain"
)

const dateLayout = "2006-01-02"

type hotelResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Phone     string  `json:"phone"`
	AvgRating float64 `json:"avg_rating"`
}

type dealResponse struct {
	ID              int64          `json:"id"`
	ExternalID      int64          `json:"external_id"`
	Rating          int            `json:"rating"`
	RoomType        string         `json:"room_type"`
	PricePerNight   float64        `json:"price_per_night"`
	OriginalPrice   float64        `json:"original_price"`
	DiscountPercent int            `json:"discount_percent"`
	CheckinDate     string         `json:"checkin_date"`
	CheckoutDate    string         `json:"checkout_date"`
	IsAvailable     bool           `json:"is_available"`
	Categories      string         `json:"categories"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	Hotel           *hotelResponse `json:"hotel,omitempty"`
}

type pageResponse struct {
	Items []dealResponse `json:"items"`
	Total int64          `json:"total"`
	Skip  int            `json:"skip"`
	Limit int            `json:"limit"`
}

func toDealResponse(d *domain.Deal) dealResponse {
	resp := dealResponse{
		ID:              d.ID,
		ExternalID:      d.ExternalID,
		Rating:          d.Rating,
		RoomType:        d.RoomType,
		PricePerNight:   d.PricePerNight,
		OriginalPrice:   d.OriginalPrice,
		DiscountPercent: d.DiscountPercent,
		CheckinDate:     d.CheckinDate.Format(dateLayout),
		CheckoutDate:    d.CheckoutDate.Format(dateLayout),
		IsAvailable:     d.IsAvailable,
		Categories:      d.Categories,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	if d.Hotel != nil {
		resp.Hotel = &hotelResponse{
			ID:        d.Hotel.ID,
			Name:      d.Hotel.Name,
			City:      d.Hotel.City,
			Country:   d.Hotel.Country,
			Phone:     d.Hotel.Phone,
			AvgRating: d.Hotel.AvgRating,
		}
	}
	return resp
}

func toPageResponse(page *domain.Page[domain.Deal]) pageResponse {
	items := make([]dealResponse, len(page.Items))
	for i := range page.Items {
		items[i] = toDealResponse(&page.Items[i])
	}
	return pageResponse{Items: items, Total: page.Total, Skip: page.Skip, Limit: page.Limit}
}

// dealRequest is the write-side body for create and update.
type dealRequest struct {
	ExternalID      int64   `json:"external_id"`
	HotelID         int64   `json:"hotel_id"`
	Rating          int     `json:"rating"`
	RoomType        string  `json:"room_type"`
	PricePerNight   float64 `json:"price_per_night"`
	OriginalPrice   float64 `json:"original_price"`
	DiscountPercent int     `json:"discount_percent"`
	CheckinDate     string  `json:"checkin_date"`
	CheckoutDate    string  `json:"checkout_date"`
	IsAvailable     bool    `json:"is_available"`
	Categories      string  `json:"categories"`
}

func (req dealRequest) toDomain() (*domain.Deal, error) {
	if req.ExternalID <= 0 {
		return nil, fmt.Errorf("external_id must be positive")
	}
	if req.HotelID <= 0 {
		return nil, fmt.Errorf("hotel_id must be positive")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}
	if req.RoomType == "" {
		return nil, fmt.Errorf("room_type is required")
	}
	if req.PricePerNight <= 0 {
		return nil, fmt.Errorf("price_per_night must be positive")
	}

	checkin, err := time.Parse(dateLayout, req.CheckinDate)
	if err != nil {
		return nil, fmt.Errorf("checkin_date must be formatted as YYYY-MM-DD")
	}
	checkout, err := time.Parse(dateLayout, req.CheckoutDate)
	if err != nil {
		return nil, fmt.Errorf("checkout_date must be formatted as YYYY-MM-DD")
	}
	if !checkout.After(checkin) {
		return nil, fmt.Errorf("checkout_date must be after checkin_date")
	}

	return &domain.Deal{
		ExternalID:      req.ExternalID,
		HotelID:         req.HotelID,
		Rating:          req.Rating,
		RoomType:        req.RoomType,
		PricePerNight:   req.PricePerNight,
		OriginalPrice:   req.OriginalPrice,
		DiscountPercent: req.DiscountPercent,
		CheckinDate:     checkin,
		CheckoutDate:    checkout,
		IsAvailable:     req.IsAvailable,
		Categories:      req.Categories,
	}, nil
}
