package domain

import "context"

// DealRepository is the deal data-access contract. Pure queries, no
// business logic: computed fields and caching live in the service layer.
type DealRepository interface {
	// List returns one page of deals matching f, hotels eagerly loaded.
	List(ctx context.Context, f DealFilter, skip, limit int) ([]Deal, error)

	// Count returns the total number of deals matching f.
	Count(ctx context.Context, f DealFilter) (int64, error)

	// Get returns a deal with its hotel, or ErrDealNotFound.
	Get(ctx context.Context, id int64) (*Deal, error)

	// Create inserts d and fills in its generated fields.
	// Returns ErrDuplicateDeal on an external-id collision and
	// ErrHotelNotFound when the referenced hotel does not exist.
	Create(ctx context.Context, d *Deal) error

	// Update rewrites a deal's mutable fields, or ErrDealNotFound.
	Update(ctx context.Context, d *Deal) error

	// Delete removes a deal, or ErrDealNotFound.
	Delete(ctx context.Context, id int64) error

	// AvgRatingByHotel returns the average deal rating per hotel for the
	// given hotel IDs. Hotels without deals are absent from the result.
	AvgRatingByHotel(ctx context.Context, hotelIDs []int64) (map[int64]float64, error)

	// CityStats aggregates deal count and average nightly price per city.
	CityStats(ctx context.Context) ([]CityStat, error)
}

// HotelRepository is the hotel data-access contract.
type HotelRepository interface {
	// Get returns a hotel, or ErrHotelNotFound.
	Get(ctx context.Context, id int64) (*Hotel, error)

	// UpsertByName inserts h or refreshes the existing hotel with the
	// same name, filling in h.ID either way.
	UpsertByName(ctx context.Context, h *Hotel) error
}
