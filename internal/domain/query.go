package domain

import "fmt"

// Sortable deal fields. The repository maps these to column names; anything
// outside the set is rejected before it reaches SQL.
const (
	SortByID      = "id"
	SortByRating  = "rating"
	SortByPrice   = "price"
	SortByCheckin = "checkin"
)

// Page is one page of a listing plus the metadata a client needs to
// paginate further.
type Page[T any] struct {
	Items []T
	Total int64
	Skip  int
	Limit int
}

// DealFilter narrows and orders a deal listing. Zero values mean "no
// constraint"; Available is a pointer so false can be filtered explicitly.
type DealFilter struct {
	City      string
	RoomType  string
	Available *bool
	MinRating int

	SortBy     string
	Descending bool
}

// Validate rejects sort fields the repository does not support.
func (f DealFilter) Validate() error {
	switch f.SortBy {
	case "", SortByID, SortByRating, SortByPrice, SortByCheckin:
		return nil
	default:
		return fmt.Errorf("unsupported sort field %q", f.SortBy)
	}
}
