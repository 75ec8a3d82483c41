package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/dealdeck/dealdeck/internal/domain"
	"github.com/dealdeck/dealdeck/internal/metrics"
)

const dateLayout = "2006-01-02"

// requiredColumns is the feed's header contract, in any order.
var requiredColumns = []string{
	"external_id", "hotel_name", "city", "country", "phone",
	"rating", "room_type", "price_per_night", "original_price",
	"discount_percent", "checkin_date", "checkout_date",
	"is_available", "categories",
}

// Importer loads feed rows into the repositories.
type Importer struct {
	hotels domain.HotelRepository
	deals  domain.DealRepository
}

func NewImporter(hotels domain.HotelRepository, deals domain.DealRepository) *Importer {
	return &Importer{hotels: hotels, deals: deals}
}

// Result summarizes one import run.
type Result struct {
	Imported int
	Skipped  int
}

// ImportCSV reads the feed from r and loads every row. Rows whose
// external ID already exists are counted as skipped; a malformed row
// aborts the run with its line number.
func (i *Importer) ImportCSV(ctx context.Context, r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	// Hotels repeat across rows; upsert each name once per run.
	hotelIDs := make(map[string]int64)
	result := &Result{}
	line := 1

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line++

		row, err := parseRow(cols, record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		hotelID, ok := hotelIDs[row.hotel.Name]
		if !ok {
			if err := i.hotels.UpsertByName(ctx, &row.hotel); err != nil {
				return nil, fmt.Errorf("line %d: failed to upsert hotel %q: %w", line, row.hotel.Name, err)
			}
			hotelID = row.hotel.ID
			hotelIDs[row.hotel.Name] = hotelID
		}

		row.deal.HotelID = hotelID
		switch err := i.deals.Create(ctx, &row.deal); {
		case err == nil:
			result.Imported++
		case errors.Is(err, domain.ErrDuplicateDeal):
			result.Skipped++
		default:
			return nil, fmt.Errorf("line %d: failed to create deal %d: %w", line, row.deal.ExternalID, err)
		}
	}

	metrics.DealsImported.Add(float64(result.Imported))
	slog.Info("feed import finished", "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for idx, name := range header {
		cols[name] = idx
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("CSV header is missing column %q", name)
		}
	}
	return cols, nil
}

type feedRow struct {
	hotel domain.Hotel
	deal  domain.Deal
}

func parseRow(cols map[string]int, record []string) (*feedRow, error) {
	field := func(name string) string {
		idx := cols[name]
		if idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	externalID, err := strconv.ParseInt(field("external_id"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid external_id %q", field("external_id"))
	}
	rating, err := strconv.Atoi(field("rating"))
	if err != nil || rating < 1 || rating > 5 {
		return nil, fmt.Errorf("invalid rating %q", field("rating"))
	}
	price, err := strconv.ParseFloat(field("price_per_night"), 64)
	if err != nil || price <= 0 {
		return nil, fmt.Errorf("invalid price_per_night %q", field("price_per_night"))
	}
	original, err := strconv.ParseFloat(field("original_price"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid original_price %q", field("original_price"))
	}
	discount, err := strconv.Atoi(field("discount_percent"))
	if err != nil {
		return nil, fmt.Errorf("invalid discount_percent %q", field("discount_percent"))
	}
	checkin, err := time.Parse(dateLayout, field("checkin_date"))
	if err != nil {
		return nil, fmt.Errorf("invalid checkin_date %q", field("checkin_date"))
	}
	checkout, err := time.Parse(dateLayout, field("checkout_date"))
	if err != nil {
		return nil, fmt.Errorf("invalid checkout_date %q", field("checkout_date"))
	}
	available, err := strconv.ParseBool(field("is_available"))
	if err != nil {
		return nil, fmt.Errorf("invalid is_available %q", field("is_available"))
	}
	if field("hotel_name") == "" {
		return nil, fmt.Errorf("hotel_name is required")
	}

	return &feedRow{
		hotel: domain.Hotel{
			Name:    field("hotel_name"),
			City:    field("city"),
			Country: field("country"),
			Phone:   field("phone"),
		},
		deal: domain.Deal{
			ExternalID:      externalID,
			Rating:          rating,
			RoomType:        field("room_type"),
			PricePerNight:   price,
			OriginalPrice:   original,
			DiscountPercent: discount,
			CheckinDate:     checkin,
			CheckoutDate:    checkout,
			IsAvailable:     available,
			Categories:      field("categories"),
		},
	}, nil
}
